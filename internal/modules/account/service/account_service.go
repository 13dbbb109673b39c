package service

import (
	"strings"

	"taskdeck/internal/modules/account/domain"
	apperrors "taskdeck/internal/platform/errors"
)

// AccountService holds the credential rules. Passwords are compared
// in plaintext, matching the import format of the data files.
type AccountService struct{}

func NewAccountService() *AccountService { return &AccountService{} }

func (s *AccountService) Register(users []domain.User, username, password, confirm string) ([]domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return users, apperrors.ErrInvalidInput
	}
	if password != confirm {
		return users, apperrors.ErrInvalidInput
	}
	for _, u := range users {
		if u.Username == username {
			return users, apperrors.ErrUserExists
		}
	}
	return append(users, domain.User{Username: username, Password: password}), nil
}

// Authenticate distinguishes an unknown user from a wrong password so
// the login form can say which one failed.
func (s *AccountService) Authenticate(users []domain.User, username, password string) error {
	for _, u := range users {
		if u.Username == username {
			if u.Password == password {
				return nil
			}
			return apperrors.ErrBadCredentials
		}
	}
	return apperrors.ErrNotFound
}

func (s *AccountService) Remove(users []domain.User, username string) ([]domain.User, bool) {
	kept := users[:0:0]
	removed := false
	for _, u := range users {
		if u.Username == username {
			removed = true
			continue
		}
		kept = append(kept, u)
	}
	return kept, removed
}
