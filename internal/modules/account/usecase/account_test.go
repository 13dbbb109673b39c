package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"

	"taskdeck/internal/modules/account/domain"
	"taskdeck/internal/modules/account/dto"
	"taskdeck/internal/modules/account/service"
	apperrors "taskdeck/internal/platform/errors"
)

type seqIDGen struct{ n int }

func (g *seqIDGen) New() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type memoryAccountStore struct {
	users    []domain.User
	settings map[string]domain.Settings
	profiles map[string]domain.Profile
	current  string
	removed  []string
}

func newMemoryAccountStore() *memoryAccountStore {
	return &memoryAccountStore{
		settings: map[string]domain.Settings{},
		profiles: map[string]domain.Profile{},
	}
}

func (s *memoryAccountStore) LoadUsers(context.Context) ([]domain.User, error) { return s.users, nil }

func (s *memoryAccountStore) SaveUsers(_ context.Context, users []domain.User) error {
	s.users = users
	return nil
}

func (s *memoryAccountStore) LoadSettings(_ context.Context, username string) (domain.Settings, error) {
	if settings, ok := s.settings[username]; ok {
		return settings, nil
	}
	return domain.DefaultSettings(), nil
}

func (s *memoryAccountStore) SaveSettings(_ context.Context, username string, settings domain.Settings) error {
	s.settings[username] = settings
	return nil
}

func (s *memoryAccountStore) LoadProfile(_ context.Context, username string) (domain.Profile, error) {
	return s.profiles[username], nil
}

func (s *memoryAccountStore) SaveProfile(_ context.Context, username string, profile domain.Profile) error {
	s.profiles[username] = profile
	return nil
}

func (s *memoryAccountStore) CurrentUser(context.Context) (string, error) {
	if s.current == "" {
		return "", apperrors.ErrNotLoggedIn
	}
	return s.current, nil
}

func (s *memoryAccountStore) SetCurrentUser(_ context.Context, username string) error {
	s.current = username
	return nil
}

func (s *memoryAccountStore) ClearCurrentUser(context.Context) error {
	s.current = ""
	return nil
}

func (s *memoryAccountStore) RemoveUserData(_ context.Context, username string) error {
	s.removed = append(s.removed, username)
	return nil
}

func newAccount(store *memoryAccountStore) *Interactor {
	return NewInteractor(service.NewAccountService(), store, &seqIDGen{}).(*Interactor)
}

func dataURL(size int) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", size)))
}

func TestRegisterLoginFlow(t *testing.T) {
	t.Parallel()

	store := newMemoryAccountStore()
	uc := newAccount(store)
	ctx := context.Background()

	if err := uc.Register(ctx, dto.RegisterInput{Username: "ada", Password: "pw", Confirm: "pw"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if current, _ := uc.Current(ctx); current != "ada" {
		t.Fatalf("current = %q, want ada after register", current)
	}

	err := uc.Register(ctx, dto.RegisterInput{Username: "ada", Password: "x", Confirm: "x"})
	if !errors.Is(err, apperrors.ErrUserExists) {
		t.Fatalf("duplicate register err = %v, want ErrUserExists", err)
	}
	err = uc.Register(ctx, dto.RegisterInput{Username: "bob", Password: "a", Confirm: "b"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("mismatched confirm err = %v, want ErrInvalidInput", err)
	}

	if err := uc.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := uc.Current(ctx); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Fatalf("current after logout err = %v, want ErrNotLoggedIn", err)
	}

	err = uc.Login(ctx, dto.LoginInput{Username: "ada", Password: "wrong"})
	if !errors.Is(err, apperrors.ErrBadCredentials) {
		t.Fatalf("bad login err = %v, want ErrBadCredentials", err)
	}
	err = uc.Login(ctx, dto.LoginInput{Username: "ghost", Password: "pw"})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown user err = %v, want ErrNotFound", err)
	}
	if err := uc.Login(ctx, dto.LoginInput{Username: "ada", Password: "pw"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
}

func TestDeleteAccountWipesData(t *testing.T) {
	t.Parallel()

	store := newMemoryAccountStore()
	uc := newAccount(store)
	ctx := context.Background()

	uc.Register(ctx, dto.RegisterInput{Username: "ada", Password: "pw", Confirm: "pw"})
	if err := uc.DeleteAccount(ctx, "ada"); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if len(store.users) != 0 {
		t.Error("user entry survived delete")
	}
	if store.current != "" {
		t.Error("current user not cleared")
	}
	if len(store.removed) != 1 || store.removed[0] != "ada" {
		t.Errorf("removed = %v, want [ada]", store.removed)
	}
}

func TestAddPhotoValidation(t *testing.T) {
	t.Parallel()

	store := newMemoryAccountStore()
	uc := newAccount(store)
	ctx := context.Background()

	if _, err := uc.AddPhoto(ctx, dto.PhotoInput{Username: "ada", DataURL: dataURL(100)}); err != nil {
		t.Fatalf("AddPhoto: %v", err)
	}
	if len(store.profiles["ada"].Photos) != 1 {
		t.Fatal("photo not stored")
	}

	_, err := uc.AddPhoto(ctx, dto.PhotoInput{Username: "ada", DataURL: "data:text/plain;base64,aGk="})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("non-image err = %v, want ErrInvalidInput", err)
	}
	_, err = uc.AddPhoto(ctx, dto.PhotoInput{Username: "ada", DataURL: dataURL(domain.MaxPhotoBytes + 1)})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("oversized err = %v, want ErrInvalidInput", err)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Parallel()

	store := newMemoryAccountStore()
	uc := newAccount(store)
	ctx := context.Background()

	out, err := uc.UpdateSettings(ctx, dto.SettingsInput{Username: "ada", Theme: "dark"})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if out.Theme != "dark" {
		t.Fatalf("theme = %q, want dark", out.Theme)
	}
	got, err := uc.Settings(ctx, "ada")
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if got.Theme != "dark" {
		t.Fatalf("persisted theme = %q, want dark", got.Theme)
	}
}
