package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"taskdeck/internal/modules/account/domain"
	accountout "taskdeck/internal/modules/account/port/out"
	apperrors "taskdeck/internal/platform/errors"
)

// FileAccountStore keeps users.json and current-user at the data
// directory root, and settings.json / profile.json per account.
type FileAccountStore struct {
	dataDir string
}

func NewFileAccountStore(dataDir string) accountout.AccountStore {
	return &FileAccountStore{dataDir: dataDir}
}

func (s *FileAccountStore) LoadUsers(_ context.Context) ([]domain.User, error) {
	path := filepath.Join(s.dataDir, "users.json")
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.User{}, nil
		}
		return nil, fmt.Errorf("read users: %w", err)
	}
	var users []domain.User
	if err := json.Unmarshal(payload, &users); err != nil {
		return []domain.User{}, nil
	}
	return users, nil
}

func (s *FileAccountStore) SaveUsers(_ context.Context, users []domain.User) error {
	return s.writeJSON(filepath.Join(s.dataDir, "users.json"), users)
}

func (s *FileAccountStore) LoadSettings(_ context.Context, username string) (domain.Settings, error) {
	settings := domain.DefaultSettings()
	s.readJSON(filepath.Join(s.dataDir, "users", username, "settings.json"), &settings)
	return settings, nil
}

func (s *FileAccountStore) SaveSettings(_ context.Context, username string, settings domain.Settings) error {
	return s.writeJSON(filepath.Join(s.dataDir, "users", username, "settings.json"), settings)
}

func (s *FileAccountStore) LoadProfile(_ context.Context, username string) (domain.Profile, error) {
	profile := domain.Profile{}
	s.readJSON(filepath.Join(s.dataDir, "users", username, "profile.json"), &profile)
	return profile, nil
}

func (s *FileAccountStore) SaveProfile(_ context.Context, username string, profile domain.Profile) error {
	return s.writeJSON(filepath.Join(s.dataDir, "users", username, "profile.json"), profile)
}

func (s *FileAccountStore) CurrentUser(_ context.Context) (string, error) {
	payload, err := os.ReadFile(filepath.Join(s.dataDir, "current-user"))
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.ErrNotLoggedIn
		}
		return "", fmt.Errorf("read current user: %w", err)
	}
	username := strings.TrimSpace(string(payload))
	if username == "" {
		return "", apperrors.ErrNotLoggedIn
	}
	return username, nil
}

func (s *FileAccountStore) SetCurrentUser(_ context.Context, username string) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dataDir, "current-user"), []byte(username+"\n"), 0o644); err != nil {
		return fmt.Errorf("write current user: %w", err)
	}
	return nil
}

func (s *FileAccountStore) ClearCurrentUser(_ context.Context) error {
	if err := os.Remove(filepath.Join(s.dataDir, "current-user")); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear current user: %w", err)
	}
	return nil
}

func (s *FileAccountStore) RemoveUserData(_ context.Context, username string) error {
	if username == "" {
		return apperrors.ErrInvalidInput
	}
	if err := os.RemoveAll(filepath.Join(s.dataDir, "users", username)); err != nil {
		return fmt.Errorf("remove user data: %w", err)
	}
	return nil
}

// readJSON leaves dst untouched when the file is missing or corrupt.
func (s *FileAccountStore) readJSON(path string, dst any) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_ = json.Unmarshal(payload, dst)
}

func (s *FileAccountStore) writeJSON(path string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
