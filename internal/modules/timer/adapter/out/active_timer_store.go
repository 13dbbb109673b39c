package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"taskdeck/internal/modules/timer/domain"
	timerout "taskdeck/internal/modules/timer/port/out"
	apperrors "taskdeck/internal/platform/errors"
)

type FileActiveTimerStore struct {
	dataDir string
}

func NewFileActiveTimerStore(dataDir string) timerout.ActiveTimerStore {
	return &FileActiveTimerStore{dataDir: dataDir}
}

func (s *FileActiveTimerStore) path(username string) string {
	return filepath.Join(s.dataDir, "users", username, "active-timer.json")
}

func (s *FileActiveTimerStore) SaveActive(_ context.Context, username string, timer domain.Timer) error {
	path := s.path(username)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create timer dir: %w", err)
	}
	payload, err := json.MarshalIndent(timer, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal active timer: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write active timer: %w", err)
	}
	return nil
}

func (s *FileActiveTimerStore) LoadActive(_ context.Context, username string) (domain.Timer, error) {
	payload, err := os.ReadFile(s.path(username))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Timer{}, apperrors.ErrNoActiveTimer
		}
		return domain.Timer{}, fmt.Errorf("read active timer: %w", err)
	}
	timer := domain.Timer{}
	if err := json.Unmarshal(payload, &timer); err != nil {
		return domain.Timer{}, fmt.Errorf("decode active timer: %w", err)
	}
	if timer.TaskID == "" {
		return domain.Timer{}, apperrors.ErrNoActiveTimer
	}
	return timer, nil
}

func (s *FileActiveTimerStore) ClearActive(_ context.Context, username string) error {
	if err := os.Remove(s.path(username)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear active timer: %w", err)
	}
	return nil
}
