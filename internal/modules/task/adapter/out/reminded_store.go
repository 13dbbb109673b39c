package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	taskout "taskdeck/internal/modules/task/port/out"
)

// FileRemindedStore records which tasks were already reminded on a
// given calendar day, one small JSON file per day.
type FileRemindedStore struct {
	dataDir string
}

func NewFileRemindedStore(dataDir string) taskout.RemindedStore {
	return &FileRemindedStore{dataDir: dataDir}
}

func (s *FileRemindedStore) path(username string, day time.Time) string {
	return filepath.Join(s.dataDir, "users", username, "reminded", day.Format("2006-01-02")+".json")
}

func (s *FileRemindedStore) load(username string, day time.Time) (map[string]bool, error) {
	payload, err := os.ReadFile(s.path(username, day))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]bool{}, nil
		}
		return nil, fmt.Errorf("read reminded set: %w", err)
	}
	var ids []string
	if err := json.Unmarshal(payload, &ids); err != nil {
		return map[string]bool{}, nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (s *FileRemindedStore) Reminded(_ context.Context, username string, day time.Time, taskID string) (bool, error) {
	set, err := s.load(username, day)
	if err != nil {
		return false, err
	}
	return set[taskID], nil
}

func (s *FileRemindedStore) MarkReminded(_ context.Context, username string, day time.Time, taskID string) error {
	set, err := s.load(username, day)
	if err != nil {
		return err
	}
	if set[taskID] {
		return nil
	}
	set[taskID] = true
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	path := s.path(username, day)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create reminded dir: %w", err)
	}
	payload, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal reminded set: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write reminded set: %w", err)
	}
	return nil
}
