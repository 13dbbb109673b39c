package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"taskdeck/internal/modules/workspace/domain"
	workspaceout "taskdeck/internal/modules/workspace/port/out"
)

// JSONSnapshotStore keeps one data.json per account under the data
// directory. A missing or corrupt file falls back to the default
// workspace rather than failing the session.
type JSONSnapshotStore struct {
	dataDir string
}

func NewJSONSnapshotStore(dataDir string) workspaceout.SnapshotStore {
	return &JSONSnapshotStore{dataDir: dataDir}
}

func (s *JSONSnapshotStore) path(username string) string {
	return filepath.Join(s.dataDir, "users", username, "data.json")
}

func (s *JSONSnapshotStore) Load(_ context.Context, username string) (domain.Snapshot, error) {
	payload, err := os.ReadFile(s.path(username))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.DefaultSnapshot(), nil
		}
		return domain.Snapshot{}, fmt.Errorf("read workspace: %w", err)
	}
	snapshot := domain.Snapshot{}
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return domain.DefaultSnapshot(), nil
	}
	return snapshot.Normalize(), nil
}

func (s *JSONSnapshotStore) Save(_ context.Context, username string, snapshot domain.Snapshot) error {
	path := s.path(username)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create workspace dir: %w", err)
	}
	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal workspace: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write workspace: %w", err)
	}
	return nil
}
