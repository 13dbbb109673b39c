package out

import (
	"context"

	"taskdeck/internal/modules/workspace/domain"
)

// SnapshotStore persists one workspace snapshot per account.
type SnapshotStore interface {
	// Load returns the stored snapshot, or the default workspace when
	// nothing has been saved yet or the stored payload is unreadable.
	Load(ctx context.Context, username string) (domain.Snapshot, error)
	Save(ctx context.Context, username string, snapshot domain.Snapshot) error
}
