package out

import (
	"context"
	"time"

	"taskdeck/internal/modules/task/domain"
)

// TaskProjector maintains a queryable read model of the task list.
// Projection failures never veto a mutation.
type TaskProjector interface {
	Upsert(ctx context.Context, username string, task domain.Task) error
	Delete(ctx context.Context, username, taskID string) error
	Reset(ctx context.Context, username string, tasks []domain.Task) error
}

// RemindedStore dedupes reminder pop-ups within one calendar day.
type RemindedStore interface {
	Reminded(ctx context.Context, username string, day time.Time, taskID string) (bool, error)
	MarkReminded(ctx context.Context, username string, day time.Time, taskID string) error
}
