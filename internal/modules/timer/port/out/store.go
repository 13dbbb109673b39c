package out

import (
	"context"

	"taskdeck/internal/modules/timer/domain"
)

// ActiveTimerStore persists the single active timer per account so a
// running session survives process restarts.
type ActiveTimerStore interface {
	SaveActive(ctx context.Context, username string, timer domain.Timer) error
	// LoadActive returns ErrNoActiveTimer when nothing is stored.
	LoadActive(ctx context.Context, username string) (domain.Timer, error)
	ClearActive(ctx context.Context, username string) error
}
