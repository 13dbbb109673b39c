package in

import (
	"context"

	"taskdeck/internal/modules/timer/dto"
)

// Usecase drives the focus timer state machine. Poll is the 1-second
// tick entry point: it reports current status and auto-completes a
// countdown that has run out.
type Usecase interface {
	Open(ctx context.Context, input dto.OpenInput) (dto.StatusOutput, error)
	Start(ctx context.Context, username string) (dto.StatusOutput, error)
	Pause(ctx context.Context, username string) (dto.StatusOutput, error)
	Status(ctx context.Context, username string) (dto.StatusOutput, error)
	Poll(ctx context.Context, username string) (dto.StatusOutput, *dto.CommitOutput, error)
	Complete(ctx context.Context, username string) (dto.CommitOutput, error)
	Cancel(ctx context.Context, input dto.CancelInput) (*dto.CommitOutput, error)
	Dismiss(ctx context.Context, username string) error
	DiscardForTask(ctx context.Context, username, taskID string) error
}
