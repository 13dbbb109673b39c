package in

import (
	"context"

	"taskdeck/internal/modules/task/dto"
)

// Usecase is the task list's inbound surface. Timer commits arrive
// here from the focus timer rather than mutating tasks directly.
type Usecase interface {
	Create(ctx context.Context, input dto.CreateInput) (dto.TaskOutput, error)
	Edit(ctx context.Context, input dto.EditInput) (dto.TaskOutput, error)
	Toggle(ctx context.Context, input dto.ToggleInput) (dto.TaskOutput, error)
	AddProgress(ctx context.Context, input dto.ProgressInput) (dto.TaskOutput, error)
	ResetProgress(ctx context.Context, input dto.ToggleInput) (dto.TaskOutput, error)
	Move(ctx context.Context, input dto.MoveInput) (dto.TaskOutput, error)
	Delete(ctx context.Context, input dto.DeleteInput) error
	Restore(ctx context.Context, input dto.RestoreInput) (dto.TaskOutput, error)
	PurgeTrash(ctx context.Context, username string) (int, error)
	Get(ctx context.Context, username, taskID string) (dto.TaskOutput, error)
	List(ctx context.Context, username string) ([]dto.TaskOutput, error)
	ListTrash(ctx context.Context, username string) ([]dto.TrashItemOutput, error)
	CommitFocus(ctx context.Context, input dto.CommitFocusInput) (dto.TaskOutput, error)
	CancelFocus(ctx context.Context, input dto.CancelFocusInput) (dto.TaskOutput, error)
	CheckReminders(ctx context.Context, username string) ([]dto.TaskOutput, error)
	Reindex(ctx context.Context, username string) (int, error)
}
