package in

import (
	"context"

	taskdto "taskdeck/internal/modules/task/dto"
	taskin "taskdeck/internal/modules/task/port/in"
)

type CLIHandler struct {
	usecase taskin.Usecase
}

func NewCLIHandler(usecase taskin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, input taskdto.CreateInput) (taskdto.TaskOutput, error) {
	return h.usecase.Create(ctx, input)
}

func (h CLIHandler) Edit(ctx context.Context, input taskdto.EditInput) (taskdto.TaskOutput, error) {
	return h.usecase.Edit(ctx, input)
}

func (h CLIHandler) Toggle(ctx context.Context, username, taskID string) (taskdto.TaskOutput, error) {
	return h.usecase.Toggle(ctx, taskdto.ToggleInput{Username: username, TaskID: taskID})
}

func (h CLIHandler) AddProgress(ctx context.Context, username, taskID string, delta float64, note string) (taskdto.TaskOutput, error) {
	return h.usecase.AddProgress(ctx, taskdto.ProgressInput{Username: username, TaskID: taskID, Delta: delta, Note: note})
}

func (h CLIHandler) ResetProgress(ctx context.Context, username, taskID string) (taskdto.TaskOutput, error) {
	return h.usecase.ResetProgress(ctx, taskdto.ToggleInput{Username: username, TaskID: taskID})
}

func (h CLIHandler) Move(ctx context.Context, username, taskID, groupID string) (taskdto.TaskOutput, error) {
	return h.usecase.Move(ctx, taskdto.MoveInput{Username: username, TaskID: taskID, GroupID: groupID})
}

func (h CLIHandler) Delete(ctx context.Context, username, taskID string) error {
	return h.usecase.Delete(ctx, taskdto.DeleteInput{Username: username, TaskID: taskID})
}

func (h CLIHandler) Restore(ctx context.Context, username, trashUniqueID string) (taskdto.TaskOutput, error) {
	return h.usecase.Restore(ctx, taskdto.RestoreInput{Username: username, TrashUniqueID: trashUniqueID})
}

func (h CLIHandler) PurgeTrash(ctx context.Context, username string) (int, error) {
	return h.usecase.PurgeTrash(ctx, username)
}

func (h CLIHandler) Get(ctx context.Context, username, taskID string) (taskdto.TaskOutput, error) {
	return h.usecase.Get(ctx, username, taskID)
}

func (h CLIHandler) List(ctx context.Context, username string) ([]taskdto.TaskOutput, error) {
	return h.usecase.List(ctx, username)
}

func (h CLIHandler) ListTrash(ctx context.Context, username string) ([]taskdto.TrashItemOutput, error) {
	return h.usecase.ListTrash(ctx, username)
}

func (h CLIHandler) CheckReminders(ctx context.Context, username string) ([]taskdto.TaskOutput, error) {
	return h.usecase.CheckReminders(ctx, username)
}

func (h CLIHandler) Reindex(ctx context.Context, username string) (int, error) {
	return h.usecase.Reindex(ctx, username)
}
