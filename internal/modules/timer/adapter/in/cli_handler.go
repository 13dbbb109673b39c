package in

import (
	"context"

	timerdto "taskdeck/internal/modules/timer/dto"
	timerin "taskdeck/internal/modules/timer/port/in"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Open(ctx context.Context, username, taskID string) (timerdto.StatusOutput, error) {
	return h.usecase.Open(ctx, timerdto.OpenInput{Username: username, TaskID: taskID})
}

func (h CLIHandler) Start(ctx context.Context, username string) (timerdto.StatusOutput, error) {
	return h.usecase.Start(ctx, username)
}

func (h CLIHandler) Pause(ctx context.Context, username string) (timerdto.StatusOutput, error) {
	return h.usecase.Pause(ctx, username)
}

func (h CLIHandler) Status(ctx context.Context, username string) (timerdto.StatusOutput, error) {
	return h.usecase.Status(ctx, username)
}

func (h CLIHandler) Poll(ctx context.Context, username string) (timerdto.StatusOutput, *timerdto.CommitOutput, error) {
	return h.usecase.Poll(ctx, username)
}

func (h CLIHandler) Complete(ctx context.Context, username string) (timerdto.CommitOutput, error) {
	return h.usecase.Complete(ctx, username)
}

func (h CLIHandler) Cancel(ctx context.Context, username, reason string) (*timerdto.CommitOutput, error) {
	return h.usecase.Cancel(ctx, timerdto.CancelInput{Username: username, Reason: reason})
}

func (h CLIHandler) Dismiss(ctx context.Context, username string) error {
	return h.usecase.Dismiss(ctx, username)
}
