package in

import (
	"context"

	groupdto "taskdeck/internal/modules/group/dto"
	groupin "taskdeck/internal/modules/group/port/in"
)

type CLIHandler struct {
	usecase groupin.Usecase
}

func NewCLIHandler(usecase groupin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, username, name, color, parentID string) (groupdto.GroupOutput, error) {
	return h.usecase.Create(ctx, groupdto.CreateInput{Username: username, Name: name, Color: color, ParentID: parentID})
}

func (h CLIHandler) Rename(ctx context.Context, username, groupID, name, color string) (groupdto.GroupOutput, error) {
	return h.usecase.Rename(ctx, groupdto.RenameInput{Username: username, GroupID: groupID, Name: name, Color: color})
}

func (h CLIHandler) Pin(ctx context.Context, username, groupID string, pinned bool) (groupdto.GroupOutput, error) {
	return h.usecase.Pin(ctx, groupdto.PinInput{Username: username, GroupID: groupID, Pinned: pinned})
}

func (h CLIHandler) Drop(ctx context.Context, username, draggedID, targetID string, below bool) error {
	return h.usecase.Drop(ctx, groupdto.DropInput{Username: username, DraggedID: draggedID, TargetID: targetID, Below: below})
}

func (h CLIHandler) Promote(ctx context.Context, username, groupID string) error {
	return h.usecase.Promote(ctx, groupdto.PromoteInput{Username: username, GroupID: groupID})
}

func (h CLIHandler) Delete(ctx context.Context, username, groupID, policy string) (groupdto.DeleteOutput, error) {
	return h.usecase.Delete(ctx, groupdto.DeleteInput{Username: username, GroupID: groupID, Policy: policy})
}

func (h CLIHandler) List(ctx context.Context, username string) ([]groupdto.GroupOutput, error) {
	return h.usecase.List(ctx, username)
}
