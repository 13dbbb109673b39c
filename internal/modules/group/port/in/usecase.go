package in

import (
	"context"

	"taskdeck/internal/modules/group/dto"
)

// Usecase is the group tree's inbound surface.
type Usecase interface {
	Create(ctx context.Context, input dto.CreateInput) (dto.GroupOutput, error)
	Rename(ctx context.Context, input dto.RenameInput) (dto.GroupOutput, error)
	Pin(ctx context.Context, input dto.PinInput) (dto.GroupOutput, error)
	Drop(ctx context.Context, input dto.DropInput) error
	Promote(ctx context.Context, input dto.PromoteInput) error
	Delete(ctx context.Context, input dto.DeleteInput) (dto.DeleteOutput, error)
	List(ctx context.Context, username string) ([]dto.GroupOutput, error)
}
