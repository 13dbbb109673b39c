package in

import (
	"context"

	"taskdeck/internal/modules/view/dto"
)

// Usecase exposes the derived views: sidebar summaries, ordered task
// lists, search and statistics. Everything here is read-only.
type Usecase interface {
	Groups(ctx context.Context, username string) ([]dto.GroupSummary, error)
	Destinations(ctx context.Context, username string) ([]dto.DestinationCount, error)
	List(ctx context.Context, input dto.ListInput) (dto.ListOutput, error)
	Search(ctx context.Context, input dto.SearchInput) (dto.ListOutput, error)
	Stats(ctx context.Context, input dto.StatsInput) (dto.StatsOutput, error)
}
