package in

import (
	"context"
	"time"

	viewdto "taskdeck/internal/modules/view/dto"
	viewin "taskdeck/internal/modules/view/port/in"
)

type CLIHandler struct {
	usecase viewin.Usecase
}

func NewCLIHandler(usecase viewin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Groups(ctx context.Context, username string) ([]viewdto.GroupSummary, error) {
	return h.usecase.Groups(ctx, username)
}

func (h CLIHandler) Destinations(ctx context.Context, username string) ([]viewdto.DestinationCount, error) {
	return h.usecase.Destinations(ctx, username)
}

func (h CLIHandler) List(ctx context.Context, username, destination string) (viewdto.ListOutput, error) {
	return h.usecase.List(ctx, viewdto.ListInput{Username: username, Destination: destination})
}

func (h CLIHandler) Search(ctx context.Context, username, keyword string, timeDesc, importanceLow bool) (viewdto.ListOutput, error) {
	return h.usecase.Search(ctx, viewdto.SearchInput{
		Username:      username,
		Keyword:       keyword,
		TimeDesc:      timeDesc,
		ImportanceLow: importanceLow,
	})
}

func (h CLIHandler) Stats(ctx context.Context, username string, since time.Time) (viewdto.StatsOutput, error) {
	return h.usecase.Stats(ctx, viewdto.StatsInput{Username: username, Since: since})
}
