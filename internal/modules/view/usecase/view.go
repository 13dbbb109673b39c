package usecase

import (
	"context"
	"time"

	groupdomain "taskdeck/internal/modules/group/domain"
	taskdomain "taskdeck/internal/modules/task/domain"
	taskdto "taskdeck/internal/modules/task/dto"
	"taskdeck/internal/modules/view/dto"
	viewin "taskdeck/internal/modules/view/port/in"
	"taskdeck/internal/modules/view/service"
	workspaceout "taskdeck/internal/modules/workspace/port/out"
	"taskdeck/internal/platform/clock"
)

// Interactor loads the workspace and hands it to the pure derivation
// service. It never writes.
type Interactor struct {
	svc   *service.ViewService
	store workspaceout.SnapshotStore
	clock clock.Clock
}

func NewInteractor(svc *service.ViewService, store workspaceout.SnapshotStore, clock clock.Clock) viewin.Usecase {
	return &Interactor{svc: svc, store: store, clock: clock}
}

func (i *Interactor) Groups(ctx context.Context, username string) ([]dto.GroupSummary, error) {
	snapshot, err := i.store.Load(ctx, username)
	if err != nil {
		return nil, err
	}
	tree := groupdomain.NewTree(snapshot.Groups)
	counts := i.svc.GroupCounts(snapshot.Tasks)
	sorted := tree.Sorted()
	out := make([]dto.GroupSummary, 0, len(sorted))
	for _, g := range sorted {
		out = append(out, dto.GroupSummary{
			ID:       g.ID,
			Name:     g.Name,
			Color:    g.Color,
			ParentID: g.ParentID,
			Pinned:   g.Pinned,
			Depth:    tree.Depth(g.ID),
			Count:    counts[g.ID],
		})
	}
	return out, nil
}

func (i *Interactor) Destinations(ctx context.Context, username string) ([]dto.DestinationCount, error) {
	snapshot, err := i.store.Load(ctx, username)
	if err != nil {
		return nil, err
	}
	counts := i.svc.DestinationCounts(snapshot.Tasks, snapshot.Trash, i.clock.Now())
	out := make([]dto.DestinationCount, 0, len(destinationOrder))
	for _, d := range destinationOrder {
		out = append(out, dto.DestinationCount{ID: d.id, Name: d.name, Count: counts[d.id]})
	}
	return out, nil
}

// destinationOrder fixes the sidebar order of the virtual destinations.
var destinationOrder = []struct {
	id   string
	name string
}{
	{service.DestToday, "Today"},
	{service.DestWeek, "Next 7 Days"},
	{service.DestAll, "All"},
	{service.DestCompleted, "Completed"},
	{service.DestTrash, "Trash"},
}

func (i *Interactor) List(ctx context.Context, input dto.ListInput) (dto.ListOutput, error) {
	snapshot, err := i.store.Load(ctx, input.Username)
	if err != nil {
		return dto.ListOutput{}, err
	}
	tasks := i.svc.PrimaryList(snapshot.Tasks, input.Destination, i.clock.Now())
	return dto.ListOutput{Tasks: toOutputs(tasks)}, nil
}

func (i *Interactor) Search(ctx context.Context, input dto.SearchInput) (dto.ListOutput, error) {
	snapshot, err := i.store.Load(ctx, input.Username)
	if err != nil {
		return dto.ListOutput{}, err
	}
	tasks := i.svc.Search(snapshot.Tasks, service.SearchParams{
		Keyword:       input.Keyword,
		TimeDesc:      input.TimeDesc,
		ImportanceLow: input.ImportanceLow,
	}, i.clock.Now())
	return dto.ListOutput{Tasks: toOutputs(tasks)}, nil
}

func (i *Interactor) Stats(ctx context.Context, input dto.StatsInput) (dto.StatsOutput, error) {
	snapshot, err := i.store.Load(ctx, input.Username)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	since := input.Since
	if since.IsZero() {
		now := i.clock.Now()
		since = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	stats := i.svc.ComputeStats(snapshot.Tasks, snapshot.Groups, since)

	out := dto.StatsOutput{
		FocusTotalMinutes: stats.FocusTotalMinutes,
		FocusSinceMinutes: stats.FocusSinceMinutes,
		DailyMinutes:      stats.DailyMinutes,
		MonthlyMinutes:    stats.MonthlyMinutes,
		YearlyMinutes:     stats.YearlyMinutes,
	}
	for _, r := range stats.CancelReasons {
		out.CancelReasons = append(out.CancelReasons, dto.ReasonCount(r))
	}
	for _, g := range stats.GroupCompletion {
		out.GroupCompletion = append(out.GroupCompletion, dto.GroupCompletion(g))
	}
	return out, nil
}

func toOutputs(tasks []taskdomain.Task) []taskdto.TaskOutput {
	out := make([]taskdto.TaskOutput, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskdto.TaskOutput{
			ID:                 t.ID,
			Title:              t.Title,
			Description:        t.Description,
			GroupID:            t.GroupID,
			Importance:         string(t.Importance),
			Kind:               string(t.Kind),
			DueAt:              t.DueAt,
			Status:             string(t.Status),
			CreatedAt:          t.CreatedAt,
			CompletedAt:        t.CompletedAt,
			TimerMode:          string(t.TimerMode),
			DurationMinutes:    t.DurationMinutes,
			ActualFocusMinutes: t.ActualFocusMinutes,
			TotalFocusMinutes:  t.TotalFocusMinutes,
			Repeat:             string(t.Repeat),
			TargetValue:        t.TargetValue,
			TargetUnit:         t.TargetUnit,
			ProgressValue:      t.ProgressValue,
			CancelReasons:      t.CancelReasons,
			Remind:             t.Remind,
			RemindHour:         t.RemindHour,
		})
	}
	return out
}
