package usecase

import (
	"context"
	"time"

	"taskdeck/internal/modules/task/domain"
	"taskdeck/internal/modules/task/dto"
	taskin "taskdeck/internal/modules/task/port/in"
	taskout "taskdeck/internal/modules/task/port/out"
	"taskdeck/internal/modules/task/service"
	workspacedomain "taskdeck/internal/modules/workspace/domain"
	workspaceout "taskdeck/internal/modules/workspace/port/out"
	"taskdeck/internal/platform/clock"
	apperrors "taskdeck/internal/platform/errors"
)

// TimerDiscarder lets a task delete tear down a focus timer that is
// still bound to the deleted task.
type TimerDiscarder interface {
	DiscardForTask(ctx context.Context, username, taskID string) error
}

// Interactor wraps the task service with snapshot load/save and keeps
// the read-model projection in step with every mutation. The projector
// and reminder store are optional collaborators.
type Interactor struct {
	svc       *service.TaskService
	store     workspaceout.SnapshotStore
	projector taskout.TaskProjector
	reminded  taskout.RemindedStore
	timers    TimerDiscarder
	clock     clock.Clock
	retention time.Duration
}

func NewInteractor(svc *service.TaskService, store workspaceout.SnapshotStore, projector taskout.TaskProjector, reminded taskout.RemindedStore, timers TimerDiscarder, clock clock.Clock, retention time.Duration) *Interactor {
	return &Interactor{
		svc:       svc,
		store:     store,
		projector: projector,
		reminded:  reminded,
		timers:    timers,
		clock:     clock,
		retention: retention,
	}
}

var _ taskin.Usecase = (*Interactor)(nil)

// BindTimers attaches the timer teardown hook after both interactors
// exist; the two depend on each other at the usecase level.
func (i *Interactor) BindTimers(timers TimerDiscarder) {
	i.timers = timers
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.TaskOutput, error) {
	snapshot, err := i.store.Load(ctx, input.Username)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	snapshot, task, err := i.svc.Create(ctx, snapshot, service.CreateParams{
		Title:           input.Title,
		Description:     input.Description,
		GroupID:         input.GroupID,
		Importance:      domain.Importance(input.Importance),
		Kind:            domain.Kind(input.Kind),
		DueAt:           input.DueAt,
		TimerMode:       domain.TimerMode(input.TimerMode),
		DurationMinutes: input.DurationMinutes,
		Repeat:          domain.Repeat(input.Repeat),
		TargetValue:     input.TargetValue,
		TargetUnit:      input.TargetUnit,
		Remind:          input.Remind,
		RemindHour:      input.RemindHour,
	})
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return i.persist(ctx, input.Username, snapshot, task)
}

func (i *Interactor) Edit(ctx context.Context, input dto.EditInput) (dto.TaskOutput, error) {
	snapshot, err := i.store.Load(ctx, input.Username)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	snapshot, task, err := i.svc.Edit(ctx, snapshot, input.TaskID, service.EditParams{
		Title:       input.Title,
		Description: input.Description,
		GroupID:     input.GroupID,
		Importance:  domain.Importance(input.Importance),
		Kind:        domain.Kind(input.Kind),
		DueAt:       input.DueAt,
		ClearDueAt:  input.ClearDueAt,
	})
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return i.persist(ctx, input.Username, snapshot, task)
}

func (i *Interactor) Toggle(ctx context.Context, input dto.ToggleInput) (dto.TaskOutput, error) {
	return i.mutate(ctx, input.Username, input.TaskID, i.svc.Toggle)
}

func (i *Interactor) ResetProgress(ctx context.Context, input dto.ToggleInput) (dto.TaskOutput, error) {
	return i.mutate(ctx, input.Username, input.TaskID, i.svc.ResetProgress)
}

func (i *Interactor) AddProgress(ctx context.Context, input dto.ProgressInput) (dto.TaskOutput, error) {
	snapshot, err := i.store.Load(ctx, input.Username)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	snapshot, task, err := i.svc.AddProgress(ctx, snapshot, input.TaskID, input.Delta, input.Note)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return i.persist(ctx, input.Username, snapshot, task)
}

func (i *Interactor) Move(ctx context.Context, input dto.MoveInput) (dto.TaskOutput, error) {
	snapshot, err := i.store.Load(ctx, input.Username)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	snapshot, task, err := i.svc.Move(ctx, snapshot, input.TaskID, input.GroupID)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return i.persist(ctx, input.Username, snapshot, task)
}

func (i *Interactor) Delete(ctx context.Context, input dto.DeleteInput) error {
	snapshot, err := i.store.Load(ctx, input.Username)
	if err != nil {
		return err
	}
	snapshot, err = i.svc.Delete(ctx, snapshot, input.TaskID)
	if err != nil {
		return err
	}
	if err := i.store.Save(ctx, input.Username, snapshot); err != nil {
		return err
	}
	if i.timers != nil {
		if err := i.timers.DiscardForTask(ctx, input.Username, input.TaskID); err != nil {
			return err
		}
	}
	if i.projector != nil {
		if err := i.projector.Delete(ctx, input.Username, input.TaskID); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interactor) Restore(ctx context.Context, input dto.RestoreInput) (dto.TaskOutput, error) {
	snapshot, err := i.store.Load(ctx, input.Username)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	snapshot, task, err := i.svc.Restore(ctx, snapshot, input.TrashUniqueID)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return i.persist(ctx, input.Username, snapshot, task)
}

func (i *Interactor) PurgeTrash(ctx context.Context, username string) (int, error) {
	snapshot, err := i.store.Load(ctx, username)
	if err != nil {
		return 0, err
	}
	snapshot, purged := i.svc.PurgeExpired(ctx, snapshot, i.retention)
	if purged == 0 {
		return 0, nil
	}
	if err := i.store.Save(ctx, username, snapshot); err != nil {
		return 0, err
	}
	return purged, nil
}

func (i *Interactor) Get(ctx context.Context, username, taskID string) (dto.TaskOutput, error) {
	snapshot, err := i.store.Load(ctx, username)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	if idx := snapshot.FindTask(taskID); idx >= 0 {
		return toOutput(snapshot.Tasks[idx]), nil
	}
	return dto.TaskOutput{}, apperrors.ErrNotFound
}

func (i *Interactor) List(ctx context.Context, username string) ([]dto.TaskOutput, error) {
	snapshot, err := i.store.Load(ctx, username)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskOutput, 0, len(snapshot.Tasks))
	for _, t := range snapshot.Tasks {
		out = append(out, toOutput(t))
	}
	return out, nil
}

func (i *Interactor) ListTrash(ctx context.Context, username string) ([]dto.TrashItemOutput, error) {
	snapshot, err := i.store.Load(ctx, username)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TrashItemOutput, 0, len(snapshot.Trash))
	for _, item := range snapshot.Trash {
		out = append(out, dto.TrashItemOutput{
			TaskOutput:    toOutput(item.Task),
			DeletedAt:     item.DeletedAt,
			TrashUniqueID: item.TrashUniqueID,
		})
	}
	return out, nil
}

func (i *Interactor) CommitFocus(ctx context.Context, input dto.CommitFocusInput) (dto.TaskOutput, error) {
	snapshot, err := i.store.Load(ctx, input.Username)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	snapshot, task, err := i.svc.CommitFocus(ctx, snapshot, input.TaskID, input.Minutes, input.Note, input.Complete)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return i.persist(ctx, input.Username, snapshot, task)
}

func (i *Interactor) CancelFocus(ctx context.Context, input dto.CancelFocusInput) (dto.TaskOutput, error) {
	snapshot, err := i.store.Load(ctx, input.Username)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	snapshot, task, err := i.svc.CancelFocus(ctx, snapshot, input.TaskID, input.Minutes, input.Reason)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return i.persist(ctx, input.Username, snapshot, task)
}

// CheckReminders returns tasks due for a reminder this hour that have
// not been surfaced yet today, marking each as reminded.
func (i *Interactor) CheckReminders(ctx context.Context, username string) ([]dto.TaskOutput, error) {
	snapshot, err := i.store.Load(ctx, username)
	if err != nil {
		return nil, err
	}
	now := i.clock.Now()
	var out []dto.TaskOutput
	for _, task := range i.svc.Reminders(snapshot, now) {
		if i.reminded != nil {
			seen, err := i.reminded.Reminded(ctx, username, now, task.ID)
			if err != nil {
				return nil, err
			}
			if seen {
				continue
			}
			if err := i.reminded.MarkReminded(ctx, username, now, task.ID); err != nil {
				return nil, err
			}
		}
		out = append(out, toOutput(task))
	}
	return out, nil
}

// Reindex rebuilds the read model from the snapshot.
func (i *Interactor) Reindex(ctx context.Context, username string) (int, error) {
	snapshot, err := i.store.Load(ctx, username)
	if err != nil {
		return 0, err
	}
	if i.projector == nil {
		return 0, nil
	}
	if err := i.projector.Reset(ctx, username, snapshot.Tasks); err != nil {
		return 0, err
	}
	return len(snapshot.Tasks), nil
}

func (i *Interactor) mutate(ctx context.Context, username, taskID string, op func(context.Context, workspacedomain.Snapshot, string) (workspacedomain.Snapshot, domain.Task, error)) (dto.TaskOutput, error) {
	snapshot, err := i.store.Load(ctx, username)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	snapshot, task, err := op(ctx, snapshot, taskID)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return i.persist(ctx, username, snapshot, task)
}

func (i *Interactor) persist(ctx context.Context, username string, snapshot workspacedomain.Snapshot, task domain.Task) (dto.TaskOutput, error) {
	if err := i.store.Save(ctx, username, snapshot); err != nil {
		return dto.TaskOutput{}, err
	}
	if i.projector != nil {
		if err := i.projector.Upsert(ctx, username, task); err != nil {
			return dto.TaskOutput{}, err
		}
	}
	return toOutput(task), nil
}

func toOutput(t domain.Task) dto.TaskOutput {
	return dto.TaskOutput{
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
	}
}
