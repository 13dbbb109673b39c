package usecase

import (
	"context"

	taskdomain "taskdeck/internal/modules/task/domain"
	taskdto "taskdeck/internal/modules/task/dto"
	taskin "taskdeck/internal/modules/task/port/in"
	"taskdeck/internal/modules/timer/domain"
	"taskdeck/internal/modules/timer/dto"
	timerin "taskdeck/internal/modules/timer/port/in"
	timerout "taskdeck/internal/modules/timer/port/out"
	"taskdeck/internal/platform/clock"
	apperrors "taskdeck/internal/platform/errors"
)

// Interactor runs the focus timer state machine and commits finished
// sessions back into the owning task's cumulative totals.
type Interactor struct {
	activeStore    timerout.ActiveTimerStore
	tasks          taskin.Usecase
	clock          clock.Clock
	defaultMinutes int
}

func NewInteractor(activeStore timerout.ActiveTimerStore, tasks taskin.Usecase, clock clock.Clock, defaultMinutes int) timerin.Usecase {
	return &Interactor{activeStore: activeStore, tasks: tasks, clock: clock, defaultMinutes: defaultMinutes}
}

// Open configures a timer for a task. Only one timer may exist at a
// time.
func (i *Interactor) Open(ctx context.Context, input dto.OpenInput) (dto.StatusOutput, error) {
	if _, err := i.activeStore.LoadActive(ctx, input.Username); err == nil {
		return dto.StatusOutput{}, apperrors.ErrActiveTimerExists
	} else if err != apperrors.ErrNoActiveTimer {
		return dto.StatusOutput{}, err
	}

	task, err := i.tasks.Get(ctx, input.Username, input.TaskID)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	timer := domain.New(task.ID, taskdomain.TimerMode(task.TimerMode), task.DurationMinutes, i.defaultMinutes)
	if err := i.activeStore.SaveActive(ctx, input.Username, timer); err != nil {
		return dto.StatusOutput{}, err
	}
	return i.status(timer, task.Title), nil
}

func (i *Interactor) Start(ctx context.Context, username string) (dto.StatusOutput, error) {
	return i.transition(ctx, username, func(t domain.Timer) domain.Timer { return t.Start(i.clock.Now()) })
}

func (i *Interactor) Pause(ctx context.Context, username string) (dto.StatusOutput, error) {
	return i.transition(ctx, username, func(t domain.Timer) domain.Timer { return t.Pause(i.clock.Now()) })
}

func (i *Interactor) Status(ctx context.Context, username string) (dto.StatusOutput, error) {
	timer, err := i.activeStore.LoadActive(ctx, username)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return i.status(timer, ""), nil
}

// Poll advances the machine one tick. A countdown that has run out
// auto-completes: elapsed minutes are committed, the task is stamped
// done and the timer is cleared.
func (i *Interactor) Poll(ctx context.Context, username string) (dto.StatusOutput, *dto.CommitOutput, error) {
	timer, err := i.activeStore.LoadActive(ctx, username)
	if err != nil {
		return dto.StatusOutput{}, nil, err
	}
	now := i.clock.Now()
	if !timer.Running || !timer.Finished(now) {
		return i.status(timer, ""), nil, nil
	}

	minutes := timer.CommitMinutes(now)
	if minutes == 0 {
		minutes = timer.TargetMinutes()
	}
	if _, err := i.tasks.CommitFocus(ctx, taskdto.CommitFocusInput{
		Username: username,
		TaskID:   timer.TaskID,
		Minutes:  minutes,
		Note:     taskdomain.TimerCompleteNote,
		Complete: true,
	}); err != nil {
		return dto.StatusOutput{}, nil, err
	}
	if err := i.activeStore.ClearActive(ctx, username); err != nil {
		return dto.StatusOutput{}, nil, err
	}
	commit := &dto.CommitOutput{TaskID: timer.TaskID, CommittedMinutes: minutes, Completed: true}
	return i.status(timer, ""), commit, nil
}

// Complete finishes the session by hand regardless of remaining time.
func (i *Interactor) Complete(ctx context.Context, username string) (dto.CommitOutput, error) {
	timer, err := i.activeStore.LoadActive(ctx, username)
	if err != nil {
		return dto.CommitOutput{}, err
	}
	minutes := timer.CommitMinutes(i.clock.Now())
	if _, err := i.tasks.CommitFocus(ctx, taskdto.CommitFocusInput{
		Username: username,
		TaskID:   timer.TaskID,
		Minutes:  minutes,
		Note:     taskdomain.ManualCompleteNote,
		Complete: true,
	}); err != nil {
		return dto.CommitOutput{}, err
	}
	if err := i.activeStore.ClearActive(ctx, username); err != nil {
		return dto.CommitOutput{}, err
	}
	return dto.CommitOutput{TaskID: timer.TaskID, CommittedMinutes: minutes, Completed: true}, nil
}

// Cancel ends the session. With a reason the elapsed minutes are
// committed and the reason recorded for statistics; without one the
// session is discarded. Task status never changes either way.
func (i *Interactor) Cancel(ctx context.Context, input dto.CancelInput) (*dto.CommitOutput, error) {
	timer, err := i.activeStore.LoadActive(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	var commit *dto.CommitOutput
	if input.Reason != "" {
		minutes := timer.CommitMinutes(i.clock.Now())
		if _, err := i.tasks.CancelFocus(ctx, taskdto.CancelFocusInput{
			Username: input.Username,
			TaskID:   timer.TaskID,
			Minutes:  minutes,
			Reason:   input.Reason,
		}); err != nil {
			return nil, err
		}
		commit = &dto.CommitOutput{TaskID: timer.TaskID, CommittedMinutes: minutes}
	}
	if err := i.activeStore.ClearActive(ctx, input.Username); err != nil {
		return nil, err
	}
	return commit, nil
}

// Dismiss closes the timer without committing anything.
func (i *Interactor) Dismiss(ctx context.Context, username string) error {
	if _, err := i.activeStore.LoadActive(ctx, username); err != nil {
		if err == apperrors.ErrNoActiveTimer {
			return nil
		}
		return err
	}
	return i.activeStore.ClearActive(ctx, username)
}

// DiscardForTask tears down the timer when its task is deleted.
func (i *Interactor) DiscardForTask(ctx context.Context, username, taskID string) error {
	timer, err := i.activeStore.LoadActive(ctx, username)
	if err != nil {
		if err == apperrors.ErrNoActiveTimer {
			return nil
		}
		return err
	}
	if timer.TaskID != taskID {
		return nil
	}
	return i.activeStore.ClearActive(ctx, username)
}

func (i *Interactor) transition(ctx context.Context, username string, fn func(domain.Timer) domain.Timer) (dto.StatusOutput, error) {
	timer, err := i.activeStore.LoadActive(ctx, username)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	timer = fn(timer)
	if err := i.activeStore.SaveActive(ctx, username, timer); err != nil {
		return dto.StatusOutput{}, err
	}
	return i.status(timer, ""), nil
}

func (i *Interactor) status(timer domain.Timer, title string) dto.StatusOutput {
	now := i.clock.Now()
	return dto.StatusOutput{
		TaskID:           timer.TaskID,
		TaskTitle:        title,
		Mode:             string(timer.Mode),
		Running:          timer.Running,
		ElapsedSeconds:   timer.ElapsedSeconds(now),
		RemainingSeconds: timer.RemainingSeconds(now),
		TargetSeconds:    timer.TotalTargetSeconds,
		Finished:         timer.Finished(now),
	}
}
