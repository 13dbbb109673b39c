package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	groupdto "taskdeck/internal/modules/group/dto"
	taskdto "taskdeck/internal/modules/task/dto"
	timerdto "taskdeck/internal/modules/timer/dto"
	viewdto "taskdeck/internal/modules/view/dto"
	apperrors "taskdeck/internal/platform/errors"
)

type fakeViewPort struct{}

func (fakeViewPort) Groups(context.Context, string) ([]viewdto.GroupSummary, error) {
	return nil, nil
}

func (fakeViewPort) Destinations(context.Context, string) ([]viewdto.DestinationCount, error) {
	return nil, nil
}

func (fakeViewPort) List(context.Context, string, string) (viewdto.ListOutput, error) {
	return viewdto.ListOutput{}, nil
}

func (fakeViewPort) Search(context.Context, string, string, bool, bool) (viewdto.ListOutput, error) {
	return viewdto.ListOutput{}, nil
}

func (fakeViewPort) Stats(context.Context, string, time.Time) (viewdto.StatsOutput, error) {
	return viewdto.StatsOutput{}, nil
}

type fakeGroupPort struct{}

func (fakeGroupPort) Create(context.Context, string, string, string, string) (groupdto.GroupOutput, error) {
	return groupdto.GroupOutput{}, nil
}

func (fakeGroupPort) Delete(context.Context, string, string, string) (groupdto.DeleteOutput, error) {
	return groupdto.DeleteOutput{}, nil
}

type fakeTaskPort struct {
	due   []taskdto.TaskOutput
	scans int
}

func (f *fakeTaskPort) Create(context.Context, taskdto.CreateInput) (taskdto.TaskOutput, error) {
	return taskdto.TaskOutput{}, nil
}

func (f *fakeTaskPort) Toggle(context.Context, string, string) (taskdto.TaskOutput, error) {
	return taskdto.TaskOutput{}, nil
}

func (f *fakeTaskPort) AddProgress(context.Context, string, string, float64, string) (taskdto.TaskOutput, error) {
	return taskdto.TaskOutput{}, nil
}

func (f *fakeTaskPort) Move(context.Context, string, string, string) (taskdto.TaskOutput, error) {
	return taskdto.TaskOutput{}, nil
}

func (f *fakeTaskPort) Delete(context.Context, string, string) error { return nil }

func (f *fakeTaskPort) Restore(context.Context, string, string) (taskdto.TaskOutput, error) {
	return taskdto.TaskOutput{}, nil
}

func (f *fakeTaskPort) CheckReminders(context.Context, string) ([]taskdto.TaskOutput, error) {
	f.scans++
	return f.due, nil
}

type fakeTimerPort struct{}

func (fakeTimerPort) Open(context.Context, string, string) (timerdto.StatusOutput, error) {
	return timerdto.StatusOutput{}, nil
}

func (fakeTimerPort) Start(context.Context, string) (timerdto.StatusOutput, error) {
	return timerdto.StatusOutput{}, nil
}

func (fakeTimerPort) Pause(context.Context, string) (timerdto.StatusOutput, error) {
	return timerdto.StatusOutput{}, nil
}

func (fakeTimerPort) Poll(context.Context, string) (timerdto.StatusOutput, *timerdto.CommitOutput, error) {
	return timerdto.StatusOutput{}, nil, apperrors.ErrNoActiveTimer
}

func (fakeTimerPort) Complete(context.Context, string) (timerdto.CommitOutput, error) {
	return timerdto.CommitOutput{}, nil
}

func (fakeTimerPort) Cancel(context.Context, string, string) (*timerdto.CommitOutput, error) {
	return nil, nil
}

func (fakeTimerPort) Dismiss(context.Context, string) error { return nil }

func TestReminderScanSurfacesDueTasks(t *testing.T) {
	t.Parallel()

	tasks := &fakeTaskPort{due: []taskdto.TaskOutput{{ID: "h1", Title: "喝水"}}}
	m := NewModel("ada", fakeViewPort{}, fakeGroupPort{}, tasks, fakeTimerPort{}, time.Millisecond)

	msg := m.checkRemindersCmd()()
	due, ok := msg.(remindersDueMsg)
	if !ok {
		t.Fatalf("scan msg = %T, want remindersDueMsg", msg)
	}
	if len(due.tasks) != 1 || tasks.scans != 1 {
		t.Fatalf("scan hit the port %d times with %d tasks, want 1 and 1", tasks.scans, len(due.tasks))
	}

	next, _ := m.Update(due)
	if status := next.(Model).status; !strings.Contains(status, "喝水") {
		t.Errorf("status = %q, want the due task surfaced", status)
	}
}

func TestReminderTickRescansAndReschedules(t *testing.T) {
	t.Parallel()

	tasks := &fakeTaskPort{}
	m := NewModel("ada", fakeViewPort{}, fakeGroupPort{}, tasks, fakeTimerPort{}, time.Millisecond)

	_, cmd := m.Update(reminderTickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("tick returned no command")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("tick command = %T, want a batch of scan and next tick", cmd())
	}

	var scanned, rescheduled bool
	for _, sub := range batch {
		switch sub().(type) {
		case remindersDueMsg:
			scanned = true
		case reminderTickMsg:
			rescheduled = true
		}
	}
	if !scanned || !rescheduled {
		t.Errorf("batch ran scan=%v reschedule=%v, want both", scanned, rescheduled)
	}
}
