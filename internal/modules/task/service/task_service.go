package service

import (
	"context"
	"strings"
	"time"

	groupdomain "taskdeck/internal/modules/group/domain"
	"taskdeck/internal/modules/task/domain"
	workspacedomain "taskdeck/internal/modules/workspace/domain"
	"taskdeck/internal/platform/clock"
	apperrors "taskdeck/internal/platform/errors"
	"taskdeck/internal/platform/id"
)

type CreateParams struct {
	Title           string
	Description     string
	GroupID         string
	Importance      domain.Importance
	Kind            domain.Kind
	DueAt           *time.Time
	TimerMode       domain.TimerMode
	DurationMinutes int
	Repeat          domain.Repeat
	TargetValue     float64
	TargetUnit      string
	Remind          bool
	RemindHour      int
}

type EditParams struct {
	Title       string
	Description string
	GroupID     string
	Importance  domain.Importance
	Kind        domain.Kind
	DueAt       *time.Time
	ClearDueAt  bool
}

// TaskService applies task mutations to a workspace snapshot, one
// atomic transformation per operation.
type TaskService struct {
	clock clock.Clock
	idGen id.Generator
}

func NewTaskService(clock clock.Clock, idGen id.Generator) *TaskService {
	return &TaskService{clock: clock, idGen: idGen}
}

func (s *TaskService) Create(_ context.Context, snapshot workspacedomain.Snapshot, p CreateParams) (workspacedomain.Snapshot, domain.Task, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return snapshot, domain.Task{}, apperrors.ErrInvalidInput
	}
	if !p.Importance.Valid() {
		p.Importance = domain.ImportanceNormal
	}
	if !p.Kind.Valid() {
		p.Kind = domain.KindTask
	}
	groupID := p.GroupID
	if _, ok := groupdomain.NewTree(snapshot.Groups).Find(groupID); !ok {
		groupID = groupdomain.InboxID
	}
	if p.Kind == domain.KindFocus {
		if p.TimerMode != domain.ModeCountdown && p.TimerMode != domain.ModeCountup {
			p.TimerMode = domain.ModeCountdown
		}
		if p.DurationMinutes <= 0 {
			p.DurationMinutes = 25
		}
	}
	if p.Remind && (p.RemindHour < 0 || p.RemindHour > 23) {
		p.RemindHour = 9
	}

	task := domain.Task{
		ID:              s.idGen.New(),
		Title:           title,
		Description:     p.Description,
		GroupID:         groupID,
		Importance:      p.Importance,
		Kind:            p.Kind,
		DueAt:           p.DueAt,
		Status:          domain.StatusTodo,
		CreatedAt:       s.clock.Now(),
		TimerMode:       p.TimerMode,
		DurationMinutes: p.DurationMinutes,
		Repeat:          p.Repeat,
		TargetValue:     p.TargetValue,
		TargetUnit:      p.TargetUnit,
		Remind:          p.Remind,
		RemindHour:      p.RemindHour,
	}
	snapshot.Tasks = append(snapshot.Tasks, task)
	return snapshot, task, nil
}

func (s *TaskService) Edit(_ context.Context, snapshot workspacedomain.Snapshot, taskID string, p EditParams) (workspacedomain.Snapshot, domain.Task, error) {
	idx := snapshot.FindTask(taskID)
	if idx < 0 {
		return snapshot, domain.Task{}, apperrors.ErrNotFound
	}
	task := snapshot.Tasks[idx]
	if p.Title != "" {
		title := strings.TrimSpace(p.Title)
		if title == "" {
			return snapshot, domain.Task{}, apperrors.ErrInvalidInput
		}
		task.Title = title
	}
	if p.Description != "" {
		task.Description = p.Description
	}
	if p.GroupID != "" {
		if _, ok := groupdomain.NewTree(snapshot.Groups).Find(p.GroupID); ok {
			task.GroupID = p.GroupID
		}
	}
	if p.Importance.Valid() {
		task.Importance = p.Importance
	}
	if p.Kind.Valid() {
		task.Kind = p.Kind
	}
	if p.ClearDueAt {
		task.DueAt = nil
	} else if p.DueAt != nil {
		task.DueAt = p.DueAt
	}
	snapshot.Tasks[idx] = task
	return snapshot, task, nil
}

func (s *TaskService) Toggle(_ context.Context, snapshot workspacedomain.Snapshot, taskID string) (workspacedomain.Snapshot, domain.Task, error) {
	return s.apply(snapshot, taskID, func(t domain.Task) domain.Task { return t.Toggle(s.clock.Now()) })
}

func (s *TaskService) AddProgress(_ context.Context, snapshot workspacedomain.Snapshot, taskID string, delta float64, note string) (workspacedomain.Snapshot, domain.Task, error) {
	return s.apply(snapshot, taskID, func(t domain.Task) domain.Task { return t.AddProgress(delta, note, s.clock.Now()) })
}

func (s *TaskService) ResetProgress(_ context.Context, snapshot workspacedomain.Snapshot, taskID string) (workspacedomain.Snapshot, domain.Task, error) {
	return s.apply(snapshot, taskID, func(t domain.Task) domain.Task { return t.ResetProgress(s.clock.Now()) })
}

func (s *TaskService) Move(_ context.Context, snapshot workspacedomain.Snapshot, taskID, groupID string) (workspacedomain.Snapshot, domain.Task, error) {
	if _, ok := groupdomain.NewTree(snapshot.Groups).Find(groupID); !ok {
		return snapshot, domain.Task{}, apperrors.ErrNotFound
	}
	return s.apply(snapshot, taskID, func(t domain.Task) domain.Task {
		t.GroupID = groupID
		return t
	})
}

func (s *TaskService) CommitFocus(_ context.Context, snapshot workspacedomain.Snapshot, taskID string, minutes int, note string, complete bool) (workspacedomain.Snapshot, domain.Task, error) {
	return s.apply(snapshot, taskID, func(t domain.Task) domain.Task {
		return t.CommitFocus(minutes, note, s.clock.Now(), complete)
	})
}

func (s *TaskService) CancelFocus(_ context.Context, snapshot workspacedomain.Snapshot, taskID string, minutes int, reason string) (workspacedomain.Snapshot, domain.Task, error) {
	return s.apply(snapshot, taskID, func(t domain.Task) domain.Task {
		return t.RecordCancel(minutes, reason, s.clock.Now())
	})
}

// Delete moves a task to the trash. A task id already present in the
// trash is not copied a second time.
func (s *TaskService) Delete(_ context.Context, snapshot workspacedomain.Snapshot, taskID string) (workspacedomain.Snapshot, error) {
	idx := snapshot.FindTask(taskID)
	if idx < 0 {
		return snapshot, apperrors.ErrNotFound
	}
	task := snapshot.Tasks[idx]
	if !snapshot.TrashContains(taskID) {
		snapshot.Trash = append(snapshot.Trash, task.ToTrash(s.idGen.New(), s.clock.Now()))
	}
	snapshot.Tasks = append(snapshot.Tasks[:idx:idx], snapshot.Tasks[idx+1:]...)
	return snapshot, nil
}

// Restore brings a trash item back to the live list. Its group may
// have vanished in the meantime, in which case it lands in the inbox.
func (s *TaskService) Restore(_ context.Context, snapshot workspacedomain.Snapshot, trashUniqueID string) (workspacedomain.Snapshot, domain.Task, error) {
	for i, item := range snapshot.Trash {
		if item.TrashUniqueID != trashUniqueID {
			continue
		}
		task := item.Task
		if _, ok := groupdomain.NewTree(snapshot.Groups).Find(task.GroupID); !ok {
			task.GroupID = groupdomain.InboxID
		}
		if snapshot.FindTask(task.ID) >= 0 {
			task.ID = s.idGen.New()
		}
		snapshot.Trash = append(snapshot.Trash[:i:i], snapshot.Trash[i+1:]...)
		snapshot.Tasks = append(snapshot.Tasks, task)
		return snapshot, task, nil
	}
	return snapshot, domain.Task{}, apperrors.ErrNotFound
}

// PurgeExpired drops trash items past the retention window.
func (s *TaskService) PurgeExpired(_ context.Context, snapshot workspacedomain.Snapshot, retention time.Duration) (workspacedomain.Snapshot, int) {
	now := s.clock.Now()
	kept := snapshot.Trash[:0:0]
	purged := 0
	for _, item := range snapshot.Trash {
		if item.Expired(now, retention) {
			purged++
			continue
		}
		kept = append(kept, item)
	}
	snapshot.Trash = kept
	return snapshot, purged
}

// Reminders returns habit and goal tasks flagged for a reminder whose
// hour matches the current hour. Calendar-day dedupe is the caller's
// concern.
func (s *TaskService) Reminders(snapshot workspacedomain.Snapshot, now time.Time) []domain.Task {
	var due []domain.Task
	for _, t := range snapshot.Tasks {
		if t.Kind != domain.KindHabit && t.Kind != domain.KindGoal {
			continue
		}
		if t.Remind && t.RemindHour == now.Hour() {
			due = append(due, t)
		}
	}
	return due
}

func (s *TaskService) apply(snapshot workspacedomain.Snapshot, taskID string, fn func(domain.Task) domain.Task) (workspacedomain.Snapshot, domain.Task, error) {
	idx := snapshot.FindTask(taskID)
	if idx < 0 {
		return snapshot, domain.Task{}, apperrors.ErrNotFound
	}
	snapshot.Tasks[idx] = fn(snapshot.Tasks[idx])
	return snapshot, snapshot.Tasks[idx], nil
}
