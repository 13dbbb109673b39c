package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	groupdomain "taskdeck/internal/modules/group/domain"
	"taskdeck/internal/modules/task/domain"
	"taskdeck/internal/modules/task/dto"
	"taskdeck/internal/modules/task/service"
	workspacedomain "taskdeck/internal/modules/workspace/domain"
	apperrors "taskdeck/internal/platform/errors"
)

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

type seqIDGen struct{ n int }

func (g *seqIDGen) New() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type memorySnapshotStore struct {
	snapshots map[string]workspacedomain.Snapshot
}

func newMemorySnapshotStore(initial workspacedomain.Snapshot) *memorySnapshotStore {
	return &memorySnapshotStore{snapshots: map[string]workspacedomain.Snapshot{"ada": initial}}
}

func (s *memorySnapshotStore) Load(_ context.Context, username string) (workspacedomain.Snapshot, error) {
	snapshot, ok := s.snapshots[username]
	if !ok {
		return workspacedomain.DefaultSnapshot(), nil
	}
	return snapshot, nil
}

func (s *memorySnapshotStore) Save(_ context.Context, username string, snapshot workspacedomain.Snapshot) error {
	s.snapshots[username] = snapshot
	return nil
}

type recordingDiscarder struct{ discarded []string }

func (d *recordingDiscarder) DiscardForTask(_ context.Context, _, taskID string) error {
	d.discarded = append(d.discarded, taskID)
	return nil
}

var baseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTaskInteractor(store *memorySnapshotStore, timers TimerDiscarder) *Interactor {
	clk := fakeClock{now: baseTime}
	svc := service.NewTaskService(clk, &seqIDGen{})
	return NewInteractor(svc, store, nil, nil, timers, clk, 7*24*time.Hour)
}

func goalTask(id string, progress, target float64) domain.Task {
	return domain.Task{
		ID:            id,
		Title:         "读书",
		GroupID:       groupdomain.InboxID,
		Importance:    domain.ImportanceNormal,
		Kind:          domain.KindGoal,
		Status:        domain.StatusTodo,
		CreatedAt:     baseTime.Add(-24 * time.Hour),
		TargetValue:   target,
		ProgressValue: progress,
	}
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	t.Parallel()

	store := newMemorySnapshotStore(workspacedomain.DefaultSnapshot())
	uc := newTaskInteractor(store, nil)

	_, err := uc.Create(context.Background(), dto.CreateInput{Username: "ada", Title: "   "})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestCreateFallsBackToInboxForUnknownGroup(t *testing.T) {
	t.Parallel()

	store := newMemorySnapshotStore(workspacedomain.DefaultSnapshot())
	uc := newTaskInteractor(store, nil)

	out, err := uc.Create(context.Background(), dto.CreateInput{Username: "ada", Title: "买菜", GroupID: "vanished"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if out.GroupID != groupdomain.InboxID {
		t.Fatalf("groupId = %q, want inbox", out.GroupID)
	}
	if out.Status != string(domain.StatusTodo) {
		t.Errorf("status = %q, want todo", out.Status)
	}
}

func TestGoalToggleReachesTarget(t *testing.T) {
	t.Parallel()

	snapshot := workspacedomain.DefaultSnapshot()
	snapshot.Tasks = []domain.Task{goalTask("g1", 4, 5), goalTask("g2", 3, 5)}
	store := newMemorySnapshotStore(snapshot)
	uc := newTaskInteractor(store, nil)

	out, err := uc.Toggle(context.Background(), dto.ToggleInput{Username: "ada", TaskID: "g1"})
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if out.Status != string(domain.StatusDone) {
		t.Errorf("g1 status = %q, want done at target", out.Status)
	}
	if out.CompletedAt == nil || !out.CompletedAt.Equal(baseTime) {
		t.Errorf("g1 completedAt = %v, want %v", out.CompletedAt, baseTime)
	}

	out, err = uc.Toggle(context.Background(), dto.ToggleInput{Username: "ada", TaskID: "g2"})
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if out.Status != string(domain.StatusTodo) {
		t.Errorf("g2 status = %q, want still todo below target", out.Status)
	}
	if out.ProgressValue != 4 {
		t.Errorf("g2 progress = %v, want 4", out.ProgressValue)
	}
}

func TestToggleFlipsPlainTask(t *testing.T) {
	t.Parallel()

	snapshot := workspacedomain.DefaultSnapshot()
	task := goalTask("t1", 0, 0)
	task.Kind = domain.KindTask
	snapshot.Tasks = []domain.Task{task}
	store := newMemorySnapshotStore(snapshot)
	uc := newTaskInteractor(store, nil)

	out, err := uc.Toggle(context.Background(), dto.ToggleInput{Username: "ada", TaskID: "t1"})
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if out.Status != string(domain.StatusDone) || out.CompletedAt == nil {
		t.Fatalf("after first toggle: status=%q completedAt=%v", out.Status, out.CompletedAt)
	}

	out, err = uc.Toggle(context.Background(), dto.ToggleInput{Username: "ada", TaskID: "t1"})
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if out.Status != string(domain.StatusTodo) || out.CompletedAt != nil {
		t.Fatalf("after second toggle: status=%q completedAt=%v", out.Status, out.CompletedAt)
	}
}

func TestDeleteMovesToTrashOnceAndDiscardsTimer(t *testing.T) {
	t.Parallel()

	snapshot := workspacedomain.DefaultSnapshot()
	snapshot.Tasks = []domain.Task{goalTask("t1", 0, 0)}
	store := newMemorySnapshotStore(snapshot)
	timers := &recordingDiscarder{}
	uc := newTaskInteractor(store, timers)

	if err := uc.Delete(context.Background(), dto.DeleteInput{Username: "ada", TaskID: "t1"}); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	saved := store.snapshots["ada"]
	if len(saved.Tasks) != 0 {
		t.Fatalf("tasks = %d, want 0", len(saved.Tasks))
	}
	if len(saved.Trash) != 1 || saved.Trash[0].TrashUniqueID == "" {
		t.Fatalf("trash = %+v, want one item with unique id", saved.Trash)
	}
	if len(timers.discarded) != 1 || timers.discarded[0] != "t1" {
		t.Fatalf("discarded timers = %v, want [t1]", timers.discarded)
	}

	err := uc.Delete(context.Background(), dto.DeleteInput{Username: "ada", TaskID: "t1"})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
	if len(store.snapshots["ada"].Trash) != 1 {
		t.Error("task duplicated in trash")
	}
}

func TestRestoreFallsBackToInbox(t *testing.T) {
	t.Parallel()

	snapshot := workspacedomain.DefaultSnapshot()
	task := goalTask("t1", 0, 0)
	task.GroupID = "vanished"
	snapshot.Trash = []domain.TrashItem{task.ToTrash("u-1", baseTime.Add(-time.Hour))}
	store := newMemorySnapshotStore(snapshot)
	uc := newTaskInteractor(store, nil)

	out, err := uc.Restore(context.Background(), dto.RestoreInput{Username: "ada", TrashUniqueID: "u-1"})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if out.GroupID != groupdomain.InboxID {
		t.Errorf("restored groupId = %q, want inbox", out.GroupID)
	}
	saved := store.snapshots["ada"]
	if len(saved.Trash) != 0 || len(saved.Tasks) != 1 {
		t.Fatalf("after restore: %d trash, %d tasks", len(saved.Trash), len(saved.Tasks))
	}
}

func TestPurgeTrashHonorsRetention(t *testing.T) {
	t.Parallel()

	snapshot := workspacedomain.DefaultSnapshot()
	old := goalTask("t1", 0, 0).ToTrash("u-1", baseTime.Add(-8*24*time.Hour))
	recent := goalTask("t2", 0, 0).ToTrash("u-2", baseTime.Add(-24*time.Hour))
	snapshot.Trash = []domain.TrashItem{old, recent}
	store := newMemorySnapshotStore(snapshot)
	uc := newTaskInteractor(store, nil)

	purged, err := uc.PurgeTrash(context.Background(), "ada")
	if err != nil {
		t.Fatalf("PurgeTrash: %v", err)
	}
	if purged != 1 {
		t.Fatalf("purged = %d, want 1", purged)
	}
	saved := store.snapshots["ada"]
	if len(saved.Trash) != 1 || saved.Trash[0].ID != "t2" {
		t.Fatalf("surviving trash = %+v, want only t2", saved.Trash)
	}
}

func TestCommitFocusAccumulates(t *testing.T) {
	t.Parallel()

	snapshot := workspacedomain.DefaultSnapshot()
	task := goalTask("f1", 0, 0)
	task.Kind = domain.KindFocus
	task.TotalFocusMinutes = 10
	snapshot.Tasks = []domain.Task{task}
	store := newMemorySnapshotStore(snapshot)
	uc := newTaskInteractor(store, nil)

	out, err := uc.CommitFocus(context.Background(), dto.CommitFocusInput{Username: "ada", TaskID: "f1", Minutes: 3, Note: "手动完成", Complete: true})
	if err != nil {
		t.Fatalf("CommitFocus: %v", err)
	}
	if out.TotalFocusMinutes != 13 {
		t.Errorf("total = %d, want 13", out.TotalFocusMinutes)
	}
	if out.ActualFocusMinutes != 3 {
		t.Errorf("actual = %d, want 3", out.ActualFocusMinutes)
	}
	if out.Status != string(domain.StatusDone) {
		t.Errorf("status = %q, want done", out.Status)
	}
}

func TestCancelFocusKeepsStatus(t *testing.T) {
	t.Parallel()

	snapshot := workspacedomain.DefaultSnapshot()
	task := goalTask("f1", 0, 0)
	task.Kind = domain.KindFocus
	snapshot.Tasks = []domain.Task{task}
	store := newMemorySnapshotStore(snapshot)
	uc := newTaskInteractor(store, nil)

	out, err := uc.CancelFocus(context.Background(), dto.CancelFocusInput{Username: "ada", TaskID: "f1", Minutes: 2, Reason: "被打断"})
	if err != nil {
		t.Fatalf("CancelFocus: %v", err)
	}
	if out.Status != string(domain.StatusTodo) {
		t.Errorf("status = %q, cancel must not complete the task", out.Status)
	}
	if out.TotalFocusMinutes != 2 {
		t.Errorf("total = %d, want 2", out.TotalFocusMinutes)
	}
	if len(out.CancelReasons) != 1 || out.CancelReasons[0] != "被打断" {
		t.Errorf("cancelReasons = %v", out.CancelReasons)
	}
}

type memoryRemindedStore struct{ marked map[string]bool }

func (s *memoryRemindedStore) Reminded(_ context.Context, _ string, day time.Time, taskID string) (bool, error) {
	return s.marked[day.Format("2006-01-02")+taskID], nil
}

func (s *memoryRemindedStore) MarkReminded(_ context.Context, _ string, day time.Time, taskID string) error {
	s.marked[day.Format("2006-01-02")+taskID] = true
	return nil
}

func TestCheckRemindersDedupesWithinDay(t *testing.T) {
	t.Parallel()

	snapshot := workspacedomain.DefaultSnapshot()
	habit := goalTask("h1", 0, 0)
	habit.Kind = domain.KindHabit
	habit.Remind = true
	habit.RemindHour = baseTime.Hour()
	snapshot.Tasks = []domain.Task{habit}
	store := newMemorySnapshotStore(snapshot)

	clk := fakeClock{now: baseTime}
	svc := service.NewTaskService(clk, &seqIDGen{})
	uc := NewInteractor(svc, store, nil, &memoryRemindedStore{marked: map[string]bool{}}, nil, clk, 7*24*time.Hour)

	first, err := uc.CheckReminders(context.Background(), "ada")
	if err != nil {
		t.Fatalf("CheckReminders: %v", err)
	}
	if len(first) != 1 || first[0].ID != "h1" {
		t.Fatalf("first pass = %+v, want h1", first)
	}
	second, err := uc.CheckReminders(context.Background(), "ada")
	if err != nil {
		t.Fatalf("CheckReminders: %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("second pass = %+v, want empty", second)
	}
}
