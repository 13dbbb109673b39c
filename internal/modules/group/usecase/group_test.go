package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"taskdeck/internal/modules/group/domain"
	"taskdeck/internal/modules/group/dto"
	"taskdeck/internal/modules/group/service"
	taskdomain "taskdeck/internal/modules/task/domain"
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
	saves     int
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
	s.saves++
	s.snapshots[username] = snapshot
	return nil
}

func newInteractor(store *memorySnapshotStore) *Interactor {
	svc := service.NewGroupService(fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}, &seqIDGen{})
	return NewInteractor(svc, store).(*Interactor)
}

func taskIn(group string, id string) taskdomain.Task {
	return taskdomain.Task{
		ID:         id,
		Title:      "t-" + id,
		GroupID:    group,
		Importance: taskdomain.ImportanceNormal,
		Kind:       taskdomain.KindTask,
		Status:     taskdomain.StatusTodo,
		CreatedAt:  time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestCreateChildAssignsOrderAndDepth(t *testing.T) {
	t.Parallel()

	store := newMemorySnapshotStore(workspacedomain.DefaultSnapshot())
	uc := newInteractor(store)

	out, err := uc.Create(context.Background(), dto.CreateInput{Username: "ada", Name: "论文", Color: "#abcdef", ParentID: "study"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if out.Depth != 2 {
		t.Errorf("depth = %d, want 2", out.Depth)
	}
	if out.Order != 6 {
		t.Errorf("order = %v, want max+1 = 6", out.Order)
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
}

func TestCreateRejectsEmptyNameWithoutSaving(t *testing.T) {
	t.Parallel()

	store := newMemorySnapshotStore(workspacedomain.DefaultSnapshot())
	uc := newInteractor(store)

	_, err := uc.Create(context.Background(), dto.CreateInput{Username: "ada", Name: "  "})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if store.saves != 0 {
		t.Errorf("saves = %d, want 0 after rejected create", store.saves)
	}
}

func TestDeleteMovePolicy(t *testing.T) {
	t.Parallel()

	snapshot := workspacedomain.DefaultSnapshot()
	snapshot.Groups = append(snapshot.Groups, domain.Group{ID: "sub", Name: "子", Color: "#fff", ParentID: "work", Order: 1})
	snapshot.Tasks = []taskdomain.Task{taskIn("work", "t1"), taskIn("study", "t2")}
	store := newMemorySnapshotStore(snapshot)
	uc := newInteractor(store)

	out, err := uc.Delete(context.Background(), dto.DeleteInput{Username: "ada", GroupID: "work", Policy: "move"})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if out.MovedTasks != 1 || out.TrashedTasks != 0 {
		t.Fatalf("result = %+v, want 1 moved, 0 trashed", out)
	}

	saved := store.snapshots["ada"]
	for _, task := range saved.Tasks {
		if task.GroupID == "work" {
			t.Errorf("task %q still references deleted group", task.ID)
		}
	}
	if saved.Tasks[0].GroupID != domain.InboxID {
		t.Errorf("moved task groupId = %q, want inbox", saved.Tasks[0].GroupID)
	}
	sub := false
	for _, g := range saved.Groups {
		if g.ID == "sub" {
			sub = true
			if g.ParentID != "" {
				t.Errorf("child group parent = %q, want promoted to top level", g.ParentID)
			}
		}
		if g.ID == "work" {
			t.Error("deleted group still present")
		}
	}
	if !sub {
		t.Error("child group removed under move policy")
	}
}

func TestDeleteCascadePolicy(t *testing.T) {
	t.Parallel()

	snapshot := workspacedomain.DefaultSnapshot()
	snapshot.Groups = append(snapshot.Groups, domain.Group{ID: "sub", Name: "子", Color: "#fff", ParentID: "work", Order: 1})
	snapshot.Tasks = []taskdomain.Task{taskIn("work", "t1"), taskIn("sub", "t2"), taskIn("study", "t3")}
	store := newMemorySnapshotStore(snapshot)
	uc := newInteractor(store)

	out, err := uc.Delete(context.Background(), dto.DeleteInput{Username: "ada", GroupID: "work", Policy: "delete"})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if out.TrashedTasks != 2 {
		t.Fatalf("trashed = %d, want 2", out.TrashedTasks)
	}
	if len(out.RemovedGroupIDs) != 2 {
		t.Fatalf("removed groups = %v, want work and sub", out.RemovedGroupIDs)
	}

	saved := store.snapshots["ada"]
	if len(saved.Tasks) != 1 || saved.Tasks[0].ID != "t3" {
		t.Fatalf("surviving tasks = %+v, want only t3", saved.Tasks)
	}
	seen := map[string]bool{}
	for _, item := range saved.Trash {
		if item.TrashUniqueID == "" {
			t.Errorf("trash item %q missing unique id", item.ID)
		}
		if seen[item.TrashUniqueID] {
			t.Errorf("duplicate trash unique id %q", item.TrashUniqueID)
		}
		seen[item.TrashUniqueID] = true
		if item.DeletedAt.IsZero() {
			t.Errorf("trash item %q missing deletedAt", item.ID)
		}
	}
}

func TestDeleteInboxRejected(t *testing.T) {
	t.Parallel()

	store := newMemorySnapshotStore(workspacedomain.DefaultSnapshot())
	uc := newInteractor(store)

	_, err := uc.Delete(context.Background(), dto.DeleteInput{Username: "ada", GroupID: domain.InboxID, Policy: "move"})
	if !errors.Is(err, apperrors.ErrProtectedGroup) {
		t.Fatalf("err = %v, want ErrProtectedGroup", err)
	}
	if store.saves != 0 {
		t.Errorf("saves = %d, want 0", store.saves)
	}
}

func TestDropPersistsResolvedGesture(t *testing.T) {
	t.Parallel()

	store := newMemorySnapshotStore(workspacedomain.DefaultSnapshot())
	uc := newInteractor(store)

	err := uc.Drop(context.Background(), dto.DropInput{Username: "ada", DraggedID: "wish", TargetID: "work", Below: true})
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	saved := store.snapshots["ada"]
	tree := domain.NewTree(saved.Groups)
	g, _ := tree.Find("wish")
	if g.ParentID != "work" {
		t.Fatalf("parent of wish = %q, want work", g.ParentID)
	}
}

func TestListSortedPinnedFirst(t *testing.T) {
	t.Parallel()

	snapshot := workspacedomain.DefaultSnapshot()
	store := newMemorySnapshotStore(snapshot)
	uc := newInteractor(store)

	if _, err := uc.Pin(context.Background(), dto.PinInput{Username: "ada", GroupID: "shop", Pinned: true}); err != nil {
		t.Fatalf("Pin: %v", err)
	}
	groups, err := uc.List(context.Background(), "ada")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if groups[0].ID != "shop" {
		t.Fatalf("first listed group = %q, want pinned shop", groups[0].ID)
	}
}
