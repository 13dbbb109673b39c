package out

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	groupdomain "taskdeck/internal/modules/group/domain"
	taskdomain "taskdeck/internal/modules/task/domain"
	"taskdeck/internal/modules/workspace/domain"
)

func TestLoadMissingFileReturnsDefaultWorkspace(t *testing.T) {
	t.Parallel()
	store := NewJSONSnapshotStore(t.TempDir())

	snapshot, err := store.Load(context.Background(), "ada")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snapshot.Groups) == 0 {
		t.Fatal("expected preset groups")
	}
	if snapshot.Groups[0].ID != groupdomain.InboxID {
		t.Fatalf("expected inbox first, got %s", snapshot.Groups[0].ID)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	t.Parallel()
	store := NewJSONSnapshotStore(t.TempDir())
	ctx := context.Background()

	due := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	snapshot := domain.DefaultSnapshot()
	snapshot.Groups = append(snapshot.Groups, groupdomain.Group{
		ID: "g-read", Name: "Reading", Color: "#c9b7ff", Order: 6,
	})
	snapshot.Tasks = append(snapshot.Tasks, taskdomain.Task{
		ID: "t-1", Title: "chapter three", GroupID: "g-read",
		Importance: taskdomain.ImportanceHigh, Kind: taskdomain.KindTask,
		Status: taskdomain.StatusTodo, DueAt: &due,
		CreatedAt: due.Add(-48 * time.Hour),
	})
	snapshot.Trash = append(snapshot.Trash, taskdomain.TrashItem{
		Task:          taskdomain.Task{ID: "t-2", Title: "old", GroupID: groupdomain.InboxID, Importance: taskdomain.ImportanceNormal, Kind: taskdomain.KindTask, Status: taskdomain.StatusTodo},
		DeletedAt:     due,
		TrashUniqueID: "trash-1",
	})

	if err := store.Save(ctx, "ada", snapshot); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.Load(ctx, "ada")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(loaded.Groups) != len(snapshot.Groups) {
		t.Fatalf("groups: got %d want %d", len(loaded.Groups), len(snapshot.Groups))
	}
	idx := loaded.FindTask("t-1")
	if idx < 0 {
		t.Fatal("task t-1 lost in round trip")
	}
	task := loaded.Tasks[idx]
	if task.GroupID != "g-read" || task.Importance != taskdomain.ImportanceHigh {
		t.Fatalf("task fields changed: %+v", task)
	}
	if task.DueAt == nil || !task.DueAt.Equal(due) {
		t.Fatalf("due date changed: %v", task.DueAt)
	}
	if len(loaded.Trash) != 1 || loaded.Trash[0].TrashUniqueID != "trash-1" {
		t.Fatalf("trash changed: %+v", loaded.Trash)
	}
}

func TestLoadCorruptFileFallsBackToDefault(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "users", "ada", "data.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewJSONSnapshotStore(dir)
	snapshot, err := store.Load(context.Background(), "ada")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snapshot.Tasks) != 0 || len(snapshot.Groups) == 0 {
		t.Fatal("expected default workspace on corrupt file")
	}
}

func TestLoadNormalizesStrayGroupReferences(t *testing.T) {
	t.Parallel()
	store := NewJSONSnapshotStore(t.TempDir())
	ctx := context.Background()

	snapshot := domain.DefaultSnapshot()
	snapshot.Tasks = append(snapshot.Tasks, taskdomain.Task{
		ID: "t-stray", Title: "orphan", GroupID: "g-gone",
		Importance: taskdomain.ImportanceNormal, Kind: taskdomain.KindTask,
		Status: taskdomain.StatusTodo,
	})
	if err := store.Save(ctx, "ada", snapshot); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(ctx, "ada")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	idx := loaded.FindTask("t-stray")
	if idx < 0 {
		t.Fatal("task lost")
	}
	task := loaded.Tasks[idx]
	if task.GroupID != groupdomain.InboxID {
		t.Fatalf("expected orphan reassigned to inbox, got %s", task.GroupID)
	}
}
