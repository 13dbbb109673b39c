// Package domain holds the per-user workspace snapshot: the group
// tree, the live tasks and the trash, loaded and saved as one unit so
// every mutation persists a consistent whole.
package domain

import (
	groupdomain "taskdeck/internal/modules/group/domain"
	taskdomain "taskdeck/internal/modules/task/domain"
)

type Snapshot struct {
	Groups []groupdomain.Group    `json:"groups"`
	Tasks  []taskdomain.Task      `json:"tasks"`
	Trash  []taskdomain.TrashItem `json:"trash"`
}

// DefaultSnapshot is the workspace a fresh account starts with.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Groups: groupdomain.PresetGroups(),
		Tasks:  []taskdomain.Task{},
		Trash:  []taskdomain.TrashItem{},
	}
}

// Normalize repairs a snapshot loaded from disk: absent collections
// become empty, the inbox group is restored if missing, tasks pointing
// at a vanished group fall back to the inbox, and enum fields get
// their defaults. Normalization happens once at the load boundary so
// the rest of the code never deals with absent optionals.
func (s Snapshot) Normalize() Snapshot {
	if len(s.Groups) == 0 {
		s.Groups = groupdomain.PresetGroups()
	}
	if s.Tasks == nil {
		s.Tasks = []taskdomain.Task{}
	}
	if s.Trash == nil {
		s.Trash = []taskdomain.TrashItem{}
	}

	known := make(map[string]struct{}, len(s.Groups))
	hasInbox := false
	for _, g := range s.Groups {
		known[g.ID] = struct{}{}
		if g.ID == groupdomain.InboxID {
			hasInbox = true
		}
	}
	if !hasInbox {
		inbox := groupdomain.PresetGroups()[0]
		s.Groups = append([]groupdomain.Group{inbox}, s.Groups...)
		known[inbox.ID] = struct{}{}
	}

	for i := range s.Tasks {
		s.Tasks[i] = normalizeTask(s.Tasks[i], known)
	}
	for i := range s.Trash {
		s.Trash[i].Task = normalizeTask(s.Trash[i].Task, known)
	}
	return s
}

func normalizeTask(t taskdomain.Task, groups map[string]struct{}) taskdomain.Task {
	if _, ok := groups[t.GroupID]; !ok {
		t.GroupID = groupdomain.InboxID
	}
	if !t.Importance.Valid() {
		t.Importance = taskdomain.ImportanceNormal
	}
	if !t.Kind.Valid() {
		t.Kind = taskdomain.KindTask
	}
	if t.Status != taskdomain.StatusDone {
		t.Status = taskdomain.StatusTodo
	}
	return t
}

// FindTask returns the index of a task id, or -1.
func (s Snapshot) FindTask(id string) int {
	for i, t := range s.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// TrashContains reports whether a task id already sits in the trash.
func (s Snapshot) TrashContains(taskID string) bool {
	for _, item := range s.Trash {
		if item.ID == taskID {
			return true
		}
	}
	return false
}
