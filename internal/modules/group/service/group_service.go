package service

import (
	"context"
	"strings"

	"taskdeck/internal/modules/group/domain"
	workspacedomain "taskdeck/internal/modules/workspace/domain"
	"taskdeck/internal/platform/clock"
	apperrors "taskdeck/internal/platform/errors"
	"taskdeck/internal/platform/id"
)

// GroupService applies group mutations to a workspace snapshot. Every
// method takes the current snapshot and returns the next one, so a
// gesture that also touches tasks (a cascading delete) stays one
// atomic transformation.
type GroupService struct {
	clock clock.Clock
	idGen id.Generator
}

func NewGroupService(clock clock.Clock, idGen id.Generator) *GroupService {
	return &GroupService{clock: clock, idGen: idGen}
}

func (s *GroupService) Create(_ context.Context, snapshot workspacedomain.Snapshot, name, color, parentID string) (workspacedomain.Snapshot, domain.Group, error) {
	tree := domain.NewTree(snapshot.Groups)
	group := domain.Group{
		ID:       s.idGen.New(),
		Name:     strings.TrimSpace(name),
		Color:    color,
		ParentID: parentID,
		Order:    tree.MaxOrder() + 1,
	}
	next, err := tree.Insert(group)
	if err != nil {
		return snapshot, domain.Group{}, err
	}
	snapshot.Groups = next.Groups()
	return snapshot, group, nil
}

func (s *GroupService) Rename(_ context.Context, snapshot workspacedomain.Snapshot, groupID, name, color string) (workspacedomain.Snapshot, domain.Group, error) {
	next, err := domain.NewTree(snapshot.Groups).Rename(groupID, name, color)
	if err != nil {
		return snapshot, domain.Group{}, err
	}
	snapshot.Groups = next.Groups()
	group, _ := next.Find(groupID)
	return snapshot, group, nil
}

func (s *GroupService) Pin(_ context.Context, snapshot workspacedomain.Snapshot, groupID string, pinned bool) (workspacedomain.Snapshot, domain.Group, error) {
	next, err := domain.NewTree(snapshot.Groups).Pin(groupID, pinned)
	if err != nil {
		return snapshot, domain.Group{}, err
	}
	snapshot.Groups = next.Groups()
	group, _ := next.Find(groupID)
	return snapshot, group, nil
}

// Drop applies a finished drag gesture, already resolved by the
// presentation layer to a position relative to the target.
func (s *GroupService) Drop(_ context.Context, snapshot workspacedomain.Snapshot, draggedID, targetID string, pos domain.DropPosition) (workspacedomain.Snapshot, error) {
	next, err := domain.NewTree(snapshot.Groups).ResolveDrop(draggedID, targetID, pos, s.idGen.New())
	if err != nil {
		return snapshot, err
	}
	snapshot.Groups = next.Groups()
	return snapshot, nil
}

// Promote handles a drop on empty sidebar space.
func (s *GroupService) Promote(_ context.Context, snapshot workspacedomain.Snapshot, groupID string) (workspacedomain.Snapshot, error) {
	next, err := domain.NewTree(snapshot.Groups).Promote(groupID)
	if err != nil {
		return snapshot, err
	}
	snapshot.Groups = next.Groups()
	return snapshot, nil
}

// DeleteResult reports the fallout of a group delete.
type DeleteResult struct {
	RemovedGroupIDs []string
	MovedTasks      int
	TrashedTasks    int
}

// Delete removes a group under one of two policies. The move policy
// removes only the named group, sends its tasks to the inbox and
// promotes its direct children to the top level. The delete policy
// removes the whole subtree and moves every task referencing it to
// the trash, each with a fresh unique trash id.
func (s *GroupService) Delete(_ context.Context, snapshot workspacedomain.Snapshot, groupID string, policy domain.DeletePolicy) (workspacedomain.Snapshot, DeleteResult, error) {
	if groupID == domain.InboxID {
		return snapshot, DeleteResult{}, apperrors.ErrProtectedGroup
	}
	if domain.IsVirtual(groupID) || !policy.Valid() {
		return snapshot, DeleteResult{}, apperrors.ErrInvalidInput
	}
	tree := domain.NewTree(snapshot.Groups)
	if _, ok := tree.Find(groupID); !ok {
		return snapshot, DeleteResult{}, apperrors.ErrNotFound
	}

	result := DeleteResult{}
	if policy == domain.DeleteMove {
		result.RemovedGroupIDs = []string{groupID}
		tree = tree.PromoteChildren(groupID).Remove(groupID)
		for i := range snapshot.Tasks {
			if snapshot.Tasks[i].GroupID == groupID {
				snapshot.Tasks[i].GroupID = domain.InboxID
				result.MovedTasks++
			}
		}
		snapshot.Groups = tree.Groups()
		return snapshot, result, nil
	}

	result.RemovedGroupIDs = tree.Subtree(groupID)
	removed := make(map[string]struct{}, len(result.RemovedGroupIDs))
	for _, id := range result.RemovedGroupIDs {
		removed[id] = struct{}{}
	}

	now := s.clock.Now()
	kept := snapshot.Tasks[:0:0]
	for _, t := range snapshot.Tasks {
		if _, gone := removed[t.GroupID]; !gone {
			kept = append(kept, t)
			continue
		}
		if !snapshot.TrashContains(t.ID) {
			snapshot.Trash = append(snapshot.Trash, t.ToTrash(s.idGen.New(), now))
		}
		result.TrashedTasks++
	}
	snapshot.Tasks = kept
	snapshot.Groups = tree.Remove(result.RemovedGroupIDs...).Groups()
	return snapshot, result, nil
}

// Sorted returns every group in display order.
func (s *GroupService) Sorted(snapshot workspacedomain.Snapshot) []domain.Group {
	return domain.NewTree(snapshot.Groups).Sorted()
}
