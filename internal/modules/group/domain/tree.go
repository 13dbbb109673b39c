package domain

import (
	"sort"
	"strings"

	apperrors "taskdeck/internal/platform/errors"
)

// Tree is the group collection with its parent/child relations. All
// mutations are whole-snapshot transformations: they validate against
// the current state, then return a new Tree, so a gesture that touches
// several groups (reparent plus renumber) can never be observed
// half-applied.
type Tree struct {
	groups []Group
}

func NewTree(groups []Group) Tree {
	copied := make([]Group, len(groups))
	copy(copied, groups)
	return Tree{groups: copied}
}

func (t Tree) Groups() []Group {
	out := make([]Group, len(t.groups))
	copy(out, t.groups)
	return out
}

func (t Tree) Find(id string) (Group, bool) {
	for _, g := range t.groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// Depth counts ancestors starting at 1 for a top-level group. The walk
// is capped at MaxDepth so a malformed parent chain still terminates.
func (t Tree) Depth(id string) int {
	depth := 0
	cur, ok := t.Find(id)
	for ok {
		depth++
		if depth >= MaxDepth || cur.ParentID == "" {
			break
		}
		cur, ok = t.Find(cur.ParentID)
	}
	return depth
}

// IsDescendant reports whether id sits inside ancestorID's subtree.
func (t Tree) IsDescendant(id, ancestorID string) bool {
	cur, ok := t.Find(id)
	for steps := 0; ok && steps < MaxDepth; steps++ {
		if cur.ID == ancestorID {
			return true
		}
		if cur.ParentID == "" {
			return false
		}
		cur, ok = t.Find(cur.ParentID)
	}
	return false
}

// Children returns the direct children of parentID in sibling order.
// parentID "" selects the top level.
func (t Tree) Children(parentID string) []Group {
	var out []Group
	for _, g := range t.groups {
		if g.ParentID == parentID {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Sorted returns every group in display order: pinned first, then by
// order weight ascending, ties kept in insertion order.
func (t Tree) Sorted() []Group {
	out := t.Groups()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].Order < out[j].Order
	})
	return out
}

func (t Tree) MaxOrder() float64 {
	max := 0.0
	for _, g := range t.groups {
		if g.Order > max {
			max = g.Order
		}
	}
	return max
}

// Height is the number of levels in id's subtree: 1 for a leaf, 2 for
// a group with children, capped at MaxDepth.
func (t Tree) Height(id string) int {
	height := 0
	frontier := []string{id}
	for height < MaxDepth && len(frontier) > 0 {
		height++
		var next []string
		for _, parent := range frontier {
			for _, child := range t.Children(parent) {
				next = append(next, child.ID)
			}
		}
		frontier = next
	}
	return height
}

// Subtree returns id and every descendant, bounded by MaxDepth levels.
func (t Tree) Subtree(id string) []string {
	out := []string{id}
	frontier := []string{id}
	for level := 0; level < MaxDepth && len(frontier) > 0; level++ {
		var next []string
		for _, parent := range frontier {
			for _, child := range t.Children(parent) {
				out = append(out, child.ID)
				next = append(next, child.ID)
			}
		}
		frontier = next
	}
	return out
}

// Insert adds a validated new group. The caller supplies id and order.
func (t Tree) Insert(g Group) (Tree, error) {
	if strings.TrimSpace(g.Name) == "" || g.ID == "" {
		return t, apperrors.ErrInvalidInput
	}
	if _, exists := t.Find(g.ID); exists {
		return t, apperrors.ErrInvalidInput
	}
	if g.ParentID != "" {
		if _, ok := t.Find(g.ParentID); !ok {
			return t, apperrors.ErrNotFound
		}
		if t.Depth(g.ParentID) >= MaxDepth {
			return t, apperrors.ErrMaxDepth
		}
	}
	return NewTree(append(t.Groups(), g)), nil
}

func (t Tree) Rename(id, name, color string) (Tree, error) {
	if strings.TrimSpace(name) == "" {
		return t, apperrors.ErrInvalidInput
	}
	groups := t.Groups()
	for i := range groups {
		if groups[i].ID == id {
			groups[i].Name = strings.TrimSpace(name)
			if color != "" {
				groups[i].Color = color
			}
			return NewTree(groups), nil
		}
	}
	return t, apperrors.ErrNotFound
}

func (t Tree) Pin(id string, pinned bool) (Tree, error) {
	groups := t.Groups()
	for i := range groups {
		if groups[i].ID == id {
			groups[i].Pinned = pinned
			return NewTree(groups), nil
		}
	}
	return t, apperrors.ErrNotFound
}

// ResolveDrop applies a completed drag gesture. The presentation layer
// reports only which half of the target the pointer released on: the
// upper half reorders, the lower half nests into a top-level target or
// merges two nested siblings under a brand-new intermediate group.
// newID names that intermediate group if one is created.
func (t Tree) ResolveDrop(draggedID, targetID string, pos DropPosition, newID string) (Tree, error) {
	if err := t.validateDrag(draggedID, targetID); err != nil {
		return t, err
	}
	if pos == DropAbove {
		return t.Reorder(draggedID, targetID)
	}
	target, _ := t.Find(targetID)
	if target.ParentID == "" {
		return t.Nest(draggedID, targetID)
	}
	return t.Merge(draggedID, targetID, newID)
}

// Reorder makes dragged a sibling of target, spliced into the
// target's slot. Siblings of the new parent are renumbered 1..n.
func (t Tree) Reorder(draggedID, targetID string) (Tree, error) {
	if err := t.validateDrag(draggedID, targetID); err != nil {
		return t, err
	}
	target, _ := t.Find(targetID)
	// Dragged lands at the target's own depth with its subtree intact.
	if t.Depth(targetID)-1+t.Height(draggedID) > MaxDepth {
		return t, apperrors.ErrMaxDepth
	}

	siblings := t.Children(target.ParentID)
	filtered := siblings[:0:0]
	for _, g := range siblings {
		if g.ID != draggedID {
			filtered = append(filtered, g)
		}
	}
	sequence := make([]string, 0, len(filtered)+1)
	for _, g := range filtered {
		if g.ID == targetID {
			sequence = append(sequence, draggedID)
		}
		sequence = append(sequence, g.ID)
	}

	groups := t.Groups()
	for i := range groups {
		if groups[i].ID == draggedID {
			groups[i].ParentID = target.ParentID
		}
	}
	return NewTree(renumber(groups, sequence)), nil
}

// Nest makes dragged a child of a top-level target.
func (t Tree) Nest(draggedID, targetID string) (Tree, error) {
	if err := t.validateDrag(draggedID, targetID); err != nil {
		return t, err
	}
	target, _ := t.Find(targetID)
	if target.ParentID != "" || t.Depth(targetID)+t.Height(draggedID) > MaxDepth {
		return t, apperrors.ErrMaxDepth
	}

	groups := t.Groups()
	for i := range groups {
		if groups[i].ID == draggedID {
			groups[i].ParentID = targetID
		}
	}
	next := NewTree(groups)

	sequence := make([]string, 0)
	for _, g := range next.Children(targetID) {
		if g.ID != draggedID {
			sequence = append(sequence, g.ID)
		}
	}
	sequence = append(sequence, draggedID)
	return NewTree(renumber(groups, sequence)), nil
}

// Merge collapses dragged and target under a new intermediate group
// that takes the target's slot among its former siblings.
func (t Tree) Merge(draggedID, targetID, newID string) (Tree, error) {
	if err := t.validateDrag(draggedID, targetID); err != nil {
		return t, err
	}
	if newID == "" {
		return t, apperrors.ErrInvalidInput
	}
	target, _ := t.Find(targetID)
	// Both parties slide one level down under the intermediate group.
	if t.Depth(targetID)+t.Height(draggedID) > MaxDepth ||
		t.Depth(targetID)+t.Height(targetID) > MaxDepth {
		return t, apperrors.ErrMaxDepth
	}

	merged := Group{
		ID:       newID,
		Name:     MergedGroupName,
		Color:    target.Color,
		ParentID: target.ParentID,
		Order:    target.Order,
	}

	groups := t.Groups()
	for i := range groups {
		g := &groups[i]
		switch g.ID {
		case draggedID:
			g.ParentID = newID
			g.Order = 2
		case targetID:
			g.ParentID = newID
			g.Order = 1
		default:
			// Make room for the intermediate group in the target's
			// former sibling run.
			if g.ParentID == merged.ParentID && g.Order >= merged.Order {
				g.Order++
			}
		}
	}
	return NewTree(append(groups, merged)), nil
}

// Promote moves dragged to the top level (a drop on empty sidebar
// space). Top-level orders are renumbered with dragged placed last.
func (t Tree) Promote(draggedID string) (Tree, error) {
	dragged, ok := t.Find(draggedID)
	if !ok {
		return t, apperrors.ErrNotFound
	}
	if IsVirtual(draggedID) || draggedID == InboxID {
		return t, apperrors.ErrProtectedGroup
	}
	if dragged.ParentID == "" {
		return t, nil
	}

	groups := t.Groups()
	for i := range groups {
		if groups[i].ID == draggedID {
			groups[i].ParentID = ""
			groups[i].Order = t.MaxOrder() + 1
		}
	}
	next := NewTree(groups)
	sequence := make([]string, 0)
	for _, g := range next.Children("") {
		sequence = append(sequence, g.ID)
	}
	return NewTree(renumber(groups, sequence)), nil
}

// Remove drops the named groups. Task fallout is the caller's concern.
func (t Tree) Remove(ids ...string) Tree {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	var kept []Group
	for _, g := range t.groups {
		if _, gone := drop[g.ID]; !gone {
			kept = append(kept, g)
		}
	}
	return NewTree(kept)
}

// PromoteChildren lifts the direct children of id to the top level.
func (t Tree) PromoteChildren(id string) Tree {
	groups := t.Groups()
	order := t.MaxOrder()
	for _, child := range t.Children(id) {
		order++
		for i := range groups {
			if groups[i].ID == child.ID {
				groups[i].ParentID = ""
				groups[i].Order = order
			}
		}
	}
	return NewTree(groups)
}

func (t Tree) validateDrag(draggedID, targetID string) error {
	if draggedID == targetID {
		return apperrors.ErrInvalidInput
	}
	if IsVirtual(draggedID) || IsVirtual(targetID) {
		return apperrors.ErrInvalidInput
	}
	if draggedID == InboxID {
		return apperrors.ErrProtectedGroup
	}
	if _, ok := t.Find(draggedID); !ok {
		return apperrors.ErrNotFound
	}
	if _, ok := t.Find(targetID); !ok {
		return apperrors.ErrNotFound
	}
	if t.IsDescendant(targetID, draggedID) {
		return apperrors.ErrCycle
	}
	return nil
}

// renumber assigns order 1..n following sequence to the groups named
// in it, leaving every other group untouched.
func renumber(groups []Group, sequence []string) []Group {
	for pos, id := range sequence {
		for i := range groups {
			if groups[i].ID == id {
				groups[i].Order = float64(pos + 1)
			}
		}
	}
	return groups
}
