package tasks

import (
	"context"
	"testing"

	viewdto "taskdeck/internal/modules/view/dto"
)

type fakePort struct{}

func (fakePort) Groups(context.Context, string) ([]viewdto.GroupSummary, error) {
	return nil, nil
}

func (fakePort) Destinations(context.Context, string) ([]viewdto.DestinationCount, error) {
	return nil, nil
}

func (fakePort) List(context.Context, string, string) (viewdto.ListOutput, error) {
	return viewdto.ListOutput{}, nil
}

func (fakePort) Search(context.Context, string, string, bool, bool) (viewdto.ListOutput, error) {
	return viewdto.ListOutput{}, nil
}

func TestDeletedGroupSelectionFallsBackToInbox(t *testing.T) {
	t.Parallel()

	m := New(fakePort{}, "ada")
	groups := []viewdto.GroupSummary{
		{ID: "inbox", Name: "未分组", Depth: 1},
		{ID: "work", Name: "Work", Depth: 1},
	}

	m, _ = m.Update(BoardLoadedMsg{Groups: groups, Title: "Inbox"})
	m.GoTo("work")
	if got := m.CurrentDestination(); got != "work" {
		t.Fatalf("destination = %q, want work", got)
	}

	// The work group was deleted; the next board load no longer has it.
	m, cmd := m.Update(BoardLoadedMsg{Groups: groups[:1], Title: "Work"})
	if got := m.CurrentDestination(); got != "inbox" {
		t.Errorf("destination after delete = %q, want inbox", got)
	}
	if cmd == nil {
		t.Error("expected a reload command after the fallback")
	}
}

func TestRebuildKeepsVirtualSelection(t *testing.T) {
	t.Parallel()

	m := New(fakePort{}, "ada")
	groups := []viewdto.GroupSummary{{ID: "inbox", Name: "未分组", Depth: 1}}

	m, _ = m.Update(BoardLoadedMsg{Groups: groups, Title: "Inbox"})
	m.GoTo("today")
	m, _ = m.Update(BoardLoadedMsg{Groups: groups, Title: "Today"})
	if got := m.CurrentDestination(); got != "today" {
		t.Errorf("destination = %q, want today", got)
	}
}
