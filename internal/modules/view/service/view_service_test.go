package service

import (
	"testing"
	"time"

	groupdomain "taskdeck/internal/modules/group/domain"
	taskdomain "taskdeck/internal/modules/task/domain"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func task(id string, opts ...func(*taskdomain.Task)) taskdomain.Task {
	t := taskdomain.Task{
		ID:         id,
		Title:      id,
		GroupID:    groupdomain.InboxID,
		Importance: taskdomain.ImportanceNormal,
		Kind:       taskdomain.KindTask,
		Status:     taskdomain.StatusTodo,
		CreatedAt:  now.Add(-48 * time.Hour),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func due(at time.Time) func(*taskdomain.Task) {
	return func(t *taskdomain.Task) { t.DueAt = &at }
}

func done(at time.Time) func(*taskdomain.Task) {
	return func(t *taskdomain.Task) {
		t.Status = taskdomain.StatusDone
		t.CompletedAt = &at
	}
}

func ids(tasks []taskdomain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func assertOrder(t *testing.T, got []taskdomain.Task, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got %v, want %v", gotIDs, want)
		}
	}
}

func TestPrimaryListOverdueFirst(t *testing.T) {
	t.Parallel()

	svc := NewViewService()
	tasks := []taskdomain.Task{
		task("later", due(now.Add(26*time.Hour))),
		task("overdue-old", due(now.Add(-72*time.Hour))),
		task("no-due"),
		task("overdue-new", due(now.Add(-time.Hour))),
		task("soon", due(now.Add(time.Hour))),
	}

	got := svc.PrimaryList(tasks, groupdomain.InboxID, now)
	assertOrder(t, got, "overdue-old", "overdue-new", "soon", "later", "no-due")
}

func TestPrimaryListTodayAndWeek(t *testing.T) {
	t.Parallel()

	svc := NewViewService()
	tasks := []taskdomain.Task{
		task("today", due(now.Add(3*time.Hour))),
		task("tomorrow", due(now.Add(24*time.Hour))),
		task("next-month", due(now.Add(40*24*time.Hour))),
		task("no-due"),
	}

	assertOrder(t, svc.PrimaryList(tasks, DestToday, now), "today")
	assertOrder(t, svc.PrimaryList(tasks, DestWeek, now), "today", "tomorrow")
}

func TestPrimaryListWeekExcludesOverdue(t *testing.T) {
	t.Parallel()

	// The week window is strictly forward-looking. Overdue tasks belong
	// to the overdue band of their own group list, never to week.
	svc := NewViewService()
	tasks := []taskdomain.Task{
		task("overdue-yesterday", due(now.Add(-24*time.Hour))),
		task("earlier-today", due(now.Add(-time.Hour))),
		task("tomorrow", due(now.Add(24*time.Hour))),
	}

	assertOrder(t, svc.PrimaryList(tasks, DestWeek, now), "tomorrow")

	counts := svc.DestinationCounts(tasks, nil, now)
	if counts[DestWeek] != 1 {
		t.Errorf("week count = %d, want 1", counts[DestWeek])
	}
}

func TestPrimaryListAllSortsByCreation(t *testing.T) {
	t.Parallel()

	svc := NewViewService()
	older := task("older", due(now.Add(-time.Hour)))
	older.CreatedAt = now.Add(-72 * time.Hour)
	newer := task("newer")
	newer.CreatedAt = now.Add(-time.Hour)
	newerDone := task("newer-done", done(now.Add(-time.Minute)))
	newerDone.CreatedAt = now.Add(-30 * time.Minute)

	got := svc.PrimaryList([]taskdomain.Task{older, newer, newerDone}, DestAll, now)
	assertOrder(t, got, "newer-done", "newer", "older")
}

func TestPrimaryListCompleted(t *testing.T) {
	t.Parallel()

	svc := NewViewService()
	tasks := []taskdomain.Task{
		task("open"),
		task("first", done(now.Add(-2*time.Hour))),
		task("last", done(now.Add(-time.Minute))),
		task("no-stamp", func(t *taskdomain.Task) { t.Status = taskdomain.StatusDone }),
	}

	got := svc.PrimaryList(tasks, DestCompleted, now)
	assertOrder(t, got, "last", "first", "no-stamp")

	if list := svc.PrimaryList(tasks, DestTrash, now); len(list) != 0 {
		t.Fatalf("trash destination = %v, want empty", ids(list))
	}
}

func TestDestinationCounts(t *testing.T) {
	t.Parallel()

	svc := NewViewService()
	tasks := []taskdomain.Task{
		task("today", due(now.Add(2*time.Hour))),
		task("tomorrow", due(now.Add(24*time.Hour))),
		task("someday"),
		task("finished", done(now.Add(-time.Hour))),
	}
	trash := []taskdomain.TrashItem{
		{Task: task("binned"), DeletedAt: now.Add(-time.Hour)},
	}

	counts := svc.DestinationCounts(tasks, trash, now)
	want := map[string]int{
		DestToday:     1,
		DestWeek:      2,
		DestAll:       4,
		DestCompleted: 1,
		DestTrash:     1,
	}
	for dest, n := range want {
		if counts[dest] != n {
			t.Errorf("%s count = %d, want %d", dest, counts[dest], n)
		}
	}
}

func TestSearchCompositeScore(t *testing.T) {
	t.Parallel()

	svc := NewViewService()
	tasks := []taskdomain.Task{
		task("B report", due(now.Add(-24*time.Hour)), func(t *taskdomain.Task) { t.Importance = taskdomain.ImportanceNormal }),
		task("A report", due(now.Add(24*time.Hour)), func(t *taskdomain.Task) { t.Importance = taskdomain.ImportanceCritical }),
	}

	got := svc.Search(tasks, SearchParams{Keyword: "report"}, now)
	assertOrder(t, got, "A report", "B report")

	got = svc.Search(tasks, SearchParams{Keyword: "report", TimeDesc: true}, now)
	assertOrder(t, got, "B report", "A report")

	// The two preference flags flip independently and cancel out.
	got = svc.Search(tasks, SearchParams{Keyword: "report", TimeDesc: true, ImportanceLow: true}, now)
	assertOrder(t, got, "A report", "B report")

	if res := svc.Search(tasks, SearchParams{Keyword: "REPORT"}, now); len(res) != 2 {
		t.Fatalf("case-insensitive match = %v, want 2 hits", ids(res))
	}
}

func TestGroupCounts(t *testing.T) {
	t.Parallel()

	svc := NewViewService()
	tasks := []taskdomain.Task{
		task("a"),
		task("b"),
		task("c", done(now)),
		task("d", func(t *taskdomain.Task) { t.GroupID = "work" }),
	}

	counts := svc.GroupCounts(tasks)
	if counts[groupdomain.InboxID] != 2 {
		t.Errorf("inbox count = %d, want 2 (done excluded)", counts[groupdomain.InboxID])
	}
	if counts["work"] != 1 {
		t.Errorf("work count = %d, want 1", counts["work"])
	}
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	svc := NewViewService()
	focus := func(id string, total int, completed *time.Time, reasons ...string) taskdomain.Task {
		t := task(id)
		t.Kind = taskdomain.KindFocus
		t.TotalFocusMinutes = total
		t.CancelReasons = reasons
		if completed != nil {
			t.Status = taskdomain.StatusDone
			t.CompletedAt = completed
		}
		return t
	}
	thisMonth := now.Add(-24 * time.Hour)
	lastYear := now.AddDate(-1, 0, 0)
	tasks := []taskdomain.Task{
		focus("f1", 50, &thisMonth, "被打断"),
		focus("f2", 30, &lastYear),
		focus("f3", 20, nil, "被打断", "太累了"),
		task("plain", done(now)),
	}
	groups := []groupdomain.Group{{ID: groupdomain.InboxID, Name: "未分组", Order: 1}}

	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	stats := svc.ComputeStats(tasks, groups, since)

	if stats.FocusTotalMinutes != 100 {
		t.Errorf("total = %d, want 100", stats.FocusTotalMinutes)
	}
	if stats.FocusSinceMinutes != 50 {
		t.Errorf("since = %d, want 50 (only f1 completed after since)", stats.FocusSinceMinutes)
	}
	if stats.DailyMinutes[thisMonth.Day()] != 50 {
		t.Errorf("daily bucket = %d, want 50", stats.DailyMinutes[thisMonth.Day()])
	}
	if stats.YearlyMinutes[lastYear.Year()] != 30 {
		t.Errorf("yearly bucket for %d = %d, want 30", lastYear.Year(), stats.YearlyMinutes[lastYear.Year()])
	}

	if len(stats.CancelReasons) != 2 {
		t.Fatalf("reasons = %+v, want 2 distinct", stats.CancelReasons)
	}
	first := stats.CancelReasons[0]
	if first.Reason != "被打断" || first.Count != 2 {
		t.Errorf("first reason = %+v, want 被打断 x2", first)
	}
	// Percentage is relative to the focus-task count, not reason total.
	if want := float64(2) / 3 * 100; first.Percent < want-0.01 || first.Percent > want+0.01 {
		t.Errorf("percent = %v, want %v", first.Percent, want)
	}

	if len(stats.GroupCompletion) != 1 {
		t.Fatalf("completion = %+v, want inbox only", stats.GroupCompletion)
	}
	gc := stats.GroupCompletion[0]
	if gc.Total != 4 || gc.Done != 3 {
		t.Errorf("inbox completion = %d/%d, want 3/4", gc.Done, gc.Total)
	}
}
