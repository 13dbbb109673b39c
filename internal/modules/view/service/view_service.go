package service

import (
	"sort"
	"strings"
	"time"

	groupdomain "taskdeck/internal/modules/group/domain"
	taskdomain "taskdeck/internal/modules/task/domain"
)

// Destination selects what the primary list shows: a stored group id
// or one of the virtual pseudo-groups.
const (
	DestToday     = "today"
	DestWeek      = "week"
	DestAll       = "all"
	DestCompleted = "completed"
	DestTrash     = "trash"
)

// SearchParams control search result ordering. The two flags compose
// as independent sign flips of the composite score ordering.
type SearchParams struct {
	Keyword       string
	TimeDesc      bool
	ImportanceLow bool
}

// ViewService derives every list and aggregate the UI shows. All
// methods are pure: they never mutate their inputs and are safe to
// recompute on every change.
type ViewService struct{}

func NewViewService() *ViewService { return &ViewService{} }

// GroupCounts tallies open tasks per group id.
func (s *ViewService) GroupCounts(tasks []taskdomain.Task) map[string]int {
	counts := make(map[string]int)
	for _, t := range tasks {
		if t.Status == taskdomain.StatusTodo {
			counts[t.GroupID]++
		}
	}
	return counts
}

// DestinationCounts tallies the virtual destinations the sidebar shows
// alongside the group tree.
func (s *ViewService) DestinationCounts(tasks []taskdomain.Task, trash []taskdomain.TrashItem, now time.Time) map[string]int {
	return map[string]int{
		DestToday:     len(s.PrimaryList(tasks, DestToday, now)),
		DestWeek:      len(s.PrimaryList(tasks, DestWeek, now)),
		DestAll:       len(tasks),
		DestCompleted: len(s.completedList(tasks)),
		DestTrash:     len(trash),
	}
}

// PrimaryList produces the ordered task list for a destination.
// Overdue open tasks sort first by due date; the rest follow by due
// date with undated tasks last. The virtual all view instead orders
// everything by creation time, newest first.
func (s *ViewService) PrimaryList(tasks []taskdomain.Task, dest string, now time.Time) []taskdomain.Task {
	switch dest {
	case DestTrash:
		return nil
	case DestCompleted:
		return s.completedList(tasks)
	}

	var base []taskdomain.Task
	for _, t := range tasks {
		if dest != DestAll && t.Status != taskdomain.StatusTodo {
			continue
		}
		switch dest {
		case DestToday:
			if t.DueAt == nil || !sameDay(*t.DueAt, now) {
				continue
			}
		case DestWeek:
			if t.DueAt == nil || t.DueAt.Before(now) || t.DueAt.After(now.Add(7*24*time.Hour)) {
				continue
			}
		case DestAll:
		default:
			if t.GroupID != dest {
				continue
			}
		}
		base = append(base, t)
	}

	if dest == DestAll {
		sort.SliceStable(base, func(i, j int) bool { return base[i].CreatedAt.After(base[j].CreatedAt) })
		return base
	}

	var overdue, pending []taskdomain.Task
	for _, t := range base {
		if t.Status == taskdomain.StatusTodo && t.DueAt != nil && t.DueAt.Before(now) {
			overdue = append(overdue, t)
		} else {
			pending = append(pending, t)
		}
	}
	sort.SliceStable(overdue, func(i, j int) bool { return overdue[i].DueAt.Before(*overdue[j].DueAt) })
	sort.SliceStable(pending, func(i, j int) bool { return dueOrInfinity(pending[i]).Before(dueOrInfinity(pending[j])) })
	return append(overdue, pending...)
}

func (s *ViewService) completedList(tasks []taskdomain.Task) []taskdomain.Task {
	var done []taskdomain.Task
	for _, t := range tasks {
		if t.Status == taskdomain.StatusDone {
			done = append(done, t)
		}
	}
	sort.SliceStable(done, func(i, j int) bool {
		return completedOrEpoch(done[i]).After(completedOrEpoch(done[j]))
	})
	return done
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func dueOrInfinity(t taskdomain.Task) time.Time {
	if t.DueAt == nil {
		return time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	}
	return *t.DueAt
}

func completedOrEpoch(t taskdomain.Task) time.Time {
	if t.CompletedAt == nil {
		return time.Unix(0, 0)
	}
	return *t.CompletedAt
}

const yearDays = 365 * 24 * time.Hour

// Search ranks title matches by a composite of importance rank
// (weight 0.6) and due-date recency normalized against one year
// (weight 0.4); lower scores sort first.
func (s *ViewService) Search(tasks []taskdomain.Task, p SearchParams, now time.Time) []taskdomain.Task {
	keyword := strings.ToLower(strings.TrimSpace(p.Keyword))
	if keyword == "" {
		return nil
	}
	var matched []taskdomain.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), keyword) {
			matched = append(matched, t)
		}
	}

	score := func(t taskdomain.Task) float64 {
		timeScore := 1.0
		if t.DueAt != nil {
			timeScore = float64(now.Sub(*t.DueAt)) / float64(yearDays)
		}
		return float64(t.Importance.Rank())*0.6 + timeScore*0.4
	}
	asc := true
	if p.TimeDesc {
		asc = !asc
	}
	if p.ImportanceLow {
		asc = !asc
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if asc {
			return score(matched[i]) < score(matched[j])
		}
		return score(matched[i]) > score(matched[j])
	})
	return matched
}

type ReasonCount struct {
	Reason  string
	Count   int
	Percent float64
}

type GroupCompletion struct {
	GroupID string
	Name    string
	Done    int
	Total   int
}

type Stats struct {
	FocusTotalMinutes int
	FocusSinceMinutes int
	DailyMinutes      map[int]int
	MonthlyMinutes    map[time.Month]int
	YearlyMinutes     map[int]int
	CancelReasons     []ReasonCount
	GroupCompletion   []GroupCompletion
}

// ComputeStats recomputes every statistics aggregate from scratch.
// Time buckets cover completed focus tasks: daily buckets are
// day-of-month within the month containing since, monthly buckets are
// months of since's year, yearly buckets span all years seen.
func (s *ViewService) ComputeStats(tasks []taskdomain.Task, groups []groupdomain.Group, since time.Time) Stats {
	stats := Stats{
		DailyMinutes:   map[int]int{},
		MonthlyMinutes: map[time.Month]int{},
		YearlyMinutes:  map[int]int{},
	}

	focusTasks := 0
	reasons := map[string]int{}
	reasonOrder := []string{}
	for _, t := range tasks {
		if t.Kind != taskdomain.KindFocus {
			continue
		}
		focusTasks++
		stats.FocusTotalMinutes += t.TotalFocusMinutes
		if t.CompletedAt != nil && !t.CompletedAt.Before(since) {
			stats.FocusSinceMinutes += t.TotalFocusMinutes
		}
		for _, reason := range t.CancelReasons {
			if _, seen := reasons[reason]; !seen {
				reasonOrder = append(reasonOrder, reason)
			}
			reasons[reason]++
		}
		if t.Status == taskdomain.StatusDone && t.CompletedAt != nil {
			at := *t.CompletedAt
			if at.Year() == since.Year() && at.Month() == since.Month() {
				stats.DailyMinutes[at.Day()] += t.TotalFocusMinutes
			}
			if at.Year() == since.Year() {
				stats.MonthlyMinutes[at.Month()] += t.TotalFocusMinutes
			}
			stats.YearlyMinutes[at.Year()] += t.TotalFocusMinutes
		}
	}

	for _, reason := range reasonOrder {
		count := reasons[reason]
		percent := 0.0
		if focusTasks > 0 {
			percent = float64(count) / float64(focusTasks) * 100
		}
		stats.CancelReasons = append(stats.CancelReasons, ReasonCount{Reason: reason, Count: count, Percent: percent})
	}

	// Tasks pointing at groups that no longer exist are excluded.
	for _, g := range groups {
		completion := GroupCompletion{GroupID: g.ID, Name: g.Name}
		for _, t := range tasks {
			if t.GroupID != g.ID {
				continue
			}
			completion.Total++
			if t.Status == taskdomain.StatusDone {
				completion.Done++
			}
		}
		stats.GroupCompletion = append(stats.GroupCompletion, completion)
	}
	return stats
}
