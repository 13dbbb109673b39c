package dto

import (
	"time"

	taskdto "taskdeck/internal/modules/task/dto"
)

type ListInput struct {
	Username    string
	Destination string
}

type SearchInput struct {
	Username      string
	Keyword       string
	TimeDesc      bool
	ImportanceLow bool
}

type StatsInput struct {
	Username string
	Since    time.Time
}

// GroupSummary is a sidebar row: the group plus its open-task count.
type GroupSummary struct {
	ID       string
	Name     string
	Color    string
	ParentID string
	Pinned   bool
	Depth    int
	Count    int
}

// DestinationCount is a sidebar row for a virtual destination.
type DestinationCount struct {
	ID    string
	Name  string
	Count int
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

type StatsOutput struct {
	FocusTotalMinutes int
	FocusSinceMinutes int
	DailyMinutes      map[int]int
	MonthlyMinutes    map[time.Month]int
	YearlyMinutes     map[int]int
	CancelReasons     []ReasonCount
	GroupCompletion   []GroupCompletion
}

type ListOutput struct {
	Tasks []taskdto.TaskOutput
}
