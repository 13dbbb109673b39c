package domain

import "time"

// Importance ranks a task for search scoring. Lower rank means more
// important.
type Importance string

const (
	ImportanceCritical Importance = "critical"
	ImportanceHigh     Importance = "high"
	ImportanceNormal   Importance = "normal"
)

func (i Importance) Valid() bool {
	switch i {
	case ImportanceCritical, ImportanceHigh, ImportanceNormal:
		return true
	}
	return false
}

func (i Importance) Rank() int {
	switch i {
	case ImportanceCritical:
		return 0
	case ImportanceHigh:
		return 1
	default:
		return 2
	}
}

type Kind string

const (
	KindFocus Kind = "focus"
	KindHabit Kind = "habit"
	KindGoal  Kind = "goal"
	KindTask  Kind = "task"
)

func (k Kind) Valid() bool {
	switch k {
	case KindFocus, KindHabit, KindGoal, KindTask:
		return true
	}
	return false
}

type Status string

const (
	StatusTodo Status = "todo"
	StatusDone Status = "done"
)

type TimerMode string

const (
	ModeCountdown TimerMode = "countdown"
	ModeCountup   TimerMode = "countup"
)

type Repeat string

const (
	RepeatDaily   Repeat = "daily"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
)

// HistoryEntry records one progress, reset or completion event.
type HistoryEntry struct {
	At     time.Time `json:"at"`
	Action string    `json:"action"`
	Value  float64   `json:"value,omitempty"`
	Note   string    `json:"note,omitempty"`
}

const (
	ActionProgress = "progress"
	ActionReset    = "reset"
	ActionComplete = "complete"
)

// Session-end notes, matching the strings the history records carry.
// ManualCompleteNote marks a session finished by hand, TimerCompleteNote
// one whose countdown ran to zero.
const (
	ManualCompleteNote = "手动完成"
	TimerCompleteNote  = "计时完成"
)

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	GroupID     string     `json:"groupId"`
	Importance  Importance `json:"importance"`
	Kind        Kind       `json:"type"`
	DueAt       *time.Time `json:"dueAt,omitempty"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	TimerMode          TimerMode `json:"timerMode,omitempty"`
	DurationMinutes    int       `json:"durationMinutes,omitempty"`
	ActualFocusMinutes int       `json:"actualFocusMinutes,omitempty"`
	TotalFocusMinutes  int       `json:"totalFocusMinutes,omitempty"`

	Remind     bool `json:"remind,omitempty"`
	RemindHour int  `json:"remindHour,omitempty"`

	Repeat        Repeat         `json:"repeat,omitempty"`
	TargetValue   float64        `json:"targetValue,omitempty"`
	TargetUnit    string         `json:"targetUnit,omitempty"`
	ProgressValue float64        `json:"progressValue,omitempty"`
	CancelReasons []string       `json:"cancelReasons,omitempty"`
	History       []HistoryEntry `json:"history,omitempty"`

	BackgroundImage string `json:"backgroundImage,omitempty"`
}

// TrashItem is a deleted task held for a retention window before it is
// purged for good.
type TrashItem struct {
	Task
	DeletedAt     time.Time `json:"deletedAt"`
	TrashUniqueID string    `json:"trashUniqueId"`
}

func (t TrashItem) Expired(now time.Time, retention time.Duration) bool {
	return now.Sub(t.DeletedAt) > retention
}

// Done reports whether the task counts as completed.
func (t Task) Done() bool { return t.Status == StatusDone }

// Toggle flips the checkbox. Goal tasks accumulate a fixed step of 1
// per toggle and only flip to done at or above their target; every
// other kind switches status directly, stamping or clearing
// completedAt as it goes.
func (t Task) Toggle(now time.Time) Task {
	if t.Kind == KindGoal && t.Status == StatusTodo {
		return t.AddProgress(1, "", now)
	}
	if t.Status == StatusDone {
		t.Status = StatusTodo
		t.CompletedAt = nil
		return t
	}
	t.Status = StatusDone
	at := now
	t.CompletedAt = &at
	return t
}

// AddProgress adds delta to the progress value and appends a history
// entry. Goal tasks flip to done once the target is reached.
func (t Task) AddProgress(delta float64, note string, now time.Time) Task {
	t.ProgressValue += delta
	t.History = append(t.History, HistoryEntry{At: now, Action: ActionProgress, Value: delta, Note: note})
	if t.Kind == KindGoal && t.TargetValue > 0 && t.ProgressValue >= t.TargetValue && t.Status != StatusDone {
		t.Status = StatusDone
		at := now
		t.CompletedAt = &at
	}
	return t
}

// ResetProgress clears accumulated progress and reopens the task.
func (t Task) ResetProgress(now time.Time) Task {
	t.ProgressValue = 0
	t.Status = StatusTodo
	t.CompletedAt = nil
	t.History = append(t.History, HistoryEntry{At: now, Action: ActionReset})
	return t
}

// CommitFocus adds a finished timer session's minutes to the running
// total. When complete is set the task itself is stamped done.
func (t Task) CommitFocus(minutes int, note string, now time.Time, complete bool) Task {
	if minutes > 0 {
		t.ActualFocusMinutes = minutes
		t.TotalFocusMinutes += minutes
	}
	if complete {
		t.Status = StatusDone
		at := now
		t.CompletedAt = &at
	}
	t.History = append(t.History, HistoryEntry{At: now, Action: ActionComplete, Value: float64(minutes), Note: note})
	return t
}

// RecordCancel commits the interrupted session's minutes and keeps the
// reason for the statistics page. Task status is left untouched.
func (t Task) RecordCancel(minutes int, reason string, now time.Time) Task {
	if minutes > 0 {
		t.ActualFocusMinutes = minutes
		t.TotalFocusMinutes += minutes
	}
	t.CancelReasons = append(t.CancelReasons, reason)
	t.History = append(t.History, HistoryEntry{At: now, Action: ActionProgress, Value: float64(minutes), Note: reason})
	return t
}

// ToTrash stamps the task into a trash item.
func (t Task) ToTrash(uniqueID string, now time.Time) TrashItem {
	return TrashItem{Task: t, DeletedAt: now, TrashUniqueID: uniqueID}
}
