package dto

import "time"

type CreateInput struct {
	Username        string
	Title           string
	Description     string
	GroupID         string
	Importance      string
	Kind            string
	DueAt           *time.Time
	TimerMode       string
	DurationMinutes int
	Repeat          string
	TargetValue     float64
	TargetUnit      string
	Remind          bool
	RemindHour      int
}

// EditInput updates the form-editable fields only. Timer and progress
// fields change through their own operations.
type EditInput struct {
	Username    string
	TaskID      string
	Title       string
	Description string
	GroupID     string
	Importance  string
	Kind        string
	DueAt       *time.Time
	ClearDueAt  bool
}

type ToggleInput struct {
	Username string
	TaskID   string
}

type ProgressInput struct {
	Username string
	TaskID   string
	Delta    float64
	Note     string
}

type MoveInput struct {
	Username string
	TaskID   string
	GroupID  string
}

type DeleteInput struct {
	Username string
	TaskID   string
}

type RestoreInput struct {
	Username      string
	TrashUniqueID string
}

type CommitFocusInput struct {
	Username string
	TaskID   string
	Minutes  int
	Note     string
	Complete bool
}

type CancelFocusInput struct {
	Username string
	TaskID   string
	Minutes  int
	Reason   string
}

type TaskOutput struct {
	ID                 string
	Title              string
	Description        string
	GroupID            string
	Importance         string
	Kind               string
	DueAt              *time.Time
	Status             string
	CreatedAt          time.Time
	CompletedAt        *time.Time
	TimerMode          string
	DurationMinutes    int
	ActualFocusMinutes int
	TotalFocusMinutes  int
	Repeat             string
	TargetValue        float64
	TargetUnit         string
	ProgressValue      float64
	CancelReasons      []string
	Remind             bool
	RemindHour         int
}

type TrashItemOutput struct {
	TaskOutput
	DeletedAt     time.Time
	TrashUniqueID string
}
