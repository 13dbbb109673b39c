package dto

type CreateInput struct {
	Username string
	Name     string
	Color    string
	ParentID string
}

type RenameInput struct {
	Username string
	GroupID  string
	Name     string
	Color    string
}

type PinInput struct {
	Username string
	GroupID  string
	Pinned   bool
}

// DropInput carries a drag gesture already resolved by the caller to
// the half of the target it was released on.
type DropInput struct {
	Username  string
	DraggedID string
	TargetID  string
	Below     bool
}

type PromoteInput struct {
	Username string
	GroupID  string
}

type DeleteInput struct {
	Username string
	GroupID  string
	Policy   string
}

type GroupOutput struct {
	ID       string
	Name     string
	Color    string
	ParentID string
	Pinned   bool
	Order    float64
	Depth    int
}

type DeleteOutput struct {
	RemovedGroupIDs []string
	MovedTasks      int
	TrashedTasks    int
}
