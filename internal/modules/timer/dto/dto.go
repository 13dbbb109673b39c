package dto

type OpenInput struct {
	Username string
	TaskID   string
}

type CancelInput struct {
	Username string
	// Reason may be empty, in which case the session is discarded
	// without committing minutes.
	Reason string
}

type StatusOutput struct {
	TaskID           string
	TaskTitle        string
	Mode             string
	Running          bool
	ElapsedSeconds   int
	RemainingSeconds int
	TargetSeconds    int
	Finished         bool
}

type CommitOutput struct {
	TaskID           string
	CommittedMinutes int
	Completed        bool
}
