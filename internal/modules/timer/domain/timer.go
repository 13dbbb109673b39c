package domain

import (
	"time"

	taskdomain "taskdeck/internal/modules/task/domain"
)

// Timer is the single active focus session. Time accounting is pure
// wall-clock arithmetic: a running timer carries its start timestamp
// and every pause folds the finished segment into AccumulatedSeconds,
// so elapsed time survives process restarts without a background
// goroutine.
type Timer struct {
	TaskID             string               `json:"taskId"`
	Mode               taskdomain.TimerMode `json:"mode"`
	TotalTargetSeconds int                  `json:"totalTargetSeconds"`
	Running            bool                 `json:"running"`
	StartedAt          *time.Time           `json:"startedAt,omitempty"`
	AccumulatedSeconds int                  `json:"accumulatedSeconds"`
}

// New configures a timer for a task. durationMinutes of zero falls
// back to defaultMinutes; an unset mode falls back to countdown.
func New(taskID string, mode taskdomain.TimerMode, durationMinutes, defaultMinutes int) Timer {
	if durationMinutes <= 0 {
		durationMinutes = defaultMinutes
	}
	if mode != taskdomain.ModeCountup {
		mode = taskdomain.ModeCountdown
	}
	return Timer{
		TaskID:             taskID,
		Mode:               mode,
		TotalTargetSeconds: durationMinutes * 60,
	}
}

// Start begins or resumes the timer. Accumulated seconds from earlier
// segments are preserved.
func (t Timer) Start(now time.Time) Timer {
	if t.Running {
		return t
	}
	t.Running = true
	at := now
	t.StartedAt = &at
	return t
}

// Pause folds the running segment into the accumulated total.
func (t Timer) Pause(now time.Time) Timer {
	if !t.Running {
		return t
	}
	t.AccumulatedSeconds += t.segmentSeconds(now)
	t.Running = false
	t.StartedAt = nil
	return t
}

func (t Timer) segmentSeconds(now time.Time) int {
	if t.StartedAt == nil {
		return 0
	}
	seconds := int(now.Sub(*t.StartedAt).Seconds())
	if seconds < 0 {
		return 0
	}
	return seconds
}

// ElapsedSeconds is the total time spent so far, paused or running.
func (t Timer) ElapsedSeconds(now time.Time) int {
	if t.Running {
		return t.AccumulatedSeconds + t.segmentSeconds(now)
	}
	return t.AccumulatedSeconds
}

// RemainingSeconds applies only to countdown mode and may go negative
// between ticks.
func (t Timer) RemainingSeconds(now time.Time) int {
	return t.TotalTargetSeconds - t.ElapsedSeconds(now)
}

// Finished reports whether a countdown has run out. Countup timers
// never finish on their own.
func (t Timer) Finished(now time.Time) bool {
	return t.Mode == taskdomain.ModeCountdown && t.RemainingSeconds(now) <= 0
}

// CommitMinutes converts elapsed seconds to whole minutes, rounding
// up so even a one-second session commits one minute.
func (t Timer) CommitMinutes(now time.Time) int {
	seconds := t.ElapsedSeconds(now)
	return (seconds + 59) / 60
}

// TargetMinutes is the configured session length, used as the commit
// fallback when a countdown completes with zero recorded seconds.
func (t Timer) TargetMinutes() int {
	return t.TotalTargetSeconds / 60
}
