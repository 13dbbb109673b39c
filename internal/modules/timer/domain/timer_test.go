package domain

import (
	"testing"
	"time"

	taskdomain "taskdeck/internal/modules/task/domain"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	timer := New("t1", "", 0, 25)
	if timer.Mode != taskdomain.ModeCountdown {
		t.Errorf("mode = %q, want countdown default", timer.Mode)
	}
	if timer.TotalTargetSeconds != 25*60 {
		t.Errorf("target = %d, want 1500", timer.TotalTargetSeconds)
	}
}

func TestPauseAccumulatesSegments(t *testing.T) {
	t.Parallel()

	timer := New("t1", taskdomain.ModeCountdown, 25, 25)
	timer = timer.Start(t0)
	timer = timer.Pause(t0.Add(90 * time.Second))
	if timer.AccumulatedSeconds != 90 {
		t.Fatalf("accumulated = %d, want 90", timer.AccumulatedSeconds)
	}

	timer = timer.Start(t0.Add(5 * time.Minute))
	now := t0.Add(5*time.Minute + 30*time.Second)
	if got := timer.ElapsedSeconds(now); got != 120 {
		t.Fatalf("elapsed = %d, want 120 across segments", got)
	}
}

func TestFinishedOnlyInCountdown(t *testing.T) {
	t.Parallel()

	countdown := New("t1", taskdomain.ModeCountdown, 1, 25).Start(t0)
	if countdown.Finished(t0.Add(59 * time.Second)) {
		t.Error("finished before target")
	}
	if !countdown.Finished(t0.Add(60 * time.Second)) {
		t.Error("not finished at target")
	}

	countup := New("t1", taskdomain.ModeCountup, 1, 25).Start(t0)
	if countup.Finished(t0.Add(time.Hour)) {
		t.Error("countup must never auto-finish")
	}
}

func TestCommitMinutesRoundsUp(t *testing.T) {
	t.Parallel()

	timer := New("t1", taskdomain.ModeCountdown, 25, 25).Start(t0)
	cases := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 0},
		{1 * time.Second, 1},
		{60 * time.Second, 1},
		{61 * time.Second, 2},
		{5 * time.Second, 1},
	}
	for _, tc := range cases {
		if got := timer.CommitMinutes(t0.Add(tc.elapsed)); got != tc.want {
			t.Errorf("CommitMinutes after %v = %d, want %d", tc.elapsed, got, tc.want)
		}
	}
}
