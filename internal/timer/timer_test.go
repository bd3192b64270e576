package timer

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTimer(interval time.Duration) (*Timer, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)}
	return NewWithClock(interval, clock.Now), clock
}

func TestTimer_StartCountsDown(t *testing.T) {
	tm, clock := newTestTimer(Minutes(60))

	if got := tm.Snapshot().Status; got != StatusIdle {
		t.Fatalf("initial status = %v, want idle", got)
	}

	tm.Start()
	clock.Advance(10 * time.Minute)

	snap := tm.Snapshot()
	if snap.Status != StatusRunning {
		t.Errorf("status = %v, want running", snap.Status)
	}
	if snap.Remaining != 50*time.Minute {
		t.Errorf("remaining = %v, want 50m", snap.Remaining)
	}
}

func TestTimer_PauseFreezesRemaining(t *testing.T) {
	tm, clock := newTestTimer(Minutes(40))
	tm.Start()
	clock.Advance(15 * time.Minute)
	tm.Pause()
	clock.Advance(time.Hour)

	snap := tm.Snapshot()
	if snap.Status != StatusPaused {
		t.Errorf("status = %v, want paused", snap.Status)
	}
	if snap.Remaining != 25*time.Minute {
		t.Errorf("remaining = %v, want 25m", snap.Remaining)
	}
	if !snap.StartedAt.IsZero() {
		t.Error("StartedAt should be cleared while paused")
	}
}

func TestTimer_StartFromPausedRestartsInterval(t *testing.T) {
	tm, clock := newTestTimer(Minutes(40))
	tm.Start()
	clock.Advance(15 * time.Minute)
	tm.Pause()
	tm.Start()

	if got := tm.Remaining(); got != 40*time.Minute {
		t.Errorf("remaining after restart = %v, want full 40m", got)
	}
}

func TestTimer_TickExpiresOnce(t *testing.T) {
	tm, clock := newTestTimer(2 * time.Second)
	tm.Start()

	clock.Advance(time.Second)
	if tm.Tick() {
		t.Fatal("Tick() reported expiry early")
	}

	clock.Advance(2 * time.Second)
	if !tm.Tick() {
		t.Fatal("Tick() did not report expiry")
	}
	if tm.Tick() {
		t.Fatal("Tick() reported expiry twice")
	}

	snap := tm.Snapshot()
	if snap.Status != StatusExpired || snap.Remaining != 0 {
		t.Errorf("snapshot = %+v, want expired with 0 remaining", snap)
	}
}

func TestTimer_StartIgnoredWhileRunningOrExpired(t *testing.T) {
	tm, clock := newTestTimer(time.Minute)
	tm.Start()
	clock.Advance(20 * time.Second)
	tm.Start()
	if got := tm.Remaining(); got != 40*time.Second {
		t.Errorf("Start() while running reset the countdown: remaining = %v", got)
	}

	clock.Advance(time.Minute)
	tm.Tick()
	tm.Start()
	if got := tm.Snapshot().Status; got != StatusExpired {
		t.Errorf("Start() from expired changed status to %v", got)
	}

	tm.ResetAndStart()
	if got := tm.Snapshot(); got.Status != StatusRunning || got.Remaining != time.Minute {
		t.Errorf("ResetAndStart() = %+v, want running with full interval", got)
	}
}

func TestTimer_SetInterval(t *testing.T) {
	tests := []struct {
		name       string
		prepare    func(tm *Timer, clock *fakeClock)
		wantStatus Status
	}{
		{
			name:       "idle just updates",
			prepare:    func(tm *Timer, clock *fakeClock) {},
			wantStatus: StatusIdle,
		},
		{
			name: "running restarts",
			prepare: func(tm *Timer, clock *fakeClock) {
				tm.Start()
				clock.Advance(5 * time.Minute)
			},
			wantStatus: StatusRunning,
		},
		{
			name: "paused keeps paused",
			prepare: func(tm *Timer, clock *fakeClock) {
				tm.Start()
				clock.Advance(5 * time.Minute)
				tm.Pause()
			},
			wantStatus: StatusPaused,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm, clock := newTestTimer(Minutes(60))
			tt.prepare(tm, clock)

			tm.SetInterval(Minutes(90))

			snap := tm.Snapshot()
			if snap.Status != tt.wantStatus {
				t.Errorf("status = %v, want %v", snap.Status, tt.wantStatus)
			}
			if snap.Interval != 90*time.Minute || snap.Remaining != 90*time.Minute {
				t.Errorf("interval/remaining = %v/%v, want 90m/90m", snap.Interval, snap.Remaining)
			}

			tm.Reset()
			if got := tm.Remaining(); got != 90*time.Minute {
				t.Errorf("Reset() after SetInterval remaining = %v, want 90m", got)
			}
		})
	}
}

func TestTimer_SetIntervalRejectsNonPositive(t *testing.T) {
	tm, _ := newTestTimer(Minutes(60))
	tm.SetInterval(0)
	if got := tm.Remaining(); got != time.Hour {
		t.Errorf("remaining = %v, want unchanged 1h", got)
	}
}
