// Package timer implements the break countdown.
package timer

import (
	"sync"
	"time"
)

// Status is the countdown state
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
	StatusExpired Status = "expired"
)

// Snapshot is a point-in-time view of the timer
type Snapshot struct {
	Status    Status
	StartedAt time.Time // zero unless running
	Interval  time.Duration
	Remaining time.Duration
}

// Timer counts down one break interval at a time. Safe for concurrent use.
type Timer struct {
	mu        sync.Mutex
	now       func() time.Time
	status    Status
	startedAt time.Time
	interval  time.Duration
	remaining time.Duration
	// configured is the interval the next Start or Reset uses
	configured time.Duration
}

// New creates an idle timer with the given interval
func New(interval time.Duration) *Timer {
	return NewWithClock(interval, time.Now)
}

// NewWithClock creates an idle timer that reads time from now
func NewWithClock(interval time.Duration, now func() time.Time) *Timer {
	return &Timer{
		now:        now,
		status:     StatusIdle,
		interval:   interval,
		remaining:  interval,
		configured: interval,
	}
}

// Minutes converts a whole-minute interval to a duration
func Minutes(m int) time.Duration {
	return time.Duration(m) * time.Minute
}

// Snapshot returns the current state with an up-to-date remaining time
func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		Status:    t.status,
		StartedAt: t.startedAt,
		Interval:  t.interval,
		Remaining: t.remainingLocked(),
	}
}

// Remaining returns the time left in the current interval
func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remainingLocked()
}

// Start begins a fresh interval from idle or paused. Other states are left alone.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != StatusIdle && t.status != StatusPaused {
		return
	}
	t.status = StatusRunning
	t.startedAt = t.now()
	t.interval = t.configured
	t.remaining = t.configured
}

// Pause freezes a running timer
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != StatusRunning {
		return
	}
	t.remaining = t.remainingLocked()
	t.status = StatusPaused
	t.startedAt = time.Time{}
}

// Reset returns to idle with a full interval
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked()
}

// ResetAndStart resets and immediately starts a new interval
func (t *Timer) ResetAndStart() {
	t.mu.Lock()
	t.resetLocked()
	t.mu.Unlock()
	t.Start()
}

// SetInterval changes the interval. A running timer restarts with the new interval.
func (t *Timer) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.configured = d
	t.interval = d
	t.remaining = d
	if t.status == StatusRunning {
		t.startedAt = t.now()
	}
}

// Tick refreshes a running timer. It returns true exactly once, on the tick
// that moves the timer into StatusExpired.
func (t *Timer) Tick() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != StatusRunning {
		return false
	}
	t.remaining = t.remainingLocked()
	if t.remaining == 0 {
		t.status = StatusExpired
		t.startedAt = time.Time{}
		return true
	}
	return false
}

func (t *Timer) resetLocked() {
	t.status = StatusIdle
	t.startedAt = time.Time{}
	t.interval = t.configured
	t.remaining = t.configured
}

func (t *Timer) remainingLocked() time.Duration {
	if t.status != StatusRunning || t.startedAt.IsZero() {
		return t.remaining
	}
	left := t.interval - t.now().Sub(t.startedAt)
	if left < 0 {
		return 0
	}
	return left
}
