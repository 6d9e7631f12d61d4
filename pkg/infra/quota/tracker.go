package quota

import (
	"sync"
	"time"
)

// Tracker counts inference calls against a rolling window. The window is
// not calendar-aligned: it starts at construction or at the last reset and
// elapses exactly one window length later. The reset is lazy; there is no
// background timer.
type Tracker struct {
	mu          sync.Mutex
	count       int
	windowStart time.Time
	window      time.Duration
	now         func() time.Time
}

func NewTracker(window time.Duration) *Tracker {
	return NewTrackerWithClock(window, time.Now)
}

func NewTrackerWithClock(window time.Duration, now func() time.Time) *Tracker {
	return &Tracker{
		window:      window,
		windowStart: now(),
		now:         now,
	}
}

// TryConsume is the single enforcement point. It atomically checks the
// counter against max and increments it, so concurrent callers can never
// push the count past max.
func (t *Tracker) TryConsume(max int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.checkAndReset()
	if t.count >= max {
		return false
	}
	t.count++
	return true
}

// Remaining never returns a negative value.
func (t *Tracker) Remaining(max int) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.checkAndReset()
	if remaining := max - t.count; remaining > 0 {
		return remaining
	}
	return 0
}

// Usage reports the current count and window start for stats endpoints.
func (t *Tracker) Usage() (count int, windowStart time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.checkAndReset()
	return t.count, t.windowStart
}

// checkAndReset must be called with t.mu held. Idempotent within a window.
func (t *Tracker) checkAndReset() {
	if t.now().Sub(t.windowStart) >= t.window {
		t.count = 0
		t.windowStart = t.now()
	}
}
