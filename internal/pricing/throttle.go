package pricing

import (
	"context"
	"sync"
	"time"
)

// Throttle enforces a minimum delay between outbound API calls and counts
// them. It is applied per call, not per item: an item served entirely from
// cache never touches the throttle.
type Throttle struct {
	lastCall time.Time
	interval time.Duration
	calls    int64
	mu       sync.Mutex
}

// NewThrottle creates a throttle with the given minimum inter-call interval.
func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Throttle{interval: interval}
}

// Wait blocks until the minimum interval since the previous call has
// elapsed, then records the call. It returns early if the context is
// canceled.
func (t *Throttle) Wait(ctx context.Context) error {
	t.mu.Lock()
	now := time.Now()
	wait := t.interval - now.Sub(t.lastCall)
	if wait < 0 {
		wait = 0
	}
	// Reserve the slot before sleeping so concurrent callers queue up
	// rather than stampede.
	t.lastCall = now.Add(wait)
	t.calls++
	t.mu.Unlock()

	if wait == 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Calls returns the number of outbound calls recorded so far.
func (t *Throttle) Calls() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}
