package engine

import (
	"sync/atomic"
	"time"
)

// ManualClock is a TimeProvider that moves only when stepped
// Frontend tests drive the frame loop with it instead of wall time
type ManualClock struct {
	start   time.Time
	elapsed atomic.Int64
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{start: start}
}

// Now implements TimeProvider
func (c *ManualClock) Now() time.Time {
	return c.start.Add(c.Elapsed())
}

// Elapsed returns the total time stepped since construction
func (c *ManualClock) Elapsed() time.Duration {
	return time.Duration(c.elapsed.Load())
}

func (c *ManualClock) Advance(d time.Duration) {
	if d > 0 {
		c.elapsed.Add(int64(d))
	}
}

// Step calls fn once per frame after advancing the clock by interval,
// until at least d has passed
func (c *ManualClock) Step(d, interval time.Duration, fn func()) {
	if interval <= 0 {
		return
	}
	for done := time.Duration(0); done < d; done += interval {
		c.Advance(interval)
		fn()
	}
}
