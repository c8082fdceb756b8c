package engine

import (
	"sync/atomic"
	"time"
)

// FrameClock converts wall-clock readings into per-frame deltas for Scheduler.Tick
// Paused time is swallowed so timers resume where they stopped
type FrameClock struct {
	tp       TimeProvider
	last     time.Time
	maxDelta time.Duration
	paused   atomic.Bool
}

// NewFrameClock creates a clock starting at tp.Now()
// maxDelta clamps a single frame after a stall; zero disables clamping
func NewFrameClock(tp TimeProvider, maxDelta time.Duration) *FrameClock {
	return &FrameClock{
		tp:       tp,
		last:     tp.Now(),
		maxDelta: maxDelta,
	}
}

// Delta returns the time since the previous call, zero while paused
func (c *FrameClock) Delta() time.Duration {
	now := c.tp.Now()
	dt := now.Sub(c.last)
	c.last = now

	if c.paused.Load() || dt < 0 {
		return 0
	}
	if c.maxDelta > 0 && dt > c.maxDelta {
		dt = c.maxDelta
	}
	return dt
}

// Pause stops time advancement
func (c *FrameClock) Pause() {
	c.paused.Store(true)
}

// Resume continues time advancement
func (c *FrameClock) Resume() {
	c.paused.Store(false)
}

// TogglePause flips pause state, returns true if now paused
func (c *FrameClock) TogglePause() bool {
	for {
		old := c.paused.Load()
		if c.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// IsPaused returns current pause state
func (c *FrameClock) IsPaused() bool {
	return c.paused.Load()
}
