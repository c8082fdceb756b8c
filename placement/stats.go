package placement

import (
	"sync/atomic"

	"github.com/lixenwraith/chest-sort/status"
)

// Stats holds session-scoped counters
// Both counters only increase; Reset is reserved for an explicit restart
type Stats struct {
	correct *atomic.Int64
	errors  *atomic.Int64
}

// NewStats binds counters to reg, creating a private registry when nil
func NewStats(reg *status.Registry) *Stats {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Stats{
		correct: reg.Ints.Get(status.KeyCorrect),
		errors:  reg.Ints.Get(status.KeyError),
	}
}

// Correct returns accepted placements
func (s *Stats) Correct() int64 { return s.correct.Load() }

// Error returns rejected placements
func (s *Stats) Error() int64 { return s.errors.Load() }

// Total returns every evaluation counted
func (s *Stats) Total() int64 { return s.Correct() + s.Error() }

// Reset zeroes both counters
func (s *Stats) Reset() {
	s.correct.Store(0)
	s.errors.Store(0)
}
