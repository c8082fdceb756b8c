package audio

import (
	"fmt"
	"time"

	"github.com/lixenwraith/chest-sort/parameter"
)

// Grid is a fixed tempo bar/beat grid
type Grid struct {
	BPM         float64
	BeatsPerBar int
}

// DefaultGrid is 120 bpm in 4/4
func DefaultGrid() Grid {
	return Grid{BPM: parameter.DefaultBPM, BeatsPerBar: parameter.BeatsPerBar}
}

// Validate checks tempo bounds
func (g Grid) Validate() error {
	if g.BPM < parameter.MinBPM || g.BPM > parameter.MaxBPM {
		return fmt.Errorf("bpm %.1f outside [%.0f, %.0f]", g.BPM, parameter.MinBPM, parameter.MaxBPM)
	}
	if g.BeatsPerBar <= 0 {
		return fmt.Errorf("beats per bar %d must be positive", g.BeatsPerBar)
	}
	return nil
}

// SecPerBeat is 60/bpm as a duration
func (g Grid) SecPerBeat() time.Duration {
	return time.Duration(60 / g.BPM * float64(time.Second))
}

// SecPerBar is SecPerBeat * BeatsPerBar
func (g Grid) SecPerBar() time.Duration {
	return g.SecPerBeat() * time.Duration(g.BeatsPerBar)
}

// Beats converts a beat count to a duration
func (g Grid) Beats(n int) time.Duration {
	return g.SecPerBeat() * time.Duration(n)
}

// NextBarBoundary returns ceil(t/secPerBar)*secPerBar; a time on a boundary maps to itself
func (g Grid) NextBarBoundary(t time.Duration) time.Duration {
	bar := g.SecPerBar()
	if bar <= 0 || t <= 0 {
		return max(t, 0)
	}
	return (t + bar - 1) / bar * bar
}
