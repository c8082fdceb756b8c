package status

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Metric keys written by the session components
const (
	KeyCorrect      = "placement.correct"
	KeyError        = "placement.error"
	KeyTier         = "progression.tier"
	KeyOutstanding  = "progression.outstanding"
	KeyShortages    = "progression.shortages"
	KeyCrossfades   = "audio.crossfades"
	KeyFills        = "audio.fills"
	KeyBPM          = "audio.bpm"
	KeyEventsDrop   = "event.dropped"
	KeyGainPrefix   = "audio.gain."
	KeyAudioBackend = "audio.backend"
	KeyAudioMuted   = "audio.muted"
	KeyServicesUp   = "services.running"
)

// Registry is the central metrics facade
// Components cache pointers during construction and write atomics directly
type Registry struct {
	Bools  *Table[atomic.Bool]
	Ints   *Table[atomic.Int64]
	Gauges *Table[Gauge]
	Labels *Table[Label]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewTable[atomic.Bool](),
		Ints:   NewTable[atomic.Int64](),
		Gauges: NewTable[Gauge](),
		Labels: NewTable[Label](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Len() + r.Ints.Len() + r.Gauges.Len() + r.Labels.Len()
}

// Entry is one formatted metric
type Entry struct {
	Key   string
	Value string
}

// Snapshot formats every metric, grouped by type and sorted by key within each group
func (r *Registry) Snapshot() []Entry {
	out := make([]Entry, 0, r.TotalCount())
	r.Bools.Each("", func(k string, v *atomic.Bool) {
		out = append(out, Entry{k, strconv.FormatBool(v.Load())})
	})
	r.Ints.Each("", func(k string, v *atomic.Int64) {
		out = append(out, Entry{k, strconv.FormatInt(v.Load(), 10)})
	})
	r.Gauges.Each("", func(k string, v *Gauge) {
		out = append(out, Entry{k, fmt.Sprintf("%.2f", v.Load())})
	})
	r.Labels.Each("", func(k string, v *Label) {
		out = append(out, Entry{k, v.Load()})
	})
	return out
}

// Gains returns the current gain of every music layer in dB, keyed by layer name
func (r *Registry) Gains() map[string]float64 {
	out := make(map[string]float64)
	r.Gauges.Each(KeyGainPrefix, func(k string, v *Gauge) {
		out[strings.TrimPrefix(k, KeyGainPrefix)] = v.Load()
	})
	return out
}
