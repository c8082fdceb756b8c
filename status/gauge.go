package status

import (
	"math"
	"sync/atomic"
	"unicode/utf8"
)

// MaxLabelLen caps stored labels in bytes so HUD rows keep a fixed width
const MaxLabelLen = 32

// Gauge is a float64 reading such as a layer gain in dB or the tempo
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Set(v float64) {
	g.bits.Store(math.Float64bits(v))
}

func (g *Gauge) Load() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Label is a short text reading such as the current tier name
// Values longer than MaxLabelLen are cut on a rune boundary, so pack
// and tier names with accents never render as broken glyphs
type Label struct {
	v atomic.Value
}

func (l *Label) Store(s string) {
	if len(s) > MaxLabelLen {
		cut := MaxLabelLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	l.v.Store(s)
}

func (l *Label) Load() string {
	s, _ := l.v.Load().(string)
	return s
}
