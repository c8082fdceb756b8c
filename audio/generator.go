package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave for a fixed number of samples
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a finite oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		val := waveSample(o.wave, o.phase, o.rng)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

func waveSample(w WaveType, phase float64, rng *rand.Rand) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveNoise:
		return rng.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// envelope applies linear attack and release to a finite stream
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s over duration with attack and release ramps
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			vol = math.Min(vol, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// BeatLoop is an endless tempo-locked loop: a kick on every beat under a held bass note
// Gameplay layers differ by root frequency and wave so crossfades are audible; root 0 plays the kick alone
type BeatLoop struct {
	rate     beep.SampleRate
	beat     int // Samples per beat
	kickLen  int
	root     float64
	wave     WaveType
	accent   int // Beat within the bar that gets a fifth above the root, 0 for none
	bar      int
	pos      int
	phase    float64
	rng      *rand.Rand
	amp      float64
	kickOnly bool
}

// NewBeatLoop creates a loop on grid
func NewBeatLoop(grid Grid, rate beep.SampleRate, root float64, wave WaveType, accent int) *BeatLoop {
	beat := rate.N(grid.SecPerBeat())
	return &BeatLoop{
		rate:     rate,
		beat:     beat,
		kickLen:  rate.N(100 * time.Millisecond),
		root:     root,
		wave:     wave,
		accent:   accent,
		bar:      beat * grid.BeatsPerBar,
		rng:      rand.New(rand.NewSource(int64(root))),
		amp:      0.12,
		kickOnly: root <= 0,
	}
}

func (g *BeatLoop) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		beatPos := g.pos % g.beat
		beatIdx := (g.pos%g.bar)/g.beat + 1
		t := float64(beatPos) / float64(g.rate)

		kick := 0.0
		if beatPos < g.kickLen {
			env := 1 - float64(beatPos)/float64(g.kickLen)
			kick = 0.3 * env * math.Sin(2*math.Pi*60*(1+2*env)*t)
		}

		freq := g.root
		if g.accent > 0 && beatIdx == g.accent {
			freq *= 1.5
		}
		g.phase += freq / float64(g.rate)
		g.phase -= math.Floor(g.phase)
		tone := 0.0
		if !g.kickOnly {
			tone = g.amp * waveSample(g.wave, g.phase, g.rng)
		}

		s := kick + tone
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *BeatLoop) Err() error { return nil }

// NewDrumFill builds a one-bar snare roll: noise bursts on every eighth note, louder toward the end
func NewDrumFill(grid Grid, rate beep.SampleRate, duration time.Duration) beep.Streamer {
	eighth := grid.SecPerBeat() / 2
	hits := int(duration / eighth)
	if hits < 1 {
		hits = 1
	}
	parts := make([]beep.Streamer, 0, hits)
	for i := 0; i < hits; i++ {
		hit := NewEnvelope(NewOscillator(0, eighth, WaveNoise, rate), eighth, 2*time.Millisecond, eighth*3/4, rate)
		parts = append(parts, withGain(hit, 0.2+0.6*float64(i+1)/float64(hits)))
	}
	return beep.Seq(parts...)
}

// NewCueTone builds a short feedback blip
func NewCueTone(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(freq, duration, wave, rate)
	return withGain(NewEnvelope(osc, duration, 5*time.Millisecond, duration/2, rate), 0.3)
}

// withGain scales linear amplitude; zero or below is silent
func withGain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
