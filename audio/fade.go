package audio

import (
	"time"

	"github.com/lixenwraith/chest-sort/engine"
)

// Leg is one layer's part of a transition
type Leg struct {
	Layer    string
	Target   float64 // dB
	Duration time.Duration
}

// leg is a Leg bound to its layer and start gain
type leg struct {
	l        *layer
	from, to float64
	dur      time.Duration
	done     bool
}

// gainAt interpolates linearly in dB space; zero or negative duration snaps to target
func (lg *leg) gainAt(elapsed time.Duration) (float64, bool) {
	if lg.dur <= 0 || elapsed >= lg.dur {
		return lg.to, true
	}
	if elapsed <= 0 {
		return lg.from, false
	}
	frac := float64(elapsed) / float64(lg.dur)
	return lg.from + (lg.to-lg.from)*frac, false
}

// crossfade runs its legs concurrently from a shared start instant
// Each leg terminates at its own duration, independent of the others
type crossfade struct {
	seq     *Sequencer
	key     string
	group   engine.Group
	legs    []Leg
	bound   []*leg
	startAt time.Duration
	running bool
}

// begin captures start gains, claims the layers and applies the first sample
func (cf *crossfade) begin(startAt time.Duration) {
	cf.startAt = startAt
	cf.running = true
	cf.bound = cf.bound[:0]
	for _, l := range cf.legs {
		ly := cf.seq.layers[l.Layer]
		ly.owner = cf
		cf.bound = append(cf.bound, &leg{l: ly, from: ly.gain, to: ClampGain(l.Target), dur: l.Duration})
	}
}

// Step implements engine.Task; gains are a function of scheduler time, not accumulated dt
func (cf *crossfade) Step(time.Duration) bool {
	return cf.apply(cf.seq.sched.Now())
}

func (cf *crossfade) apply(now time.Duration) bool {
	elapsed := now - cf.startAt
	all := true
	for _, lg := range cf.bound {
		if lg.done {
			continue
		}
		// A newer transition took this layer over
		if lg.l.owner != cf {
			lg.done = true
			continue
		}
		g, done := lg.gainAt(elapsed)
		cf.seq.write(lg.l, g)
		if done {
			lg.done = true
			lg.l.owner = nil
		} else {
			all = false
		}
	}
	if all {
		cf.seq.finish(cf)
	}
	return all
}
