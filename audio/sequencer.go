package audio

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/chest-sort/engine"
	"github.com/lixenwraith/chest-sort/event"
	"github.com/lixenwraith/chest-sort/parameter"
	"github.com/lixenwraith/chest-sort/status"
)

var (
	// ErrUnknownLayer reports a layer name not declared at construction
	ErrUnknownLayer = errors.New("unknown layer")

	// ErrOneShotLayer reports a fade requested on a trigger-only layer
	ErrOneShotLayer = errors.New("one-shot layer cannot fade")

	// ErrNotOneShot reports a trigger requested on a looping layer
	ErrNotOneShot = errors.New("layer is not one-shot")
)

// Options configures a Sequencer
type Options struct {
	Grid      Grid
	Layers    []LayerConfig // DefaultLayers when empty
	Mixer     Mixer         // MemoryMixer when nil
	Scheduler *engine.Scheduler
	Bus       *event.Bus
	Status    *status.Registry
}

// Sequencer owns layer gains and executes bar-aligned transitions cooperatively on the scheduler
// Not safe for concurrent use; the session owner serializes access
type Sequencer struct {
	grid   Grid
	mixer  Mixer
	sched  *engine.Scheduler
	bus    *event.Bus
	layers map[string]*layer
	order  []string

	// In-flight or pending work per transition key
	inflight map[string]*crossfade
	cues     map[string]engine.Group

	crossfades *atomic.Int64
	fills      *atomic.Int64
}

// NewSequencer declares the layers and pushes their initial gains to the mixer
func NewSequencer(opts Options) (*Sequencer, error) {
	if opts.Scheduler == nil {
		return nil, fmt.Errorf("audio: nil scheduler")
	}
	grid := opts.Grid
	if grid == (Grid{}) {
		grid = DefaultGrid()
	}
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}
	layers := opts.Layers
	if len(layers) == 0 {
		layers = DefaultLayers()
	}
	mixer := opts.Mixer
	if mixer == nil {
		mixer = NewMemoryMixer()
	}
	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}

	s := &Sequencer{
		grid:       grid,
		mixer:      mixer,
		sched:      opts.Scheduler,
		bus:        opts.Bus,
		layers:     make(map[string]*layer, len(layers)),
		inflight:   make(map[string]*crossfade),
		cues:       make(map[string]engine.Group),
		crossfades: reg.Ints.Get(status.KeyCrossfades),
		fills:      reg.Ints.Get(status.KeyFills),
	}
	reg.Gauges.Get(status.KeyBPM).Set(grid.BPM)

	for _, cfg := range layers {
		if cfg.Name == "" || cfg.Param == "" {
			return nil, fmt.Errorf("audio: layer needs name and param: %+v", cfg)
		}
		if _, dup := s.layers[cfg.Name]; dup {
			return nil, fmt.Errorf("audio: duplicate layer %q", cfg.Name)
		}
		s.layers[cfg.Name] = &layer{cfg: cfg, gauge: reg.Gauges.Get(status.KeyGainPrefix + cfg.Name)}
		s.order = append(s.order, cfg.Name)
	}
	s.applyInitial()
	return s, nil
}

func (s *Sequencer) applyInitial() {
	for _, name := range s.order {
		ly := s.layers[name]
		ly.owner = nil
		if !ly.cfg.OneShot {
			s.write(ly, ly.cfg.Gain)
		}
	}
}

// Grid returns the tempo grid
func (s *Sequencer) Grid() Grid { return s.grid }

// Layers returns layer names in declaration order
func (s *Sequencer) Layers() []string {
	return append([]string(nil), s.order...)
}

// Gain returns a layer's current gain in dB
func (s *Sequencer) Gain(name string) (float64, error) {
	ly, err := s.lookup(name, false)
	if err != nil {
		return 0, err
	}
	return ly.gain, nil
}

// SetGain writes a gain immediately, cancelling any transition that owns the layer
func (s *Sequencer) SetGain(name string, db float64) error {
	ly, err := s.lookup(name, false)
	if err != nil {
		return err
	}
	ly.owner = nil
	s.write(ly, ClampGain(db))
	return nil
}

// Trigger fires a one-shot layer
func (s *Sequencer) Trigger(name string) error {
	ly, ok := s.layers[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLayer, name)
	}
	if !ly.cfg.OneShot {
		return fmt.Errorf("%w: %s", ErrNotOneShot, name)
	}
	s.mixer.Trigger(ly.cfg.Param)
	return nil
}

// NextBarBoundary returns the next bar start at or after the current scheduler time
func (s *Sequencer) NextBarBoundary() time.Duration {
	return s.grid.NextBarBoundary(s.sched.Now())
}

// ScheduleCrossfade fades out to silence and in to unity concurrently over independent durations
// With alignToBar the fade starts at the next bar boundary, otherwise now
func (s *Sequencer) ScheduleCrossfade(out, in string, outDur, inDur time.Duration, alignToBar bool) error {
	return s.ScheduleTransition(pairKey(out, in), []Leg{
		{Layer: out, Target: parameter.GainSilent, Duration: outDur},
		{Layer: in, Target: parameter.GainUnity, Duration: inDur},
	}, alignToBar)
}

// ScheduleTransition runs any number of legs concurrently under key
// A transition already pending or running under the same key is superseded:
// its start timer is discarded and the new legs interpolate from the current gains
func (s *Sequencer) ScheduleTransition(key string, legs []Leg, alignToBar bool) error {
	if !alignToBar {
		return s.transitionAt(key, legs, s.sched.Now(), false)
	}
	return s.transitionAt(key, legs, s.NextBarBoundary(), true)
}

// transitionAt starts the legs at scheduler time at; a start already behind the clock
// interpolates from at so a late tick does not shift the fade
// deferred waits for the timer even when at is now
func (s *Sequencer) transitionAt(key string, legs []Leg, at time.Duration, deferred bool) error {
	for _, l := range legs {
		if _, err := s.lookup(l.Layer, false); err != nil {
			return err
		}
	}

	if prev, ok := s.inflight[key]; ok {
		s.sched.Cancel(prev.group)
		s.release(prev)
		log.Printf("[audio] %s superseded", key)
	}

	cf := &crossfade{
		seq:   s,
		key:   key,
		group: s.sched.NewGroup(),
		legs:  append([]Leg(nil), legs...),
	}
	s.inflight[key] = cf

	if !deferred && at <= s.sched.Now() {
		s.start(cf, at)
		return nil
	}
	s.sched.At(at, cf.group, func() { s.start(cf, at) })
	return nil
}

// ScheduleFillThenCrossfade waits until beat atBeat (1-based, counted from now), fires the fill,
// waits holdBeats more, then starts the crossfade on that beat
func (s *Sequencer) ScheduleFillThenCrossfade(fill string, atBeat, holdBeats int, out, in string, outDur, inDur time.Duration) error {
	fl, ok := s.layers[fill]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLayer, fill)
	}
	if !fl.cfg.OneShot {
		return fmt.Errorf("%w: %s", ErrNotOneShot, fill)
	}
	for _, name := range []string{out, in} {
		if _, err := s.lookup(name, false); err != nil {
			return err
		}
	}

	key := fill + ":" + pairKey(out, in)
	if g, ok := s.cues[key]; ok {
		s.sched.Cancel(g)
	}
	g := s.sched.NewGroup()
	s.cues[key] = g

	fillAt := s.sched.Now() + s.grid.Beats(max(atBeat-1, 0))
	fadeAt := fillAt + s.grid.Beats(max(holdBeats, 0))

	s.sched.At(fillAt, g, func() {
		s.mixer.Trigger(fl.cfg.Param)
		s.fills.Add(1)
		log.Printf("[audio] fill %s at %v", fill, fillAt)
		s.publish(event.EventFillTriggered, &event.FillPayload{Layer: fill, At: fillAt})
	})
	s.sched.At(fadeAt, g, func() {
		delete(s.cues, key)
		legs := []Leg{
			{Layer: out, Target: parameter.GainSilent, Duration: outDur},
			{Layer: in, Target: parameter.GainUnity, Duration: inDur},
		}
		if err := s.transitionAt(pairKey(out, in), legs, fadeAt, false); err != nil {
			log.Printf("[audio] %s: %v", key, err)
		}
	})
	return nil
}

// Pending reports whether any transition or cue is scheduled or running
func (s *Sequencer) Pending() bool {
	return len(s.inflight) > 0 || len(s.cues) > 0
}

// Reset cancels every transition and cue and restores initial gains
func (s *Sequencer) Reset() {
	for key, cf := range s.inflight {
		s.sched.Cancel(cf.group)
		delete(s.inflight, key)
	}
	for key, g := range s.cues {
		s.sched.Cancel(g)
		delete(s.cues, key)
	}
	s.applyInitial()
}

func (s *Sequencer) start(cf *crossfade, at time.Duration) {
	cf.begin(at)
	s.crossfades.Add(1)
	log.Printf("[audio] crossfade %s at %v", cf.key, at)
	s.publish(event.EventCrossfadeStarted, s.payload(cf))
	if !cf.apply(s.sched.Now()) {
		s.sched.Run(cf.group, cf)
	}
}

func (s *Sequencer) finish(cf *crossfade) {
	if s.inflight[cf.key] == cf {
		delete(s.inflight, cf.key)
	}
	s.publish(event.EventCrossfadeComplete, s.payload(cf))
}

// release drops layer ownership held by a superseded transition
func (s *Sequencer) release(cf *crossfade) {
	for _, lg := range cf.bound {
		if lg.l.owner == cf {
			lg.l.owner = nil
		}
	}
}

func (s *Sequencer) write(ly *layer, db float64) {
	ly.gain = db
	ly.gauge.Set(db)
	s.mixer.SetGain(ly.cfg.Param, db)
}

func (s *Sequencer) lookup(name string, oneShot bool) (*layer, error) {
	ly, ok := s.layers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLayer, name)
	}
	if ly.cfg.OneShot != oneShot {
		return nil, fmt.Errorf("%w: %s", ErrOneShotLayer, name)
	}
	return ly, nil
}

func (s *Sequencer) payload(cf *crossfade) *event.CrossfadePayload {
	p := &event.CrossfadePayload{Key: cf.key, At: cf.startAt}
	for _, l := range cf.legs {
		if l.Target <= parameter.GainSilent {
			p.Out = append(p.Out, l.Layer)
		} else {
			p.In = append(p.In, l.Layer)
		}
	}
	return p
}

func (s *Sequencer) publish(et event.EventType, payload any) {
	if s.bus != nil {
		s.bus.Publish(et, payload)
	}
}

func pairKey(out, in string) string {
	return strings.Join([]string{out, in}, "->")
}
