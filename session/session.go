// Package session owns one playthrough: placement, progression and soundtrack behind a single lock
package session

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/chest-sort/audio"
	"github.com/lixenwraith/chest-sort/core"
	"github.com/lixenwraith/chest-sort/engine"
	"github.com/lixenwraith/chest-sort/event"
	"github.com/lixenwraith/chest-sort/input"
	"github.com/lixenwraith/chest-sort/parameter"
	"github.com/lixenwraith/chest-sort/placement"
	"github.com/lixenwraith/chest-sort/progression"
	"github.com/lixenwraith/chest-sort/status"
)

// Options configures a Session
type Options struct {
	Pools       progression.PoolProvider
	Receptacles []placement.Config

	Quota      int
	SpawnDelay time.Duration

	// Seed drives draws and respawn positions; 0 seeds from the clock
	Seed   int64
	Strict bool

	Grid  audio.Grid
	Mixer audio.Mixer // Silent recorder when nil

	Status *status.Registry
	Sink   placement.FeedbackSink

	// Board size in cells, DefaultBoardWidth x DefaultBoardHeight when zero
	Width, Height int
}

// Session is the single mutation owner of a playthrough
// Every exported method is safe for concurrent use
type Session struct {
	mu sync.Mutex

	reg      *status.Registry
	bus      *event.Bus
	sched    *engine.Scheduler
	place    *placement.Engine
	ctrl     *progression.Controller
	seq      *audio.Sequencer
	director *audio.Director
	adapter  *input.Adapter

	layout  Layout
	subs    event.Subscriptions
	started bool
	closed  bool

	message      string
	messageUntil time.Duration

	dropped *atomic.Int64
}

// New wires every subsystem; Start begins play
func New(opts Options) (*Session, error) {
	if len(opts.Receptacles) == 0 {
		return nil, fmt.Errorf("session: no receptacles")
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}
	w, h := opts.Width, opts.Height
	if w == 0 || h == 0 {
		w, h = parameter.DefaultBoardWidth, parameter.DefaultBoardHeight
	}

	s := &Session{
		reg:     reg,
		bus:     event.NewBus(),
		sched:   engine.NewScheduler(),
		dropped: reg.Ints.Get(status.KeyEventsDrop),
	}
	s.layout = NewLayout(w, h, len(opts.Receptacles))

	s.place = placement.NewEngine(placement.Options{
		Spawn:  s.layout.Spawn,
		Rand:   rand.New(rand.NewSource(seed + 1)),
		Strict: opts.Strict,
		Bus:    s.bus,
		Status: reg,
		Sink:   opts.Sink,
	})
	for i, cfg := range opts.Receptacles {
		cfg.Bounds = s.layout.Receptacles[i]
		if _, err := s.place.AddReceptacle(cfg); err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
	}

	ctrl, err := progression.NewController(progression.Options{
		Pools:      opts.Pools,
		Quota:      opts.Quota,
		SpawnDelay: opts.SpawnDelay,
		Rand:       rand.New(rand.NewSource(seed)),
		Bus:        s.bus,
		Scheduler:  s.sched,
		Placement:  s.place,
		Status:     reg,
	})
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	s.ctrl = ctrl

	seq, err := audio.NewSequencer(audio.Options{
		Grid:      opts.Grid,
		Mixer:     opts.Mixer,
		Scheduler: s.sched,
		Bus:       s.bus,
		Status:    reg,
	})
	if err != nil {
		ctrl.Close()
		return nil, fmt.Errorf("session: %w", err)
	}
	s.seq = seq
	s.director = audio.NewDirector(seq, s.bus)
	s.adapter = input.NewAdapter(s.place, locator{s})

	s.subs.Add(event.On(s.bus, event.EventItemResolved, s.onResolved))
	s.subs.Add(event.On(s.bus, event.EventItemWithdrawn, func(p *event.ItemWithdrawnPayload) {
		s.restack(p.ReceptacleID)
	}))
	s.subs.Add(event.On(s.bus, event.EventPoolShortage, func(p *event.PoolShortagePayload) {
		s.showMessage(fmt.Sprintf("Only %d of %d %s cards available", p.Available, p.Requested, p.Category))
	}))
	return s, nil
}

// Bus exposes the session event bus for presenters
// Handlers run inside Tick or Pointer with the session lock held and must not call back into the Session
func (s *Session) Bus() *event.Bus { return s.bus }

// Status returns the metrics registry
func (s *Session) Status() *status.Registry { return s.reg }

// Start draws the first round and brings the gameplay music in
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	if err := s.ctrl.Start(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.started = true
	s.bus.Publish(event.EventGameplayStart, nil)
	s.dispatch()
	log.Printf("[session] started")
	return nil
}

// Tick advances scheduler time by dt, then dispatches the events it produced
func (s *Session) Tick(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.closed {
		return
	}
	s.sched.Tick(dt)
	s.ctrl.Update(dt)
	s.dispatch()
}

// Pointer feeds one pointer edge to the drag adapter
// Resolution events are dispatched before returning
func (s *Session) Pointer(ev input.PointerEvent) *input.Drop {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.closed {
		return nil
	}
	if ev.Phase == input.PointerMove {
		if it := s.adapter.Carried(); it != nil {
			s.adapter.Handle(ev)
			clampItem(it, s.layout.Board())
			return nil
		}
	}
	drop := s.adapter.Handle(ev)
	if drop != nil && drop.Receptacle == nil {
		clampItem(drop.Item, s.layout.Board())
	}
	s.dispatch()
	return drop
}

// CancelDrag returns a carried item to where it was picked up
func (s *Session) CancelDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adapter.Cancel()
}

// Restart zeroes the counters and starts over from Easy
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.closed {
		return progression.ErrNotStarted
	}
	s.adapter.Cancel()
	s.message = ""
	if err := s.ctrl.Restart(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.dispatch()
	log.Printf("[session] restarted")
	return nil
}

// Resize lays the board out again for a new terminal size
func (s *Session) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs := s.place.Receptacles()
	s.layout = NewLayout(width, height, len(rs))
	s.place.SetSpawnRegion(s.layout.Spawn)
	for i, r := range rs {
		r.SetBounds(s.layout.Receptacles[i])
		s.restackLocked(r)
	}
	board := s.layout.Board()
	for _, it := range s.ctrl.Active() {
		if it.State != core.ItemPlaced {
			clampItem(it, board)
		}
	}
}

// Finished reports whether the session reached its terminal state
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Finished()
}

// Summary returns the counters with accuracy and medal
func (s *Session) Summary() progression.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Summary()
}

// Gain reports a soundtrack layer's current gain
func (s *Session) Gain(layer string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.Gain(layer)
}

// Close cancels pending work and releases subscriptions; the session cannot be restarted
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.subs.UnsubscribeAll()
	s.director.Close()
	s.ctrl.Close()
	s.sched.Reset()
}

func (s *Session) dispatch() {
	s.bus.Dispatch()
	s.dropped.Store(int64(s.bus.Dropped()))
}

func (s *Session) onResolved(p *event.ItemResolvedPayload) {
	if p.Outcome == core.OutcomeAccepted {
		s.restack(p.ReceptacleID)
		msg := fmt.Sprintf("%s → %s", p.Item.Card.Title, p.ReceptacleLabel)
		if p.Justification != "" {
			msg += ": " + p.Justification
		}
		s.showMessage(msg)
		return
	}

	msg := fmt.Sprintf("%s does not go in %s", p.Item.Card.Title, p.ReceptacleLabel)
	if p.Reason == core.ReasonFull {
		msg = p.ReceptacleLabel + " is full"
	}
	if fb := p.Item.Card.Feedback; fb != "" {
		msg += ": " + fb
	}
	s.showMessage(msg)
}

func (s *Session) showMessage(msg string) {
	s.message = msg
	s.messageUntil = s.sched.Now() + parameter.FeedbackMessageDuration
}

func (s *Session) restack(id string) {
	r, err := s.place.Receptacle(id)
	if err != nil {
		return
	}
	s.restackLocked(r)
}

// restackLocked lines retained items up inside their receptacle
func (s *Session) restackLocked(r *placement.Receptacle) {
	for i, it := range r.Held() {
		it.Pos = SlotPos(r.Bounds(), i)
	}
}

// locator resolves pointer positions against the live board; called with the session lock held
type locator struct {
	s *Session
}

// ItemAt returns the topmost item under pos; later spawns draw on top
func (l locator) ItemAt(pos core.Vec2) *core.Item {
	items := l.s.ctrl.Active()
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		if it.State == core.ItemInTransit {
			continue
		}
		if ItemBounds(it).Contains(pos) {
			return it
		}
	}
	return nil
}

// ReceptacleAt returns the receptacle whose area contains pos
func (l locator) ReceptacleAt(pos core.Vec2) *placement.Receptacle {
	for _, r := range l.s.place.Receptacles() {
		if r.Bounds().Contains(pos) {
			return r
		}
	}
	return nil
}
