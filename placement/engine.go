package placement

import (
	"fmt"
	"log"
	"math/rand"
	"sync"

	"github.com/lixenwraith/chest-sort/core"
	"github.com/lixenwraith/chest-sort/event"
	"github.com/lixenwraith/chest-sort/status"
)

// FeedbackSink receives resolutions synchronously, before the bus event is dispatched
// Typical sinks play cue tones or show the justification popup
type FeedbackSink interface {
	OnResolved(p *event.ItemResolvedPayload)
}

// Options configures an Engine; every field is optional
type Options struct {
	// Spawn is the region rejected items are returned to
	Spawn core.Rect

	// Rand drives respawn positions; seeded from 1 when nil
	Rand *rand.Rand

	// Strict panics on programming errors instead of logging them
	Strict bool

	Bus    *event.Bus
	Status *status.Registry
	Sink   FeedbackSink
}

// Engine evaluates drops of items onto receptacles
type Engine struct {
	mu sync.Mutex

	spawn  core.Rect
	rng    *rand.Rand
	strict bool

	bus   *event.Bus
	sink  FeedbackSink
	stats *Stats

	receptacles map[string]*Receptacle
	order       []string
}

// NewEngine creates an engine with no receptacles
func NewEngine(opts Options) *Engine {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Engine{
		spawn:       opts.Spawn,
		rng:         rng,
		strict:      opts.Strict,
		bus:         opts.Bus,
		sink:        opts.Sink,
		stats:       NewStats(opts.Status),
		receptacles: make(map[string]*Receptacle),
	}
}

// Stats returns the session counters
func (e *Engine) Stats() *Stats { return e.stats }

// SpawnRegion returns the area rejected items return to
func (e *Engine) SpawnRegion() core.Rect {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.spawn
}

// SetSpawnRegion replaces the respawn area
func (e *Engine) SetSpawnRegion(r core.Rect) {
	e.mu.Lock()
	e.spawn = r
	e.mu.Unlock()
}

// SetSink replaces the feedback sink; nil disables it
func (e *Engine) SetSink(s FeedbackSink) {
	e.mu.Lock()
	e.sink = s
	e.mu.Unlock()
}

// AddReceptacle registers a receptacle built from cfg
func (e *Engine) AddReceptacle(cfg Config) (*Receptacle, error) {
	r, err := NewReceptacle(cfg)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.receptacles[cfg.ID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateReceptacle, cfg.ID)
	}
	e.receptacles[cfg.ID] = r
	e.order = append(e.order, cfg.ID)
	return r, nil
}

// Receptacle looks up a receptacle by id
func (e *Engine) Receptacle(id string) (*Receptacle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok := e.receptacles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownReceptacle, id)
	}
	return r, nil
}

// Receptacles returns receptacles in registration order
func (e *Engine) Receptacles() []*Receptacle {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Receptacle, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.receptacles[id])
	}
	return out
}

// Grab marks an item as carried by the pointer
// Only spawned items can be grabbed
func (e *Engine) Grab(it *core.Item) bool {
	if it == nil {
		return false
	}
	e.mu.Lock()
	if it.State != core.ItemSpawned {
		e.mu.Unlock()
		return false
	}
	it.State = core.ItemInTransit
	e.mu.Unlock()

	e.publish(event.EventItemGrabbed, &event.ItemGrabbedPayload{Item: it})
	return true
}

// Release drops a carried item outside every receptacle; it stays where it was let go
// Neither counter changes
func (e *Engine) Release(it *core.Item, pos core.Vec2) {
	if it == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if it.State == core.ItemInTransit {
		it.State = core.ItemSpawned
		it.Pos = pos
	}
}

// Evaluate resolves a drop of it onto r
// Exactly one of the counters increments and one ItemResolved event is emitted per nil-error call
func (e *Engine) Evaluate(it *core.Item, r *Receptacle) (core.Outcome, error) {
	if it == nil {
		return core.OutcomeRejected, ErrNilItem
	}
	if r == nil {
		return core.OutcomeRejected, ErrNoReceptacle
	}

	e.mu.Lock()
	switch it.State {
	case core.ItemConsumed:
		e.mu.Unlock()
		err := fmt.Errorf("%w: %s", ErrItemConsumed, it)
		if e.strict {
			panic(err)
		}
		log.Printf("[placement] %v", err)
		return core.OutcomeRejected, err
	case core.ItemPlaced:
		e.mu.Unlock()
		return core.OutcomeRejected, fmt.Errorf("%w: %s in %s", ErrItemPlaced, it, it.Receptacle)
	}

	p := &event.ItemResolvedPayload{
		Item:            it,
		ReceptacleID:    r.ID(),
		ReceptacleLabel: r.Label(),
	}

	switch {
	case !r.Matches(it.Category()):
		p.Outcome, p.Reason = core.OutcomeRejected, core.ReasonWrongCategory
	case r.Full():
		p.Outcome, p.Reason = core.OutcomeRejected, core.ReasonFull
	default:
		p.Outcome = core.OutcomeAccepted
	}

	if p.Outcome == core.OutcomeAccepted {
		e.stats.correct.Add(1)
		r.add(it)
		if r.cfg.Retain {
			it.State = core.ItemPlaced
			it.Receptacle = r.ID()
		} else {
			it.State = core.ItemConsumed
		}
		p.Justification = r.cfg.Justification
	} else {
		e.stats.errors.Add(1)
		it.State = core.ItemSpawned
		it.Receptacle = ""
		it.Pos = e.spawn.RandomPoint(e.rng)
	}
	p.Correct = e.stats.Correct()
	p.Error = e.stats.Error()
	sink := e.sink
	e.mu.Unlock()

	if p.Outcome == core.OutcomeRejected {
		log.Printf("[placement] %s rejected by %s: %s", it, r.ID(), p.Reason)
	}
	if sink != nil {
		sink.OnResolved(p)
	}
	e.publish(event.EventItemResolved, p)
	return p.Outcome, nil
}

// Withdraw takes a retained item back out of its slot into the pointer
// The slot aggregate drops by the item's attributes; counters are unchanged
func (e *Engine) Withdraw(it *core.Item) error {
	if it == nil {
		return ErrNilItem
	}

	e.mu.Lock()
	if it.State != core.ItemPlaced {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotPlaced, it)
	}
	r, ok := e.receptacles[it.Receptacle]
	if !ok || !r.remove(it) {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownReceptacle, it.Receptacle)
	}
	id := it.Receptacle
	it.State = core.ItemInTransit
	it.Receptacle = ""
	e.mu.Unlock()

	e.publish(event.EventItemWithdrawn, &event.ItemWithdrawnPayload{Item: it, ReceptacleID: id})
	return nil
}

// ClearReceptacles empties every receptacle; used when a new round replaces held items
func (e *Engine) ClearReceptacles() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range e.receptacles {
		r.clear()
	}
}

// Reset empties receptacles and zeroes the counters
func (e *Engine) Reset() {
	e.ClearReceptacles()
	e.stats.Reset()
}

func (e *Engine) publish(et event.EventType, payload any) {
	if e.bus != nil {
		e.bus.Publish(et, payload)
	}
}
