package input

import (
	"log"

	"github.com/lixenwraith/chest-sort/core"
	"github.com/lixenwraith/chest-sort/placement"
)

// Drop describes the end of a drag
type Drop struct {
	Item *core.Item

	// Receptacle is nil when the item was let go over empty space
	Receptacle *placement.Receptacle
	Outcome    core.Outcome
}

// Adapter turns pointer edges into placement calls
// One item is carried at a time; not safe for concurrent use
type Adapter struct {
	place   Placer
	locator Locator

	carried *core.Item
	offset  core.Vec2 // Item position relative to the pointer at grab time
	origin  core.Vec2
}

// NewAdapter wires an adapter to a placer and a locator
func NewAdapter(place Placer, locator Locator) *Adapter {
	return &Adapter{place: place, locator: locator}
}

// Carried returns the item under drag, nil when idle
func (a *Adapter) Carried() *core.Item {
	return a.carried
}

// Handle processes one pointer edge
// A non-nil Drop is returned only on PointerEnd while carrying
func (a *Adapter) Handle(ev PointerEvent) *Drop {
	switch ev.Phase {
	case PointerBegin:
		a.begin(ev.Pos)
	case PointerMove:
		if a.carried != nil {
			a.carried.Pos = ev.Pos.Add(a.offset)
		}
	case PointerEnd:
		if a.carried == nil {
			return nil
		}
		it := a.carried
		a.carried = nil
		r, outcome := a.submit(it, ev.Pos, ev.Pos.Add(a.offset))
		return &Drop{Item: it, Receptacle: r, Outcome: outcome}
	}
	return nil
}

func (a *Adapter) begin(pos core.Vec2) {
	if a.carried != nil || a.locator == nil {
		return
	}
	it := a.locator.ItemAt(pos)
	if it == nil {
		return
	}

	switch it.State {
	case core.ItemSpawned:
		if !a.place.Grab(it) {
			return
		}
	case core.ItemPlaced:
		// Tokens can be pulled back out of their slot
		if err := a.place.Withdraw(it); err != nil {
			log.Printf("[input] withdraw %s: %v", it, err)
			return
		}
	default:
		return
	}

	a.carried = it
	a.origin = it.Pos
	a.offset = it.Pos.Sub(pos)
}

// SubmitItem resolves a drop at pos and returns the receptacle it landed on
// Over empty space the item is released in place and the receptacle is nil
func (a *Adapter) SubmitItem(it *core.Item, pos core.Vec2) (*placement.Receptacle, core.Outcome) {
	a.origin = it.Pos
	return a.submit(it, pos, pos)
}

// submit looks up the receptacle under pointer; rest is where the item lies if nothing is there
func (a *Adapter) submit(it *core.Item, pointer, rest core.Vec2) (*placement.Receptacle, core.Outcome) {
	var r *placement.Receptacle
	if a.locator != nil {
		r = a.locator.ReceptacleAt(pointer)
	}
	if r == nil {
		a.place.Release(it, rest)
		return nil, core.OutcomeRejected
	}

	outcome, err := a.place.Evaluate(it, r)
	if err != nil {
		log.Printf("[input] submit %s to %s: %v", it, r.ID(), err)
		a.place.Release(it, a.origin)
		return r, core.OutcomeRejected
	}
	return r, outcome
}

// Cancel drops the carried item back where the drag started
func (a *Adapter) Cancel() {
	if a.carried == nil {
		return
	}
	a.place.Release(a.carried, a.origin)
	a.carried = nil
}
