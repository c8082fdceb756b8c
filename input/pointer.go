package input

import (
	"github.com/lixenwraith/chest-sort/core"
	"github.com/lixenwraith/chest-sort/placement"
)

// PointerPhase is the edge of a pointer gesture
type PointerPhase uint8

const (
	PointerBegin PointerPhase = iota
	PointerMove
	PointerEnd
)

func (p PointerPhase) String() string {
	switch p {
	case PointerBegin:
		return "begin"
	case PointerMove:
		return "move"
	case PointerEnd:
		return "end"
	default:
		return "unknown"
	}
}

// PointerEvent is a device-independent pointer edge in world coordinates
type PointerEvent struct {
	Phase PointerPhase
	Pos   core.Vec2
}

// Locator performs spatial lookup for the adapter
// Both methods return nil when nothing is under pos
type Locator interface {
	ItemAt(pos core.Vec2) *core.Item
	ReceptacleAt(pos core.Vec2) *placement.Receptacle
}

// Placer is the subset of the placement engine the adapter drives
type Placer interface {
	Grab(it *core.Item) bool
	Release(it *core.Item, pos core.Vec2)
	Evaluate(it *core.Item, r *placement.Receptacle) (core.Outcome, error)
	Withdraw(it *core.Item) error
}
