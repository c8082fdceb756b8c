package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/chest-sort/core"
	"github.com/lixenwraith/chest-sort/input"
)

// PointerTranslator turns tcell mouse reports into pointer edges
// tcell reports button state, not transitions; the translator tracks the primary button
type PointerTranslator struct {
	down bool
	last core.Vec2
}

// Translate returns the pointer edge for ev, ok=false when nothing changed
func (t *PointerTranslator) Translate(ev *tcell.EventMouse) (input.PointerEvent, bool) {
	x, y := ev.Position()
	pos := core.Vec2{X: float64(x), Y: float64(y)}
	pressed := ev.Buttons()&tcell.ButtonPrimary != 0

	switch {
	case pressed && !t.down:
		t.down = true
		t.last = pos
		return input.PointerEvent{Phase: input.PointerBegin, Pos: pos}, true
	case pressed && t.down:
		if pos == t.last {
			return input.PointerEvent{}, false
		}
		t.last = pos
		return input.PointerEvent{Phase: input.PointerMove, Pos: pos}, true
	case !pressed && t.down:
		t.down = false
		return input.PointerEvent{Phase: input.PointerEnd, Pos: pos}, true
	}
	return input.PointerEvent{}, false
}

// Dragging reports whether the primary button is held
func (t *PointerTranslator) Dragging() bool {
	return t.down
}
