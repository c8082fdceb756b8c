package session

import (
	"math"

	"github.com/lixenwraith/chest-sort/core"
	"github.com/lixenwraith/chest-sort/parameter"
)

// ItemLabel is the text drawn for an item, truncated to MaxItemLabel
func ItemLabel(it *core.Item) string {
	label := it.Card.Short
	if label == "" {
		label = it.Card.Title
	}
	r := []rune(label)
	if len(r) > parameter.MaxItemLabel {
		r = append(r[:parameter.MaxItemLabel-1], '…')
	}
	return string(r)
}

// ItemBounds is the cell area an item occupies, snapped to the cell grid
func ItemBounds(it *core.Item) core.Rect {
	w := len([]rune(ItemLabel(it))) + 2
	return core.RectXYWH(math.Floor(it.Pos.X), math.Floor(it.Pos.Y), float64(w), 1)
}

// Layout places the spawn region and receptacles on a board of width x height cells
type Layout struct {
	Width, Height int
	Spawn         core.Rect
	Receptacles   []core.Rect
}

// NewLayout computes a layout for n receptacles
// Sizes below the minimum are raised to it
func NewLayout(width, height, n int) Layout {
	width = max(width, parameter.MinBoardWidth)
	height = max(height, parameter.MinBoardHeight)
	l := Layout{Width: width, Height: height}

	bandY := height - parameter.ReceptacleHeight
	itemW := parameter.MaxItemLabel + 2
	spawnW := max(width-2-itemW, 1)
	spawnH := max(bandY-parameter.HUDRows-2, 1)
	l.Spawn = core.RectXYWH(1, float64(parameter.HUDRows+1), float64(spawnW), float64(spawnH))

	if n <= 0 {
		return l
	}
	gaps := parameter.ReceptacleGap * (n - 1)
	w := max((width-2-gaps)/n, 1)
	l.Receptacles = make([]core.Rect, n)
	for i := range n {
		x := 1 + i*(w+parameter.ReceptacleGap)
		l.Receptacles[i] = core.RectXYWH(float64(x), float64(bandY), float64(w), float64(parameter.ReceptacleHeight-1))
	}
	return l
}

// Board is the whole playable area
func (l Layout) Board() core.Rect {
	return core.RectXYWH(0, 0, float64(l.Width), float64(l.Height))
}

// SlotPos is where the i-th retained item sits inside a receptacle
// The border rows are skipped, items stack between them
func SlotPos(bounds core.Rect, i int) core.Vec2 {
	rows := max(int(bounds.Height())-2, 1)
	return core.Vec2{X: bounds.Min.X + 1, Y: bounds.Min.Y + 1 + float64(i%rows)}
}

// clampItem keeps an item's drawn area on the board
func clampItem(it *core.Item, board core.Rect) {
	b := ItemBounds(it)
	maxX := board.Max.X - b.Width()
	maxY := board.Max.Y - 1
	it.Pos.X = math.Max(board.Min.X, math.Min(it.Pos.X, maxX))
	it.Pos.Y = math.Max(board.Min.Y, math.Min(it.Pos.Y, maxY))
}
