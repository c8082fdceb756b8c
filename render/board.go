package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/chest-sort/parameter"
	"github.com/lixenwraith/chest-sort/session"
)

// ReceptacleRenderer draws receptacles as labelled boxes
// Token slots also show their count and attribute fill bars
type ReceptacleRenderer struct{}

// Render implements Renderer
func (ReceptacleRenderer) Render(ctx Context, scr tcell.Screen) {
	base := tcell.StyleDefault.Background(RGBBackground.Color())
	for _, r := range ctx.View.Receptacles {
		x, y, w, h := cells(r.Bounds)
		tint := CategoryColor(r.Accepts)
		if r.AcceptAny {
			tint = RGBBorder
		}
		border := base.Foreground(tint.Color())
		drawBox(scr, x, y, w, h, border)
		drawText(scr, x+2, y, border.Bold(true), " "+r.Label+" ")

		if r.Capacity > parameter.CapacitySingleSlot {
			drawSlotStats(scr, x, y, w, h, base.Foreground(tint.Scale(0.7).Color()), r)
		}
	}
}

// drawSlotStats writes count and fill bars along the bottom border
func drawSlotStats(scr tcell.Screen, x, y, w, h int, style tcell.Style, r session.ReceptacleView) {
	stats := fmt.Sprintf(" %d/%d E%s U%s ", r.Count, r.Capacity,
		bar(r.Effort, parameter.FillLevels), bar(r.Uncertainty, parameter.FillLevels))
	if len([]rune(stats)) > w-2 {
		stats = fmt.Sprintf(" %d/%d E%d U%d ", r.Count, r.Capacity, r.Effort, r.Uncertainty)
	}
	drawText(scr, x+1, y+h-1, style, stats)
}

// BackgroundRenderer paints the play area
type BackgroundRenderer struct{}

// Render implements Renderer
func (BackgroundRenderer) Render(_ Context, scr tcell.Screen) {
	w, h := scr.Size()
	fillRect(scr, 0, 0, w, h, tcell.StyleDefault.Background(RGBBackground.Color()))
}
