package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/chest-sort/core"
)

// ItemRenderer draws items as [label] tinted by category
// The carried item is drawn reversed and last
type ItemRenderer struct{}

// Render implements Renderer
func (ItemRenderer) Render(ctx Context, scr tcell.Screen) {
	bg := RGBBackground.Color()
	for _, it := range ctx.View.Items {
		x, y, _, _ := cells(it.Bounds)
		style := tcell.StyleDefault.Foreground(CategoryColor(it.Category).Color()).Background(bg)
		switch it.State {
		case core.ItemInTransit:
			style = style.Reverse(true).Bold(true)
		case core.ItemPlaced:
			style = style.Dim(true)
		}
		drawText(scr, x, y, style, "["+it.Label+"]")
	}
}
