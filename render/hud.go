package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// StatusBarRenderer draws the counters on row 0 and the feedback message on row 1
type StatusBarRenderer struct{}

// Render implements Renderer
func (StatusBarRenderer) Render(ctx Context, scr tcell.Screen) {
	w, _ := scr.Size()
	v := ctx.View

	bar := tcell.StyleDefault.Background(RGBStatusBar.Color()).Foreground(RGBBlack.Color())
	fillRect(scr, 0, 0, w, 1, bar)

	x := drawText(scr, 1, 0, bar.Bold(true), " "+strings.ToUpper(v.Tier.String())+" ")
	x = drawText(scr, x+1, 0, bar.Foreground(RGBCorrect.Scale(0.6).Color()), fmt.Sprintf("✓ %d", v.Summary.Correct))
	x = drawText(scr, x+2, 0, bar.Foreground(RGBError.Scale(0.7).Color()), fmt.Sprintf("✗ %d", v.Summary.Error))
	if v.RoundSize > 0 {
		x = drawText(scr, x+2, 0, bar, fmt.Sprintf("left %d/%d", v.Outstanding, v.RoundSize))
	}
	if ctx.Packs != "" {
		x = drawText(scr, x+2, 0, bar, ctx.Packs)
	}

	var flags []string
	if ctx.Paused {
		flags = append(flags, "PAUSED")
	}
	if ctx.Muted {
		flags = append(flags, "MUTED")
	}
	flags = append(flags, "? help")
	right := strings.Join(flags, "  ")
	if rx := w - len([]rune(right)) - 1; rx > x+1 {
		drawText(scr, rx, 0, bar, right)
	}

	if v.Message != "" {
		drawText(scr, 1, 1, tcell.StyleDefault.Foreground(RGBWhite.Color()).Italic(true), v.Message)
	}
}
