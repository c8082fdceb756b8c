package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/chest-sort/progression"
)

// ResultsRenderer draws the end-of-session panel
type ResultsRenderer struct{}

// IsVisible implements VisibilityToggle
func (ResultsRenderer) IsVisible(ctx Context) bool {
	return ctx.View.Finished
}

// Render implements Renderer
func (ResultsRenderer) Render(ctx Context, scr tcell.Screen) {
	s := ctx.View.Summary
	medal := MedalColor(s.Medal)

	lines := []string{
		"SESSION COMPLETE",
		"",
		fmt.Sprintf("Correct  %d", s.Correct),
		fmt.Sprintf("Errors   %d", s.Error),
		fmt.Sprintf("Accuracy %.0f%%", s.Accuracy),
		"",
		fmt.Sprintf("%s medal", s.Medal),
		"",
		"r restart   q quit",
	}
	panel(scr, lines, func(i int, style tcell.Style) tcell.Style {
		switch i {
		case 0:
			return style.Bold(true)
		case 6:
			return style.Foreground(medal.Color()).Bold(true)
		}
		return style
	})
}

// MedalColor returns the tint of a medal
func MedalColor(m progression.Medal) RGB {
	switch m {
	case progression.MedalGold:
		return RGBGold
	case progression.MedalSilver:
		return RGBSilver
	default:
		return RGBBronze
	}
}

// HelpRenderer lists controls while help is toggled on
type HelpRenderer struct{}

// IsVisible implements VisibilityToggle
func (HelpRenderer) IsVisible(ctx Context) bool {
	return ctx.Help && !ctx.View.Finished
}

// Render implements Renderer
func (HelpRenderer) Render(_ Context, scr tcell.Screen) {
	panel(scr, []string{
		"HOW TO PLAY",
		"",
		"Drag each card with the mouse",
		"into the box it belongs to",
		"",
		"p / space  pause",
		"m          mute",
		"r          restart",
		"esc        drop the card back",
		"q          quit",
	}, func(i int, style tcell.Style) tcell.Style {
		if i == 0 {
			return style.Bold(true)
		}
		return style
	})
}

// panel draws lines centered in a bordered box
func panel(scr tcell.Screen, lines []string, styleFor func(i int, style tcell.Style) tcell.Style) {
	sw, sh := scr.Size()
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	w, h := width+6, len(lines)+4
	x, y := (sw-w)/2, (sh-h)/2

	base := tcell.StyleDefault.Background(RGBBackground.Scale(0.6).Color()).Foreground(RGBWhite.Color())
	fillRect(scr, x, y, w, h, base)
	drawBox(scr, x, y, w, h, base.Foreground(RGBBorder.Color()))
	for i, l := range lines {
		drawCentered(scr, y+2+i, styleFor(i, base), l)
	}
}
