package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/chest-sort/core"
)

// drawText writes s from (x, y), clipped at the screen edge; returns the column after the text
func drawText(scr tcell.Screen, x, y int, style tcell.Style, s string) int {
	w, h := scr.Size()
	if y < 0 || y >= h {
		return x
	}
	for _, r := range s {
		if x >= w {
			break
		}
		if x >= 0 {
			scr.SetContent(x, y, r, nil, style)
		}
		x++
	}
	return x
}

// drawCentered writes s centered on row y
func drawCentered(scr tcell.Screen, y int, style tcell.Style, s string) {
	w, _ := scr.Size()
	drawText(scr, (w-len([]rune(s)))/2, y, style, s)
}

// fillRect paints a rectangle of cells
func fillRect(scr tcell.Screen, x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			scr.SetContent(col, row, ' ', nil, style)
		}
	}
}

// drawBox draws a single-line border around the rectangle
func drawBox(scr tcell.Screen, x, y, w, h int, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	x2, y2 := x+w-1, y+h-1
	for col := x + 1; col < x2; col++ {
		scr.SetContent(col, y, tcell.RuneHLine, nil, style)
		scr.SetContent(col, y2, tcell.RuneHLine, nil, style)
	}
	for row := y + 1; row < y2; row++ {
		scr.SetContent(x, row, tcell.RuneVLine, nil, style)
		scr.SetContent(x2, row, tcell.RuneVLine, nil, style)
	}
	scr.SetContent(x, y, tcell.RuneULCorner, nil, style)
	scr.SetContent(x2, y, tcell.RuneURCorner, nil, style)
	scr.SetContent(x, y2, tcell.RuneLLCorner, nil, style)
	scr.SetContent(x2, y2, tcell.RuneLRCorner, nil, style)
}

// cells converts a world rect to integer cell coordinates
func cells(r core.Rect) (x, y, w, h int) {
	return int(r.Min.X), int(r.Min.Y), int(r.Width()), int(r.Height())
}

// bar renders level out of total as filled and empty blocks
func bar(level, total int) string {
	level = min(max(level, 0), total)
	out := make([]rune, total)
	for i := range out {
		if i < level {
			out[i] = '█'
		} else {
			out[i] = '░'
		}
	}
	return string(out)
}
