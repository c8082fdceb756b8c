package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/chest-sort/core"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (dst RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
	}
}

// Scale multiplies each channel by factor
func (dst RGB) Scale(factor float64) RGB {
	if factor <= 0 {
		return RGBBlack
	}
	if factor >= 1 {
		return dst
	}
	return RGB{
		R: uint8(float64(dst.R) * factor),
		G: uint8(float64(dst.G) * factor),
		B: uint8(float64(dst.B) * factor),
	}
}

// Color converts to a tcell true color
func (dst RGB) Color() tcell.Color {
	return tcell.NewRGBColor(int32(dst.R), int32(dst.G), int32(dst.B))
}

var (
	RGBBlack      = RGB{0, 0, 0}
	RGBWhite      = RGB{255, 255, 255}
	RGBBackground = RGB{26, 27, 38} // Tokyo Night background
	RGBBorder     = RGB{180, 180, 180}
	RGBStatusBar  = RGB{135, 206, 250}
	RGBCorrect    = RGB{0, 200, 0}
	RGBError      = RGB{255, 80, 80}
	RGBGold       = RGB{255, 215, 0}
	RGBSilver     = RGB{192, 192, 192}
	RGBBronze     = RGB{205, 127, 50}
)

// categoryColors tints items and receptacles by category
var categoryColors = map[core.Category]RGB{
	core.CategoryScience:    {100, 150, 255},
	core.CategoryTechnology: {0, 200, 200},
	core.CategoryInnovation: {255, 165, 0},
	core.CategoryUnderstand: {144, 238, 144},
	core.CategoryImagine:    {218, 112, 214},
	core.CategoryPrototype:  {255, 255, 0},
}

// CategoryColor returns the tint of a category, border gray when unknown
func CategoryColor(c core.Category) RGB {
	if rgb, ok := categoryColors[c]; ok {
		return rgb
	}
	return RGBBorder
}
