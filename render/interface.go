package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/chest-sort/session"
)

// Context is everything a renderer may read for one frame
type Context struct {
	View session.View

	Paused bool
	Muted  bool
	Help   bool

	// Packs names the active content selection for the status bar
	Packs string
}

// Renderer draws one layer of the frame
type Renderer interface {
	Render(ctx Context, scr tcell.Screen)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible(ctx Context) bool
}
