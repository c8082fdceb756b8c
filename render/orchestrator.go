package render

import "github.com/gdamore/tcell/v2"

type rendererEntry struct {
	renderer Renderer
	priority RenderPriority
	index    int // Registration order for stable sort
}

// Orchestrator coordinates the render pipeline
type Orchestrator struct {
	screen    tcell.Screen
	renderers []rendererEntry
	regCount  int
}

// NewOrchestrator creates an empty pipeline drawing to screen
func NewOrchestrator(screen tcell.Screen) *Orchestrator {
	return &Orchestrator{
		screen:    screen,
		renderers: make([]rendererEntry, 0, 8),
	}
}

// NewDefaultOrchestrator registers the board, items, status bar and overlays
func NewDefaultOrchestrator(screen tcell.Screen) *Orchestrator {
	o := NewOrchestrator(screen)
	o.Register(BackgroundRenderer{}, PriorityBackground)
	o.Register(ReceptacleRenderer{}, PriorityBoard)
	o.Register(ItemRenderer{}, PriorityItems)
	o.Register(StatusBarRenderer{}, PriorityUI)
	o.Register(ResultsRenderer{}, PriorityOverlay)
	o.Register(HelpRenderer{}, PriorityOverlay)
	return o
}

// Register adds a renderer at the specified priority. Maintains sorted order via insertion sort
func (o *Orchestrator) Register(r Renderer, priority RenderPriority) {
	entry := rendererEntry{
		renderer: r,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.renderers)
	for i, e := range o.renderers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.renderers = append(o.renderers, rendererEntry{})
	copy(o.renderers[pos+1:], o.renderers[pos:])
	o.renderers[pos] = entry
}

// RenderFrame executes the render pipeline: clear, render all, show
func (o *Orchestrator) RenderFrame(ctx Context) {
	o.screen.Clear()
	for _, entry := range o.renderers {
		if vt, ok := entry.renderer.(VisibilityToggle); ok && !vt.IsVisible(ctx) {
			continue
		}
		entry.renderer.Render(ctx, o.screen)
	}
	o.screen.Show()
}

// Resize syncs the terminal after a size change
func (o *Orchestrator) Resize() {
	o.screen.Sync()
}
