package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// SimulationStep is the fixed delta used by headless sessions
	SimulationStep = time.Second / 60

	// MaxFrameDelta clamps a single tick after a stall so timers never jump a whole fade
	MaxFrameDelta = 250 * time.Millisecond

	// EventDispatchRounds bounds cascading publish-during-dispatch per tick
	EventDispatchRounds = 16
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)
