package parameter

import "time"

// Board geometry in terminal cells
const (
	// DefaultBoardWidth and DefaultBoardHeight size headless sessions
	DefaultBoardWidth  = 80
	DefaultBoardHeight = 24

	// MinBoardWidth and MinBoardHeight are the smallest playable layout
	MinBoardWidth  = 40
	MinBoardHeight = 16

	// HUDRows are reserved at the top for the status line and feedback message
	HUDRows = 2

	// ReceptacleHeight is the height of the receptacle band at the bottom
	ReceptacleHeight = 5

	// ReceptacleGap separates adjacent receptacles
	ReceptacleGap = 2

	// MaxItemLabel truncates item labels; items are drawn as [label]
	MaxItemLabel = 16
)

// Feedback
const (
	// FeedbackMessageDuration is how long a resolution message stays in the HUD
	FeedbackMessageDuration = 3 * time.Second
)

// Simulation
const (
	// BotActionInterval is the wait between headless bot drops
	BotActionInterval = 500 * time.Millisecond

	// BotDefaultAccuracy is the chance the bot picks the matching receptacle
	BotDefaultAccuracy = 0.8

	// SimulationTimeout bounds a headless run in scheduler time
	SimulationTimeout = 10 * time.Minute
)
