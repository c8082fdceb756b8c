package event

import (
	"time"

	"github.com/lixenwraith/chest-sort/core"
)

// GameEvent is a queued event with a dispatch sequence number
type GameEvent struct {
	Type    EventType
	Payload any
	Seq     uint64
}

// ItemSpawnedPayload carries the item that appeared
type ItemSpawnedPayload struct {
	Item  *core.Item
	Index int // Position in the round's spawn order
}

// ItemGrabbedPayload carries the item picked up by the pointer
type ItemGrabbedPayload struct {
	Item *core.Item
}

// ItemResolvedPayload is emitted once per evaluation
type ItemResolvedPayload struct {
	Item            *core.Item
	ReceptacleID    string
	ReceptacleLabel string
	Outcome         core.Outcome
	Reason          core.RejectReason

	// Justification is the receptacle text shown on a correct placement
	Justification string

	// Counters after this resolution
	Correct int64
	Error   int64
}

// ItemWithdrawnPayload carries a token removed from its slot
type ItemWithdrawnPayload struct {
	Item         *core.Item
	ReceptacleID string
}

// RoundStartedPayload describes a freshly drawn round
type RoundStartedPayload struct {
	Tier core.Tier
	Size int
}

// RoundClearedPayload names the tier whose round completed
type RoundClearedPayload struct {
	Tier core.Tier
}

// DifficultyChangedPayload carries the new tier
type DifficultyChangedPayload struct {
	Tier core.Tier
}

// SessionCompletePayload carries the final counters
type SessionCompletePayload struct {
	Correct int64
	Error   int64
}

// PoolShortagePayload describes an undersized pool at draw time
type PoolShortagePayload struct {
	Tier      core.Tier
	Category  core.Category
	Requested int
	Available int
}

// CrossfadePayload describes a transition by its layer names
type CrossfadePayload struct {
	Key string
	Out []string
	In  []string
	At  time.Duration // Sequencer time
}

// FillPayload names the one-shot layer that fired
type FillPayload struct {
	Layer string
	At    time.Duration
}
