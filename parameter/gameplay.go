package parameter

import "time"

// Round Composition
const (
	// DefaultQuotaPerCategory is items drawn per category per round
	DefaultQuotaPerCategory = 2

	// DefaultSpawnDelay is the wait before each item appears in the play area
	DefaultSpawnDelay = 2 * time.Second
)

// Receptacle Capacity
const (
	// CapacityUnbounded marks chest receptacles that consume every correct item
	CapacityUnbounded = 0

	// CapacitySingleSlot is the single-slot chest variant
	CapacitySingleSlot = 1

	// CapacityTokenSlot is the multi-slot token board default
	CapacityTokenSlot = 3

	// FillLevels is the number of steps of a receptacle attribute bar (0..FillLevels)
	FillLevels = 10
)

// Results
const (
	// GoldThreshold is the minimum accuracy percentage for a gold medal
	GoldThreshold = 90.0

	// SilverThreshold is the minimum accuracy percentage for a silver medal
	SilverThreshold = 70.0
)
