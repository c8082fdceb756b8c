package event

// EventType represents the type of game event
type EventType int

const (
	// EventNone is the zero value, never published
	EventNone EventType = iota

	// === Placement Event ===

	// EventItemSpawned signals an item entered the play area
	// Trigger: Progression spawn sequence
	// Consumer: Renderer, input locator | Payload: *ItemSpawnedPayload
	EventItemSpawned

	// EventItemGrabbed signals a pointer picked up an item
	// Trigger: Input adapter on PointerBegin over an item
	// Consumer: Renderer | Payload: *ItemGrabbedPayload
	EventItemGrabbed

	// EventItemResolved reports the outcome of a drop on a receptacle
	// Trigger: Placement engine
	// Consumer: Progression, feedback sinks, audio director | Payload: *ItemResolvedPayload
	EventItemResolved

	// EventItemWithdrawn signals a placed token was taken back out of its slot
	// Trigger: Placement engine
	// Consumer: Progression, renderer | Payload: *ItemWithdrawnPayload
	EventItemWithdrawn

	// === Progression Event ===

	// EventRoundStarted signals a new round was drawn
	// Trigger: Progression on tier entry
	// Consumer: Renderer | Payload: *RoundStartedPayload
	EventRoundStarted

	// EventRoundCleared signals the active round has zero outstanding items
	// Trigger: Progression
	// Consumer: Progression FSM | Payload: *RoundClearedPayload
	EventRoundCleared

	// EventDifficultyChanged signals a tier change
	// Trigger: Progression FSM entering Hard
	// Consumer: Audio director, renderer | Payload: *DifficultyChangedPayload
	EventDifficultyChanged

	// EventSessionComplete is the terminal progression event
	// Trigger: Progression FSM entering Finished
	// Consumer: Results presenter, audio director | Payload: *SessionCompletePayload
	EventSessionComplete

	// EventPoolShortage warns that a category pool could not fill its quota
	// Trigger: Progression round draw
	// Consumer: Logging | Payload: *PoolShortagePayload
	EventPoolShortage

	// EventSessionRestart signals counters and tiers were reset
	// Trigger: Session restart
	// Consumer: Audio director, renderer | Payload: nil
	EventSessionRestart

	// === Audio Event ===

	// EventGameplayStart switches from menu music to gameplay music
	// Trigger: Session start
	// Consumer: Audio director | Payload: nil
	EventGameplayStart

	// EventCrossfadeStarted signals a transition began executing
	// Trigger: Audio sequencer
	// Consumer: Renderer, logging | Payload: *CrossfadePayload
	EventCrossfadeStarted

	// EventCrossfadeComplete signals every leg of a transition reached its target
	// Trigger: Audio sequencer
	// Consumer: Renderer, logging | Payload: *CrossfadePayload
	EventCrossfadeComplete

	// EventFillTriggered signals a one-shot fill layer was fired
	// Trigger: Audio sequencer
	// Consumer: Logging | Payload: *FillPayload
	EventFillTriggered

	eventTypeCount
)
