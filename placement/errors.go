package placement

import "errors"

var (
	// ErrItemConsumed reports re-evaluation of an item already accepted and consumed
	ErrItemConsumed = errors.New("item already consumed")

	// ErrItemPlaced reports evaluation of an item still sitting in a slot
	ErrItemPlaced = errors.New("item placed; withdraw it first")

	// ErrNotPlaced reports a withdraw of an item no slot holds
	ErrNotPlaced = errors.New("item not placed")

	// ErrNilItem reports a nil item argument
	ErrNilItem = errors.New("nil item")

	// ErrNoReceptacle reports a drop outside every receptacle
	ErrNoReceptacle = errors.New("no receptacle")

	// ErrUnknownReceptacle reports a lookup by an unregistered id
	ErrUnknownReceptacle = errors.New("unknown receptacle")

	// ErrInsufficientCapacity reports receptacles too small for the per-category quota
	ErrInsufficientCapacity = errors.New("insufficient receptacle capacity")

	// ErrDuplicateReceptacle reports two receptacles sharing an id
	ErrDuplicateReceptacle = errors.New("duplicate receptacle id")
)
