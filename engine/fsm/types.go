package fsm

import (
	"time"

	"github.com/lixenwraith/chest-sort/event"
)

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// Machine is a generic hierarchical finite state machine
// T is the context type passed to actions and guards (e.g., *progression.Controller)
type Machine[T any] struct {
	// Graph data, immutable after CompilePaths
	nodes map[StateID]*Node[T]

	// InitialStateID is entered by Init and Reset
	InitialStateID StateID

	// Runtime state
	activeStateID StateID       // Current leaf node
	timeInState   time.Duration // Time elapsed in current leaf
	activePath    []StateID     // Root -> ... -> leaf
	started       bool
	transitions   uint64

	// OnTransition observes every completed state change
	OnTransition func(from, to StateID)
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Pre-calculated path from root to this node for LCA lookup
	Path []StateID

	// Lifecycle actions
	OnEnter  []Action[T]
	OnUpdate []Action[T]
	OnExit   []Action[T]

	// Transitions in evaluation priority
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType // EventNone = evaluated on Update
	Guard    GuardFunc[T]    // nil = always true
}

// Action represents a side effect
type Action[T any] struct {
	Func ActionFunc[T]
	Args any
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T, args any)
