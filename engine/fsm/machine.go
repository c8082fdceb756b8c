package fsm

import (
	"fmt"
	"time"

	"github.com/lixenwraith/chest-sort/event"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes: make(map[StateID]*Node[T]),
	}
}

// Init enters InitialStateID, running OnEnter from root down to the leaf
func (m *Machine[T]) Init(ctx T) error {
	node, ok := m.nodes[m.InitialStateID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", m.InitialStateID)
	}
	if node.Path == nil {
		return fmt.Errorf("paths not compiled")
	}

	m.activeStateID = node.ID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)
	m.started = true

	for _, id := range m.activePath {
		runActions(ctx, m.nodes[id].OnEnter)
	}
	return nil
}

// Update advances time in state, runs OnUpdate for the leaf, then evaluates tick transitions
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if !m.started || m.activeStateID == StateNone {
		return
	}

	m.timeInState += dt
	runActions(ctx, m.nodes[m.activeStateID].OnUpdate)
	m.fire(ctx, event.EventNone)
}

// HandleEvent routes an event through the active path, leaf first
// Returns true if the event triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, et event.EventType) bool {
	if !m.started || m.activeStateID == StateNone || et == event.EventNone {
		return false
	}
	return m.fire(ctx, et)
}

// fire takes the first matching transition, bubbling from leaf to root
func (m *Machine[T]) fire(ctx T, et event.EventType) bool {
	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event != et {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx) {
				m.transition(ctx, trans.TargetID)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// transition performs the state change through the lowest common ancestor
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.activeStateID == targetID {
		return
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("fsm: transition to unknown state ID %d", targetID))
	}

	lcaIndex := -1
	currentPath := m.activePath
	targetPath := targetNode.Path
	for i := 0; i < len(currentPath) && i < len(targetPath); i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}

	// Exit phase: leaf up to LCA (exclusive)
	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		runActions(ctx, m.nodes[currentPath[i]].OnExit)
	}

	from := m.activeStateID
	m.activeStateID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)
	m.transitions++

	// Enter phase: LCA (exclusive) down to target leaf
	// State is committed first so OnEnter observes the new leaf
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		runActions(ctx, m.nodes[targetPath[i]].OnEnter)
	}

	if m.OnTransition != nil {
		m.OnTransition(from, targetID)
	}
}

// Reset exits the active path and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	if m.started {
		for i := len(m.activePath) - 1; i >= 0; i-- {
			runActions(ctx, m.nodes[m.activePath[i]].OnExit)
		}
	}
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	m.transitions = 0
	m.started = false
	return m.Init(ctx)
}

// Current returns the active leaf
func (m *Machine[T]) Current() StateID {
	return m.activeStateID
}

// CurrentName returns the active leaf's name
func (m *Machine[T]) CurrentName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// InState reports whether id is the active leaf or one of its ancestors
func (m *Machine[T]) InState(id StateID) bool {
	for _, p := range m.activePath {
		if p == id {
			return true
		}
	}
	return false
}

// TimeInState returns time spent in the active leaf
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// Transitions returns the number of state changes since Init
func (m *Machine[T]) Transitions() uint64 {
	return m.transitions
}

func runActions[T any](ctx T, actions []Action[T]) {
	for _, a := range actions {
		a.Func(ctx, a.Args)
	}
}
