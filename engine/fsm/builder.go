package fsm

import "fmt"

// AddState adds a node to the machine
func (m *Machine[T]) AddState(id StateID, name string, parentID StateID) *Node[T] {
	node := &Node[T]{
		ID:       id,
		Name:     name,
		ParentID: parentID,
	}
	m.nodes[id] = node
	return node
}

// AddTransition adds a transition to a specific node
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) {
	if node, ok := m.nodes[sourceID]; ok {
		node.Transitions = append(node.Transitions, t)
	}
}

// Enter appends an OnEnter action
func (n *Node[T]) Enter(fn ActionFunc[T], args any) *Node[T] {
	n.OnEnter = append(n.OnEnter, Action[T]{Func: fn, Args: args})
	return n
}

// Exit appends an OnExit action
func (n *Node[T]) Exit(fn ActionFunc[T], args any) *Node[T] {
	n.OnExit = append(n.OnExit, Action[T]{Func: fn, Args: args})
	return n
}

// Tick appends an OnUpdate action
func (n *Node[T]) Tick(fn ActionFunc[T], args any) *Node[T] {
	n.OnUpdate = append(n.OnUpdate, Action[T]{Func: fn, Args: args})
	return n
}

// CompilePaths calculates the Path slice for every node in the graph
// Must be called after all nodes are added and before Init
func (m *Machine[T]) CompilePaths() error {
	for id, node := range m.nodes {
		path := make([]StateID, 0, 4)
		curr := node

		// Walk up to root
		for {
			path = append(path, curr.ID)
			if curr.ParentID == StateNone {
				break
			}
			if len(path) > len(m.nodes) {
				return fmt.Errorf("node %d: parent cycle", id)
			}
			parent, ok := m.nodes[curr.ParentID]
			if !ok {
				return fmt.Errorf("node %d references missing parent %d", id, curr.ParentID)
			}
			curr = parent
		}

		// Reverse to get [Root, ..., Leaf]
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}

		node.Path = path
	}

	for id, node := range m.nodes {
		for _, t := range node.Transitions {
			if _, ok := m.nodes[t.TargetID]; !ok {
				return fmt.Errorf("node %d: transition to unknown state %d", id, t.TargetID)
			}
		}
	}
	return nil
}
