package progression

import "github.com/lixenwraith/chest-sort/core"

// Round is one quota-balanced, shuffled batch presented in spawn order
type Round struct {
	Tier  core.Tier
	Items []*core.Item

	spawned int // Items[:spawned] have entered the play area
}

// Size returns the number of items drawn
func (r *Round) Size() int {
	return len(r.Items)
}

// Spawned returns how many items have appeared so far
func (r *Round) Spawned() int {
	return r.spawned
}

// Outstanding counts items not yet placed or consumed, spawned or not
func (r *Round) Outstanding() int {
	n := 0
	for _, it := range r.Items {
		if !it.State.Resolved() {
			n++
		}
	}
	return n
}

// Complete reports that every item is placed or consumed
func (r *Round) Complete() bool {
	return r.Outstanding() == 0
}

// Contains reports whether it belongs to this round
func (r *Round) Contains(it *core.Item) bool {
	for _, x := range r.Items {
		if x == it {
			return true
		}
	}
	return false
}

// Active returns spawned items still on the board
// Placed items stay visible in their slot; consumed items are gone
func (r *Round) Active() []*core.Item {
	out := make([]*core.Item, 0, r.spawned)
	for _, it := range r.Items[:r.spawned] {
		if it.State != core.ItemConsumed {
			out = append(out, it)
		}
	}
	return out
}
