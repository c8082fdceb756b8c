package progression

import (
	"math/rand"

	"github.com/lixenwraith/chest-sort/core"
)

// PoolProvider supplies card pools per tier and category
// The active content selection is opaque to the controller
type PoolProvider interface {
	Categories() []core.Category
	Pool(tier core.Tier, cat core.Category) []core.Card
}

// Shortage records a category pool that could not meet its quota
type Shortage struct {
	Category  core.Category
	Requested int
	Available int
}

// Draw builds a round: quota cards per category drawn without replacement, then shuffled as a whole
// Undersized pools contribute everything they have and are reported as shortages
func Draw(pools PoolProvider, tier core.Tier, quota int, rng *rand.Rand) ([]*core.Item, []Shortage) {
	var (
		items     []*core.Item
		shortages []Shortage
	)
	if quota <= 0 {
		return nil, nil
	}

	for _, cat := range pools.Categories() {
		pool := pools.Pool(tier, cat)
		n := quota
		if len(pool) < quota {
			shortages = append(shortages, Shortage{Category: cat, Requested: quota, Available: len(pool)})
			n = len(pool)
		}
		// Partial Fisher-Yates over an index permutation leaves the provider's slice untouched
		idx := rng.Perm(len(pool))
		for _, i := range idx[:n] {
			items = append(items, core.NewItem(pool[i], tier))
		}
	}

	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	return items, shortages
}
