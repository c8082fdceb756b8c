package placement

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/chest-sort/core"
)

// CheckCapacity reports whether a round of perCategory items for each of cats can be fully placed
// Every subset of categories must reach receptacles with at least as many slots as it has items,
// otherwise surplus items are rejected forever and the round never completes
func CheckCapacity(cfgs []Config, cats []core.Category, perCategory int) error {
	if perCategory <= 0 || len(cats) == 0 {
		return nil
	}
	if len(cats) > 16 {
		return fmt.Errorf("capacity check: %d categories", len(cats))
	}

	for mask := 1; mask < 1<<len(cats); mask++ {
		var names []string
		demand, slots := 0, 0
		unbounded := false
		for _, c := range cfgs {
			reach := c.AcceptAny
			for j, cat := range cats {
				if mask&(1<<j) != 0 && c.Accepts == cat {
					reach = true
				}
			}
			if !reach {
				continue
			}
			if c.Capacity == 0 {
				unbounded = true
				break
			}
			slots += c.Capacity
		}
		if unbounded {
			continue
		}
		for j, cat := range cats {
			if mask&(1<<j) != 0 {
				demand += perCategory
				names = append(names, cat.String())
			}
		}
		if slots < demand {
			return fmt.Errorf("%w: %s need %d slots, receptacles hold %d",
				ErrInsufficientCapacity, strings.Join(names, "+"), demand, slots)
		}
	}
	return nil
}
