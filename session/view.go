package session

import (
	"time"

	"github.com/lixenwraith/chest-sort/core"
	"github.com/lixenwraith/chest-sort/progression"
	"github.com/lixenwraith/chest-sort/status"
)

// ItemView is a copy of one item for drawing
type ItemView struct {
	Label    string
	Category core.Category
	State    core.ItemState
	Bounds   core.Rect
}

// ReceptacleView is a copy of one receptacle for drawing
type ReceptacleView struct {
	ID        string
	Label     string
	Accepts   core.Category
	AcceptAny bool
	Bounds    core.Rect
	Count     int
	Capacity  int

	// Fill levels 0..FillLevels of the aggregated attributes
	Effort      int
	Uncertainty int
}

// View is a consistent snapshot of the board taken under the session lock
type View struct {
	Width, Height int

	Tier     core.Tier
	Finished bool
	Summary  progression.Summary

	RoundSize   int
	Spawned     int
	Outstanding int
	TimeInTier  time.Duration

	Items       []ItemView // Draw order, the carried item last
	Receptacles []ReceptacleView
	Message     string
	Metrics     []status.Entry
}

// Snapshot copies the board for a presenter
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Width:      s.layout.Width,
		Height:     s.layout.Height,
		Tier:       s.ctrl.Tier(),
		Finished:   s.ctrl.Finished(),
		Summary:    s.ctrl.Summary(),
		TimeInTier: s.ctrl.TimeInTier(),
		Metrics:    s.reg.Snapshot(),
	}
	if r := s.ctrl.Round(); r != nil {
		v.RoundSize = r.Size()
		v.Spawned = r.Spawned()
		v.Outstanding = r.Outstanding()
	}
	if s.sched.Now() < s.messageUntil {
		v.Message = s.message
	}

	carried := s.adapter.Carried()
	for _, it := range s.ctrl.Active() {
		if it == carried {
			continue
		}
		v.Items = append(v.Items, itemView(it))
	}
	if carried != nil {
		v.Items = append(v.Items, itemView(carried))
	}

	for _, r := range s.place.Receptacles() {
		cfg := r.Config()
		eff, unc := r.Fill()
		v.Receptacles = append(v.Receptacles, ReceptacleView{
			ID:          r.ID(),
			Label:       r.Label(),
			Accepts:     cfg.Accepts,
			AcceptAny:   cfg.AcceptAny,
			Bounds:      r.Bounds(),
			Count:       r.Count(),
			Capacity:    cfg.Capacity,
			Effort:      eff,
			Uncertainty: unc,
		})
	}
	return v
}

func itemView(it *core.Item) ItemView {
	return ItemView{
		Label:    ItemLabel(it),
		Category: it.Category(),
		State:    it.State,
		Bounds:   ItemBounds(it),
	}
}
