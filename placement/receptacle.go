package placement

import (
	"fmt"
	"math"
	"slices"

	"github.com/lixenwraith/chest-sort/core"
	"github.com/lixenwraith/chest-sort/parameter"
)

// Config declares a receptacle
// Capacity 0 is an unbounded chest, 1 a single slot chest, N a multi-slot token board
type Config struct {
	ID            string        `yaml:"id" mapstructure:"id"`
	Label         string        `yaml:"label" mapstructure:"label"`
	Accepts       core.Category `yaml:"accepts,omitempty" mapstructure:"accepts"`
	AcceptAny     bool          `yaml:"accept_any,omitempty" mapstructure:"accept_any"`
	Capacity      int           `yaml:"capacity,omitempty" mapstructure:"capacity"`
	Retain        bool          `yaml:"retain,omitempty" mapstructure:"retain"`
	Justification string        `yaml:"justification,omitempty" mapstructure:"justification"`
	Bounds        core.Rect     `yaml:"-" mapstructure:"-"`
}

// Validate checks the declaration is usable
func (c Config) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("receptacle: empty id")
	}
	if !c.AcceptAny && !c.Accepts.Valid() {
		return fmt.Errorf("receptacle %q: %w", c.ID, core.ErrUnknownCategory)
	}
	if c.Capacity < 0 {
		return fmt.Errorf("receptacle %q: negative capacity %d", c.ID, c.Capacity)
	}
	return nil
}

// Receptacle is a drop target mutated only by Engine
type Receptacle struct {
	cfg Config

	count       int
	effort      int
	uncertainty int
	held        []*core.Item // Retained items, in placement order
}

// NewReceptacle builds an empty receptacle from cfg
func NewReceptacle(cfg Config) (*Receptacle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Label == "" {
		cfg.Label = cfg.ID
	}
	return &Receptacle{cfg: cfg}, nil
}

// ID returns the receptacle id
func (r *Receptacle) ID() string { return r.cfg.ID }

// Label returns the display name
func (r *Receptacle) Label() string { return r.cfg.Label }

// Config returns the declaration
func (r *Receptacle) Config() Config { return r.cfg }

// Bounds returns the world-space drop area
func (r *Receptacle) Bounds() core.Rect { return r.cfg.Bounds }

// SetBounds moves the drop area; the renderer lays receptacles out at runtime
func (r *Receptacle) SetBounds(b core.Rect) { r.cfg.Bounds = b }

// Count returns items accepted and not withdrawn
func (r *Receptacle) Count() int { return r.count }

// Full reports whether a capacity-checked receptacle has no room left
func (r *Receptacle) Full() bool {
	return r.cfg.Capacity > 0 && r.count >= r.cfg.Capacity
}

// Matches reports whether category c is accepted here
func (r *Receptacle) Matches(c core.Category) bool {
	return r.cfg.AcceptAny || r.cfg.Accepts == c
}

// Aggregate returns the summed effort and uncertainty of accepted items
func (r *Receptacle) Aggregate() (effort, uncertainty int) {
	return r.effort, r.uncertainty
}

// Held returns a copy of retained items
func (r *Receptacle) Held() []*core.Item {
	return slices.Clone(r.held)
}

// Fill returns aggregate bar levels in [0, FillLevels]
// Totals are normalized against capacity * MaxAttribute, token slot capacity when unbounded
func (r *Receptacle) Fill() (effort, uncertainty int) {
	capacity := r.cfg.Capacity
	if capacity == parameter.CapacityUnbounded {
		capacity = parameter.CapacityTokenSlot
	}
	maxTotal := float64(capacity * core.MaxAttribute)
	return fillLevel(r.effort, maxTotal), fillLevel(r.uncertainty, maxTotal)
}

func fillLevel(total int, maxTotal float64) int {
	v := float64(total)
	if v > maxTotal {
		v = maxTotal
	}
	if v < 0 {
		v = 0
	}
	return int(math.Round(v / maxTotal * parameter.FillLevels))
}

func (r *Receptacle) add(it *core.Item) {
	r.count++
	r.effort += it.Card.Effort
	r.uncertainty += it.Card.Uncertainty
	if r.cfg.Retain {
		r.held = append(r.held, it)
	}
}

func (r *Receptacle) remove(it *core.Item) bool {
	i := slices.Index(r.held, it)
	if i < 0 {
		return false
	}
	r.held = slices.Delete(r.held, i, i+1)
	r.count--
	r.effort -= it.Card.Effort
	r.uncertainty -= it.Card.Uncertainty
	return true
}

func (r *Receptacle) clear() {
	r.count = 0
	r.effort = 0
	r.uncertainty = 0
	r.held = nil
}
