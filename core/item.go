package core

import (
	"fmt"

	"github.com/google/uuid"
)

// Tier is a difficulty level selecting which pool a round is drawn from
type Tier uint8

const (
	TierEasy Tier = iota
	TierHard
	TierFinished
)

func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "Easy"
	case TierHard:
		return "Hard"
	case TierFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// ItemState is the lifecycle position of a round item
type ItemState uint8

const (
	ItemSpawned ItemState = iota
	ItemInTransit
	ItemPlaced
	ItemConsumed
)

func (s ItemState) String() string {
	switch s {
	case ItemSpawned:
		return "spawned"
	case ItemInTransit:
		return "in-transit"
	case ItemPlaced:
		return "placed"
	case ItemConsumed:
		return "consumed"
	default:
		return "unknown"
	}
}

// Resolved reports whether the state counts toward round completion
func (s ItemState) Resolved() bool {
	return s == ItemPlaced || s == ItemConsumed
}

// Attribute bounds for card effort and uncertainty
const (
	MinAttribute = 0
	MaxAttribute = 10
)

// Card is an immutable pool template
type Card struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Category    Category `yaml:"category"`
	Effort      int      `yaml:"effort"`
	Uncertainty int      `yaml:"uncertainty"`
	Feedback    string   `yaml:"feedback,omitempty"`
	Short       string   `yaml:"short,omitempty"`
}

// Validate checks category and attribute ranges
func (c Card) Validate() error {
	if !c.Category.Valid() {
		return fmt.Errorf("%w: card %q has no category", ErrInvalidCard, c.ID)
	}
	if c.Effort < MinAttribute || c.Effort > MaxAttribute {
		return fmt.Errorf("%w: card %q effort %d outside [%d,%d]", ErrInvalidCard, c.ID, c.Effort, MinAttribute, MaxAttribute)
	}
	if c.Uncertainty < MinAttribute || c.Uncertainty > MaxAttribute {
		return fmt.Errorf("%w: card %q uncertainty %d outside [%d,%d]", ErrInvalidCard, c.ID, c.Uncertainty, MinAttribute, MaxAttribute)
	}
	return nil
}

// Item is a card instance inside the active round
type Item struct {
	ID    uuid.UUID
	Card  Card
	Tier  Tier
	State ItemState
	Pos   Vec2

	// Receptacle holding the item while Placed, empty otherwise
	Receptacle string
}

// NewItem instantiates a card for a round
func NewItem(card Card, tier Tier) *Item {
	return &Item{
		ID:    uuid.New(),
		Card:  card,
		Tier:  tier,
		State: ItemSpawned,
	}
}

// Category shortcut
func (it *Item) Category() Category {
	return it.Card.Category
}

func (it *Item) String() string {
	return fmt.Sprintf("%s(%s,%s,%s)", it.Card.Title, it.Card.Category, it.State, it.ID.String()[:8])
}
