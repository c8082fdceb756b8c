package content

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/chest-sort/core"
	"github.com/lixenwraith/chest-sort/placement"
)

var (
	// ErrUnknownPack reports a selection naming a pack not in the library
	ErrUnknownPack = errors.New("unknown pack")

	// ErrMixedGames reports a selection combining chest and token packs
	ErrMixedGames = errors.New("packs belong to different games")

	// ErrEmptySelection reports a selection with no packs
	ErrEmptySelection = errors.New("empty selection")
)

// Game is the minigame a pack is played in
type Game string

const (
	GameChest  Game = "chest"
	GameTokens Game = "tokens"
)

// Categories returns the category set of the game
func (g Game) Categories() []core.Category {
	if g == GameTokens {
		return core.TokenCategories
	}
	return core.ChestCategories
}

// Tiers holds the per-tier card lists of a pack
type Tiers struct {
	Easy []core.Card `yaml:"easy"`
	Hard []core.Card `yaml:"hard"`
}

// Cards returns the list for tier
func (t Tiers) Cards(tier core.Tier) []core.Card {
	switch tier {
	case core.TierEasy:
		return t.Easy
	case core.TierHard:
		return t.Hard
	default:
		return nil
	}
}

// Pack is one school's deck and the receptacles it is sorted into
type Pack struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Game        Game               `yaml:"game"`
	Receptacles []placement.Config `yaml:"receptacles"`
	Tiers       Tiers              `yaml:"tiers"`
}

// Decode reads one pack document, rejecting unknown fields
func Decode(r io.Reader) (*Pack, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Pack
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode pack: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the game kind, receptacles and every card
func (p *Pack) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("pack: empty name")
	}
	switch p.Game {
	case GameChest, GameTokens:
	case "":
		p.Game = GameChest
	default:
		return fmt.Errorf("pack %q: unknown game %q", p.Name, p.Game)
	}
	if len(p.Receptacles) == 0 {
		return fmt.Errorf("pack %q: no receptacles", p.Name)
	}

	allowed := p.Game.Categories()
	ids := make(map[string]bool)
	for _, rc := range p.Receptacles {
		if err := rc.Validate(); err != nil {
			return fmt.Errorf("pack %q: %w", p.Name, err)
		}
		if ids[rc.ID] {
			return fmt.Errorf("pack %q: %w: %s", p.Name, placement.ErrDuplicateReceptacle, rc.ID)
		}
		ids[rc.ID] = true
		if !rc.AcceptAny && !slices.Contains(allowed, rc.Accepts) {
			return fmt.Errorf("pack %q: receptacle %q accepts %s outside %s game", p.Name, rc.ID, rc.Accepts, p.Game)
		}
	}

	if err := placement.CheckCapacity(p.Receptacles, allowed, 1); err != nil {
		return fmt.Errorf("pack %q: %w", p.Name, err)
	}

	cardIDs := make(map[string]bool)
	for _, tier := range []core.Tier{core.TierEasy, core.TierHard} {
		for _, c := range p.Tiers.Cards(tier) {
			if err := c.Validate(); err != nil {
				return fmt.Errorf("pack %q %s: %w", p.Name, tier, err)
			}
			if !slices.Contains(allowed, c.Category) {
				return fmt.Errorf("pack %q %s: %w: card %q category %s outside %s game",
					p.Name, tier, core.ErrInvalidCard, c.ID, c.Category, p.Game)
			}
			if cardIDs[c.ID] {
				return fmt.Errorf("pack %q: duplicate card id %q", p.Name, c.ID)
			}
			cardIDs[c.ID] = true
		}
	}
	return nil
}

// Count returns the cards of tier in category
func (p *Pack) Count(tier core.Tier, cat core.Category) int {
	n := 0
	for _, c := range p.Tiers.Cards(tier) {
		if c.Category == cat {
			n++
		}
	}
	return n
}

// HasEnoughCards reports whether every category of both tiers can fill quota
func (p *Pack) HasEnoughCards(quota int) bool {
	for _, tier := range []core.Tier{core.TierEasy, core.TierHard} {
		for _, cat := range p.Game.Categories() {
			if p.Count(tier, cat) < quota {
				return false
			}
		}
	}
	return true
}

// TotalCards counts cards across both tiers
func (p *Pack) TotalCards() int {
	return len(p.Tiers.Easy) + len(p.Tiers.Hard)
}
