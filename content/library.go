package content

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/lixenwraith/chest-sort/core"
	"github.com/lixenwraith/chest-sort/placement"
)

//go:embed packs/*.yaml
var builtin embed.FS

// Library indexes packs by name
type Library struct {
	packs map[string]*Pack
	order []string
}

// NewLibrary creates an empty library
func NewLibrary() *Library {
	return &Library{packs: make(map[string]*Pack)}
}

// Builtin loads the packs compiled into the binary
func Builtin() (*Library, error) {
	lib := NewLibrary()
	if err := lib.LoadFS(builtin, "packs"); err != nil {
		return nil, err
	}
	return lib, nil
}

// Add registers a pack, replacing any pack with the same name
func (l *Library) Add(p *Pack) {
	if _, exists := l.packs[p.Name]; !exists {
		l.order = append(l.order, p.Name)
	} else {
		log.Printf("[content] pack %q overridden", p.Name)
	}
	l.packs[p.Name] = p
}

// LoadFS decodes every .yaml/.yml file directly under dir
func (l *Library) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read packs dir %s: %w", dir, err)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			continue
		}
		f, err := fsys.Open(path.Join(dir, name))
		if err != nil {
			return err
		}
		p, err := Decode(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		l.Add(p)
	}
	return nil
}

// LoadDir decodes packs from a directory on disk
func (l *Library) LoadDir(dir string) error {
	return l.LoadFS(os.DirFS(dir), ".")
}

// Names returns pack names in load order
func (l *Library) Names() []string {
	return slices.Clone(l.order)
}

// Pack looks up a pack by name
func (l *Library) Pack(name string) (*Pack, bool) {
	p, ok := l.packs[name]
	return p, ok
}

// Others returns every pack except the named one
func (l *Library) Others(exclude string) []*Pack {
	var out []*Pack
	for _, name := range l.order {
		if name != exclude {
			out = append(out, l.packs[name])
		}
	}
	return out
}

// Select combines the named packs into one pool; all must be the same game
// Receptacles come from the first pack
func (l *Library) Select(names ...string) (*Selection, error) {
	if len(names) == 0 {
		return nil, ErrEmptySelection
	}
	sel := &Selection{pools: make(map[core.Tier]map[core.Category][]core.Card)}
	for _, name := range names {
		p, ok := l.packs[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPack, name)
		}
		if len(sel.packs) == 0 {
			sel.game = p.Game
			sel.receptacles = slices.Clone(p.Receptacles)
		} else if p.Game != sel.game {
			return nil, fmt.Errorf("%w: %s is %s, selection is %s", ErrMixedGames, name, p.Game, sel.game)
		}
		sel.packs = append(sel.packs, p)
		for _, tier := range []core.Tier{core.TierEasy, core.TierHard} {
			if sel.pools[tier] == nil {
				sel.pools[tier] = make(map[core.Category][]core.Card)
			}
			for _, c := range p.Tiers.Cards(tier) {
				sel.pools[tier][c.Category] = append(sel.pools[tier][c.Category], c)
			}
		}
	}
	return sel, nil
}

// Selection is the active combined pool; it implements progression.PoolProvider
type Selection struct {
	game        Game
	packs       []*Pack
	receptacles []placement.Config
	pools       map[core.Tier]map[core.Category][]core.Card
}

// Game returns the minigame of the selection
func (s *Selection) Game() Game { return s.game }

// Names returns the selected pack names
func (s *Selection) Names() []string {
	out := make([]string, len(s.packs))
	for i, p := range s.packs {
		out[i] = p.Name
	}
	return out
}

// Categories implements progression.PoolProvider
func (s *Selection) Categories() []core.Category {
	return s.game.Categories()
}

// Pool implements progression.PoolProvider
func (s *Selection) Pool(tier core.Tier, cat core.Category) []core.Card {
	return s.pools[tier][cat]
}

// Receptacles returns the receptacle declarations for the board
func (s *Selection) Receptacles() []placement.Config {
	return slices.Clone(s.receptacles)
}

// HasEnoughCards reports whether the combined pool fills quota for every category and tier
func (s *Selection) HasEnoughCards(quota int) bool {
	for _, tier := range []core.Tier{core.TierEasy, core.TierHard} {
		for _, cat := range s.Categories() {
			if len(s.pools[tier][cat]) < quota {
				return false
			}
		}
	}
	return true
}

// CheckQuota reports whether the receptacles can hold a full round of quota items per category
func (s *Selection) CheckQuota(quota int) error {
	if err := placement.CheckCapacity(s.receptacles, s.Categories(), quota); err != nil {
		return fmt.Errorf("packs %s with quota %d: %w", strings.Join(s.Names(), "+"), quota, err)
	}
	return nil
}
