package content

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/chest-sort/core"
	"github.com/lixenwraith/chest-sort/parameter"
	"github.com/lixenwraith/chest-sort/placement"
)

const minimalPack = `
name: tiny
game: chest
receptacles:
  - {id: science, accepts: ciencia}
  - {id: technology, accepts: tecnologia}
  - {id: innovation, accepts: innovación, capacity: 1}
tiers:
  easy:
    - {id: a, title: A, category: science, effort: 1, uncertainty: 2}
  hard:
    - {id: b, title: B, category: tecnologia, effort: 3, uncertainty: 4}
`

func TestBuiltinPacks(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"engineering", "health", "project"}, lib.Names())

	for _, name := range lib.Names() {
		p, ok := lib.Pack(name)
		require.True(t, ok)
		assert.True(t, p.HasEnoughCards(parameter.DefaultQuotaPerCategory), "pack %s", name)
	}

	p, _ := lib.Pack("project")
	assert.Equal(t, GameTokens, p.Game)
	for _, rc := range p.Receptacles {
		assert.Equal(t, parameter.CapacityTokenSlot, rc.Capacity)
		assert.True(t, rc.Retain)
	}
}

func TestDecodeAliases(t *testing.T) {
	p, err := Decode(strings.NewReader(minimalPack))
	require.NoError(t, err)

	assert.Equal(t, core.CategoryScience, p.Receptacles[0].Accepts)
	assert.Equal(t, core.CategoryTechnology, p.Receptacles[1].Accepts)
	assert.Equal(t, core.CategoryInnovation, p.Receptacles[2].Accepts)
	assert.Equal(t, core.CategoryTechnology, p.Tiers.Hard[0].Category)
	assert.Equal(t, 1, p.Count(core.TierEasy, core.CategoryScience))
	assert.False(t, p.HasEnoughCards(1))
	assert.Equal(t, 2, p.TotalCards())
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "name: x\ncolor: red\n"},
		{"no receptacles", "name: x\n"},
		{"bad game", "name: x\ngame: chess\nreceptacles: [{id: a, accept_any: true}]\n"},
		{"token category in chest game", "name: x\nreceptacles: [{id: a, accepts: imagine}]\n"},
		{"effort out of range", "name: x\nreceptacles: [{id: a, accept_any: true}]\ntiers: {easy: [{id: c, category: science, effort: 11}]}\n"},
		{"duplicate card", "name: x\nreceptacles: [{id: a, accept_any: true}]\ntiers: {easy: [{id: c, category: science}], hard: [{id: c, category: science}]}\n"},
		{"unknown category", "name: x\nreceptacles: [{id: a, accepts: art}]\n"},
		{"category without receptacle", "name: x\nreceptacles: [{id: a, accepts: science}, {id: b, accepts: technology}]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestSelectCombinesPools(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)

	single, err := lib.Select("engineering")
	require.NoError(t, err)
	both, err := lib.Select("engineering", "health")
	require.NoError(t, err)

	for _, cat := range core.ChestCategories {
		assert.Equal(t,
			2*len(single.Pool(core.TierEasy, cat)),
			len(both.Pool(core.TierEasy, cat)),
			"category %s", cat)
	}
	assert.Equal(t, []string{"engineering", "health"}, both.Names())
	assert.Equal(t, core.ChestCategories, both.Categories())
	assert.Len(t, both.Receptacles(), 3)
	assert.True(t, both.HasEnoughCards(6))
	assert.False(t, both.HasEnoughCards(7))
}

func TestSelectErrors(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)

	_, err = lib.Select()
	assert.ErrorIs(t, err, ErrEmptySelection)
	_, err = lib.Select("nope")
	assert.ErrorIs(t, err, ErrUnknownPack)
	_, err = lib.Select("engineering", "project")
	assert.ErrorIs(t, err, ErrMixedGames)
}

func TestSelectionCheckQuota(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)

	tokens, err := lib.Select("project")
	require.NoError(t, err)
	assert.NoError(t, tokens.CheckQuota(parameter.CapacityTokenSlot))
	err = tokens.CheckQuota(parameter.CapacityTokenSlot + 1)
	assert.ErrorIs(t, err, placement.ErrInsufficientCapacity)
	assert.Contains(t, err.Error(), "project")

	chests, err := lib.Select("engineering")
	require.NoError(t, err)
	assert.NoError(t, chests.CheckQuota(50), "unbounded chests take any quota")

	tiny, err := Decode(strings.NewReader(minimalPack))
	require.NoError(t, err)
	lib.Add(tiny)
	sel, err := lib.Select("tiny")
	require.NoError(t, err)
	assert.NoError(t, sel.CheckQuota(1))
	assert.ErrorIs(t, sel.CheckQuota(2), placement.ErrInsufficientCapacity, "single innovation slot")
}

func TestLoadFSOverrides(t *testing.T) {
	fsys := fstest.MapFS{
		"extra/tiny.yaml":  {Data: []byte(minimalPack)},
		"extra/notes.txt":  {Data: []byte("ignored")},
		"extra/nested/x.y": {Data: []byte("ignored")},
	}
	lib, err := Builtin()
	require.NoError(t, err)
	require.NoError(t, lib.LoadFS(fsys, "extra"))

	_, ok := lib.Pack("tiny")
	assert.True(t, ok)
	assert.Len(t, lib.Others("tiny"), 3)
}
