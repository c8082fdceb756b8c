package input

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/chest-sort/core"
	"github.com/lixenwraith/chest-sort/placement"
)

// board is a minimal locator over a fixed item list and the engine's receptacles
type board struct {
	engine *placement.Engine
	items  []*core.Item
}

func (b *board) ItemAt(pos core.Vec2) *core.Item {
	for _, it := range b.items {
		if it.State == core.ItemConsumed {
			continue
		}
		if core.RectXYWH(it.Pos.X, it.Pos.Y, 4, 1).Contains(pos) {
			return it
		}
	}
	return nil
}

func (b *board) ReceptacleAt(pos core.Vec2) *placement.Receptacle {
	for _, r := range b.engine.Receptacles() {
		if r.Bounds().Contains(pos) {
			return r
		}
	}
	return nil
}

func newBoard(t *testing.T, cfgs ...placement.Config) *board {
	t.Helper()
	e := placement.NewEngine(placement.Options{
		Spawn: core.RectXYWH(0, 0, 40, 10),
		Rand:  rand.New(rand.NewSource(3)),
	})
	for _, cfg := range cfgs {
		_, err := e.AddReceptacle(cfg)
		require.NoError(t, err)
	}
	return &board{engine: e}
}

func (b *board) spawn(cat core.Category, x, y float64) *core.Item {
	it := core.NewItem(core.Card{ID: cat.String(), Title: cat.String(), Category: cat, Effort: 2, Uncertainty: 1}, core.TierEasy)
	it.Pos = core.Vec2{X: x, Y: y}
	b.items = append(b.items, it)
	return it
}

func scienceChest() placement.Config {
	return placement.Config{
		ID:      "science",
		Accepts: core.CategoryScience,
		Bounds:  core.RectXYWH(0, 20, 10, 5),
	}
}

func drag(a *Adapter, from, to core.Vec2) *Drop {
	a.Handle(PointerEvent{Phase: PointerBegin, Pos: from})
	a.Handle(PointerEvent{Phase: PointerMove, Pos: to})
	return a.Handle(PointerEvent{Phase: PointerEnd, Pos: to})
}

func TestAdapterDropOnMatchingReceptacle(t *testing.T) {
	b := newBoard(t, scienceChest())
	a := NewAdapter(b.engine, b)
	it := b.spawn(core.CategoryScience, 5, 5)

	drop := drag(a, core.Vec2{X: 6, Y: 5}, core.Vec2{X: 3, Y: 22})
	require.NotNil(t, drop)
	require.NotNil(t, drop.Receptacle)
	assert.Equal(t, "science", drop.Receptacle.ID())
	assert.Equal(t, core.OutcomeAccepted, drop.Outcome)
	assert.Equal(t, core.ItemConsumed, it.State)
	assert.Nil(t, a.Carried())
	assert.Equal(t, int64(1), b.engine.Stats().Correct())
}

func TestAdapterDropOnWrongReceptacle(t *testing.T) {
	b := newBoard(t, scienceChest())
	a := NewAdapter(b.engine, b)
	it := b.spawn(core.CategoryTechnology, 5, 5)

	drop := drag(a, core.Vec2{X: 5, Y: 5}, core.Vec2{X: 1, Y: 21})
	require.NotNil(t, drop)
	assert.Equal(t, core.OutcomeRejected, drop.Outcome)
	assert.Equal(t, core.ItemSpawned, it.State)
	assert.True(t, b.engine.SpawnRegion().Contains(it.Pos), "rejected item returns to the spawn region")
	assert.Equal(t, int64(1), b.engine.Stats().Error())
}

func TestAdapterDropOnEmptySpaceKeepsCounters(t *testing.T) {
	b := newBoard(t, scienceChest())
	a := NewAdapter(b.engine, b)
	it := b.spawn(core.CategoryScience, 5, 5)

	// Grabbed one cell right of the item's origin
	drop := drag(a, core.Vec2{X: 6, Y: 5}, core.Vec2{X: 31, Y: 8})
	require.NotNil(t, drop)
	assert.Nil(t, drop.Receptacle)
	assert.Equal(t, core.ItemSpawned, it.State)
	assert.Equal(t, core.Vec2{X: 30, Y: 8}, it.Pos)
	assert.Zero(t, b.engine.Stats().Total())
}

func TestAdapterMoveTracksPointer(t *testing.T) {
	b := newBoard(t)
	a := NewAdapter(b.engine, b)
	it := b.spawn(core.CategoryScience, 5, 5)

	a.Handle(PointerEvent{Phase: PointerBegin, Pos: core.Vec2{X: 7, Y: 5}})
	require.Same(t, it, a.Carried())
	assert.Equal(t, core.ItemInTransit, it.State)

	a.Handle(PointerEvent{Phase: PointerMove, Pos: core.Vec2{X: 12, Y: 9}})
	assert.Equal(t, core.Vec2{X: 10, Y: 9}, it.Pos)

	a.Cancel()
	assert.Nil(t, a.Carried())
	assert.Equal(t, core.ItemSpawned, it.State)
	assert.Equal(t, core.Vec2{X: 5, Y: 5}, it.Pos)
}

func TestAdapterIgnoresStrayEdges(t *testing.T) {
	b := newBoard(t, scienceChest())
	a := NewAdapter(b.engine, b)
	b.spawn(core.CategoryScience, 5, 5)

	assert.Nil(t, a.Handle(PointerEvent{Phase: PointerEnd, Pos: core.Vec2{X: 1, Y: 21}}))
	assert.Nil(t, a.Handle(PointerEvent{Phase: PointerMove, Pos: core.Vec2{X: 1, Y: 21}}))

	// Begin over nothing carries nothing
	a.Handle(PointerEvent{Phase: PointerBegin, Pos: core.Vec2{X: 35, Y: 9}})
	assert.Nil(t, a.Carried())
	assert.Zero(t, b.engine.Stats().Total())
}

func TestAdapterWithdrawsToken(t *testing.T) {
	b := newBoard(t,
		placement.Config{ID: "understand", Accepts: core.CategoryUnderstand, Capacity: 3, Retain: true, Bounds: core.RectXYWH(0, 20, 10, 5)},
		placement.Config{ID: "imagine", Accepts: core.CategoryImagine, Capacity: 3, Retain: true, Bounds: core.RectXYWH(20, 20, 10, 5)},
	)
	a := NewAdapter(b.engine, b)
	it := b.spawn(core.CategoryUnderstand, 5, 5)

	drop := drag(a, core.Vec2{X: 5, Y: 5}, core.Vec2{X: 2, Y: 21})
	require.NotNil(t, drop)
	require.Equal(t, core.OutcomeAccepted, drop.Outcome)
	require.Equal(t, core.ItemPlaced, it.State)

	// Pick the placed token back up and move it to the other slot
	drop = drag(a, core.Vec2{X: 2, Y: 21}, core.Vec2{X: 22, Y: 21})
	require.NotNil(t, drop)
	assert.Equal(t, "imagine", drop.Receptacle.ID())
	assert.Equal(t, core.OutcomeRejected, drop.Outcome)

	understand, err := b.engine.Receptacle("understand")
	require.NoError(t, err)
	assert.Zero(t, understand.Count())
	assert.Equal(t, int64(1), b.engine.Stats().Correct())
	assert.Equal(t, int64(1), b.engine.Stats().Error())
}

func TestSubmitItemWithoutLocator(t *testing.T) {
	b := newBoard(t)
	a := NewAdapter(b.engine, nil)
	it := b.spawn(core.CategoryScience, 5, 5)

	r, out := a.SubmitItem(it, core.Vec2{X: 1, Y: 1})
	assert.Nil(t, r)
	assert.Equal(t, core.OutcomeRejected, out)
	assert.Zero(t, b.engine.Stats().Total())
}

func TestPointerPhaseString(t *testing.T) {
	tests := []struct {
		p    PointerPhase
		want string
	}{
		{PointerBegin, "begin"},
		{PointerMove, "move"},
		{PointerEnd, "end"},
		{PointerPhase(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("PointerPhase(%d).String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}
