package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/chest-sort/audio"
	"github.com/lixenwraith/chest-sort/content"
	"github.com/lixenwraith/chest-sort/core"
	"github.com/lixenwraith/chest-sort/event"
	"github.com/lixenwraith/chest-sort/input"
	"github.com/lixenwraith/chest-sort/parameter"
	"github.com/lixenwraith/chest-sort/placement"
	"github.com/lixenwraith/chest-sort/progression"
)

// onePerCategory serves a single card per chest category and tier
type onePerCategory struct{}

func (onePerCategory) Categories() []core.Category { return core.ChestCategories }

func (onePerCategory) Pool(tier core.Tier, cat core.Category) []core.Card {
	return []core.Card{{
		ID:       tier.String() + "-" + cat.String(),
		Title:    cat.String() + " " + tier.String(),
		Category: cat,
		Effort:   2,
		Feedback: "think about " + cat.String(),
	}}
}

func chests() []placement.Config {
	cfgs := make([]placement.Config, 0, len(core.ChestCategories))
	for _, cat := range core.ChestCategories {
		cfgs = append(cfgs, placement.Config{ID: cat.String(), Accepts: cat, Justification: "fits " + cat.String()})
	}
	return cfgs
}

func newTestSession(t *testing.T, mixer audio.Mixer) *Session {
	t.Helper()
	s, err := New(Options{
		Pools:       onePerCategory{},
		Receptacles: chests(),
		Quota:       1,
		SpawnDelay:  time.Second,
		Seed:        11,
		Mixer:       mixer,
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	require.NoError(t, s.Start())
	return s
}

func receptacleFor(v View, cat core.Category) ReceptacleView {
	for _, r := range v.Receptacles {
		if r.Accepts == cat {
			return r
		}
	}
	return ReceptacleView{}
}

func receptacleAgainst(v View, cat core.Category) ReceptacleView {
	for _, r := range v.Receptacles {
		if r.Accepts != cat {
			return r
		}
	}
	return ReceptacleView{}
}

func dragTo(s *Session, it ItemView, r ReceptacleView) *input.Drop {
	s.Pointer(input.PointerEvent{Phase: input.PointerBegin, Pos: it.Bounds.Min})
	s.Pointer(input.PointerEvent{Phase: input.PointerMove, Pos: r.Bounds.Center()})
	return s.Pointer(input.PointerEvent{Phase: input.PointerEnd, Pos: r.Bounds.Center()})
}

// clearRound spawns the whole round and drops every item on its matching receptacle
// The topmost item is taken each time so overlapping items never hide the target
func clearRound(t *testing.T, s *Session) {
	t.Helper()
	for range 3 {
		s.Tick(time.Second)
	}
	for range 3 {
		v := s.Snapshot()
		require.NotEmpty(t, v.Items)
		it := v.Items[len(v.Items)-1]
		drop := dragTo(s, it, receptacleFor(v, it.Category))
		require.NotNil(t, drop)
		require.Equal(t, core.OutcomeAccepted, drop.Outcome)
	}
}

func TestSessionSpawnsOverTime(t *testing.T) {
	s := newTestSession(t, nil)

	v := s.Snapshot()
	assert.Equal(t, core.TierEasy, v.Tier)
	assert.Equal(t, 3, v.RoundSize)
	assert.Empty(t, v.Items)

	s.Tick(time.Second)
	assert.Len(t, s.Snapshot().Items, 1)

	s.Tick(2 * time.Second)
	v = s.Snapshot()
	require.Len(t, v.Items, 3)
	for _, it := range v.Items {
		assert.Equal(t, core.ItemSpawned, it.State)
		assert.True(t, v.Receptacles[0].Bounds.Min.Y > it.Bounds.Min.Y, "items spawn above the receptacles")
	}
}

func TestSessionPointerAccept(t *testing.T) {
	s := newTestSession(t, nil)
	s.Tick(time.Second)

	v := s.Snapshot()
	require.Len(t, v.Items, 1)
	it := v.Items[0]

	drop := dragTo(s, it, receptacleFor(v, it.Category))
	require.NotNil(t, drop)
	assert.Equal(t, core.OutcomeAccepted, drop.Outcome)

	v = s.Snapshot()
	assert.Empty(t, v.Items)
	assert.Equal(t, int64(1), v.Summary.Correct)
	assert.Contains(t, v.Message, "fits "+it.Category.String())
	assert.Equal(t, 2, v.Outstanding)

	// Message expires
	s.Tick(parameter.FeedbackMessageDuration)
	assert.Empty(t, s.Snapshot().Message)
}

func TestSessionPointerReject(t *testing.T) {
	s := newTestSession(t, nil)
	s.Tick(time.Second)

	v := s.Snapshot()
	it := v.Items[0]
	drop := dragTo(s, it, receptacleAgainst(v, it.Category))
	require.NotNil(t, drop)
	assert.Equal(t, core.OutcomeRejected, drop.Outcome)

	v = s.Snapshot()
	require.Len(t, v.Items, 1)
	assert.Equal(t, core.ItemSpawned, v.Items[0].State)
	assert.Equal(t, int64(1), v.Summary.Error)
	assert.Contains(t, v.Message, "think about "+it.Category.String())
}

func TestSessionFullRunDrivesSoundtrack(t *testing.T) {
	mixer := audio.NewMemoryMixer()
	s := newTestSession(t, mixer)

	var order []event.EventType
	for _, et := range []event.EventType{event.EventDifficultyChanged, event.EventSessionComplete} {
		s.Bus().Subscribe(et, func(ev event.GameEvent) { order = append(order, ev.Type) })
	}

	clearRound(t, s)
	s.Tick(parameter.SimulationStep)
	assert.Equal(t, core.TierHard, s.Snapshot().Tier)

	clearRound(t, s)
	s.Tick(parameter.SimulationStep)
	require.True(t, s.Finished())
	assert.Equal(t, []event.EventType{event.EventDifficultyChanged, event.EventSessionComplete}, order)

	sum := s.Summary()
	assert.Equal(t, int64(6), sum.Correct)
	assert.Equal(t, progression.MedalGold, sum.Medal)

	// Fill, hold and the final crossfade all fit in ten seconds at 120 bpm
	for range 10 {
		s.Tick(time.Second)
	}
	menu, err := s.Gain(parameter.LayerMenu)
	require.NoError(t, err)
	assert.Equal(t, parameter.GainSilent, menu)
	m3, err := s.Gain(parameter.LayerMoment3)
	require.NoError(t, err)
	assert.Equal(t, parameter.GainUnity, m3)
	assert.Equal(t, 1, mixer.Triggers(parameter.ParamFill))
}

func TestSessionRestart(t *testing.T) {
	s := newTestSession(t, nil)
	clearRound(t, s)
	s.Tick(parameter.SimulationStep)
	require.Equal(t, core.TierHard, s.Snapshot().Tier)

	require.NoError(t, s.Restart())
	v := s.Snapshot()
	assert.Equal(t, core.TierEasy, v.Tier)
	assert.Zero(t, v.Summary.Correct)
	assert.Empty(t, v.Items)
	assert.Equal(t, 3, v.RoundSize)
}

func TestSessionLifecycleGuards(t *testing.T) {
	s, err := New(Options{Pools: onePerCategory{}, Receptacles: chests(), Seed: 1})
	require.NoError(t, err)

	assert.Nil(t, s.Pointer(input.PointerEvent{Phase: input.PointerBegin}))
	assert.ErrorIs(t, s.Restart(), progression.ErrNotStarted)
	s.Tick(time.Second)

	require.NoError(t, s.Start())
	require.NoError(t, s.Start())
	s.Close()
	s.Close()
	s.Tick(time.Second)
	assert.Nil(t, s.Pointer(input.PointerEvent{Phase: input.PointerBegin}))

	_, err = New(Options{Pools: onePerCategory{}})
	assert.Error(t, err)
	_, err = New(Options{Pools: onePerCategory{}, Receptacles: []placement.Config{{ID: "x"}}})
	assert.Error(t, err)
}

func TestSessionRejectsSlotsSmallerThanQuota(t *testing.T) {
	slots := chests()
	for i := range slots {
		slots[i].Capacity = parameter.CapacitySingleSlot
		slots[i].Retain = true
	}

	_, err := New(Options{Pools: onePerCategory{}, Receptacles: slots, Quota: 2, Seed: 1})
	assert.ErrorIs(t, err, placement.ErrInsufficientCapacity)

	s, err := New(Options{Pools: onePerCategory{}, Receptacles: slots, Quota: 1, Seed: 1})
	require.NoError(t, err)
	s.Close()
}

func TestSessionResize(t *testing.T) {
	s := newTestSession(t, nil)
	for range 3 {
		s.Tick(time.Second)
	}

	s.Resize(120, 40)
	v := s.Snapshot()
	assert.Equal(t, 120, v.Width)
	assert.Equal(t, 40, v.Height)
	board := core.RectXYWH(0, 0, 120, 40)
	for _, r := range v.Receptacles {
		assert.True(t, board.Contains(r.Bounds.Min))
	}

	s.Resize(10, 5)
	v = s.Snapshot()
	assert.Equal(t, parameter.MinBoardWidth, v.Width)
	for _, it := range v.Items {
		assert.LessOrEqual(t, it.Bounds.Max.X, float64(parameter.MinBoardWidth))
		assert.Less(t, it.Bounds.Min.Y, float64(parameter.MinBoardHeight))
	}
}

func TestNewLayout(t *testing.T) {
	l := NewLayout(80, 24, 3)
	require.Len(t, l.Receptacles, 3)
	board := l.Board()

	for i, r := range l.Receptacles {
		assert.True(t, board.Contains(r.Min), "receptacle %d on board", i)
		assert.LessOrEqual(t, r.Max.X, board.Max.X)
		assert.GreaterOrEqual(t, r.Min.Y, l.Spawn.Max.Y, "receptacle %d below spawn region", i)
		if i > 0 {
			assert.Greater(t, r.Min.X, l.Receptacles[i-1].Max.X, "receptacles do not overlap")
		}
	}
	// A full-width label spawned at the right edge still fits
	assert.LessOrEqual(t, l.Spawn.Max.X+parameter.MaxItemLabel+2, board.Max.X)

	assert.Equal(t, core.Vec2{X: 2, Y: 11}, SlotPos(core.RectXYWH(1, 10, 10, 4), 0))
	assert.Equal(t, core.Vec2{X: 2, Y: 11}, SlotPos(core.RectXYWH(1, 10, 10, 4), 2), "slots wrap")
	assert.Equal(t, core.Vec2{X: 2, Y: 12}, SlotPos(core.RectXYWH(1, 10, 10, 4), 1))
}

func TestItemLabelTruncates(t *testing.T) {
	it := core.NewItem(core.Card{Title: "An exceedingly long card title"}, core.TierEasy)
	label := ItemLabel(it)
	assert.Len(t, []rune(label), parameter.MaxItemLabel)

	it.Card.Short = "Short"
	assert.Equal(t, "Short", ItemLabel(it))

	it.Pos = core.Vec2{X: 3.7, Y: 4.2}
	assert.Equal(t, core.RectXYWH(3, 4, 7, 1), ItemBounds(it))
}

func TestSimulateBuiltinPacks(t *testing.T) {
	lib, err := content.Builtin()
	require.NoError(t, err)

	for _, name := range lib.Names() {
		t.Run(name, func(t *testing.T) {
			sel, err := lib.Select(name)
			require.NoError(t, err)

			s, err := New(Options{
				Pools:       sel,
				Receptacles: sel.Receptacles(),
				SpawnDelay:  200 * time.Millisecond,
				Seed:        7,
			})
			require.NoError(t, err)
			defer s.Close()
			require.NoError(t, s.Start())

			bot := NewBot(s, 0.6, rand.New(rand.NewSource(5)))
			sum, err := Simulate(s, bot, parameter.SimulationStep, parameter.SimulationTimeout)
			require.NoError(t, err)

			want := int64(2 * parameter.DefaultQuotaPerCategory * len(sel.Categories()))
			assert.Equal(t, want, sum.Correct)
			assert.Equal(t, int64(bot.Drops()), sum.Correct+sum.Error)
		})
	}
}

func TestSimulateTimeout(t *testing.T) {
	s := newTestSession(t, nil)
	bot := NewBot(s, 1, nil)

	_, err := Simulate(s, bot, parameter.SimulationStep, time.Second)
	assert.ErrorIs(t, err, ErrTimeout)
}
