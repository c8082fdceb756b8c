package progression

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/lixenwraith/chest-sort/core"
	"github.com/lixenwraith/chest-sort/engine"
	"github.com/lixenwraith/chest-sort/event"
	"github.com/lixenwraith/chest-sort/parameter"
	"github.com/lixenwraith/chest-sort/placement"
)

// mapPools is an in-memory PoolProvider keyed by tier then category
type mapPools map[core.Tier]map[core.Category][]core.Card

func (m mapPools) Categories() []core.Category { return core.ChestCategories }

func (m mapPools) Pool(tier core.Tier, cat core.Category) []core.Card {
	return m[tier][cat]
}

func makePools(sizes map[core.Category]int) mapPools {
	pools := mapPools{}
	for _, tier := range []core.Tier{core.TierEasy, core.TierHard} {
		pools[tier] = map[core.Category][]core.Card{}
		for cat, n := range sizes {
			for i := 0; i < n; i++ {
				pools[tier][cat] = append(pools[tier][cat], core.Card{
					ID:       fmt.Sprintf("%s-%s-%d", tier, cat, i),
					Title:    fmt.Sprintf("%s %d", cat, i),
					Category: cat,
					Effort:   i % 10,
				})
			}
		}
	}
	return pools
}

type harness struct {
	bus   *event.Bus
	sched *engine.Scheduler
	place *placement.Engine
	ctrl  *Controller
	log   []event.EventType
}

func newHarness(t *testing.T, pools PoolProvider, delay time.Duration) *harness {
	t.Helper()
	h := &harness{
		bus:   event.NewBus(),
		sched: engine.NewScheduler(),
	}
	h.place = placement.NewEngine(placement.Options{
		Spawn: core.RectXYWH(0, 0, 10, 10),
		Bus:   h.bus,
	})
	for _, cat := range core.ChestCategories {
		_, err := h.place.AddReceptacle(placement.Config{ID: cat.String(), Accepts: cat})
		require.NoError(t, err)
	}

	ctrl, err := NewController(Options{
		Pools:      pools,
		SpawnDelay: delay,
		Rand:       rand.New(rand.NewSource(42)),
		Bus:        h.bus,
		Scheduler:  h.sched,
		Placement:  h.place,
	})
	require.NoError(t, err)
	h.ctrl = ctrl

	for _, et := range []event.EventType{
		event.EventRoundStarted, event.EventRoundCleared, event.EventDifficultyChanged,
		event.EventSessionComplete, event.EventPoolShortage, event.EventSessionRestart,
	} {
		h.bus.Subscribe(et, func(ev event.GameEvent) { h.log = append(h.log, ev.Type) })
	}
	t.Cleanup(ctrl.Close)
	return h
}

func (h *harness) step(dt time.Duration) {
	h.sched.Tick(dt)
	h.ctrl.Update(dt)
	h.bus.Dispatch()
}

// clearRound places every item of the active round into its matching chest
func (h *harness) clearRound(t *testing.T) {
	t.Helper()
	r := h.ctrl.Round()
	require.NotNil(t, r)
	for r.Spawned() < r.Size() {
		h.step(time.Second)
	}
	for _, it := range r.Items {
		rec, err := h.place.Receptacle(it.Category().String())
		require.NoError(t, err)
		out, err := h.place.Evaluate(it, rec)
		require.NoError(t, err)
		require.Equal(t, core.OutcomeAccepted, out)
	}
	h.bus.Dispatch()
}

func TestDrawQuotaBalanced(t *testing.T) {
	pools := makePools(map[core.Category]int{
		core.CategoryScience: 3, core.CategoryTechnology: 3, core.CategoryInnovation: 3,
	})

	for seed := int64(0); seed < 20; seed++ {
		items, shortages := Draw(pools, core.TierEasy, 2, rand.New(rand.NewSource(seed)))
		require.Len(t, items, 6)
		assert.Empty(t, shortages)

		perCat := map[core.Category]int{}
		seen := map[string]bool{}
		for _, it := range items {
			perCat[it.Category()]++
			assert.False(t, seen[it.Card.ID], "duplicate card %s", it.Card.ID)
			seen[it.Card.ID] = true
			assert.Equal(t, core.TierEasy, it.Tier)
		}
		for _, cat := range core.ChestCategories {
			assert.Equal(t, 2, perCat[cat], "category %s", cat)
		}
	}
}

func TestDrawShuffles(t *testing.T) {
	pools := makePools(map[core.Category]int{
		core.CategoryScience: 3, core.CategoryTechnology: 3, core.CategoryInnovation: 3,
	})

	orders := map[string]bool{}
	for seed := int64(0); seed < 20; seed++ {
		items, _ := Draw(pools, core.TierEasy, 2, rand.New(rand.NewSource(seed)))
		key := ""
		for _, it := range items {
			key += it.Category().String()[:1]
		}
		orders[key] = true
	}
	assert.Greater(t, len(orders), 1, "category order never varied")
}

func TestDrawShortage(t *testing.T) {
	pools := makePools(map[core.Category]int{
		core.CategoryScience: 1, core.CategoryTechnology: 3,
	})

	items, shortages := Draw(pools, core.TierHard, 2, rand.New(rand.NewSource(1)))
	assert.Len(t, items, 3)
	assert.ElementsMatch(t, []Shortage{
		{Category: core.CategoryScience, Requested: 2, Available: 1},
		{Category: core.CategoryInnovation, Requested: 2, Available: 0},
	}, shortages)
}

func TestDrawLeavesPoolUntouched(t *testing.T) {
	pools := makePools(map[core.Category]int{core.CategoryScience: 5})
	before := append([]core.Card(nil), pools[core.TierEasy][core.CategoryScience]...)

	Draw(pools, core.TierEasy, 3, rand.New(rand.NewSource(3)))
	assert.Equal(t, before, pools[core.TierEasy][core.CategoryScience])
}

func TestSpawnPacing(t *testing.T) {
	pools := makePools(map[core.Category]int{
		core.CategoryScience: 3, core.CategoryTechnology: 3, core.CategoryInnovation: 3,
	})
	h := newHarness(t, pools, 2*time.Second)

	var spawned []int
	event.On(h.bus, event.EventItemSpawned, func(p *event.ItemSpawnedPayload) {
		spawned = append(spawned, p.Index)
		assert.True(t, h.place.SpawnRegion().Contains(p.Item.Pos))
	})

	require.NoError(t, h.ctrl.Start())
	h.step(1999 * time.Millisecond)
	assert.Empty(t, spawned, "no item before the first delay")

	h.step(time.Millisecond)
	assert.Equal(t, []int{0}, spawned)

	h.step(10 * time.Second)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, spawned)
	assert.Len(t, h.ctrl.Active(), 6)
}

func TestProgressionEasyHardFinished(t *testing.T) {
	pools := makePools(map[core.Category]int{
		core.CategoryScience: 3, core.CategoryTechnology: 3, core.CategoryInnovation: 3,
	})
	h := newHarness(t, pools, 100*time.Millisecond)

	require.NoError(t, h.ctrl.Start())
	h.bus.Dispatch()
	assert.Equal(t, core.TierEasy, h.ctrl.Tier())
	assert.False(t, h.ctrl.IsHardMode())

	h.clearRound(t)
	assert.True(t, h.ctrl.IsHardMode())
	assert.Equal(t, core.TierHard, h.ctrl.Round().Tier)

	h.clearRound(t)
	assert.True(t, h.ctrl.Finished())
	assert.Nil(t, h.ctrl.Round())
	assert.Equal(t, int64(12), h.ctrl.CorrectCount())
	assert.Zero(t, h.ctrl.ErrorCount())

	assert.Equal(t, []event.EventType{
		event.EventRoundStarted,
		event.EventRoundCleared, event.EventDifficultyChanged, event.EventRoundStarted,
		event.EventRoundCleared, event.EventSessionComplete,
	}, h.log)

	// No further rounds once finished
	h.step(time.Minute)
	assert.Nil(t, h.ctrl.Round())
	assert.Equal(t, core.TierFinished, h.ctrl.Tier())

	s := h.ctrl.Summary()
	assert.Equal(t, MedalGold, s.Medal)
	assert.InDelta(t, 100.0, s.Accuracy, 1e-9)
}

func TestRejectionKeepsRoundOutstanding(t *testing.T) {
	pools := makePools(map[core.Category]int{core.CategoryScience: 1})
	h := newHarness(t, pools, time.Millisecond)
	require.NoError(t, h.ctrl.Start())
	h.step(time.Second)

	it := h.ctrl.Round().Items[0]
	wrong, err := h.place.Receptacle(core.CategoryTechnology.String())
	require.NoError(t, err)
	out, err := h.place.Evaluate(it, wrong)
	require.NoError(t, err)
	require.Equal(t, core.OutcomeRejected, out)
	h.bus.Dispatch()

	assert.Equal(t, core.TierEasy, h.ctrl.Tier())
	assert.Equal(t, 1, h.ctrl.Round().Outstanding())
	assert.Equal(t, int64(1), h.ctrl.ErrorCount())
}

func TestEmptyRoundCompletesImmediately(t *testing.T) {
	h := newHarness(t, mapPools{}, time.Second)
	require.NoError(t, h.ctrl.Start())

	// Both empty rounds resolve on the first tick; the Hard completion timer is already due
	h.step(0)
	assert.True(t, h.ctrl.Finished())
	assert.Contains(t, h.log, event.EventDifficultyChanged)

	shortages := 0
	for _, et := range h.log {
		if et == event.EventPoolShortage {
			shortages++
		}
	}
	assert.Equal(t, 6, shortages, "three categories short in each tier")
}

func TestSpawnSetCancelsStaleSequence(t *testing.T) {
	pools := makePools(map[core.Category]int{
		core.CategoryScience: 3, core.CategoryTechnology: 3, core.CategoryInnovation: 3,
	})
	h := newHarness(t, pools, time.Second)
	require.NoError(t, h.ctrl.Start())
	h.step(1500 * time.Millisecond)

	stale := h.ctrl.Round()
	require.Equal(t, 1, stale.Spawned())

	h.ctrl.SpawnSet(core.TierEasy)
	fresh := h.ctrl.Round()
	require.NotSame(t, stale, fresh)

	h.step(10 * time.Second)
	assert.Equal(t, 1, stale.Spawned(), "superseded sequence must not spawn")
	assert.Equal(t, 6, fresh.Spawned())

	// A resolution from the stale round never completes the fresh one
	it := stale.Items[0]
	rec, err := h.place.Receptacle(it.Category().String())
	require.NoError(t, err)
	_, err = h.place.Evaluate(it, rec)
	require.NoError(t, err)
	h.bus.Dispatch()
	assert.Equal(t, 6, fresh.Outstanding())
}

func TestRestart(t *testing.T) {
	pools := makePools(map[core.Category]int{
		core.CategoryScience: 3, core.CategoryTechnology: 3, core.CategoryInnovation: 3,
	})
	h := newHarness(t, pools, time.Millisecond)
	assert.ErrorIs(t, h.ctrl.Restart(), ErrNotStarted)

	require.NoError(t, h.ctrl.Start())
	h.clearRound(t)
	require.True(t, h.ctrl.IsHardMode())

	require.NoError(t, h.ctrl.Restart())
	assert.Equal(t, core.TierEasy, h.ctrl.Tier())
	assert.Zero(t, h.ctrl.CorrectCount())
	assert.Equal(t, 6, h.ctrl.Round().Size())
}

func TestSummaryMedals(t *testing.T) {
	tests := []struct {
		correct, errs int64
		medal         Medal
	}{
		{9, 1, MedalGold},
		{7, 3, MedalSilver},
		{6, 4, MedalBronze},
		{0, 0, MedalBronze},
	}
	for _, tt := range tests {
		if got := NewSummary(tt.correct, tt.errs).Medal; got != tt.medal {
			t.Errorf("NewSummary(%d, %d).Medal = %v, want %v", tt.correct, tt.errs, got, tt.medal)
		}
	}
}

// Tiers only move forward and no round starts after Finished, whatever the drop sequence
func TestProgressionMonotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		sizes := map[core.Category]int{}
		for _, cat := range core.ChestCategories {
			sizes[cat] = rapid.IntRange(0, 3).Draw(rt, cat.String())
		}
		h := newHarness(t, makePools(sizes), time.Millisecond)
		if err := h.ctrl.Start(); err != nil {
			rt.Fatalf("start: %v", err)
		}

		last := h.ctrl.Tier()
		rounds := 0
		h.bus.Subscribe(event.EventRoundStarted, func(event.GameEvent) { rounds++ })

		for step := 0; step < 200 && !h.ctrl.Finished(); step++ {
			h.step(10 * time.Millisecond)
			if active := h.ctrl.Active(); len(active) > 0 {
				it := rapid.SampledFrom(active).Draw(rt, "item")
				cat := rapid.SampledFrom(core.ChestCategories).Draw(rt, "chest")
				rec, _ := h.place.Receptacle(cat.String())
				h.place.Evaluate(it, rec)
				h.bus.Dispatch()
			}
			if tier := h.ctrl.Tier(); tier < last {
				rt.Fatalf("tier went back from %s to %s", last, tier)
			} else {
				last = tier
			}
		}

		h.step(time.Minute)
		if rounds > 2 {
			rt.Fatalf("%d rounds started, want at most 2", rounds)
		}
	})
}

func TestControllerRejectsSlotsSmallerThanQuota(t *testing.T) {
	newSlots := func(bus *event.Bus) *placement.Engine {
		place := placement.NewEngine(placement.Options{Spawn: core.RectXYWH(0, 0, 10, 10), Bus: bus})
		for _, cat := range core.ChestCategories {
			_, err := place.AddReceptacle(placement.Config{
				ID:       cat.String(),
				Accepts:  cat,
				Capacity: parameter.CapacitySingleSlot,
				Retain:   true,
			})
			require.NoError(t, err)
		}
		return place
	}
	pools := makePools(map[core.Category]int{
		core.CategoryScience: 3, core.CategoryTechnology: 3, core.CategoryInnovation: 3,
	})
	opts := func(quota int, place *placement.Engine, bus *event.Bus) Options {
		return Options{
			Pools:     pools,
			Quota:     quota,
			Rand:      rand.New(rand.NewSource(1)),
			Bus:       bus,
			Scheduler: engine.NewScheduler(),
			Placement: place,
		}
	}

	bus := event.NewBus()
	_, err := NewController(opts(2, newSlots(bus), bus))
	require.ErrorIs(t, err, placement.ErrInsufficientCapacity)

	// One item per single slot completes the round
	place := newSlots(bus)
	o := opts(1, place, bus)
	ctrl, err := NewController(o)
	require.NoError(t, err)
	t.Cleanup(ctrl.Close)
	require.NoError(t, ctrl.Start())
	for ctrl.Round().Spawned() < ctrl.Round().Size() {
		o.Scheduler.Tick(time.Second)
	}
	for _, it := range ctrl.Round().Items {
		rec, err := place.Receptacle(it.Category().String())
		require.NoError(t, err)
		out, err := place.Evaluate(it, rec)
		require.NoError(t, err)
		require.Equal(t, core.OutcomeAccepted, out)
	}
	bus.Dispatch()
	assert.Equal(t, core.TierHard, ctrl.Tier())
}

func TestUpdateCompletesRoundWhenResolutionDropped(t *testing.T) {
	pools := makePools(map[core.Category]int{core.CategoryScience: 2})
	h := newHarness(t, pools, time.Millisecond)
	require.NoError(t, h.ctrl.Start())
	h.step(time.Second)

	for _, it := range h.ctrl.Round().Items {
		rec, err := h.place.Receptacle(it.Category().String())
		require.NoError(t, err)
		_, err = h.place.Evaluate(it, rec)
		require.NoError(t, err)
	}
	// Flood the queue so the ItemResolved events are overwritten before dispatch
	for range parameter.EventQueueSize {
		h.bus.Publish(event.EventFillTriggered, nil)
	}
	h.bus.Dispatch()
	require.Equal(t, core.TierEasy, h.ctrl.Tier(), "resolution events were dropped")

	h.step(0)
	assert.Equal(t, core.TierHard, h.ctrl.Tier())
	assert.Contains(t, h.log, event.EventRoundCleared)
}
