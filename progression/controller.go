package progression

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/chest-sort/core"
	"github.com/lixenwraith/chest-sort/engine"
	"github.com/lixenwraith/chest-sort/engine/fsm"
	"github.com/lixenwraith/chest-sort/event"
	"github.com/lixenwraith/chest-sort/parameter"
	"github.com/lixenwraith/chest-sort/placement"
	"github.com/lixenwraith/chest-sort/status"
)

// Progression states
const (
	StatePlaying fsm.StateID = iota + 2
	StateEasy
	StateHard
	StateFinished
)

// ErrNotStarted reports an operation that needs Start first
var ErrNotStarted = errors.New("progression not started")

// Options configures a Controller
type Options struct {
	Pools      PoolProvider
	Quota      int           // Per category, DefaultQuotaPerCategory when zero
	SpawnDelay time.Duration // Before each item, DefaultSpawnDelay when zero; negative spawns at once

	Rand      *rand.Rand
	Bus       *event.Bus
	Scheduler *engine.Scheduler
	Placement *placement.Engine
	Status    *status.Registry
}

// Controller drives Easy -> Hard -> Finished on round completion
type Controller struct {
	pools      PoolProvider
	quota      int
	spawnDelay time.Duration
	rng        *rand.Rand

	bus   *event.Bus
	sched *engine.Scheduler
	place *placement.Engine

	machine *fsm.Machine[*Controller]
	round   *Round
	group   engine.Group // Spawn sequence of the active round
	subs    event.Subscriptions
	started bool

	tierName    *status.Label
	outstanding *atomic.Int64
	shortages   *atomic.Int64
}

// NewController wires the controller to its collaborators; Start begins the session
func NewController(opts Options) (*Controller, error) {
	if opts.Pools == nil {
		return nil, fmt.Errorf("progression: nil pool provider")
	}
	if opts.Bus == nil || opts.Scheduler == nil || opts.Placement == nil {
		return nil, fmt.Errorf("progression: bus, scheduler and placement are required")
	}

	c := &Controller{
		pools:      opts.Pools,
		quota:      opts.Quota,
		spawnDelay: opts.SpawnDelay,
		rng:        opts.Rand,
		bus:        opts.Bus,
		sched:      opts.Scheduler,
		place:      opts.Placement,
	}
	if c.quota == 0 {
		c.quota = parameter.DefaultQuotaPerCategory
	}
	var cfgs []placement.Config
	for _, r := range opts.Placement.Receptacles() {
		cfgs = append(cfgs, r.Config())
	}
	if err := placement.CheckCapacity(cfgs, opts.Pools.Categories(), c.quota); err != nil {
		return nil, fmt.Errorf("progression: %w", err)
	}
	if c.spawnDelay == 0 {
		c.spawnDelay = parameter.DefaultSpawnDelay
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}
	c.tierName = reg.Labels.Get(status.KeyTier)
	c.outstanding = reg.Ints.Get(status.KeyOutstanding)
	c.shortages = reg.Ints.Get(status.KeyShortages)

	m, err := buildMachine()
	if err != nil {
		return nil, err
	}
	c.machine = m

	c.subs.Add(event.On(c.bus, event.EventItemResolved, c.onResolved))
	c.subs.Add(event.On(c.bus, event.EventItemWithdrawn, func(*event.ItemWithdrawnPayload) { c.syncOutstanding() }))
	return c, nil
}

func buildMachine() (*fsm.Machine[*Controller], error) {
	m := fsm.NewMachine[*Controller]()
	m.AddState(fsm.StateRoot, "Root", fsm.StateNone)
	m.AddState(StatePlaying, "Playing", fsm.StateRoot)
	m.AddState(StateEasy, "Easy", StatePlaying).
		Enter(enterTier, core.TierEasy)
	m.AddState(StateHard, "Hard", StatePlaying).
		Enter(announceHard, nil).
		Enter(enterTier, core.TierHard)
	m.AddState(StateFinished, "Finished", fsm.StateRoot).
		Enter(enterFinished, nil)

	m.AddTransition(StateEasy, fsm.Transition[*Controller]{TargetID: StateHard, Event: event.EventRoundCleared})
	m.AddTransition(StateHard, fsm.Transition[*Controller]{TargetID: StateFinished, Event: event.EventRoundCleared})
	m.InitialStateID = StateEasy

	if err := m.CompilePaths(); err != nil {
		return nil, fmt.Errorf("progression fsm: %w", err)
	}
	return m, nil
}

func enterTier(c *Controller, args any) {
	tier := args.(core.Tier)
	c.tierName.Store(tier.String())
	c.SpawnSet(tier)
}

func announceHard(c *Controller, _ any) {
	log.Printf("[progression] hard mode")
	c.bus.Publish(event.EventDifficultyChanged, &event.DifficultyChangedPayload{Tier: core.TierHard})
}

func enterFinished(c *Controller, _ any) {
	c.sched.Cancel(c.group)
	c.group = 0
	c.tierName.Store(core.TierFinished.String())

	st := c.place.Stats()
	log.Printf("[progression] session complete: %s", NewSummary(st.Correct(), st.Error()))
	c.bus.Publish(event.EventSessionComplete, &event.SessionCompletePayload{
		Correct: st.Correct(),
		Error:   st.Error(),
	})
}

// Start enters Easy and draws the first round
func (c *Controller) Start() error {
	if c.started {
		return nil
	}
	if err := c.machine.Init(c); err != nil {
		return err
	}
	c.started = true
	return nil
}

// Restart zeroes the counters and returns to Easy with a fresh round
func (c *Controller) Restart() error {
	if !c.started {
		return ErrNotStarted
	}
	c.sched.Cancel(c.group)
	c.group = 0
	c.round = nil
	c.place.Reset()
	c.bus.Publish(event.EventSessionRestart, nil)
	return c.machine.Reset(c)
}

// Update advances time-in-tier; the session calls it once per tick
// A round whose last ItemResolved was lost to queue overflow is completed here
func (c *Controller) Update(dt time.Duration) {
	if c.round != nil && c.round.Size() > 0 && c.round.Complete() {
		log.Printf("[progression] %s round complete without a resolution event", c.round.Tier)
		c.checkComplete(c.round)
	}
	c.machine.Update(c, dt)
}

// SpawnSet discards the in-flight spawn sequence and active items, then draws and paces a new round
func (c *Controller) SpawnSet(tier core.Tier) {
	c.sched.Cancel(c.group)
	c.place.ClearReceptacles()

	items, shortages := Draw(c.pools, tier, c.quota, c.rng)
	for _, s := range shortages {
		c.shortages.Add(1)
		log.Printf("[progression] pool shortage: tier=%s category=%s requested=%d available=%d",
			tier, s.Category, s.Requested, s.Available)
		c.bus.Publish(event.EventPoolShortage, &event.PoolShortagePayload{
			Tier:      tier,
			Category:  s.Category,
			Requested: s.Requested,
			Available: s.Available,
		})
	}

	round := &Round{Tier: tier, Items: items}
	c.round = round
	c.group = c.sched.NewGroup()
	c.outstanding.Store(int64(len(items)))
	c.bus.Publish(event.EventRoundStarted, &event.RoundStartedPayload{Tier: tier, Size: len(items)})

	if len(items) == 0 {
		// Deferred so the FSM is not re-entered from inside OnEnter
		c.sched.After(0, c.group, func() { c.checkComplete(round) })
		return
	}

	delay := max(c.spawnDelay, 0)
	spawnArea := c.place.SpawnRegion()
	for i, it := range items {
		c.sched.After(delay*time.Duration(i+1), c.group, func() {
			it.Pos = spawnArea.RandomPoint(c.rng)
			round.spawned = i + 1
			c.bus.Publish(event.EventItemSpawned, &event.ItemSpawnedPayload{Item: it, Index: i})
		})
	}
}

func (c *Controller) onResolved(p *event.ItemResolvedPayload) {
	if c.round == nil || !c.round.Contains(p.Item) {
		return
	}
	c.syncOutstanding()
	if p.Outcome == core.OutcomeAccepted {
		c.checkComplete(c.round)
	}
}

func (c *Controller) syncOutstanding() {
	if c.round != nil {
		c.outstanding.Store(int64(c.round.Outstanding()))
	}
}

// checkComplete fires round completion once for the round that is still active
func (c *Controller) checkComplete(r *Round) {
	if r != c.round || !r.Complete() {
		return
	}
	tier := r.Tier
	c.round = nil
	c.bus.Publish(event.EventRoundCleared, &event.RoundClearedPayload{Tier: tier})
	c.machine.HandleEvent(c, event.EventRoundCleared)
}

// Tier returns the current tier
func (c *Controller) Tier() core.Tier {
	switch c.machine.Current() {
	case StateHard:
		return core.TierHard
	case StateFinished:
		return core.TierFinished
	default:
		return core.TierEasy
	}
}

// IsHardMode reports whether the Hard round is active
func (c *Controller) IsHardMode() bool {
	return c.machine.Current() == StateHard
}

// Finished reports the terminal state
func (c *Controller) Finished() bool {
	return c.machine.Current() == StateFinished
}

// CorrectCount returns accepted placements this session
func (c *Controller) CorrectCount() int64 {
	return c.place.Stats().Correct()
}

// ErrorCount returns rejected placements this session
func (c *Controller) ErrorCount() int64 {
	return c.place.Stats().Error()
}

// Round returns the active round, nil between rounds and after Finished
func (c *Controller) Round() *Round {
	return c.round
}

// Active returns items currently on the board
func (c *Controller) Active() []*core.Item {
	if c.round == nil {
		return nil
	}
	return c.round.Active()
}

// TimeInTier returns time spent in the current tier
func (c *Controller) TimeInTier() time.Duration {
	return c.machine.TimeInState()
}

// Summary reports the counters with accuracy and medal
func (c *Controller) Summary() Summary {
	return NewSummary(c.CorrectCount(), c.ErrorCount())
}

// Close cancels pending spawns and releases bus subscriptions
func (c *Controller) Close() {
	c.sched.Cancel(c.group)
	c.group = 0
	c.subs.UnsubscribeAll()
}
