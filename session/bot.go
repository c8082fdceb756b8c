package session

import (
	"errors"
	"math/rand"
	"time"

	"github.com/lixenwraith/chest-sort/core"
	"github.com/lixenwraith/chest-sort/input"
	"github.com/lixenwraith/chest-sort/parameter"
	"github.com/lixenwraith/chest-sort/progression"
)

// ErrTimeout reports a headless run that did not finish in time
var ErrTimeout = errors.New("simulation timed out")

// Bot plays a session through pointer events, seeing only snapshots
type Bot struct {
	s        *Session
	rng      *rand.Rand
	accuracy float64
	interval time.Duration
	wait     time.Duration
	drops    int
}

// NewBot creates a bot that picks the matching receptacle with probability accuracy
func NewBot(s *Session, accuracy float64, rng *rand.Rand) *Bot {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Bot{
		s:        s,
		rng:      rng,
		accuracy: min(max(accuracy, 0), 1),
		interval: parameter.BotActionInterval,
	}
}

// Drops returns how many drops the bot made
func (b *Bot) Drops() int { return b.drops }

// Step advances the bot's clock and makes at most one drop when its interval elapses
func (b *Bot) Step(dt time.Duration) bool {
	b.wait += dt
	if b.wait < b.interval {
		return false
	}
	b.wait = 0

	v := b.s.Snapshot()
	// Topmost first, so the grab lands on the item that was picked
	var item *ItemView
	for i := len(v.Items) - 1; i >= 0; i-- {
		if v.Items[i].State == core.ItemSpawned {
			item = &v.Items[i]
			break
		}
	}
	if item == nil {
		return false
	}
	target := b.choose(item.Category, v.Receptacles)
	if target == nil {
		return false
	}

	b.s.Pointer(input.PointerEvent{Phase: input.PointerBegin, Pos: item.Bounds.Min})
	b.s.Pointer(input.PointerEvent{Phase: input.PointerMove, Pos: target.Bounds.Center()})
	b.s.Pointer(input.PointerEvent{Phase: input.PointerEnd, Pos: target.Bounds.Center()})
	b.drops++
	return true
}

func (b *Bot) choose(cat core.Category, rs []ReceptacleView) *ReceptacleView {
	var right, wrong []*ReceptacleView
	for i := range rs {
		r := &rs[i]
		open := r.Capacity == 0 || r.Count < r.Capacity
		if (r.AcceptAny || r.Accepts == cat) && open {
			right = append(right, r)
		} else {
			wrong = append(wrong, r)
		}
	}
	pick := right
	if len(wrong) > 0 && (len(right) == 0 || b.rng.Float64() >= b.accuracy) {
		pick = wrong
	}
	if len(pick) == 0 {
		return nil
	}
	return pick[b.rng.Intn(len(pick))]
}

// Simulate ticks s with a fixed step, letting bot play, until the session finishes or timeout elapses
func Simulate(s *Session, bot *Bot, step, timeout time.Duration) (progression.Summary, error) {
	if step <= 0 {
		step = parameter.SimulationStep
	}
	for elapsed := time.Duration(0); elapsed < timeout; elapsed += step {
		s.Tick(step)
		if s.Finished() {
			return s.Summary(), nil
		}
		bot.Step(step)
	}
	return s.Summary(), ErrTimeout
}
