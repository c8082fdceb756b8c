package audio

import (
	"log"

	"github.com/lixenwraith/chest-sort/core"
	"github.com/lixenwraith/chest-sort/event"
	"github.com/lixenwraith/chest-sort/parameter"
)

// Cue keys used for multi-leg transitions
const (
	CueGameplay = "menu->gameplay"
)

// Director maps session events to soundtrack cues
type Director struct {
	seq  *Sequencer
	subs event.Subscriptions
}

// NewDirector subscribes to the bus; Close releases the subscriptions
func NewDirector(seq *Sequencer, bus *event.Bus) *Director {
	d := &Director{seq: seq}
	d.subs.Add(bus.Subscribe(event.EventGameplayStart, func(event.GameEvent) { d.GameplayStart() }))
	d.subs.Add(event.On(bus, event.EventDifficultyChanged, func(p *event.DifficultyChangedPayload) {
		if p.Tier == core.TierHard {
			d.HardMode()
		}
	}))
	d.subs.Add(bus.Subscribe(event.EventSessionComplete, func(event.GameEvent) { d.SessionComplete() }))
	d.subs.Add(bus.Subscribe(event.EventSessionRestart, func(event.GameEvent) { d.Restart() }))
	d.subs.Add(event.On(bus, event.EventItemResolved, d.resolved))
	return d
}

// GameplayStart fades the menu loop out while the first gameplay moment and the ambient bed come in
func (d *Director) GameplayStart() {
	d.check(d.seq.ScheduleTransition(CueGameplay, []Leg{
		{Layer: parameter.LayerMenu, Target: parameter.GainSilent, Duration: parameter.FadeOutMenu},
		{Layer: parameter.LayerMoment1, Target: parameter.GainUnity, Duration: parameter.FadeInMoment1},
		{Layer: parameter.LayerAmbient, Target: parameter.GainUnity, Duration: parameter.FadeInAmbient},
	}, false))
}

// HardMode moves to the second moment on the next bar
func (d *Director) HardMode() {
	d.check(d.seq.ScheduleCrossfade(parameter.LayerMoment1, parameter.LayerMoment2,
		parameter.FadeOut12, parameter.FadeIn12, true))
}

// SessionComplete plays the drum fill, then moves to the third moment
func (d *Director) SessionComplete() {
	d.check(d.seq.ScheduleFillThenCrossfade(parameter.LayerFill,
		parameter.FillAtBeat, parameter.FillHoldBeats,
		parameter.LayerMoment2, parameter.LayerMoment3,
		parameter.FadeOut23, parameter.FadeIn23))
}

// Restart returns to the menu mix and replays the gameplay entry
func (d *Director) Restart() {
	d.seq.Reset()
	d.GameplayStart()
}

func (d *Director) resolved(p *event.ItemResolvedPayload) {
	cue := parameter.LayerCueWrong
	if p.Outcome == core.OutcomeAccepted {
		cue = parameter.LayerCueCorrect
	}
	// Layer sets without feedback cues are allowed
	_ = d.seq.Trigger(cue)
}

func (d *Director) check(err error) {
	if err != nil {
		log.Printf("[audio] director: %v", err)
	}
}

// Close releases bus subscriptions
func (d *Director) Close() {
	d.subs.UnsubscribeAll()
}
