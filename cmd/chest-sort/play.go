package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/chest-sort/audio"
	"github.com/lixenwraith/chest-sort/engine"
	"github.com/lixenwraith/chest-sort/engine/services"
	"github.com/lixenwraith/chest-sort/input"
	"github.com/lixenwraith/chest-sort/parameter"
	"github.com/lixenwraith/chest-sort/render"
	"github.com/lixenwraith/chest-sort/session"
	"github.com/lixenwraith/chest-sort/status"
	"github.com/lixenwraith/chest-sort/terminal"
)

// runPlay opens the terminal and audio device and runs the game until quit
func runPlay(cmd *cobra.Command, _ []string) error {
	sel, err := loadSelection(cfg)
	if err != nil {
		return err
	}
	if !sel.HasEnoughCards(cfg.Round.Quota) {
		log.Printf("[main] selection %v cannot fill quota %d for every category", sel.Names(), cfg.Round.Quota)
	}

	keys := input.DefaultKeyTable()
	if err := keys.Apply(cfg.Keys); err != nil {
		return fmt.Errorf("keys: %w", err)
	}

	grid := audio.Grid{BPM: cfg.Audio.BPM, BeatsPerBar: cfg.Audio.BeatsPerBar}
	reg := status.NewRegistry()
	audioSvc := audio.NewService(grid, cfg.Audio.Enabled, cfg.Audio.Buffer, reg)
	termSvc := terminal.NewService(nil)

	hub := services.NewHub(reg)
	if err := hub.Register(audioSvc, termSvc); err != nil {
		return err
	}
	if err := hub.Up(nil); err != nil {
		return err
	}
	defer hub.Down()

	scr := termSvc.Screen()
	w, h := scr.Size()
	sess, err := session.New(session.Options{
		Pools:       sel,
		Receptacles: sel.Receptacles(),
		Quota:       cfg.Round.Quota,
		SpawnDelay:  cfg.Round.SpawnDelay,
		Seed:        cfg.Seed,
		Strict:      cfg.Strict,
		Grid:        grid,
		Mixer:       audioSvc.Mixer(),
		Status:      reg,
		Width:       w,
		Height:      h,
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	a := newApp(sess, scr, keys, audioSvc, engine.NewMonotonicTimeProvider())
	a.packs = strings.Join(sel.Names(), "+")
	if err := sess.Start(); err != nil {
		return err
	}
	log.Printf("[main] playing %s, audio backend=%v", a.packs, reg.Bools.Get(status.KeyAudioBackend).Load())
	return a.run(termSvc.Events())
}

// app is the interactive frontend: input routing, pause and help state, frame pacing
type app struct {
	sess    *session.Session
	scr     tcell.Screen
	keys    *input.KeyTable
	audio   *audio.Service
	clock   *engine.FrameClock
	orch    *render.Orchestrator
	pointer render.PointerTranslator

	packs string
	help  bool
	muted bool
}

func newApp(sess *session.Session, scr tcell.Screen, keys *input.KeyTable, audioSvc *audio.Service, tp engine.TimeProvider) *app {
	return &app{
		sess:  sess,
		scr:   scr,
		keys:  keys,
		audio: audioSvc,
		clock: engine.NewFrameClock(tp, parameter.MaxFrameDelta),
		orch:  render.NewDefaultOrchestrator(scr),
	}
}

// run pumps terminal events and frames until a quit intent
func (a *app) run(events <-chan tcell.Event) error {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	a.frame()
	for {
		select {
		case ev := <-events:
			if a.handle(ev) {
				return nil
			}
		case <-ticker.C:
			a.frame()
		}
	}
}

// frame advances the session by wall time and draws
func (a *app) frame() {
	if dt := a.clock.Delta(); dt > 0 {
		a.sess.Tick(dt)
	}
	a.orch.RenderFrame(a.context())
}

func (a *app) context() render.Context {
	return render.Context{
		View:   a.sess.Snapshot(),
		Paused: a.clock.IsPaused(),
		Muted:  a.muted,
		Help:   a.help,
		Packs:  a.packs,
	}
}

// handle routes one terminal event, returns true to quit
func (a *app) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.intent(a.keys.Resolve(ev))

	case *tcell.EventMouse:
		pe, ok := a.pointer.Translate(ev)
		if !ok || a.clock.IsPaused() || a.help {
			return false
		}
		if drop := a.sess.Pointer(pe); drop != nil && drop.Receptacle != nil {
			log.Printf("[main] %s -> %s: %s", drop.Item.Card.Title, drop.Receptacle.ID(), drop.Outcome)
		}

	case *tcell.EventResize:
		w, h := ev.Size()
		a.sess.Resize(w, h)
		a.orch.Resize()
	}
	return false
}

func (a *app) intent(in input.Intent) bool {
	switch in {
	case input.IntentQuit:
		return true
	case input.IntentRestart:
		if err := a.sess.Restart(); err != nil {
			log.Printf("[main] restart: %v", err)
		}
		a.clock.Resume()
		a.help = false
	case input.IntentPause:
		if a.clock.TogglePause() {
			a.sess.CancelDrag()
		}
	case input.IntentToggleMute:
		a.muted = a.audio.ToggleMute()
	case input.IntentCancelDrag:
		a.sess.CancelDrag()
	case input.IntentHelp:
		a.help = !a.help
		if a.help {
			a.sess.CancelDrag()
		}
	}
	return false
}
