package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/chest-sort/parameter"
)

// Voice produces the streamer behind a mixer parameter
// Loop voices are created once and run forever; one-shot voices are created per trigger
type Voice struct {
	Loop    bool
	Factory func() beep.Streamer
}

// DefaultVoices synthesizes every default layer on grid
func DefaultVoices(grid Grid, rate beep.SampleRate) map[string]Voice {
	loop := func(root float64, wave WaveType, accent int) Voice {
		return Voice{Loop: true, Factory: func() beep.Streamer { return NewBeatLoop(grid, rate, root, wave, accent) }}
	}
	shot := func(f func() beep.Streamer) Voice {
		return Voice{Factory: f}
	}
	return map[string]Voice{
		parameter.ParamMenu:    loop(196.00, WaveSine, 0),   // G3
		parameter.ParamMoment1: loop(220.00, WaveSine, 3),   // A3
		parameter.ParamMoment2: loop(261.63, WaveSquare, 1), // C4
		parameter.ParamMoment3: loop(329.63, WaveSaw, 1),    // E4
		parameter.ParamAmbient: loop(0, WaveSine, 0),
		parameter.ParamFill: shot(func() beep.Streamer {
			return NewDrumFill(grid, rate, parameter.FillSoundDuration)
		}),
		parameter.ParamCueCorrect: shot(func() beep.Streamer {
			return NewCueTone(parameter.CorrectToneHz, parameter.FeedbackSoundDuration, WaveSine, rate)
		}),
		parameter.ParamCueWrong: shot(func() beep.Streamer {
			return NewCueTone(parameter.WrongToneHz, parameter.FeedbackSoundDuration, WaveSaw, rate)
		}),
	}
}

// BeepMixer plays layers through the system speaker
// Gains map to effects.Volume with base 10 and exponent dB/20
type BeepMixer struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	mixer   *beep.Mixer
	master  *effects.Volume
	voices  map[string]Voice
	loops   map[string]*effects.Volume
	started bool
}

// NewBeepMixer builds loop volumes for every loop voice; nothing plays until Start
func NewBeepMixer(rate beep.SampleRate, voices map[string]Voice) *BeepMixer {
	m := &BeepMixer{
		rate:   rate,
		mixer:  &beep.Mixer{},
		voices: voices,
		loops:  make(map[string]*effects.Volume),
	}
	m.master = &effects.Volume{Streamer: m.mixer, Base: 10}
	for param, v := range voices {
		if v.Loop {
			m.loops[param] = &effects.Volume{Streamer: v.Factory(), Base: 10, Volume: parameter.GainSilent / 20, Silent: true}
		}
	}
	return m
}

// Start opens the speaker and begins streaming every loop
func (m *BeepMixer) Start(buffer time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return nil
	}

	if err := speaker.Init(m.rate, m.rate.N(buffer)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	for _, vol := range m.loops {
		m.mixer.Add(vol)
	}
	speaker.Play(m.master)
	m.started = true
	return nil
}

// Stop silences and releases the speaker
func (m *BeepMixer) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.mixer.Clear()
	m.started = false
}

// SetGain implements Mixer
func (m *BeepMixer) SetGain(param string, db float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	vol, ok := m.loops[param]
	if !ok {
		return
	}
	m.lock()
	vol.Volume = db / 20
	vol.Silent = db <= parameter.GainSilent
	m.unlock()
}

// Trigger implements Mixer
func (m *BeepMixer) Trigger(param string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.voices[param]
	if !ok || v.Loop || !m.started {
		return
	}
	m.lock()
	m.mixer.Add(v.Factory())
	m.unlock()
}

// SetMuted silences the whole output without touching layer gains
func (m *BeepMixer) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lock()
	m.master.Silent = muted
	m.unlock()
}

// Muted reports the master mute
func (m *BeepMixer) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lock()
	defer m.unlock()
	return m.master.Silent
}

// Gain reports the dB currently applied to a loop
func (m *BeepMixer) Gain(param string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	vol, ok := m.loops[param]
	if !ok {
		return 0, false
	}
	m.lock()
	defer m.unlock()
	if vol.Silent {
		return parameter.GainSilent, true
	}
	return vol.Volume * 20, true
}

// lock guards streamer fields against the speaker goroutine once playing
func (m *BeepMixer) lock() {
	if m.started {
		speaker.Lock()
	}
}

func (m *BeepMixer) unlock() {
	if m.started {
		speaker.Unlock()
	}
}
