package audio

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/chest-sort/parameter"
	"github.com/lixenwraith/chest-sort/status"
)

// Service owns the output device as a services.Service
// When the device cannot open, the service degrades to a silent MemoryMixer
type Service struct {
	grid    Grid
	enabled bool
	buffer  time.Duration
	beep    *BeepMixer
	silent  *MemoryMixer
	backend *atomic.Bool
	muted   *atomic.Bool
}

// NewService creates the audio service; enabled=false never touches the device
// A non-positive buffer uses AudioBufferDuration
func NewService(grid Grid, enabled bool, buffer time.Duration, reg *status.Registry) *Service {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if buffer <= 0 {
		buffer = parameter.AudioBufferDuration
	}
	return &Service{
		grid:    grid,
		enabled: enabled,
		buffer:  buffer,
		silent:  NewMemoryMixer(),
		backend: reg.Bools.Get(status.KeyAudioBackend),
		muted:   reg.Bools.Get(status.KeyAudioMuted),
	}
}

// Name implements services.Service
func (s *Service) Name() string { return "audio" }

// Dependencies implements services.Service
func (s *Service) Dependencies() []string { return nil }

// Init implements services.Service
func (s *Service) Init(any) error {
	if !s.enabled {
		return nil
	}
	rate := beep.SampleRate(parameter.AudioSampleRate)
	s.beep = NewBeepMixer(rate, DefaultVoices(s.grid, rate))
	return nil
}

// Start implements services.Service; device failure is logged, not returned
func (s *Service) Start() error {
	if s.beep == nil {
		return nil
	}
	if err := s.beep.Start(s.buffer); err != nil {
		log.Printf("[audio] output unavailable, continuing silent: %v", err)
		s.beep = nil
		return nil
	}
	s.backend.Store(true)
	return nil
}

// Stop implements services.Service
func (s *Service) Stop() error {
	if s.beep != nil {
		s.beep.Stop()
		s.backend.Store(false)
	}
	return nil
}

// Mixer returns the active backend; valid after Start
func (s *Service) Mixer() Mixer {
	if s.beep != nil {
		return s.beep
	}
	return s.silent
}

// ToggleMute flips the master mute and returns the new state
// Without an audible backend only the reported state changes
func (s *Service) ToggleMute() bool {
	muted := !s.muted.Load()
	s.muted.Store(muted)
	if s.beep != nil {
		s.beep.SetMuted(muted)
	}
	return muted
}
