// Package terminal owns the tcell screen and its input polling as a service
package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/chest-sort/core"
)

// ScreenFactory creates the screen; tests inject a simulation screen
type ScreenFactory func() (tcell.Screen, error)

// Service manages screen lifecycle and input polling
type Service struct {
	factory ScreenFactory
	screen  tcell.Screen
	eventCh chan tcell.Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool
}

// NewService creates a terminal service; a nil factory opens the real terminal
func NewService(factory ScreenFactory) *Service {
	if factory == nil {
		factory = tcell.NewScreen
	}
	return &Service{
		factory: factory,
		eventCh: make(chan tcell.Event, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// Name implements services.Service
func (s *Service) Name() string {
	return "terminal"
}

// Dependencies implements services.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements services.Service; the screen is initialized with mouse reporting
// and registered as the crash hook so a panic leaves a usable terminal
func (s *Service) Init(any) error {
	scr, err := s.factory()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := scr.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	scr.EnableMouse(tcell.MouseDragEvents)
	scr.HideCursor()
	s.screen = scr
	core.SetCrashHook(scr.Fini)
	return nil
}

// Start implements services.Service - launches input polling goroutine
func (s *Service) Start() error {
	s.mu.Lock()
	if s.running || s.screen == nil {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	core.Go(s.pollLoop)
	return nil
}

// pollLoop reads input events until stop signal
func (s *Service) pollLoop() {
	defer close(s.doneCh)

	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.eventCh <- ev:
		case <-s.stopCh:
			return
		}
	}
}

// Stop implements services.Service - signals stop and restores the terminal
func (s *Service) Stop() error {
	s.mu.Lock()
	if s.screen == nil {
		s.mu.Unlock()
		return nil
	}
	running := s.running
	s.running = false
	s.mu.Unlock()

	if running {
		close(s.stopCh)
		// Fini makes PollEvent return nil
		s.screen.Fini()
		<-s.doneCh
	} else {
		s.screen.Fini()
	}
	core.SetCrashHook(nil)
	s.screen = nil
	return nil
}

// Screen returns the wrapped screen, nil before Init
func (s *Service) Screen() tcell.Screen {
	return s.screen
}

// Events returns the input event channel
func (s *Service) Events() <-chan tcell.Event {
	return s.eventCh
}
