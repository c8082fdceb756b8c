package audio

import (
	"maps"
	"sync"
)

// Mixer is the host side of the sequencer: named gain parameters and one-shot triggers
// dB-to-linear conversion is the mixer's concern
type Mixer interface {
	SetGain(param string, db float64)
	Trigger(param string)
}

// MemoryMixer records parameter writes without producing sound
// Used headless and in tests
type MemoryMixer struct {
	mu       sync.Mutex
	gains    map[string]float64
	triggers map[string]int
	writes   int
}

// NewMemoryMixer creates an empty recorder
func NewMemoryMixer() *MemoryMixer {
	return &MemoryMixer{
		gains:    make(map[string]float64),
		triggers: make(map[string]int),
	}
}

// SetGain implements Mixer
func (m *MemoryMixer) SetGain(param string, db float64) {
	m.mu.Lock()
	m.gains[param] = db
	m.writes++
	m.mu.Unlock()
}

// Trigger implements Mixer
func (m *MemoryMixer) Trigger(param string) {
	m.mu.Lock()
	m.triggers[param]++
	m.mu.Unlock()
}

// Gain returns the last value written to param
func (m *MemoryMixer) Gain(param string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	db, ok := m.gains[param]
	return db, ok
}

// Gains returns a copy of every parameter value
func (m *MemoryMixer) Gains() map[string]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.gains)
}

// Triggers returns how many times param fired
func (m *MemoryMixer) Triggers(param string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.triggers[param]
}

// Writes returns the number of SetGain calls
func (m *MemoryMixer) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
