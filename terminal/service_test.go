package terminal

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simFactory(scr tcell.SimulationScreen) ScreenFactory {
	return func() (tcell.Screen, error) { return scr, nil }
}

func TestServiceForwardsEvents(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	s := NewService(simFactory(sim))

	assert.Equal(t, "terminal", s.Name())
	require.NoError(t, s.Init(nil))
	require.NotNil(t, s.Screen())
	require.NoError(t, s.Start())

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case ev := <-s.Events():
		key, ok := ev.(*tcell.EventKey)
		require.True(t, ok, "got %T", ev)
		assert.Equal(t, 'q', key.Rune())
	case <-time.After(2 * time.Second):
		t.Fatal("no event forwarded")
	}

	require.NoError(t, s.Stop())
	assert.Nil(t, s.Screen())
	require.NoError(t, s.Stop())
}

func TestServiceStopWithoutStart(t *testing.T) {
	s := NewService(simFactory(tcell.NewSimulationScreen("UTF-8")))
	require.NoError(t, s.Init(nil))
	require.NoError(t, s.Stop())
}

func TestServiceInitError(t *testing.T) {
	boom := errors.New("no tty")
	s := NewService(func() (tcell.Screen, error) { return nil, boom })
	assert.ErrorIs(t, s.Init(nil), boom)
	require.NoError(t, s.Start())
	require.NoError(t, s.Stop())
}
