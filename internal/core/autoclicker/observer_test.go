package autoclicker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestObserver() (*Observer, *State) {
	state := DefaultState()
	return NewObserver(state, nil, nil, NopLogger()), state
}

func TestHotkeyTogglesOncePerGesture(t *testing.T) {
	o, state := newTestObserver()

	o.HotkeyDown()
	assert.False(t, state.IsRunning(), "press alone must not toggle")
	o.HotkeyUp()
	assert.True(t, state.IsRunning())

	o.HotkeyDown()
	o.HotkeyUp()
	assert.False(t, state.IsRunning())
}

func TestHotkeyRepeatTogglesOnce(t *testing.T) {
	o, state := newTestObserver()

	for i := 0; i < 25; i++ {
		o.HotkeyDown()
	}
	o.HotkeyUp()
	assert.True(t, state.IsRunning())

	o.HotkeyUp()
	assert.True(t, state.IsRunning(), "stray release must not toggle")
}

func TestHotkeySampleDetectsEdges(t *testing.T) {
	o, state := newTestObserver()

	samples := []bool{false, true, true, true, true, false, false, false}
	for _, down := range samples {
		o.HotkeySample(down)
	}
	assert.True(t, state.IsRunning())

	for _, down := range []bool{true, false, true, false} {
		o.HotkeySample(down)
	}
	assert.True(t, state.IsRunning(), "two gestures cancel out")
}

func TestHotkeyStopReleasesHeldButtons(t *testing.T) {
	o, state := newTestObserver()
	state.ToggleRunning()
	o.ButtonDown(ButtonLeft)
	o.ButtonDown(ButtonRight)

	o.HotkeyDown()
	o.HotkeyUp()

	assert.False(t, state.IsRunning())
	assert.False(t, state.Held(ButtonLeft))
	assert.False(t, state.Held(ButtonRight))
}

func TestHotkeyStartKeepsHeldButtons(t *testing.T) {
	o, state := newTestObserver()
	o.ButtonDown(ButtonLeft)

	o.HotkeySample(true)
	o.HotkeySample(false)

	assert.True(t, state.IsRunning())
	assert.True(t, state.Held(ButtonLeft))
}

func TestButtonTransitions(t *testing.T) {
	o, state := newTestObserver()

	o.ButtonDown(ButtonRight)
	assert.True(t, state.Held(ButtonRight))
	assert.False(t, state.Held(ButtonLeft))

	o.ButtonUp(ButtonRight)
	assert.False(t, state.Held(ButtonRight))
}

func TestButtonStateIgnoredDuringInjection(t *testing.T) {
	o, state := newTestObserver()

	o.Guard().Begin()
	o.ButtonState(true, true)
	assert.False(t, state.Held(ButtonLeft))
	o.Guard().End()

	o.ButtonState(true, false)
	assert.True(t, state.Held(ButtonLeft))
	assert.False(t, state.Held(ButtonRight))
}

func TestReadyMarksObserverRunning(t *testing.T) {
	health := &Health{}
	o := NewObserver(DefaultState(), health, nil, nil)

	assert.Equal(t, PhaseStarting, health.Snapshot().ObserverPhase)
	o.Ready()
	assert.True(t, health.Snapshot().Healthy())
}
