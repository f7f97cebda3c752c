//go:build linux

package linuxinput

import (
	"context"
	"sync"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"clicker/internal/core/autoclicker"

	evdev "github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyEvent(code evdev.EvCode, value int32) evdev.InputEvent {
	return evdev.InputEvent{Type: evdev.EV_KEY, Code: code, Value: value}
}

// scriptedReader hands out one batch per read, then fails every read with
// tail (EAGAIN for an idle device, ENODEV for an unplugged one).
type scriptedReader struct {
	mu      sync.Mutex
	batches [][]evdev.InputEvent
	tail    error
	reads   atomic.Int64
}

func (r *scriptedReader) ReadSlice(int) ([]evdev.InputEvent, error) {
	r.reads.Add(1)
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.batches) == 0 {
		return nil, r.tail
	}
	batch := r.batches[0]
	r.batches = r.batches[1:]
	return batch, nil
}

func (r *scriptedReader) Path() string { return "/dev/input/event-test" }

func TestDispatchTracksButtons(t *testing.T) {
	state := autoclicker.DefaultState()
	obs := autoclicker.NewObserver(state, nil, nil, nil)

	dispatch(keyEvent(evdev.BTN_LEFT, 1), evdev.KEY_F6, obs)
	dispatch(keyEvent(evdev.BTN_RIGHT, 1), evdev.KEY_F6, obs)
	assert.True(t, state.Held(autoclicker.ButtonLeft))
	assert.True(t, state.Held(autoclicker.ButtonRight))

	dispatch(keyEvent(evdev.BTN_LEFT, 0), evdev.KEY_F6, obs)
	assert.False(t, state.Held(autoclicker.ButtonLeft))
	assert.True(t, state.Held(autoclicker.ButtonRight))
}

func TestDispatchHotkeyRepeatTogglesOnce(t *testing.T) {
	state := autoclicker.DefaultState()
	obs := autoclicker.NewObserver(state, nil, nil, nil)

	dispatch(keyEvent(evdev.KEY_F6, 1), evdev.KEY_F6, obs)
	for i := 0; i < 10; i++ {
		dispatch(keyEvent(evdev.KEY_F6, 2), evdev.KEY_F6, obs)
	}
	assert.False(t, state.IsRunning())

	dispatch(keyEvent(evdev.KEY_F6, 0), evdev.KEY_F6, obs)
	assert.True(t, state.IsRunning())
}

func TestDispatchIgnoresOtherEvents(t *testing.T) {
	state := autoclicker.DefaultState()
	obs := autoclicker.NewObserver(state, nil, nil, nil)

	dispatch(evdev.InputEvent{Type: evdev.EV_REL, Code: evdev.REL_X, Value: 1}, evdev.KEY_F6, obs)
	dispatch(keyEvent(evdev.KEY_F7, 1), evdev.KEY_F6, obs)
	dispatch(keyEvent(evdev.KEY_F7, 0), evdev.KEY_F6, obs)

	assert.Equal(t, autoclicker.DefaultState().Snapshot(), state.Snapshot())
}

func TestHotkeyCode(t *testing.T) {
	for _, name := range []string{"F6", "f6", "KEY_F6", " key_f6 "} {
		code, err := HotkeyCode(name)
		require.NoError(t, err, name)
		assert.Equal(t, uint16(evdev.KEY_F6), code, name)
	}

	code, err := HotkeyCode("pause")
	require.NoError(t, err)
	assert.Equal(t, "KEY_PAUSE", FormatCodeName(code))

	for _, bad := range []string{"", "BTN_LEFT", "NOPE"} {
		_, err := HotkeyCode(bad)
		assert.Error(t, err, bad)
	}
}

func TestReadLoopReleasesButtonsWhenDeviceGoesAway(t *testing.T) {
	state := autoclicker.DefaultState()
	obs := autoclicker.NewObserver(state, nil, nil, nil)
	reader := &scriptedReader{
		batches: [][]evdev.InputEvent{{
			keyEvent(evdev.BTN_LEFT, 1),
			keyEvent(evdev.BTN_RIGHT, 1),
		}},
		tail: syscall.ENODEV,
	}

	o := NewObserver("", uint16(evdev.KEY_F6))
	o.readLoop(context.Background(), reader, obs)

	assert.False(t, state.Held(autoclicker.ButtonLeft))
	assert.False(t, state.Held(autoclicker.ButtonRight))
}

func TestReadLoopKeepsButtonsOnShutdown(t *testing.T) {
	state := autoclicker.DefaultState()
	obs := autoclicker.NewObserver(state, nil, nil, nil)
	reader := &scriptedReader{
		batches: [][]evdev.InputEvent{{keyEvent(evdev.BTN_LEFT, 1)}},
		tail:    syscall.EAGAIN,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		NewObserver("", uint16(evdev.KEY_F6)).readLoop(ctx, reader, obs)
	}()

	require.Eventually(t, func() bool { return state.Held(autoclicker.ButtonLeft) }, time.Second, time.Millisecond)
	cancel()
	<-done
	assert.True(t, state.Held(autoclicker.ButtonLeft))
}

func TestFirstKeyPressStopsAllReaders(t *testing.T) {
	idle := &scriptedReader{tail: syscall.EAGAIN}
	keyboard := &scriptedReader{
		batches: [][]evdev.InputEvent{
			{keyEvent(evdev.BTN_LEFT, 1)},
			{keyEvent(evdev.KEY_F8, 0), keyEvent(evdev.KEY_F8, 1)},
		},
		tail: syscall.EAGAIN,
	}

	code, err := firstKeyPress(context.Background(), []eventReader{idle, keyboard})
	require.NoError(t, err)
	assert.Equal(t, "KEY_F8", FormatCodeName(code))

	reads := idle.reads.Load()
	time.Sleep(5 * readIdleInterval)
	assert.Equal(t, reads, idle.reads.Load(), "reader still running after return")
}

func TestFirstKeyPressTimesOut(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	idle := &scriptedReader{tail: syscall.EAGAIN}
	_, err := firstKeyPress(ctx, []eventReader{idle})
	require.Error(t, err)

	reads := idle.reads.Load()
	time.Sleep(5 * readIdleInterval)
	assert.Equal(t, reads, idle.reads.Load())
}
