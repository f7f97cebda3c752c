package autoclicker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultState(t *testing.T) {
	snap := DefaultState().Snapshot()
	assert.Equal(t, Snapshot{
		MinCPS: 5,
		MaxCPS: 25,
		Mode:   "left",
	}, snap)
}

func TestToggleRunningConcurrent(t *testing.T) {
	s := DefaultState()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.ToggleRunning()
		}()
	}
	wg.Wait()

	assert.False(t, s.IsRunning(), "an even number of toggles ends stopped")
}

func TestSettersDoNotValidate(t *testing.T) {
	s := DefaultState()
	s.SetMinCPS(30)
	s.SetMaxCPS(10)

	assert.Equal(t, uint32(30), s.MinCPS())
	assert.Equal(t, uint32(10), s.MaxCPS())
}

func TestClickModeOutOfRangeReadsAsLeft(t *testing.T) {
	s := DefaultState()
	s.SetClickMode(ClickMode(9))
	assert.Equal(t, ClickModeLeft, s.ClickMode())
}

func TestParseClickMode(t *testing.T) {
	for raw, want := range map[string]ClickMode{
		"left":   ClickModeLeft,
		" Right": ClickModeRight,
		"BOTH":   ClickModeBoth,
		"":       ClickModeLeft,
	} {
		got, err := ParseClickMode(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseClickMode("middle")
	assert.Error(t, err)
}

func TestClickModeButtons(t *testing.T) {
	assert.Equal(t, []Button{ButtonLeft}, ClickModeLeft.Buttons())
	assert.Equal(t, []Button{ButtonRight}, ClickModeRight.Buttons())
	assert.Equal(t, []Button{ButtonLeft, ButtonRight}, ClickModeBoth.Buttons())
}
