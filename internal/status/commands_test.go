package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyCommands(t *testing.T) {
	ctrl := newFakeController()

	require.NoError(t, Apply(ctrl, Command{Type: "toggle"}))
	assert.True(t, ctrl.Status().State.Running)

	require.NoError(t, Apply(ctrl, Command{Type: "set_min_cps", Value: 10}))
	require.NoError(t, Apply(ctrl, Command{Type: "set_max_cps", Value: 11}))
	require.NoError(t, Apply(ctrl, Command{Type: "set_mode", Mode: "right"}))
	require.NoError(t, Apply(ctrl, Command{Type: "status"}))

	st := ctrl.Status().State
	assert.Equal(t, uint32(10), st.MinCPS)
	assert.Equal(t, uint32(11), st.MaxCPS)
	assert.Equal(t, "right", st.Mode)
}

func TestApplyRejectsInvalidBounds(t *testing.T) {
	tests := []Command{
		{Type: "set_min_cps", Value: 0},
		{Type: "set_min_cps", Value: 25},
		{Type: "set_max_cps", Value: 5},
		{Type: "set_max_cps", Value: MaxCPS + 1},
		{Type: "set_mode", Mode: "middle"},
		{Type: "explode"},
	}
	for _, cmd := range tests {
		ctrl := newFakeController()
		assert.Error(t, Apply(ctrl, cmd), "%+v", cmd)
		assert.Equal(t, newFakeController().Status(), ctrl.Status(), "%+v", cmd)
	}
}

func TestParseCommand(t *testing.T) {
	cmd, err := ParseCommand([]byte(`{"type":"set_max_cps","value":30}`))
	require.NoError(t, err)
	assert.Equal(t, Command{Type: "set_max_cps", Value: 30}, cmd)

	_, err = ParseCommand([]byte(`{"value":30}`))
	assert.Error(t, err)
	_, err = ParseCommand([]byte(`not json`))
	assert.Error(t, err)
}
