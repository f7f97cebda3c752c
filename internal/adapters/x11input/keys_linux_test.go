//go:build linux

package x11input

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeysymName(t *testing.T) {
	tests := map[string]string{
		"F6":         "F6",
		"key_f12":    "F12",
		" pause ":    "Pause",
		"a":          "a",
		"KEY_7":      "7",
		"KP5":        "KP_5",
		"ScrollLock": "Scroll_Lock",
	}
	for in, want := range tests {
		got, err := KeysymName(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "F1X", "BTN_LEFT", "hyper"} {
		_, err := KeysymName(bad)
		assert.Error(t, err, bad)
	}
}

func TestAnyKeyDown(t *testing.T) {
	keymap := make([]byte, 32)
	keymap[72/8] |= 1 << (72 % 8)

	assert.True(t, anyKeyDown(keymap, []xproto.Keycode{72}))
	assert.True(t, anyKeyDown(keymap, []xproto.Keycode{10, 72}))
	assert.False(t, anyKeyDown(keymap, []xproto.Keycode{73}))
	assert.False(t, anyKeyDown(keymap[:4], []xproto.Keycode{72}))
}

func TestButtonsFromMask(t *testing.T) {
	left, right := buttonsFromMask(xproto.KeyButMaskButton1 | xproto.KeyButMaskShift)
	assert.True(t, left)
	assert.False(t, right)

	left, right = buttonsFromMask(xproto.KeyButMaskButton3)
	assert.False(t, left)
	assert.True(t, right)
}

func TestParseClickMethod(t *testing.T) {
	method, err := ParseClickMethod("")
	require.NoError(t, err)
	assert.Equal(t, ClickSendEvent, method)

	method, err = ParseClickMethod("XTest")
	require.NoError(t, err)
	assert.Equal(t, ClickXTest, method)

	_, err = ParseClickMethod("uinput")
	assert.Error(t, err)
}
