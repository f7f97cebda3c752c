//go:build linux

package linuxinput

import (
	"fmt"
	"strconv"
	"strings"

	evdev "github.com/holoplot/go-evdev"
)

const (
	CodeBTNLeft  uint16 = uint16(evdev.BTN_LEFT)
	CodeBTNRight uint16 = uint16(evdev.BTN_RIGHT)
)

// ParseCode accepts evdev names (KEY_F6, BTN_SIDE) or numeric codes.
func ParseCode(value string) (uint16, error) {
	raw := strings.ToUpper(strings.TrimSpace(value))
	if raw == "" {
		return 0, fmt.Errorf("key code is empty")
	}
	if code, ok := evdev.KEYFromString[raw]; ok {
		return uint16(code), nil
	}

	parsed, err := strconv.ParseInt(raw, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown key %q: use names like KEY_F6 or a numeric code", value)
	}
	if parsed < 0 || parsed > 0xFFFF {
		return 0, fmt.Errorf("key code out of range: %d", parsed)
	}
	return uint16(parsed), nil
}

// HotkeyCode resolves a hotkey name such as "F6" or "KEY_PAUSE". Mouse
// buttons are rejected since they drive the held flags.
func HotkeyCode(name string) (uint16, error) {
	raw := strings.ToUpper(strings.TrimSpace(name))
	if raw != "" && !strings.HasPrefix(raw, "KEY_") && !strings.HasPrefix(raw, "BTN_") {
		if _, err := strconv.ParseInt(raw, 0, 32); err != nil {
			raw = "KEY_" + raw
		}
	}
	code, err := ParseCode(raw)
	if err != nil {
		return 0, err
	}
	if codeIsMouseButton(code) {
		return 0, fmt.Errorf("hotkey %s is a mouse button", FormatCodeName(code))
	}
	return code, nil
}

func FormatCodeName(code uint16) string {
	name := evdev.CodeName(evdev.EV_KEY, evdev.EvCode(code))
	if name != "" {
		return name
	}
	return strconv.Itoa(int(code))
}

func codeIsMouseButton(code uint16) bool {
	c := evdev.EvCode(code)
	return c >= evdev.BTN_MOUSE && c <= evdev.BTN_TASK
}
