//go:build linux

package x11input

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"
)

var keysymNames = map[string]string{
	"ESC":        "Escape",
	"ESCAPE":     "Escape",
	"ENTER":      "Return",
	"TAB":        "Tab",
	"SPACE":      "space",
	"BACKSPACE":  "BackSpace",
	"LEFTSHIFT":  "Shift_L",
	"RIGHTSHIFT": "Shift_R",
	"LEFTCTRL":   "Control_L",
	"RIGHTCTRL":  "Control_R",
	"LEFTALT":    "Alt_L",
	"RIGHTALT":   "Alt_R",
	"CAPSLOCK":   "Caps_Lock",
	"NUMLOCK":    "Num_Lock",
	"SCROLLLOCK": "Scroll_Lock",
	"PAGEUP":     "Page_Up",
	"PAGEDOWN":   "Page_Down",
	"INSERT":     "Insert",
	"DELETE":     "Delete",
	"HOME":       "Home",
	"END":        "End",
	"UP":         "Up",
	"DOWN":       "Down",
	"LEFT":       "Left",
	"RIGHT":      "Right",
	"MENU":       "Menu",
	"PAUSE":      "Pause",
	"MINUS":      "minus",
	"EQUAL":      "equal",
	"GRAVE":      "grave",
	"COMMA":      "comma",
	"DOT":        "period",
	"SLASH":      "slash",
	"BACKSLASH":  "backslash",
	"SEMICOLON":  "semicolon",
}

// KeysymName maps a hotkey name ("F6", "KEY_F6", "pause", "a") to the X
// keysym string keybind understands.
func KeysymName(hotkey string) (string, error) {
	token := strings.ToUpper(strings.TrimSpace(hotkey))
	token = strings.TrimPrefix(token, "KEY_")
	if token == "" {
		return "", fmt.Errorf("hotkey is empty")
	}

	if name, ok := keysymNames[token]; ok {
		return name, nil
	}
	if len(token) == 1 && token[0] >= 'A' && token[0] <= 'Z' {
		return strings.ToLower(token), nil
	}
	if len(token) == 1 && token[0] >= '0' && token[0] <= '9' {
		return token, nil
	}
	if len(token) > 1 && token[0] == 'F' && isDigits(token[1:]) {
		return token, nil
	}
	if suffix, ok := strings.CutPrefix(token, "KP"); ok && len(suffix) == 1 && isDigits(suffix) {
		return "KP_" + suffix, nil
	}
	return "", fmt.Errorf("unsupported X11 hotkey %q", hotkey)
}

// resolveHotkey returns every keycode that produces the hotkey's keysym.
func (s *Session) resolveHotkey(hotkey string) ([]xproto.Keycode, error) {
	keyName, err := KeysymName(hotkey)
	if err != nil {
		return nil, err
	}

	keycodes := keybind.StrToKeycodes(s.xu, keyName)
	if len(keycodes) == 0 {
		return nil, fmt.Errorf("failed to resolve X11 key %q", keyName)
	}

	uniq := make(map[xproto.Keycode]struct{}, len(keycodes))
	for _, keycode := range keycodes {
		uniq[keycode] = struct{}{}
	}
	result := make([]xproto.Keycode, 0, len(uniq))
	for key := range uniq {
		result = append(result, key)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result, nil
}

// anyKeyDown reports whether one of keycodes is set in a QueryKeymap bit vector.
func anyKeyDown(keymap []byte, keycodes []xproto.Keycode) bool {
	for _, code := range keycodes {
		idx := int(code) / 8
		if idx >= len(keymap) {
			continue
		}
		if keymap[idx]&(1<<(uint(code)%8)) != 0 {
			return true
		}
	}
	return false
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
