package hookinput

import "clicker/internal/core/autoclicker"

type tapKind uint8

const (
	tapOther tapKind = iota
	tapKeyDown
	tapKeyUp
	tapMouse
)

// tapEvent is the part of an event tap callback the observer looks at.
type tapEvent struct {
	kind    tapKind
	keycode uint16
}

// buttonQuery reads the physical left and right button state.
type buttonQuery func() (left, right bool)

// handleTap applies one tap event. Mouse events only say that something
// changed; held state always comes from query.
func handleTap(ev tapEvent, hotkey uint16, query buttonQuery, obs *autoclicker.Observer) {
	switch ev.kind {
	case tapKeyDown:
		if ev.keycode == hotkey {
			obs.HotkeyDown()
		}
	case tapKeyUp:
		if ev.keycode == hotkey {
			obs.HotkeyUp()
		}
	case tapMouse:
		obs.ButtonState(query())
	}
}
