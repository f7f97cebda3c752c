//go:build linux

package x11input

import (
	"fmt"

	"clicker/internal/core/autoclicker"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// maxParentWalk bounds the climb from a focused subwindow to its named frame.
const maxParentWalk = 8

// Windows answers the active-window query from _NET_ACTIVE_WINDOW, falling
// back to the input focus when the window manager does not publish it.
type Windows struct {
	session *Session
}

func NewWindows(session *Session) *Windows {
	return &Windows{session: session}
}

func (w *Windows) ActiveWindow() (autoclicker.Window, error) {
	active, err := ewmh.ActiveWindowGet(w.session.xu)
	win, err := focusedWindow(active, err, w.inputFocus)
	if err != nil {
		return autoclicker.Window{}, err
	}
	if win == 0 || win == xproto.InputFocusPointerRoot {
		return autoclicker.Window{}, nil
	}

	return autoclicker.Window{
		Handle: uint64(win),
		Title:  w.title(win),
	}, nil
}

func (w *Windows) inputFocus() (xproto.Window, error) {
	focus, err := xproto.GetInputFocus(w.session.conn).Reply()
	if err != nil {
		return 0, err
	}
	return focus.Focus, nil
}

// focusedWindow prefers the EWMH active window and asks for the input focus
// only when the window manager did not name one.
func focusedWindow(active xproto.Window, activeErr error, inputFocus func() (xproto.Window, error)) (xproto.Window, error) {
	if activeErr == nil && active != 0 {
		return active, nil
	}
	focus, err := inputFocus()
	if err != nil {
		return 0, fmt.Errorf("get input focus: %w", err)
	}
	return focus, nil
}

// title returns the first name found on win or its ancestors.
func (w *Windows) title(win xproto.Window) string {
	for i := 0; i < maxParentWalk && win != 0 && win != w.session.rootWin; i++ {
		if name, err := ewmh.WmNameGet(w.session.xu, win); err == nil && name != "" {
			return name
		}
		if name, err := icccm.WmNameGet(w.session.xu, win); err == nil && name != "" {
			return name
		}
		tree, err := xproto.QueryTree(w.session.conn, win).Reply()
		if err != nil {
			return ""
		}
		win = tree.Parent
	}
	return ""
}
