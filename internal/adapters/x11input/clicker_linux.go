//go:build linux

package x11input

import (
	"fmt"
	"strings"
	"sync"

	"clicker/internal/core/autoclicker"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
)

type ClickMethod string

const (
	// ClickSendEvent delivers button events straight to the target window and
	// leaves the server's pointer state alone.
	ClickSendEvent ClickMethod = "sendevent"
	// ClickXTest fakes device input at the pointer position.
	ClickXTest ClickMethod = "xtest"
)

func ParseClickMethod(value string) (ClickMethod, error) {
	switch ClickMethod(strings.ToLower(strings.TrimSpace(value))) {
	case "", ClickSendEvent:
		return ClickSendEvent, nil
	case ClickXTest:
		return ClickXTest, nil
	default:
		return "", fmt.Errorf("invalid X11 click method %q (expected sendevent|xtest)", value)
	}
}

type Clicker struct {
	session *Session
	method  ClickMethod

	mu sync.Mutex
}

func NewClicker(session *Session, method ClickMethod) (*Clicker, error) {
	if method == ClickXTest && !session.XTestAvailable() {
		return nil, fmt.Errorf("XTEST extension unavailable: %w", session.xtestErr)
	}
	if method == "" {
		method = ClickSendEvent
	}
	return &Clicker{session: session, method: method}, nil
}

func (c *Clicker) Press(target autoclicker.Window, button autoclicker.Button) error {
	return c.click(target, button, true)
}

func (c *Clicker) Release(target autoclicker.Window, button autoclicker.Button) error {
	return c.click(target, button, false)
}

func (c *Clicker) click(target autoclicker.Window, button autoclicker.Button, down bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	if c.method == ClickXTest {
		err = c.fakeInput(button, down)
	} else {
		err = c.sendEvent(target, button, down)
	}
	if err != nil {
		return err
	}
	c.session.conn.Sync()
	return nil
}

func (c *Clicker) fakeInput(button autoclicker.Button, down bool) error {
	eventType := byte(xproto.ButtonRelease)
	if down {
		eventType = xproto.ButtonPress
	}
	return xtest.FakeInputChecked(
		c.session.conn,
		eventType,
		byte(xButton(button)),
		xproto.TimeCurrentTime,
		c.session.rootWin,
		0,
		0,
		0,
	).Check()
}

func (c *Clicker) sendEvent(target autoclicker.Window, button autoclicker.Button, down bool) error {
	conn := c.session.conn
	root := c.session.rootWin

	pointer, err := xproto.QueryPointer(conn, root).Reply()
	if err != nil {
		return fmt.Errorf("query pointer: %w", err)
	}

	dest := xproto.Window(target.Handle)
	if dest == 0 {
		dest = pointer.Child
	}
	if dest == 0 {
		dest = root
	}

	event := xproto.ButtonPressEvent{
		Detail:     xButton(button),
		Time:       xproto.TimeCurrentTime,
		Root:       root,
		Event:      dest,
		RootX:      pointer.RootX,
		RootY:      pointer.RootY,
		EventX:     pointer.RootX,
		EventY:     pointer.RootY,
		SameScreen: true,
	}
	if translated, err := xproto.TranslateCoordinates(conn, root, dest, pointer.RootX, pointer.RootY).Reply(); err == nil {
		event.EventX = translated.DstX
		event.EventY = translated.DstY
		event.Child = translated.Child
	}

	var payload []byte
	mask := uint32(xproto.EventMaskButtonPress)
	if down {
		payload = event.Bytes()
	} else {
		event.State = buttonMask(button)
		release := xproto.ButtonReleaseEvent(event)
		payload = release.Bytes()
		mask = xproto.EventMaskButtonRelease
	}

	return xproto.SendEventChecked(conn, true, dest, mask, string(payload)).Check()
}

func xButton(button autoclicker.Button) xproto.Button {
	if button == autoclicker.ButtonRight {
		return xproto.ButtonIndex3
	}
	return xproto.ButtonIndex1
}

func buttonMask(button autoclicker.Button) uint16 {
	if button == autoclicker.ButtonRight {
		return xproto.KeyButMaskButton3
	}
	return xproto.KeyButMaskButton1
}
