//go:build linux

// Package x11input observes and synthesizes mouse input through the X server.
package x11input

import (
	"fmt"
	"sync"

	"clicker/internal/adapters/linuxinput"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// Session is one X11 connection shared by the observer, window query and
// clicker of a platform.
type Session struct {
	xu      *xgbutil.XUtil
	conn    *xgb.Conn
	rootWin xproto.Window

	xtestErr  error
	closeOnce sync.Once
}

// Open connects to display (empty means $DISPLAY).
func Open(display string) (*Session, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("open X11 display: %w", err)
	}
	conn := xu.Conn()
	if conn == nil {
		return nil, fmt.Errorf("failed to open X11 connection")
	}
	keybind.Initialize(xu)

	return &Session{
		xu:       xu,
		conn:     conn,
		rootWin:  xu.RootWin(),
		xtestErr: xtest.Init(conn),
	}, nil
}

func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.conn.Close()
	})
	return nil
}

// XTestAvailable reports whether the XTEST extension could be initialized.
func (s *Session) XTestAvailable() bool { return s.xtestErr == nil }

// ListInputDevices describes the single global input source the X server offers.
func ListInputDevices(display string) ([]linuxinput.DeviceInfo, error) {
	s, err := Open(display)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	name := "X11 Global Input"
	if !s.XTestAvailable() {
		name += " (XTEST unavailable)"
	}
	return []linuxinput.DeviceInfo{
		{
			Path:      "x11-global",
			Name:      name,
			IsVirtual: false,
			IsPointer: true,
		},
	}, nil
}
