//go:build darwin

package hookinput

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

static int buttonDown(CGMouseButton button) {
	return CGEventSourceButtonState(kCGEventSourceStateHIDSystemState, button) ? 1 : 0;
}
*/
import "C"

import (
	"context"
	"fmt"
	"sync"
	"time"

	"clicker/internal/core/autoclicker"

	"github.com/go-vgo/robotgo"
	hook "github.com/robotn/gohook"
)

// physicalButtons reads the HID system button state.
func physicalButtons() (left, right bool) {
	left = C.buttonDown(C.CGMouseButton(C.kCGMouseButtonLeft)) != 0
	right = C.buttonDown(C.CGMouseButton(C.kCGMouseButtonRight)) != 0
	return left, right
}

// tapEventOf maps gohook kinds. MouseHold is the press and MouseDown fires on
// release; both only trigger a resync.
func tapEventOf(ev hook.Event) tapEvent {
	switch ev.Kind {
	case hook.KeyHold:
		return tapEvent{kind: tapKeyDown, keycode: ev.Keycode}
	case hook.KeyUp:
		return tapEvent{kind: tapKeyUp, keycode: ev.Keycode}
	case hook.MouseHold, hook.MouseDown:
		return tapEvent{kind: tapMouse}
	}
	return tapEvent{kind: tapOther}
}

// Observer consumes the global event tap for the hotkey and polls the
// physical button state. It needs the Accessibility permission; without it
// the tap delivers nothing.
type Observer struct {
	hotkey       uint16
	query        buttonQuery
	pollInterval time.Duration
}

func (o *Observer) Run(ctx context.Context, obs *autoclicker.Observer) error {
	events := hook.Start()
	defer hook.End()
	obs.Ready()

	ticker := time.NewTicker(o.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			obs.ButtonState(o.query())
		case ev, ok := <-events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("event tap closed")
			}
			handleTap(tapEventOf(ev), o.hotkey, o.query, obs)
		}
	}
}

type Windows struct{}

func (Windows) ActiveWindow() (autoclicker.Window, error) {
	return autoclicker.Window{
		Handle: uint64(robotgo.GetPid()),
		Title:  robotgo.GetTitle(),
	}, nil
}

// Clicker toggles buttons at the current pointer position.
type Clicker struct {
	mu sync.Mutex
}

func (c *Clicker) Press(_ autoclicker.Window, button autoclicker.Button) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return robotgo.Toggle(button.String())
}

func (c *Clicker) Release(_ autoclicker.Window, button autoclicker.Button) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return robotgo.Toggle(button.String(), "up")
}

func NewPlatform(opts Options, logger autoclicker.Logger) (autoclicker.Platform, error) {
	name := keyName(opts.Hotkey)
	code, ok := hook.Keycode[name]
	if !ok {
		return autoclicker.Platform{}, fmt.Errorf("unsupported hotkey %q", opts.Hotkey)
	}
	if logger != nil {
		logger.Debug("Event tap hotkey resolved", "hotkey", name, "keycode", code)
	}

	return autoclicker.Platform{
		Name: "gohook",
		Input: &Observer{
			hotkey:       code,
			query:        physicalButtons,
			pollInterval: autoclicker.DefaultPollInterval,
		},
		Windows: Windows{},
		Clicker: &Clicker{},
	}, nil
}
