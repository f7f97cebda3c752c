//go:build linux

package linuxinput

import (
	"fmt"
	"sync"

	"clicker/internal/core/autoclicker"

	evdev "github.com/holoplot/go-evdev"
)

const virtualDeviceName = "clicker-virtual-mouse"

// Clicker injects clicks through a uinput virtual mouse. Events land wherever
// the compositor routes pointer input, so the target window is not used.
type Clicker struct {
	mu  sync.Mutex
	dev *evdev.InputDevice
}

func NewClicker() (*Clicker, error) {
	id := evdev.InputID{
		BusType: uint16(evdev.BUS_VIRTUAL),
		Vendor:  0x1,
		Product: 0x1,
		Version: 1,
	}
	capabilities := map[evdev.EvType][]evdev.EvCode{
		evdev.EV_KEY: {evdev.BTN_LEFT, evdev.BTN_RIGHT, evdev.BTN_MIDDLE},
		evdev.EV_REL: {evdev.REL_X, evdev.REL_Y},
	}

	dev, err := evdev.CreateDevice(virtualDeviceName, id, capabilities)
	if err != nil {
		return nil, fmt.Errorf("create uinput device: %w", err)
	}
	return &Clicker{dev: dev}, nil
}

func (c *Clicker) Press(_ autoclicker.Window, button autoclicker.Button) error {
	return c.write(button, 1)
}

func (c *Clicker) Release(_ autoclicker.Window, button autoclicker.Button) error {
	return c.write(button, 0)
}

func (c *Clicker) write(button autoclicker.Button, value int32) error {
	code := evdev.EvCode(evdev.BTN_LEFT)
	if button == autoclicker.ButtonRight {
		code = evdev.BTN_RIGHT
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dev == nil {
		return fmt.Errorf("uinput device closed")
	}
	for _, ev := range []evdev.InputEvent{
		{Type: evdev.EV_KEY, Code: code, Value: value},
		{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT, Value: 0},
	} {
		if err := c.dev.WriteOne(&ev); err != nil {
			return err
		}
	}
	return nil
}

func (c *Clicker) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dev == nil {
		return nil
	}
	err := c.dev.Close()
	c.dev = nil
	return err
}
