//go:build linux

package linuxinput

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"syscall"
	"time"

	"clicker/internal/core/autoclicker"

	evdev "github.com/holoplot/go-evdev"
)

const (
	readIdleInterval  = 10 * time.Millisecond
	readRetryInterval = 100 * time.Millisecond
)

// Observer reads button and hotkey events straight from physical evdev
// devices. It needs read access to /dev/input but works without a display
// server. Devices are opened when Run starts and closed when it returns.
type Observer struct {
	devicePath string
	hotkey     evdev.EvCode
}

func NewObserver(devicePath string, hotkey uint16) *Observer {
	return &Observer{devicePath: devicePath, hotkey: evdev.EvCode(hotkey)}
}

// eventReader is the part of an evdev device the read loop uses.
type eventReader interface {
	ReadSlice(count int) ([]evdev.InputEvent, error)
	Path() string
}

func (o *Observer) Run(ctx context.Context, obs *autoclicker.Observer) error {
	logger := obs.Logger()
	devices, err := OpenObservedDevices(o.devicePath, CodeBTNLeft, CodeBTNRight, uint16(o.hotkey))
	if err != nil {
		return err
	}
	defer closeInputDevices(devices)

	for _, dev := range devices {
		if err := dev.NonBlock(); err != nil {
			return fmt.Errorf("failed to set nonblocking mode for %s: %w", dev.Path(), err)
		}
		name, _ := dev.Name()
		logger.Info("Observing input device", "path", dev.Path(), "name", name)
	}
	obs.Ready()

	var readersWG sync.WaitGroup
	for _, dev := range devices {
		readersWG.Add(1)
		go func() {
			defer readersWG.Done()
			o.readLoop(ctx, dev, obs)
		}()
	}

	readersDone := make(chan struct{})
	go func() {
		readersWG.Wait()
		close(readersDone)
	}()

	select {
	case <-ctx.Done():
		closeInputDevices(devices)
		<-readersDone
		return nil
	case <-readersDone:
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("all observed input devices went away")
	}
}

// readLoop dispatches events from dev. A device that disappears while held
// buttons are down would never report their release, so they are released
// here.
func (o *Observer) readLoop(ctx context.Context, dev eventReader, obs *autoclicker.Observer) {
	pumpEvents(ctx, dev, obs.Logger(), func(event evdev.InputEvent) bool {
		dispatch(event, o.hotkey, obs)
		return true
	})
	if ctx.Err() != nil {
		return
	}
	obs.Logger().Warn("Input device went away", "path", dev.Path())
	obs.ButtonUp(autoclicker.ButtonLeft)
	obs.ButtonUp(autoclicker.ButtonRight)
}

// pumpEvents reads dev until ctx is done, the device goes away or handle
// returns false. dev must be in non-blocking mode.
func pumpEvents(ctx context.Context, dev eventReader, logger autoclicker.Logger, handle func(evdev.InputEvent) bool) {
	path := dev.Path()
	for {
		events, err := dev.ReadSlice(64)
		if err != nil {
			if ctx.Err() != nil || isDeviceClosedError(err) {
				return
			}
			if isWouldBlockError(err) {
				if !sleepContext(ctx, readIdleInterval) {
					return
				}
				continue
			}
			logger.Warn("Read failed", "path", path, "err", err)
			if !sleepContext(ctx, readRetryInterval) {
				return
			}
			continue
		}

		for _, event := range events {
			if !handle(event) {
				return
			}
		}
	}
}

// dispatch applies one evdev event. Value 0 is release, 1 press and 2
// autorepeat.
func dispatch(event evdev.InputEvent, hotkey evdev.EvCode, obs *autoclicker.Observer) {
	if event.Type != evdev.EV_KEY {
		return
	}
	switch event.Code {
	case evdev.BTN_LEFT:
		setButton(obs, autoclicker.ButtonLeft, event.Value)
	case evdev.BTN_RIGHT:
		setButton(obs, autoclicker.ButtonRight, event.Value)
	case hotkey:
		if event.Value == 0 {
			obs.HotkeyUp()
		} else {
			obs.HotkeyDown()
		}
	}
}

func setButton(obs *autoclicker.Observer, button autoclicker.Button, value int32) {
	switch value {
	case 0:
		obs.ButtonUp(button)
	case 1:
		obs.ButtonDown(button)
	}
}

func sleepContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func isDeviceClosedError(err error) bool {
	return errors.Is(err, syscall.EBADF) || errors.Is(err, syscall.ENODEV)
}

func isWouldBlockError(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK)
}
