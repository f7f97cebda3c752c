//go:build linux

package linuxinput

import (
	"context"
	"fmt"
	"sync"
	"time"

	"clicker/internal/core/autoclicker"

	evdev "github.com/holoplot/go-evdev"
)

// CaptureHotkey waits for the next key press on any physical keyboard and
// returns its evdev name, ready to be used as the hotkey setting.
func CaptureHotkey(ctx context.Context, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	devices, err := openKeyboards()
	if err != nil {
		return "", err
	}
	defer closeInputDevices(devices)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	readers := make([]eventReader, len(devices))
	for i, dev := range devices {
		readers[i] = dev
	}
	code, err := firstKeyPress(ctx, readers)
	if err != nil {
		return "", err
	}
	return FormatCodeName(code), nil
}

// firstKeyPress returns the first non-mouse key press seen on any reader.
// Every reader has stopped by the time it returns.
func firstKeyPress(ctx context.Context, readers []eventReader) (uint16, error) {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()

	codeCh := make(chan uint16, 1)
	for _, r := range readers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pumpEvents(ctx, r, autoclicker.NopLogger(), func(event evdev.InputEvent) bool {
				if event.Type != evdev.EV_KEY || event.Value != 1 || codeIsMouseButton(uint16(event.Code)) {
					return true
				}
				select {
				case codeCh <- uint16(event.Code):
				default:
				}
				return false
			})
		}()
	}

	select {
	case code := <-codeCh:
		return code, nil
	case <-ctx.Done():
		return 0, fmt.Errorf("timed out waiting for key input")
	}
}

// openKeyboards opens every physical device with at least one non-mouse key,
// in non-blocking mode.
func openKeyboards() ([]*evdev.InputDevice, error) {
	infos, err := scanDevices(func(dev *evdev.InputDevice, info DeviceInfo) bool {
		return !info.IsVirtual && deviceHasKeys(dev)
	})
	if err != nil {
		return nil, err
	}

	devices := make([]*evdev.InputDevice, 0, len(infos))
	for _, info := range infos {
		dev, err := openInputDevice(info.Path)
		if err != nil {
			continue
		}
		if err := dev.NonBlock(); err != nil {
			_ = dev.Close()
			continue
		}
		devices = append(devices, dev)
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("no readable keyboard devices found; check permissions on /dev/input")
	}
	return devices, nil
}

func deviceHasKeys(dev *evdev.InputDevice) bool {
	for _, code := range dev.CapableEvents(evdev.EV_KEY) {
		if !codeIsMouseButton(uint16(code)) {
			return true
		}
	}
	return false
}

func closeInputDevices(devices []*evdev.InputDevice) {
	for _, dev := range devices {
		_ = dev.Close()
	}
}
