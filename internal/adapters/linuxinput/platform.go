//go:build linux

package linuxinput

import (
	"errors"

	"clicker/internal/core/autoclicker"
)

type Options struct {
	// Device restricts observation to one /dev/input path.
	Device string
	Hotkey string
	// Windows answers the own-window check; nil means unsupported.
	Windows autoclicker.WindowQuery
	// CloseWindows releases whatever backs Windows.
	CloseWindows func() error
}

func NewPlatform(opts Options) (autoclicker.Platform, error) {
	hotkey, err := HotkeyCode(opts.Hotkey)
	if err != nil {
		return autoclicker.Platform{}, err
	}
	clicker, err := NewClicker()
	if err != nil {
		return autoclicker.Platform{}, err
	}

	windows := opts.Windows
	if windows == nil {
		windows = autoclicker.UnsupportedWindows{}
	}

	return autoclicker.Platform{
		Name:    "evdev",
		Input:   NewObserver(opts.Device, hotkey),
		Windows: windows,
		Clicker: clicker,
		Close: func() error {
			var errs []error
			errs = append(errs, clicker.Close())
			if opts.CloseWindows != nil {
				errs = append(errs, opts.CloseWindows())
			}
			return errors.Join(errs...)
		},
	}, nil
}
