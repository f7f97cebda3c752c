//go:build linux

package x11input

import (
	"time"

	"clicker/internal/core/autoclicker"
)

type Options struct {
	Display      string
	Hotkey       string
	PollInterval time.Duration
	ClickMethod  ClickMethod
}

// NewPlatform opens one X11 session and builds every capability on it.
func NewPlatform(opts Options, logger autoclicker.Logger) (autoclicker.Platform, error) {
	session, err := Open(opts.Display)
	if err != nil {
		return autoclicker.Platform{}, err
	}

	observer, err := NewObserver(session, opts.Hotkey, opts.PollInterval)
	if err != nil {
		_ = session.Close()
		return autoclicker.Platform{}, err
	}
	clicker, err := NewClicker(session, opts.ClickMethod)
	if err != nil {
		_ = session.Close()
		return autoclicker.Platform{}, err
	}
	if logger != nil {
		logger.Debug("X11 session opened", "xtest", session.XTestAvailable(), "click_method", clicker.method)
	}

	return autoclicker.Platform{
		Name:    "x11",
		Input:   observer,
		Windows: NewWindows(session),
		Clicker: clicker,
		Close:   session.Close,
	}, nil
}
