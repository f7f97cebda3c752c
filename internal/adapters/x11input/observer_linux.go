//go:build linux

package x11input

import (
	"context"
	"fmt"
	"time"

	"clicker/internal/core/autoclicker"

	"github.com/BurntSushi/xgb/xproto"
)

// maxQueryFailures is how many consecutive failed samples end observation.
const maxQueryFailures = 100

// Observer polls the pointer button mask and the keymap. Polling sees the
// server's merged button state, so it works regardless of which client has
// focus and never needs a grab.
type Observer struct {
	session  *Session
	hotkey   []xproto.Keycode
	interval time.Duration
}

func NewObserver(session *Session, hotkey string, interval time.Duration) (*Observer, error) {
	if interval <= 0 {
		interval = autoclicker.DefaultPollInterval
	}
	keycodes, err := session.resolveHotkey(hotkey)
	if err != nil {
		return nil, err
	}
	return &Observer{session: session, hotkey: keycodes, interval: interval}, nil
}

func (o *Observer) Run(ctx context.Context, obs *autoclicker.Observer) error {
	logger := obs.Logger()
	logger.Debug("X11 observer started", "hotkey_keycodes", o.hotkey, "interval", o.interval)
	obs.Ready()

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	failures := 0
	for {
		if err := o.sample(obs); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			failures++
			if failures == 1 {
				logger.Warn("X11 input query failed", "err", err)
			}
			if failures >= maxQueryFailures {
				return fmt.Errorf("X11 input queries keep failing: %w", err)
			}
		} else {
			failures = 0
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (o *Observer) sample(obs *autoclicker.Observer) error {
	pointer, err := xproto.QueryPointer(o.session.conn, o.session.rootWin).Reply()
	if err != nil {
		return fmt.Errorf("query pointer: %w", err)
	}
	left, right := buttonsFromMask(pointer.Mask)
	obs.ButtonState(left, right)

	keymap, err := xproto.QueryKeymap(o.session.conn).Reply()
	if err != nil {
		return fmt.Errorf("query keymap: %w", err)
	}
	obs.HotkeySample(anyKeyDown(keymap.Keys, o.hotkey))
	return nil
}

func buttonsFromMask(mask uint16) (left, right bool) {
	return mask&xproto.KeyButMaskButton1 != 0, mask&xproto.KeyButMaskButton3 != 0
}
