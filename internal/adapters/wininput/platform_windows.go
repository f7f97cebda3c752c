//go:build windows

package wininput

import (
	"context"
	"fmt"
	"time"

	"clicker/internal/core/autoclicker"
)

func NewPlatform(opts Options, logger autoclicker.Logger) (autoclicker.Platform, error) {
	vk, err := VirtualKey(opts.Hotkey)
	if err != nil {
		return autoclicker.Platform{}, err
	}
	if logger != nil {
		logger.Debug("Windows hotkey resolved", "hotkey", opts.Hotkey, "vk", vk)
	}
	return autoclicker.Platform{
		Name:    "windows",
		Input:   NewRuntime(vk),
		Windows: Windows{},
		Clicker: Clicker{},
	}, nil
}

// CaptureHotkey polls every nameable key until one goes down and returns its
// name.
func CaptureHotkey(ctx context.Context, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	candidates := captureCandidates()
	state := make(map[uint32]bool, len(candidates))
	for _, vk := range candidates {
		state[vk] = isVKDown(vk)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ticker := time.NewTicker(2 * time.Millisecond)
	defer ticker.Stop()

	for {
		for _, vk := range candidates {
			down := isVKDown(vk)
			wasDown := state[vk]
			state[vk] = down
			if down && !wasDown {
				return KeyName(vk), nil
			}
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("timed out waiting for key input")
		case <-ticker.C:
		}
	}
}
