//go:build !windows

package wininput

import (
	"context"
	"fmt"
	"time"

	"clicker/internal/core/autoclicker"
)

func NewPlatform(opts Options, logger autoclicker.Logger) (autoclicker.Platform, error) {
	return autoclicker.Platform{}, fmt.Errorf("windows input runtime is only available on Windows")
}

func CaptureHotkey(ctx context.Context, timeout time.Duration) (string, error) {
	return "", fmt.Errorf("windows input runtime is only available on Windows")
}
