//go:build !linux && !windows

package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"clicker/internal/adapters/hookinput"
	"clicker/internal/config"
	"clicker/internal/core/autoclicker"
)

func buildPlatform(cfg config.Config, logger *slog.Logger) (autoclicker.Platform, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Input.Backend)) {
	case "", config.BackendAuto, config.BackendGohook:
	default:
		return autoclicker.Platform{}, fmt.Errorf("backend %q is not available on this platform (auto|gohook)", cfg.Input.Backend)
	}
	if cfg.Input.Device != "" {
		logger.Warn("input.device is ignored by the event tap backend")
	}
	return hookinput.NewPlatform(hookinput.Options{Hotkey: cfg.Input.Hotkey}, logger)
}

func listInputDevices(_ config.Config) error {
	fmt.Println(formatDeviceLine("event-tap", "Global Event Tap", false, true))
	return nil
}

func captureHotkey(context.Context, config.Config, time.Duration) (string, error) {
	return "", fmt.Errorf("hotkey capture is not supported on this platform; pass --hotkey instead")
}

func permissionDeniedHint() string {
	return "Permission denied opening the event tap. Grant Accessibility and Input Monitoring access to this binary in System Settings > Privacy & Security."
}
