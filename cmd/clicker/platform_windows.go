//go:build windows

package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"clicker/internal/adapters/wininput"
	"clicker/internal/config"
	"clicker/internal/core/autoclicker"
)

func buildPlatform(cfg config.Config, logger *slog.Logger) (autoclicker.Platform, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Input.Backend)) {
	case "", config.BackendAuto, config.BackendWindows:
	default:
		return autoclicker.Platform{}, fmt.Errorf("backend %q is not available on windows (auto|windows)", cfg.Input.Backend)
	}
	if cfg.Input.Device != "" {
		logger.Warn("input.device is ignored on Windows; using global keyboard/mouse hooks")
	}
	return wininput.NewPlatform(wininput.Options{Hotkey: cfg.Input.Hotkey}, logger)
}

func listInputDevices(_ config.Config) error {
	devices, err := wininput.ListInputDevices()
	if err != nil {
		return err
	}
	for _, dev := range devices {
		fmt.Println(formatDeviceLine(dev.Path, dev.Name, dev.IsVirtual, dev.IsPointer))
	}
	return nil
}

func captureHotkey(ctx context.Context, _ config.Config, timeout time.Duration) (string, error) {
	return wininput.CaptureHotkey(ctx, timeout)
}

func permissionDeniedHint() string {
	return "Permission denied registering global input hooks. Run as Administrator and ensure input-hooking is allowed."
}
