//go:build linux

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"clicker/internal/adapters/linuxinput"
	"clicker/internal/adapters/x11input"
	"clicker/internal/config"
	"clicker/internal/core/autoclicker"
)

func buildPlatform(cfg config.Config, logger *slog.Logger) (autoclicker.Platform, error) {
	backend, err := resolveLinuxBackend(cfg.Input.Backend)
	if err != nil {
		return autoclicker.Platform{}, err
	}
	switch backend {
	case config.BackendX11:
		return buildX11Platform(cfg, logger)
	default:
		return buildEvdevPlatform(cfg, logger)
	}
}

func buildX11Platform(cfg config.Config, logger *slog.Logger) (autoclicker.Platform, error) {
	if cfg.Input.Device != "" {
		logger.Warn("input.device is ignored on the x11 backend", "device", cfg.Input.Device)
	}
	method, err := x11input.ParseClickMethod(cfg.Input.X11ClickMethod)
	if err != nil {
		return autoclicker.Platform{}, err
	}
	return x11input.NewPlatform(x11input.Options{
		Display:      cfg.Input.Display,
		Hotkey:       cfg.Input.Hotkey,
		PollInterval: cfg.PollInterval(),
		ClickMethod:  method,
	}, logger)
}

// buildEvdevPlatform observes /dev/input directly. Under XWayland the X
// server can still name the focused X client, so it is used for the
// own-window check when reachable.
func buildEvdevPlatform(cfg config.Config, logger *slog.Logger) (autoclicker.Platform, error) {
	opts := linuxinput.Options{
		Device: cfg.Input.Device,
		Hotkey: cfg.Input.Hotkey,
	}
	if cfg.Input.Display != "" || strings.TrimSpace(os.Getenv("DISPLAY")) != "" {
		session, err := x11input.Open(cfg.Input.Display)
		if err != nil {
			logger.Warn("X11 unavailable; own-window check disabled", "err", err)
		} else {
			opts.Windows = x11input.NewWindows(session)
			opts.CloseWindows = session.Close
		}
	}

	platform, err := linuxinput.NewPlatform(opts)
	if err != nil {
		if opts.CloseWindows != nil {
			_ = opts.CloseWindows()
		}
		return autoclicker.Platform{}, err
	}
	if opts.Windows == nil {
		logger.Info("Active window query unsupported on this session; clicks are sent regardless of focus")
	}
	return platform, nil
}

func listInputDevices(cfg config.Config) error {
	backend, err := resolveLinuxBackend(cfg.Input.Backend)
	if err != nil {
		return err
	}

	var devices []linuxinput.DeviceInfo
	switch backend {
	case config.BackendX11:
		devices, err = x11input.ListInputDevices(cfg.Input.Display)
	default:
		devices, err = linuxinput.ListInputDevices()
	}
	if err != nil {
		return err
	}
	for _, dev := range devices {
		fmt.Println(formatDeviceLine(dev.Path, dev.Name, dev.IsVirtual, dev.IsPointer))
	}
	return nil
}

// captureHotkey reads the next key from evdev on every Linux backend; X11
// has no portable way to wait for a global key press without grabbing.
func captureHotkey(ctx context.Context, _ config.Config, timeout time.Duration) (string, error) {
	return linuxinput.CaptureHotkey(ctx, timeout)
}

func permissionDeniedHint() string {
	return "Permission denied opening input backend. The evdev backend needs read access to /dev/input and write access to /dev/uinput (root or the input group + udev rule). On X11 ensure DISPLAY points at an active session."
}

// resolveLinuxBackend maps "auto" to x11 or evdev from the session
// environment.
func resolveLinuxBackend(configured string) (string, error) {
	choice := strings.ToLower(strings.TrimSpace(configured))
	switch choice {
	case "", config.BackendAuto:
	case config.BackendX11, config.BackendEvdev:
		return choice, nil
	case "wayland":
		return config.BackendEvdev, nil
	default:
		return "", fmt.Errorf("backend %q is not available on linux (auto|x11|evdev)", configured)
	}

	sessionType := strings.ToLower(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")))
	switch sessionType {
	case "wayland":
		return config.BackendEvdev, nil
	case "x11":
		return config.BackendX11, nil
	}

	if strings.TrimSpace(os.Getenv("WAYLAND_DISPLAY")) != "" {
		return config.BackendEvdev, nil
	}
	if strings.TrimSpace(os.Getenv("DISPLAY")) != "" {
		return config.BackendX11, nil
	}
	return config.BackendEvdev, nil
}
