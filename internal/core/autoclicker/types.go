package autoclicker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultMinCPS uint32 = 5
	DefaultMaxCPS uint32 = 25

	DefaultWindowTitle = "Auto Clicker"
	DefaultHotkey      = "F6"

	// DefaultIdleInterval bounds toggle latency while stopped without spinning.
	DefaultIdleInterval = 10 * time.Millisecond
	// DefaultPollInterval is used by observers that sample global state.
	DefaultPollInterval = 10 * time.Millisecond
	// DefaultClickHold is how long a synthetic button stays down.
	DefaultClickHold = 1 * time.Millisecond
	// DefaultClickOverhead is subtracted from each cycle for the down/up hold.
	DefaultClickOverhead = 2 * time.Millisecond
)

// ErrUnsupported is returned by capabilities the current backend cannot provide.
var ErrUnsupported = errors.New("capability not supported by backend")

type ClickMode uint32

const (
	ClickModeLeft ClickMode = iota
	ClickModeRight
	ClickModeBoth
)

func (m ClickMode) String() string {
	switch m {
	case ClickModeLeft:
		return "left"
	case ClickModeRight:
		return "right"
	case ClickModeBoth:
		return "both"
	default:
		return fmt.Sprintf("ClickMode(%d)", uint32(m))
	}
}

// Buttons lists the buttons the engine considers for this mode, left first.
func (m ClickMode) Buttons() []Button {
	switch m {
	case ClickModeRight:
		return []Button{ButtonRight}
	case ClickModeBoth:
		return []Button{ButtonLeft, ButtonRight}
	default:
		return []Button{ButtonLeft}
	}
}

func ParseClickMode(value string) (ClickMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "left":
		return ClickModeLeft, nil
	case "right":
		return ClickModeRight, nil
	case "both":
		return ClickModeBoth, nil
	default:
		return ClickModeLeft, fmt.Errorf("invalid click mode %q (expected left|right|both)", value)
	}
}

type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
)

func (b Button) String() string {
	if b == ButtonRight {
		return "right"
	}
	return "left"
}

// Window identifies the focused top-level window. Handle is backend specific
// (X11 window id, HWND, ...); zero means unknown.
type Window struct {
	Handle uint64
	Title  string
}

// InputSource observes global mouse buttons and the hotkey until ctx is done.
// It returns an error only when the observation capability cannot be acquired
// or is lost permanently.
type InputSource interface {
	Run(ctx context.Context, observer *Observer) error
}

// WindowQuery reports the currently focused window.
type WindowQuery interface {
	ActiveWindow() (Window, error)
}

// UnsupportedWindows is the WindowQuery of backends that cannot see window
// titles (Wayland without XWayland, for one).
type UnsupportedWindows struct{}

func (UnsupportedWindows) ActiveWindow() (Window, error) { return Window{}, ErrUnsupported }

// ClickSynthesizer injects button transitions aimed at target.
type ClickSynthesizer interface {
	Press(target Window, button Button) error
	Release(target Window, button Button) error
}

// Platform bundles one backend's capabilities.
type Platform struct {
	Name    string
	Input   InputSource
	Windows WindowQuery
	Clicker ClickSynthesizer
	Close   func() error
}

// UnavailablePlatform stands in for a backend that could not be acquired.
// Its input source fails with err, so the service reports the observer as
// failed while the control surfaces keep working.
func UnavailablePlatform(name string, err error) Platform {
	u := unavailable{err: err}
	return Platform{
		Name:    name,
		Input:   u,
		Windows: UnsupportedWindows{},
		Clicker: u,
	}
}

type unavailable struct{ err error }

func (u unavailable) Run(context.Context, *Observer) error { return u.err }
func (u unavailable) Press(Window, Button) error           { return u.err }
func (u unavailable) Release(Window, Button) error         { return u.err }

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// NopLogger discards everything.
func NopLogger() Logger { return noopLogger{} }
