// Package config loads the optional YAML startup configuration and merges
// command-line overrides into it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"clicker/internal/core/autoclicker"
	"clicker/internal/logging"

	"gopkg.in/yaml.v3"
)

// MaxCPS caps the configurable click rate.
const MaxCPS = 1000

const (
	BackendAuto    = "auto"
	BackendX11     = "x11"
	BackendEvdev   = "evdev"
	BackendWindows = "windows"
	BackendGohook  = "gohook"

	UIGUI  = "gui"
	UITUI  = "tui"
	UINone = "none"
)

type Config struct {
	Clicker ClickerConfig `yaml:"clicker"`

	Input InputConfig `yaml:"input"`

	UI UIConfig `yaml:"ui"`

	Status StatusConfig `yaml:"status"`

	Logging LoggingConfig `yaml:"logging"`
}

type ClickerConfig struct {
	MinCPS       uint32 `yaml:"min_cps"`
	MaxCPS       uint32 `yaml:"max_cps"`
	Mode         string `yaml:"mode"` // left, right or both
	StartRunning bool   `yaml:"start_running"`
	WindowTitle  string `yaml:"window_title"`

	IdleIntervalMS  int `yaml:"idle_interval_ms"`
	ClickHoldMS     int `yaml:"click_hold_ms"`
	ClickOverheadMS int `yaml:"click_overhead_ms"`
}

type InputConfig struct {
	Backend        string `yaml:"backend"`
	Hotkey         string `yaml:"hotkey"`
	Device         string `yaml:"device,omitempty"`  // evdev only
	Display        string `yaml:"display,omitempty"` // x11 only
	PollIntervalMS int    `yaml:"poll_interval_ms"`
	X11ClickMethod string `yaml:"x11_click_method"` // sendevent or xtest
}

type UIConfig struct {
	Mode string `yaml:"mode"`
}

type StatusConfig struct {
	// Addr enables the websocket status server when non-empty.
	Addr string `yaml:"addr"`
	// BroadcastMS is how often state is pushed to clients.
	BroadcastMS int `yaml:"broadcast_ms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() Config {
	return Config{
		Clicker: ClickerConfig{
			MinCPS:          autoclicker.DefaultMinCPS,
			MaxCPS:          autoclicker.DefaultMaxCPS,
			Mode:            autoclicker.ClickModeLeft.String(),
			WindowTitle:     autoclicker.DefaultWindowTitle,
			IdleIntervalMS:  int(autoclicker.DefaultIdleInterval / time.Millisecond),
			ClickHoldMS:     int(autoclicker.DefaultClickHold / time.Millisecond),
			ClickOverheadMS: int(autoclicker.DefaultClickOverhead / time.Millisecond),
		},
		Input: InputConfig{
			Backend:        BackendAuto,
			Hotkey:         autoclicker.DefaultHotkey,
			PollIntervalMS: int(autoclicker.DefaultPollInterval / time.Millisecond),
			X11ClickMethod: "sendevent",
		},
		UI: UIConfig{
			Mode: UIGUI,
		},
		Status: StatusConfig{
			BroadcastMS: 250,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/clicker/config.yaml (or the platform
// equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "clicker", "config.yaml")
}

// Load reads path. An empty path means DefaultPath, which may be missing.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return DefaultConfig(), nil
		}
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
	}
	return LoadFile(path)
}

func LoadFile(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path is empty")
	}
	b, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML on top of the defaults. Unknown keys are errors.
func Parse(b []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(b)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config yaml: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err == nil {
		return Config{}, fmt.Errorf("decode config yaml: unexpected trailing document")
	}
	return cfg, nil
}

type FlagOverrides struct {
	MinCPS       *uint32
	MaxCPS       *uint32
	Mode         *string
	StartRunning *bool
	WindowTitle  *string

	Backend *string
	Hotkey  *string
	Device  *string

	UIMode     *string
	StatusAddr *string

	LogLevel  *string
	LogFormat *string
}

func (o FlagOverrides) Apply(cfg *Config) {
	if cfg == nil {
		return
	}
	if o.MinCPS != nil {
		cfg.Clicker.MinCPS = *o.MinCPS
	}
	if o.MaxCPS != nil {
		cfg.Clicker.MaxCPS = *o.MaxCPS
	}
	if o.Mode != nil {
		cfg.Clicker.Mode = *o.Mode
	}
	if o.StartRunning != nil {
		cfg.Clicker.StartRunning = *o.StartRunning
	}
	if o.WindowTitle != nil {
		cfg.Clicker.WindowTitle = *o.WindowTitle
	}

	if o.Backend != nil {
		cfg.Input.Backend = *o.Backend
	}
	if o.Hotkey != nil {
		cfg.Input.Hotkey = *o.Hotkey
	}
	if o.Device != nil {
		cfg.Input.Device = *o.Device
	}

	if o.UIMode != nil {
		cfg.UI.Mode = *o.UIMode
	}
	if o.StatusAddr != nil {
		cfg.Status.Addr = *o.StatusAddr
	}

	if o.LogLevel != nil {
		cfg.Logging.Level = *o.LogLevel
	}
	if o.LogFormat != nil {
		cfg.Logging.Format = *o.LogFormat
	}
}

func (c *Config) Validate() error {
	if c.Clicker.MinCPS < 1 {
		return errors.New("clicker.min_cps must be >= 1")
	}
	if c.Clicker.MinCPS >= c.Clicker.MaxCPS {
		return errors.New("clicker.min_cps must be < clicker.max_cps")
	}
	if c.Clicker.MaxCPS > MaxCPS {
		return fmt.Errorf("clicker.max_cps must be <= %d", MaxCPS)
	}
	if _, err := autoclicker.ParseClickMode(c.Clicker.Mode); err != nil {
		return fmt.Errorf("clicker.mode: %w", err)
	}
	if c.Clicker.IdleIntervalMS <= 0 {
		return errors.New("clicker.idle_interval_ms must be > 0")
	}
	if c.Clicker.ClickHoldMS <= 0 {
		return errors.New("clicker.click_hold_ms must be > 0")
	}
	if c.Clicker.ClickOverheadMS < 0 {
		return errors.New("clicker.click_overhead_ms must be >= 0")
	}

	switch strings.ToLower(c.Input.Backend) {
	case "", BackendAuto, BackendX11, BackendEvdev, BackendWindows, BackendGohook:
	default:
		return fmt.Errorf("input.backend must be one of auto|x11|evdev|windows|gohook, got %q", c.Input.Backend)
	}
	if strings.TrimSpace(c.Input.Hotkey) == "" {
		return errors.New("input.hotkey must not be empty")
	}
	if c.Input.PollIntervalMS <= 0 {
		return errors.New("input.poll_interval_ms must be > 0")
	}
	switch strings.ToLower(c.Input.X11ClickMethod) {
	case "", "sendevent", "xtest":
	default:
		return fmt.Errorf("input.x11_click_method must be sendevent or xtest, got %q", c.Input.X11ClickMethod)
	}

	switch strings.ToLower(c.UI.Mode) {
	case UIGUI, UITUI, UINone:
	default:
		return fmt.Errorf("ui.mode must be gui, tui or none, got %q", c.UI.Mode)
	}
	if c.Status.Addr != "" && c.Status.BroadcastMS <= 0 {
		return errors.New("status.broadcast_ms must be > 0")
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "console", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

// ServiceConfig converts the validated file settings into the core config.
func (c Config) ServiceConfig() autoclicker.Config {
	mode, _ := autoclicker.ParseClickMode(c.Clicker.Mode)
	return autoclicker.Config{
		MinCPS:        c.Clicker.MinCPS,
		MaxCPS:        c.Clicker.MaxCPS,
		Mode:          mode,
		StartRunning:  c.Clicker.StartRunning,
		WindowTitle:   c.Clicker.WindowTitle,
		IdleInterval:  time.Duration(c.Clicker.IdleIntervalMS) * time.Millisecond,
		ClickHold:     time.Duration(c.Clicker.ClickHoldMS) * time.Millisecond,
		ClickOverhead: time.Duration(c.Clicker.ClickOverheadMS) * time.Millisecond,
	}
}

func (c Config) PollInterval() time.Duration {
	return time.Duration(c.Input.PollIntervalMS) * time.Millisecond
}

func (c Config) BroadcastInterval() time.Duration {
	return time.Duration(c.Status.BroadcastMS) * time.Millisecond
}

func ExpandPath(p string) string {
	if p == "" {
		return p
	}
	if p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	if len(p) >= 2 && (p[1] == '/' || p[1] == '\\') {
		return filepath.Join(home, p[2:])
	}
	return p
}
