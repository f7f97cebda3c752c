package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"clicker/internal/core/autoclicker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	svc := cfg.ServiceConfig()
	assert.Equal(t, autoclicker.DefaultConfig(), svc)
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
clicker:
  min_cps: 8
  max_cps: 14
  mode: both
input:
  hotkey: F8
logging:
  format: json
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, uint32(8), cfg.Clicker.MinCPS)
	assert.Equal(t, uint32(14), cfg.Clicker.MaxCPS)
	assert.Equal(t, "F8", cfg.Input.Hotkey)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, autoclicker.DefaultWindowTitle, cfg.Clicker.WindowTitle)
	assert.Equal(t, BackendAuto, cfg.Input.Backend)

	svc := cfg.ServiceConfig()
	assert.Equal(t, autoclicker.ClickModeBoth, svc.Mode)
	assert.Equal(t, 10*time.Millisecond, svc.IdleInterval)
}

func TestParseRejectsUnknownFieldsAndTrailingDocuments(t *testing.T) {
	_, err := Parse([]byte("clicker:\n  jitter: 4\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("clicker:\n  min_cps: 6\n---\nclicker:\n  min_cps: 7\n"))
	assert.Error(t, err)
}

func TestParseEmptyYieldsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero min", mutate: func(c *Config) { c.Clicker.MinCPS = 0 }},
		{name: "min equals max", mutate: func(c *Config) { c.Clicker.MinCPS = 25 }},
		{name: "max too high", mutate: func(c *Config) { c.Clicker.MaxCPS = MaxCPS + 1 }},
		{name: "bad mode", mutate: func(c *Config) { c.Clicker.Mode = "middle" }},
		{name: "zero idle", mutate: func(c *Config) { c.Clicker.IdleIntervalMS = 0 }},
		{name: "zero hold", mutate: func(c *Config) { c.Clicker.ClickHoldMS = 0 }},
		{name: "negative overhead", mutate: func(c *Config) { c.Clicker.ClickOverheadMS = -1 }},
		{name: "bad backend", mutate: func(c *Config) { c.Input.Backend = "wayland" }},
		{name: "empty hotkey", mutate: func(c *Config) { c.Input.Hotkey = " " }},
		{name: "zero poll", mutate: func(c *Config) { c.Input.PollIntervalMS = 0 }},
		{name: "bad click method", mutate: func(c *Config) { c.Input.X11ClickMethod = "uinput" }},
		{name: "bad ui", mutate: func(c *Config) { c.UI.Mode = "web" }},
		{name: "zero broadcast", mutate: func(c *Config) { c.Status.Addr = ":0"; c.Status.BroadcastMS = 0 }},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "trace" }},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := DefaultConfig()
	cfg.Clicker.MaxCPS = MaxCPS
	assert.NoError(t, cfg.Validate())
}

func TestFlagOverridesApply(t *testing.T) {
	cfg := DefaultConfig()
	minCPS, maxCPS := uint32(10), uint32(20)
	mode, backend, addr := "right", "evdev", "127.0.0.1:9000"

	FlagOverrides{
		MinCPS:     &minCPS,
		MaxCPS:     &maxCPS,
		Mode:       &mode,
		Backend:    &backend,
		StatusAddr: &addr,
	}.Apply(&cfg)

	assert.Equal(t, uint32(10), cfg.Clicker.MinCPS)
	assert.Equal(t, uint32(20), cfg.Clicker.MaxCPS)
	assert.Equal(t, "right", cfg.Clicker.Mode)
	assert.Equal(t, "evdev", cfg.Input.Backend)
	assert.Equal(t, addr, cfg.Status.Addr)
	assert.Equal(t, autoclicker.DefaultHotkey, cfg.Input.Hotkey, "unset overrides keep file values")

	FlagOverrides{}.Apply(nil)
}

func TestLoadToleratesMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clicker.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  mode: tui\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, UITUI, cfg.UI.Mode)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")
}
