package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"clicker/internal/config"
	"clicker/internal/core/autoclicker"
	"clicker/internal/logging"
	"clicker/internal/status"

	"github.com/urfave/cli"
)

const captureTimeout = 10 * time.Second

func newApp(stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "clicker"
	app.Usage = "hold a mouse button to auto-click at a randomized rate"
	app.Description = "Press the hotkey (F6 by default) to arm the clicker, then hold left or right mouse button."
	app.Version = "1.0.0"
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "YAML config file (default: $XDG_CONFIG_HOME/clicker/config.yaml if present)",
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "Input backend: auto|x11|evdev|windows|gohook",
		},
		cli.UintFlag{
			Name:  "min-cps",
			Usage: "Lower bound of the randomized click rate",
		},
		cli.UintFlag{
			Name:  "max-cps",
			Usage: "Upper bound of the randomized click rate",
		},
		cli.StringFlag{
			Name:  "mode",
			Usage: "Buttons to auto-click: left|right|both",
		},
		cli.StringFlag{
			Name:  "hotkey",
			Usage: "Key that toggles running, e.g. F6, PAUSE, KEY_F8",
		},
		cli.StringFlag{
			Name:  "title",
			Usage: "Title of the control window; clicks are never sent to a window with this title",
		},
		cli.StringFlag{
			Name:  "ui",
			Usage: "Control surface: gui|tui|none",
		},
		cli.StringFlag{
			Name:  "status-addr",
			Usage: "Serve websocket status and commands on this address, e.g. 127.0.0.1:8765",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "Log verbosity: debug|info|warn|error",
		},
		cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text|json",
		},
		cli.StringFlag{
			Name:  "device",
			Usage: "evdev only: observe a single /dev/input/eventN device",
		},
		cli.BoolFlag{
			Name:  "start-running",
			Usage: "Start armed instead of waiting for the hotkey",
		},
		cli.BoolFlag{
			Name:  "list-devices",
			Usage: "Print observable input devices for the chosen backend and exit",
		},
		cli.BoolFlag{
			Name:  "capture-hotkey",
			Usage: "Wait for the next key press, print its hotkey name and exit",
		},
	}
	app.Action = runClicker
	return app
}

func overridesFromContext(c *cli.Context) config.FlagOverrides {
	var o config.FlagOverrides
	str := func(name string) *string {
		if !c.IsSet(name) {
			return nil
		}
		v := c.String(name)
		return &v
	}
	u32 := func(name string) *uint32 {
		if !c.IsSet(name) {
			return nil
		}
		v := uint32(c.Uint(name))
		return &v
	}

	o.MinCPS = u32("min-cps")
	o.MaxCPS = u32("max-cps")
	o.Mode = str("mode")
	o.WindowTitle = str("title")
	o.Backend = str("backend")
	o.Hotkey = str("hotkey")
	o.Device = str("device")
	o.UIMode = str("ui")
	o.StatusAddr = str("status-addr")
	o.LogLevel = str("log-level")
	o.LogFormat = str("log-format")
	if c.IsSet("start-running") {
		v := c.Bool("start-running")
		o.StartRunning = &v
	}
	return o
}

func loadConfig(c *cli.Context) (config.Config, error) {
	if c.NArg() > 0 {
		return config.Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(c.Args(), " "))
	}
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, err
	}
	overridesFromContext(c).Apply(&cfg)
	cfg.UI.Mode = strings.ToLower(strings.TrimSpace(cfg.UI.Mode))
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config, out io.Writer, sink func(line string)) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: out,
		Sink:   sink,
	})
}

func isPermissionError(err error) bool {
	return errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.EACCES)
}

func runClicker(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if c.Bool("list-devices") {
		return listInputDevices(cfg)
	}
	if c.Bool("capture-hotkey") {
		fmt.Fprintln(c.App.ErrWriter, "Press the key to use as hotkey...")
		name, err := captureHotkey(ctx, cfg, captureTimeout)
		if err != nil {
			return err
		}
		fmt.Println(name)
		return nil
	}

	// The GUI log view only exists with DEBUG=1. The TUI owns the terminal,
	// so its logs always go to the panel instead of stderr.
	var panel *logPanel
	out := c.App.ErrWriter
	switch {
	case cfg.UI.Mode == config.UITUI:
		panel = newLogPanel(maxUILogLines)
		out = io.Discard
	case cfg.UI.Mode == config.UIGUI && logging.DebugLogsEnabled():
		panel = newLogPanel(maxUILogLines)
	}
	var sink func(string)
	if panel != nil {
		sink = panel.Append
	}
	logger, err := newLogger(cfg, out, sink)
	if err != nil {
		return err
	}

	svc, err := startService(ctx, cfg, logger, buildPlatform)
	if err != nil {
		return err
	}
	defer svc.Stop()

	if cfg.Status.Addr != "" {
		srv := status.NewServer(logger, svc, status.ServerConfig{Interval: cfg.BroadcastInterval()})
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.Status.Addr); err != nil {
				logger.Error("Status server stopped", "addr", cfg.Status.Addr, "err", err)
			}
		}()
	}

	switch cfg.UI.Mode {
	case config.UIGUI:
		return runGUI(ctx, cfg, svc, panel)
	case config.UITUI:
		return runTUI(ctx, cfg, svc, panel)
	default:
		return runHeadless(ctx, cfg, svc, logger)
	}
}

type platformBuilder func(cfg config.Config, logger *slog.Logger) (autoclicker.Platform, error)

// startService runs the service even when the backend cannot be acquired, so
// the control surfaces stay up and report the failure.
func startService(ctx context.Context, cfg config.Config, logger *slog.Logger, build platformBuilder) (*autoclicker.Service, error) {
	platform, err := build(cfg, logger)
	if err != nil {
		if isPermissionError(err) {
			logger.Warn(permissionDeniedHint())
		}
		logger.Error("Input backend unavailable", "backend", cfg.Input.Backend, "err", err)
		platform = autoclicker.UnavailablePlatform(cfg.Input.Backend, err)
	}
	svc, err := autoclicker.NewService(cfg.ServiceConfig(), platform, logger)
	if err != nil {
		if platform.Close != nil {
			_ = platform.Close()
		}
		return nil, err
	}
	svc.Start(ctx)

	logger.Info("Clicker started",
		"backend", platform.Name,
		"hotkey", cfg.Input.Hotkey,
		"min_cps", cfg.Clicker.MinCPS,
		"max_cps", cfg.Clicker.MaxCPS,
		"mode", cfg.Clicker.Mode,
		"running", svc.IsRunning(),
	)
	return svc, nil
}

func runHeadless(ctx context.Context, cfg config.Config, svc *autoclicker.Service, logger *slog.Logger) error {
	logger.Info("Press the hotkey to start or stop; hold a mouse button to auto-click. Press Ctrl+C to exit", "hotkey", cfg.Input.Hotkey)
	<-ctx.Done()
	logger.Info("Shutting down", "clicks", svc.Status().Health.Clicks)
	return nil
}

func run(args []string, stderr io.Writer) int {
	app := newApp(stderr)
	if err := app.Run(args); err != nil {
		if isPermissionError(err) {
			fmt.Fprintln(stderr, permissionDeniedHint())
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args, os.Stderr))
}
