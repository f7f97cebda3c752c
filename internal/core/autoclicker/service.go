package autoclicker

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type Config struct {
	MinCPS       uint32
	MaxCPS       uint32
	Mode         ClickMode
	StartRunning bool

	WindowTitle   string
	IdleInterval  time.Duration
	ClickHold     time.Duration
	ClickOverhead time.Duration
}

func DefaultConfig() Config {
	return Config{
		MinCPS:        DefaultMinCPS,
		MaxCPS:        DefaultMaxCPS,
		Mode:          ClickModeLeft,
		WindowTitle:   DefaultWindowTitle,
		IdleInterval:  DefaultIdleInterval,
		ClickHold:     DefaultClickHold,
		ClickOverhead: DefaultClickOverhead,
	}
}

// Service runs the input observer and the click engine for one platform and
// exposes the control surface contract.
type Service struct {
	state    *State
	health   *Health
	guard    *InjectionGuard
	observer *Observer
	engine   *Engine
	platform Platform
	logger   Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	tasksWG sync.WaitGroup

	stopOnce sync.Once
}

func NewService(cfg Config, platform Platform, logger Logger) (*Service, error) {
	return newService(cfg, platform, logger, EngineConfig{})
}

func newService(cfg Config, platform Platform, logger Logger, engineCfg EngineConfig) (*Service, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	if platform.Input == nil {
		return nil, fmt.Errorf("platform %q has no input source", platform.Name)
	}

	state := NewState(cfg.MinCPS, cfg.MaxCPS, cfg.Mode)
	if cfg.StartRunning {
		state.ToggleRunning()
	}
	health := &Health{}
	guard := &InjectionGuard{}

	engineCfg.OwnTitle = cfg.WindowTitle
	engineCfg.IdleInterval = cfg.IdleInterval
	engineCfg.ClickHold = cfg.ClickHold
	engineCfg.ClickOverhead = cfg.ClickOverhead
	engine, err := NewEngine(state, health, platform.Windows, platform.Clicker, guard, engineCfg, logger)
	if err != nil {
		return nil, err
	}

	return &Service{
		state:    state,
		health:   health,
		guard:    guard,
		observer: NewObserver(state, health, guard, logger),
		engine:   engine,
		platform: platform,
		logger:   logger,
	}, nil
}

// Start launches the observer and engine goroutines. They run until ctx is
// done or Stop is called.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)

	s.health.setObserverPhase(PhaseStarting, nil)
	s.tasksWG.Add(2)
	go s.observe(ctx)
	go func() {
		defer s.tasksWG.Done()
		s.engine.Run(ctx)
	}()
}

func (s *Service) observe(ctx context.Context) {
	defer s.tasksWG.Done()

	err := s.platform.Input.Run(ctx, s.observer)
	if err != nil && ctx.Err() == nil {
		// Nothing can report a release any more.
		s.state.ReleaseHeld()
		s.logger.Error("Input observer unavailable; held buttons and hotkey disabled", "backend", s.platform.Name, "err", err)
		s.health.setObserverPhase(PhaseFailed, err)
		return
	}
	s.health.setObserverPhase(PhaseStopped, nil)
}

// Stop cancels background tasks, waits for them and closes the platform.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		cancel := s.cancel
		s.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		s.tasksWG.Wait()
		s.state.ReleaseHeld()
		if s.platform.Close != nil {
			if err := s.platform.Close(); err != nil {
				s.logger.Warn("Failed to close backend", "backend", s.platform.Name, "err", err)
			}
		}
	})
}

func (s *Service) SetMinCPS(v uint32)          { s.state.SetMinCPS(v) }
func (s *Service) SetMaxCPS(v uint32)          { s.state.SetMaxCPS(v) }
func (s *Service) SetClickMode(mode ClickMode) { s.state.SetClickMode(mode) }
func (s *Service) IsRunning() bool             { return s.state.IsRunning() }
func (s *Service) MinCPS() uint32              { return s.state.MinCPS() }
func (s *Service) MaxCPS() uint32              { return s.state.MaxCPS() }
func (s *Service) ClickMode() ClickMode        { return s.state.ClickMode() }

func (s *Service) ToggleRunning() {
	running := s.state.ToggleRunning()
	s.logger.Info("Running toggled", "running", running)
}

func (s *Service) BackendName() string { return s.platform.Name }

type Status struct {
	Backend string         `json:"backend"`
	State   Snapshot       `json:"state"`
	Health  HealthSnapshot `json:"health"`
}

func (s *Service) Status() Status {
	return Status{
		Backend: s.platform.Name,
		State:   s.state.Snapshot(),
		Health:  s.health.Snapshot(),
	}
}
