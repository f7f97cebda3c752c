package autoclicker

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

type EngineConfig struct {
	// OwnTitle is the title of this program's window; nothing is clicked
	// while it has focus. Empty disables the check.
	OwnTitle      string
	IdleInterval  time.Duration
	ClickHold     time.Duration
	ClickOverhead time.Duration

	// Rand is the cps source. Nil seeds a PCG once for the process.
	Rand *rand.Rand
	// Sleep waits for d or until ctx is done, reporting whether the full
	// duration elapsed. Nil uses a timer.
	Sleep func(ctx context.Context, d time.Duration) bool
}

// Engine is the click loop. Only the goroutine running Run (or Cycle) may use it.
type Engine struct {
	state   *State
	health  *Health
	windows WindowQuery
	clicker ClickSynthesizer
	guard   *InjectionGuard
	logger  Logger

	ownTitle      string
	idleInterval  time.Duration
	clickHold     time.Duration
	clickOverhead time.Duration
	rng           *rand.Rand
	sleep         func(ctx context.Context, d time.Duration) bool
}

func NewEngine(
	state *State,
	health *Health,
	windows WindowQuery,
	clicker ClickSynthesizer,
	guard *InjectionGuard,
	cfg EngineConfig,
	logger Logger,
) (*Engine, error) {
	if state == nil {
		return nil, fmt.Errorf("state is nil")
	}
	if windows == nil {
		return nil, fmt.Errorf("window query is nil")
	}
	if clicker == nil {
		return nil, fmt.Errorf("click synthesizer is nil")
	}
	if cfg.IdleInterval < 0 || cfg.ClickHold < 0 || cfg.ClickOverhead < 0 {
		return nil, fmt.Errorf("engine intervals must be >= 0")
	}
	if health == nil {
		health = &Health{}
	}
	if guard == nil {
		guard = &InjectionGuard{}
	}
	if logger == nil {
		logger = NopLogger()
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	return &Engine{
		state:         state,
		health:        health,
		windows:       windows,
		clicker:       clicker,
		guard:         guard,
		logger:        logger,
		ownTitle:      cfg.OwnTitle,
		idleInterval:  cfg.IdleInterval,
		clickHold:     cfg.ClickHold,
		clickOverhead: cfg.ClickOverhead,
		rng:           rng,
		sleep:         sleep,
	}, nil
}

// Run executes cycles until ctx is done.
func (e *Engine) Run(ctx context.Context) {
	for ctx.Err() == nil {
		delay := e.Cycle(ctx)
		if !e.sleep(ctx, delay) {
			return
		}
	}
}

// Cycle performs one iteration and returns how long to wait before the next.
func (e *Engine) Cycle(ctx context.Context) time.Duration {
	if !e.state.IsRunning() {
		return e.idleInterval
	}
	e.health.cycles.Add(1)

	e.clickHeld(ctx)

	cps := DrawCPS(e.rng, e.state.MinCPS(), e.state.MaxCPS())
	delay := CycleDelay(cps, e.clickOverhead)
	e.health.lastCPS.Store(cps)
	e.health.lastDelay.Store(int64(delay))

	if delay == 0 {
		if e.health.rateSaturated.CompareAndSwap(false, true) {
			e.logger.Warn("Click rate exceeds what the click hold allows; running unthrottled", "cps", cps)
		}
	} else {
		e.health.rateSaturated.Store(false)
	}
	return delay
}

func (e *Engine) clickHeld(ctx context.Context) {
	win, err := e.windows.ActiveWindow()
	if err != nil && !errors.Is(err, ErrUnsupported) {
		e.health.windowFailures.Add(1)
		e.logger.Debug("Active window query failed", "err", err)
		return
	}
	if e.ownTitle != "" && win.Title == e.ownTitle {
		e.health.ownWindowSkips.Add(1)
		return
	}

	for _, button := range e.state.ClickMode().Buttons() {
		if !e.state.Held(button) {
			continue
		}
		if !e.click(ctx, win, button) {
			return
		}
	}
}

func (e *Engine) click(ctx context.Context, target Window, button Button) bool {
	e.guard.Begin()
	defer e.guard.End()

	if err := e.clicker.Press(target, button); err != nil {
		e.health.clickFailures.Add(1)
		e.logger.Warn("Synthetic press failed", "button", button, "err", err)
		return true
	}
	completed := e.sleep(ctx, e.clickHold)
	if err := e.clicker.Release(target, button); err != nil {
		e.health.clickFailures.Add(1)
		e.logger.Warn("Synthetic release failed", "button", button, "err", err)
		return completed
	}
	e.health.clicks.Add(1)
	return completed
}

// DrawCPS picks uniformly from [min, max]. When min >= max it returns min.
func DrawCPS(rng *rand.Rand, lo, hi uint32) uint32 {
	if lo >= hi {
		return lo
	}
	return lo + uint32(rng.Uint64N(uint64(hi-lo)+1))
}

// CycleDelay is floor(1000/cps) ms minus overhead, never negative.
// A cps of zero is treated as one.
func CycleDelay(cps uint32, overhead time.Duration) time.Duration {
	if cps == 0 {
		cps = 1
	}
	cycle := time.Duration(1000/cps) * time.Millisecond
	if cycle <= overhead {
		return 0
	}
	return cycle - overhead
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
