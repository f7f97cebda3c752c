package autoclicker

import (
	"sync"
	"sync/atomic"
	"time"
)

type ObserverPhase string

const (
	PhaseStarting ObserverPhase = "starting"
	PhaseRunning  ObserverPhase = "running"
	PhaseFailed   ObserverPhase = "failed"
	PhaseStopped  ObserverPhase = "stopped"
)

// Health collects what would otherwise only be visible in logs.
type Health struct {
	mu            sync.Mutex
	observerPhase ObserverPhase
	observerErr   string

	cycles         atomic.Uint64
	clicks         atomic.Uint64
	clickFailures  atomic.Uint64
	windowFailures atomic.Uint64
	ownWindowSkips atomic.Uint64
	rateSaturated  atomic.Bool
	lastCPS        atomic.Uint32
	lastDelay      atomic.Int64
}

func (h *Health) setObserverPhase(phase ObserverPhase, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.observerPhase = phase
	if err != nil {
		h.observerErr = err.Error()
	}
}

type HealthSnapshot struct {
	ObserverPhase  ObserverPhase `json:"observer_phase"`
	ObserverError  string        `json:"observer_error,omitempty"`
	Cycles         uint64        `json:"cycles"`
	Clicks         uint64        `json:"clicks"`
	ClickFailures  uint64        `json:"click_failures"`
	WindowFailures uint64        `json:"window_failures"`
	OwnWindowSkips uint64        `json:"own_window_skips"`
	RateSaturated  bool          `json:"rate_saturated"`
	LastCPS        uint32        `json:"last_cps"`
	LastDelay      time.Duration `json:"last_delay_ns"`
}

func (h *Health) Snapshot() HealthSnapshot {
	h.mu.Lock()
	phase := h.observerPhase
	errText := h.observerErr
	h.mu.Unlock()
	if phase == "" {
		phase = PhaseStarting
	}
	return HealthSnapshot{
		ObserverPhase:  phase,
		ObserverError:  errText,
		Cycles:         h.cycles.Load(),
		Clicks:         h.clicks.Load(),
		ClickFailures:  h.clickFailures.Load(),
		WindowFailures: h.windowFailures.Load(),
		OwnWindowSkips: h.ownWindowSkips.Load(),
		RateSaturated:  h.rateSaturated.Load(),
		LastCPS:        h.lastCPS.Load(),
		LastDelay:      time.Duration(h.lastDelay.Load()),
	}
}

// Healthy reports whether input observation is working.
func (s HealthSnapshot) Healthy() bool {
	return s.ObserverPhase == PhaseRunning
}
