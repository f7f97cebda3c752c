package status

import (
	"sync"
	"testing"
	"time"

	"clicker/internal/core/autoclicker"
)

type fakeController struct {
	mu    sync.Mutex
	state autoclicker.Snapshot
}

func newFakeController() *fakeController {
	return &fakeController{state: autoclicker.DefaultState().Snapshot()}
}

func (f *fakeController) SetMinCPS(v uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.MinCPS = v
}

func (f *fakeController) SetMaxCPS(v uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.MaxCPS = v
}

func (f *fakeController) SetClickMode(mode autoclicker.ClickMode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Mode = mode.String()
}

func (f *fakeController) ToggleRunning() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Running = !f.state.Running
}

func (f *fakeController) Status() autoclicker.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return autoclicker.Status{
		Backend: "fake",
		State:   f.state,
		Health:  autoclicker.HealthSnapshot{ObserverPhase: autoclicker.PhaseRunning},
	}
}

func waitUntil(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timeout: %s", msg)
}
