package autoclicker

import "sync/atomic"

// HotkeyLatch turns key transitions into one toggle per press/release gesture.
// Repeated presses while the key is already down are ignored.
type HotkeyLatch struct {
	pressed atomic.Bool
}

// Press records a key-down. It reports whether this started a new gesture.
func (l *HotkeyLatch) Press() bool {
	return l.pressed.CompareAndSwap(false, true)
}

// Release records a key-up. It reports whether a gesture completed.
func (l *HotkeyLatch) Release() bool {
	return l.pressed.CompareAndSwap(true, false)
}

// Sample feeds a level-triggered reading and reports a completed gesture.
func (l *HotkeyLatch) Sample(down bool) bool {
	if down {
		l.Press()
		return false
	}
	return l.Release()
}

func (l *HotkeyLatch) Reset() { l.pressed.Store(false) }

// InjectionGuard counts synthetic clicks in flight so backends that cannot
// tell injected input apart can discard samples taken meanwhile.
type InjectionGuard struct {
	inFlight atomic.Int32
}

func (g *InjectionGuard) Begin()       { g.inFlight.Add(1) }
func (g *InjectionGuard) End()         { g.inFlight.Add(-1) }
func (g *InjectionGuard) Active() bool { return g.inFlight.Load() > 0 }

// Observer is the sink input backends report genuine input to.
type Observer struct {
	state  *State
	health *Health
	logger Logger
	guard  *InjectionGuard
	hotkey HotkeyLatch
}

func NewObserver(state *State, health *Health, guard *InjectionGuard, logger Logger) *Observer {
	if logger == nil {
		logger = NopLogger()
	}
	if health == nil {
		health = &Health{}
	}
	if guard == nil {
		guard = &InjectionGuard{}
	}
	return &Observer{state: state, health: health, logger: logger, guard: guard}
}

// Guard exposes the injection guard shared with the click synthesizer.
func (o *Observer) Guard() *InjectionGuard { return o.guard }

// Logger is the logger backends should report through.
func (o *Observer) Logger() Logger { return o.logger }

// Ready marks the backend as observing.
func (o *Observer) Ready() {
	o.health.setObserverPhase(PhaseRunning, nil)
}

func (o *Observer) ButtonDown(button Button) { o.state.SetHeld(button, true) }
func (o *Observer) ButtonUp(button Button)   { o.state.SetHeld(button, false) }

// ButtonState records a polled reading. Samples taken while a synthetic click
// is in flight are discarded.
func (o *Observer) ButtonState(left, right bool) {
	if o.guard.Active() {
		return
	}
	o.state.SetHeld(ButtonLeft, left)
	o.state.SetHeld(ButtonRight, right)
}

func (o *Observer) HotkeyDown() { o.hotkey.Press() }

func (o *Observer) HotkeyUp() {
	if o.hotkey.Release() {
		o.toggle()
	}
}

// HotkeySample records a polled hotkey reading.
func (o *Observer) HotkeySample(down bool) {
	if o.hotkey.Sample(down) {
		o.toggle()
	}
}

func (o *Observer) toggle() {
	running := o.state.ToggleRunning()
	if !running {
		o.state.ReleaseHeld()
	}
	o.logger.Info("Hotkey toggled", "running", running)
}
