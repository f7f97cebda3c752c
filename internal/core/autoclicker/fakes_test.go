package autoclicker

import (
	"context"
	"sync"
	"time"
)

type clickEvent struct {
	target Window
	button Button
	down   bool
}

type recordingClicker struct {
	mu      sync.Mutex
	events  []clickEvent
	failFor map[Button]error
}

func (r *recordingClicker) Press(target Window, button Button) error {
	return r.record(target, button, true)
}

func (r *recordingClicker) Release(target Window, button Button) error {
	return r.record(target, button, false)
}

func (r *recordingClicker) record(target Window, button Button, down bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failFor[button]; err != nil {
		return err
	}
	r.events = append(r.events, clickEvent{target: target, button: button, down: down})
	return nil
}

func (r *recordingClicker) snapshot() []clickEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]clickEvent, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recordingClicker) pressed(button Button) int {
	n := 0
	for _, ev := range r.snapshot() {
		if ev.down && ev.button == button {
			n++
		}
	}
	return n
}

type staticWindows struct {
	mu  sync.Mutex
	win Window
	err error
}

func (s *staticWindows) ActiveWindow() (Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.win, s.err
}

func (s *staticWindows) set(win Window, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.win = win
	s.err = err
}

// scriptedInput replays fn against the observer and then blocks until ctx is done.
type scriptedInput struct {
	fn  func(o *Observer)
	err error
}

func (s *scriptedInput) Run(ctx context.Context, o *Observer) error {
	if s.err != nil {
		return s.err
	}
	o.Ready()
	if s.fn != nil {
		s.fn(o)
	}
	<-ctx.Done()
	return nil
}

// failingInput reports fn's input and then fails as if the device vanished.
type failingInput struct {
	fn  func(o *Observer)
	err error
}

func (f *failingInput) Run(_ context.Context, o *Observer) error {
	o.Ready()
	if f.fn != nil {
		f.fn(o)
	}
	return f.err
}

type recordingSleeper struct {
	mu    sync.Mutex
	slept []time.Duration
}

func (r *recordingSleeper) sleep(ctx context.Context, d time.Duration) bool {
	r.mu.Lock()
	r.slept = append(r.slept, d)
	r.mu.Unlock()
	return ctx.Err() == nil
}

func (r *recordingSleeper) durations() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]time.Duration, len(r.slept))
	copy(out, r.slept)
	return out
}
