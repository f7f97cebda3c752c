package autoclicker

import "sync/atomic"

// State holds the flags shared by the observer, the engine and the control
// surface. Every field is independently atomic; readers may see updates to
// different fields in any order.
type State struct {
	minCPS    atomic.Uint32
	maxCPS    atomic.Uint32
	running   atomic.Bool
	mode      atomic.Uint32
	leftHeld  atomic.Bool
	rightHeld atomic.Bool
}

func NewState(minCPS, maxCPS uint32, mode ClickMode) *State {
	s := &State{}
	s.minCPS.Store(minCPS)
	s.maxCPS.Store(maxCPS)
	s.mode.Store(uint32(mode))
	return s
}

func DefaultState() *State {
	return NewState(DefaultMinCPS, DefaultMaxCPS, ClickModeLeft)
}

func (s *State) SetMinCPS(v uint32) { s.minCPS.Store(v) }
func (s *State) SetMaxCPS(v uint32) { s.maxCPS.Store(v) }
func (s *State) MinCPS() uint32     { return s.minCPS.Load() }
func (s *State) MaxCPS() uint32     { return s.maxCPS.Load() }

func (s *State) SetClickMode(mode ClickMode) { s.mode.Store(uint32(mode)) }

func (s *State) ClickMode() ClickMode {
	mode := ClickMode(s.mode.Load())
	if mode > ClickModeBoth {
		return ClickModeLeft
	}
	return mode
}

// ToggleRunning flips the running flag and returns the new value.
func (s *State) ToggleRunning() bool {
	for {
		cur := s.running.Load()
		if s.running.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}

func (s *State) IsRunning() bool { return s.running.Load() }

func (s *State) SetHeld(button Button, held bool) {
	if button == ButtonRight {
		s.rightHeld.Store(held)
		return
	}
	s.leftHeld.Store(held)
}

func (s *State) Held(button Button) bool {
	if button == ButtonRight {
		return s.rightHeld.Load()
	}
	return s.leftHeld.Load()
}

func (s *State) ReleaseHeld() {
	s.leftHeld.Store(false)
	s.rightHeld.Store(false)
}

// Snapshot is a point-in-time copy of State. Fields are loaded one at a time.
type Snapshot struct {
	MinCPS    uint32 `json:"min_cps"`
	MaxCPS    uint32 `json:"max_cps"`
	Running   bool   `json:"running"`
	Mode      string `json:"mode"`
	LeftHeld  bool   `json:"left_held"`
	RightHeld bool   `json:"right_held"`
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		MinCPS:    s.MinCPS(),
		MaxCPS:    s.MaxCPS(),
		Running:   s.IsRunning(),
		Mode:      s.ClickMode().String(),
		LeftHeld:  s.leftHeld.Load(),
		RightHeld: s.rightHeld.Load(),
	}
}
