package main

import (
	"fmt"

	"clicker/internal/core/autoclicker"
)

const (
	uiMinCPSFloor   uint32 = 5
	uiMaxCPSCeiling uint32 = 25
)

// cpsBounds is the outer range the control surfaces let the user move the
// rate within. The two bounds always keep min < max.
type cpsBounds struct {
	lo uint32
	hi uint32
}

// newCPSBounds widens the default 5..25 range to include configured values
// that fall outside it.
func newCPSBounds(minCPS, maxCPS uint32) cpsBounds {
	b := cpsBounds{lo: uiMinCPSFloor, hi: uiMaxCPSCeiling}
	if minCPS > 0 && minCPS < b.lo {
		b.lo = minCPS
	}
	if maxCPS > b.hi {
		b.hi = maxCPS
	}
	return b
}

// minRange is where min may move given the current max: [lo, max-1].
func (b cpsBounds) minRange(maxCPS uint32) (uint32, uint32) {
	hi := b.lo
	if maxCPS > b.lo {
		hi = maxCPS - 1
	}
	return b.lo, hi
}

// maxRange is where max may move given the current min: [min+1, hi].
func (b cpsBounds) maxRange(minCPS uint32) (uint32, uint32) {
	lo := minCPS + 1
	if lo > b.hi {
		lo = b.hi
	}
	return lo, b.hi
}

func (b cpsBounds) stepMin(minCPS, maxCPS uint32, delta int) uint32 {
	lo, hi := b.minRange(maxCPS)
	return clampStep(minCPS, delta, lo, hi)
}

func (b cpsBounds) stepMax(minCPS, maxCPS uint32, delta int) uint32 {
	lo, hi := b.maxRange(minCPS)
	return clampStep(maxCPS, delta, lo, hi)
}

func clampStep(v uint32, delta int, lo, hi uint32) uint32 {
	n := int64(v) + int64(delta)
	if n < int64(lo) {
		return lo
	}
	if n > int64(hi) {
		return hi
	}
	return uint32(n)
}

func runningLabel(running bool) string {
	if running {
		return "Running"
	}
	return "Stopped"
}

func toggleButtonLabel(running bool) string {
	if running {
		return "Stop"
	}
	return "Start"
}

func modeLabel(mode string) string {
	switch mode {
	case "right":
		return "Right"
	case "both":
		return "Both"
	default:
		return "Left"
	}
}

// statusLines renders a status snapshot for the GUI labels and the TUI.
func statusLines(st autoclicker.Status) []string {
	lines := []string{
		fmt.Sprintf("Status: %s", runningLabel(st.State.Running)),
		fmt.Sprintf("Mode: %s", modeLabel(st.State.Mode)),
		fmt.Sprintf("CPS range: %d - %d", st.State.MinCPS, st.State.MaxCPS),
		fmt.Sprintf("Backend: %s (%s)", st.Backend, st.Health.ObserverPhase),
	}
	if st.Health.ObserverError != "" {
		lines = append(lines, "Input error: "+st.Health.ObserverError)
	}
	if st.Health.RateSaturated {
		lines = append(lines, fmt.Sprintf("Rate saturated at %d cps", st.Health.LastCPS))
	}
	return lines
}
