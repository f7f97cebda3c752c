package main

import (
	"context"
	"fmt"
	"time"

	"clicker/internal/config"
	"clicker/internal/core/autoclicker"

	"github.com/gdamore/tcell/v2"
)

// tuiController is the part of the service the terminal keys drive.
type tuiController interface {
	MinCPS() uint32
	MaxCPS() uint32
	SetMinCPS(v uint32)
	SetMaxCPS(v uint32)
	SetClickMode(mode autoclicker.ClickMode)
	ToggleRunning()
}

var tuiHelp = []string{
	"<-/-> min cps   down/up max cps",
	"l/r/b mode      space start/stop   q quit",
}

// handleTUIKey applies one key press and reports whether the user asked to
// quit.
func handleTUIKey(ev *tcell.EventKey, ctrl tuiController, bounds cpsBounds) bool {
	switch ev.Key() {
	case tcell.KeyLeft:
		ctrl.SetMinCPS(bounds.stepMin(ctrl.MinCPS(), ctrl.MaxCPS(), -1))
	case tcell.KeyRight:
		ctrl.SetMinCPS(bounds.stepMin(ctrl.MinCPS(), ctrl.MaxCPS(), 1))
	case tcell.KeyDown:
		ctrl.SetMaxCPS(bounds.stepMax(ctrl.MinCPS(), ctrl.MaxCPS(), -1))
	case tcell.KeyUp:
		ctrl.SetMaxCPS(bounds.stepMax(ctrl.MinCPS(), ctrl.MaxCPS(), 1))
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'l', 'L':
			ctrl.SetClickMode(autoclicker.ClickModeLeft)
		case 'r', 'R':
			ctrl.SetClickMode(autoclicker.ClickModeRight)
		case 'b', 'B':
			ctrl.SetClickMode(autoclicker.ClickModeBoth)
		case ' ':
			ctrl.ToggleRunning()
		case 'q', 'Q':
			return true
		}
	}
	return false
}

func runTUI(ctx context.Context, cfg config.Config, svc *autoclicker.Service, panel *logPanel) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	bounds := newCPSBounds(svc.MinCPS(), svc.MaxCPS())

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(uiRefreshInterval)
	defer ticker.Stop()

	drawTUI(screen, cfg, svc.Status(), panel)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if handleTUIKey(ev, svc, bounds) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
		drawTUI(screen, cfg, svc.Status(), panel)
	}
}

func drawTUI(screen tcell.Screen, cfg config.Config, st autoclicker.Status, panel *logPanel) {
	screen.Clear()
	width, height := screen.Size()

	titleStyle := tcell.StyleDefault.Bold(true)
	textStyle := tcell.StyleDefault
	dimStyle := tcell.StyleDefault.Dim(true)

	y := 0
	drawText(screen, 1, y, width, titleStyle, cfg.Clicker.WindowTitle)
	y += 2

	for i, line := range statusLines(st) {
		style := textStyle
		if i == 0 {
			style = titleStyle
		}
		drawText(screen, 1, y, width, style, line)
		y++
	}
	drawText(screen, 1, y, width, textStyle, "Hotkey: "+cfg.Input.Hotkey)
	y += 2

	for _, line := range tuiHelp {
		drawText(screen, 1, y, width, dimStyle, line)
		y++
	}

	if panel != nil && y+2 < height {
		y++
		for x := 0; x < width; x++ {
			screen.SetContent(x, y, '─', nil, dimStyle)
		}
		y++
		lines := panel.Lines()
		if room := height - y; len(lines) > room {
			lines = lines[len(lines)-room:]
		}
		for _, line := range lines {
			drawText(screen, 1, y, width, dimStyle, line)
			y++
		}
	}
	screen.Show()
}

func drawText(screen tcell.Screen, x, y, width int, style tcell.Style, text string) {
	for _, ch := range text {
		if x >= width {
			return
		}
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
