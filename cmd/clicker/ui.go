package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clicker/internal/config"
	"clicker/internal/core/autoclicker"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const uiRefreshInterval = 100 * time.Millisecond

var modeOptions = []string{"Left", "Right", "Both"}

// runGUI shows the control window until it is closed or ctx is done. The
// window title doubles as the own-window marker the engine skips.
func runGUI(ctx context.Context, cfg config.Config, svc *autoclicker.Service, panel *logPanel) error {
	fApp := app.New()

	window := fApp.NewWindow(cfg.Clicker.WindowTitle)
	window.Resize(fyne.NewSize(420, 360))
	window.CenterOnScreen()

	bounds := newCPSBounds(svc.MinCPS(), svc.MaxCPS())

	minSlider := widget.NewSlider(0, 1)
	minSlider.Step = 1
	maxSlider := widget.NewSlider(0, 1)
	maxSlider.Step = 1

	minValue := widget.NewLabel("")
	maxValue := widget.NewLabel("")
	minValue.Alignment = fyne.TextAlignTrailing
	maxValue.Alignment = fyne.TextAlignTrailing
	minValue.TextStyle = fyne.TextStyle{Bold: true}
	maxValue.TextStyle = fyne.TextStyle{Bold: true}

	// applyRanges re-derives each slider's range from the other's value so
	// min stays strictly below max.
	applyRanges := func(minCPS, maxCPS uint32) {
		lo, hi := bounds.minRange(maxCPS)
		minSlider.Min, minSlider.Max = float64(lo), float64(hi)
		minSlider.Value = float64(minCPS)
		minSlider.Refresh()

		lo, hi = bounds.maxRange(minCPS)
		maxSlider.Min, maxSlider.Max = float64(lo), float64(hi)
		maxSlider.Value = float64(maxCPS)
		maxSlider.Refresh()

		minValue.SetText(fmt.Sprintf("%d", minCPS))
		maxValue.SetText(fmt.Sprintf("%d", maxCPS))
	}
	applyRanges(svc.MinCPS(), svc.MaxCPS())

	minSlider.OnChanged = func(v float64) {
		minCPS := uint32(v)
		if minCPS == svc.MinCPS() {
			return
		}
		svc.SetMinCPS(minCPS)
		applyRanges(minCPS, svc.MaxCPS())
	}
	maxSlider.OnChanged = func(v float64) {
		maxCPS := uint32(v)
		if maxCPS == svc.MaxCPS() {
			return
		}
		svc.SetMaxCPS(maxCPS)
		applyRanges(svc.MinCPS(), maxCPS)
	}

	modeRadio := widget.NewRadioGroup(modeOptions, func(selected string) {
		if selected == "" {
			return
		}
		mode, err := autoclicker.ParseClickMode(selected)
		if err != nil {
			return
		}
		svc.SetClickMode(mode)
	})
	modeRadio.Horizontal = true
	modeRadio.Required = true
	modeRadio.SetSelected(modeLabel(svc.ClickMode().String()))

	toggleBtn := widget.NewButton(toggleButtonLabel(svc.IsRunning()), func() {
		svc.ToggleRunning()
	})
	toggleBtn.Importance = widget.HighImportance

	statusLabel := widget.NewLabel("")
	statusLabel.TextStyle = fyne.TextStyle{Bold: true}
	detailLabel := widget.NewLabel("")
	hotkeyLabel := widget.NewLabel(fmt.Sprintf("Hotkey: %s", cfg.Input.Hotkey))

	refresh := func() {
		st := svc.Status()
		lines := statusLines(st)
		statusLabel.SetText(lines[0])
		detailLabel.SetText(strings.Join(lines[1:], "\n"))
		toggleBtn.SetText(toggleButtonLabel(st.State.Running))

		if uint32(minSlider.Value) != st.State.MinCPS || uint32(maxSlider.Value) != st.State.MaxCPS {
			applyRanges(st.State.MinCPS, st.State.MaxCPS)
		}
		if label := modeLabel(st.State.Mode); modeRadio.Selected != label {
			modeRadio.SetSelected(label)
		}
	}
	refresh()

	newSliderControl := func(label string, value *widget.Label, slider *widget.Slider) fyne.CanvasObject {
		title := widget.NewLabel(label)
		title.TextStyle = fyne.TextStyle{Bold: true}
		head := container.NewBorder(nil, nil, title, value, nil)
		return container.NewVBox(head, slider)
	}

	rateCard := widget.NewCard("Rate", "", container.NewVBox(
		newSliderControl("Min CPS", minValue, minSlider),
		newSliderControl("Max CPS", maxValue, maxSlider),
	))
	modeCard := widget.NewCard("Mode", "", modeRadio)
	statusCard := widget.NewCard("Status", "", container.NewVBox(statusLabel, detailLabel, hotkeyLabel))

	mainPanel := container.NewPadded(container.NewVBox(
		rateCard,
		modeCard,
		toggleBtn,
		statusCard,
	))

	var rootContent fyne.CanvasObject = mainPanel
	if panel != nil {
		logGrid := widget.NewTextGrid()
		logGrid.SetText(strings.Join(panel.Lines(), "\n"))
		logScroll := container.NewVScroll(logGrid)
		logScroll.SetMinSize(fyne.NewSize(0, 150))
		panel.OnChange(func(text string) {
			fyne.Do(func() {
				logGrid.SetText(text)
				logScroll.ScrollToBottom()
			})
		})
		defer panel.OnChange(nil)

		split := container.NewVSplit(mainPanel, widget.NewCard("Logs", "", logScroll))
		split.SetOffset(0.7)
		rootContent = split
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(uiRefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				fyne.Do(fApp.Quit)
				return
			case <-ticker.C:
				fyne.Do(refresh)
			}
		}
	}()

	window.SetCloseIntercept(fApp.Quit)
	window.SetContent(rootContent)
	window.ShowAndRun()
	return nil
}
