// Package timerview builds the main timer window content.
package timerview

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"tomata/internal/core/model"
	"tomata/internal/core/timekeeper"
	"tomata/internal/ui/display"
)

// Controller is the part of the time keeper the view drives.
type Controller interface {
	Snapshot() timekeeper.State
	TogglePause() bool
	Reset()
	ActivatePeriod(period model.Period)
	Skip()
}

var (
	workColor  = color.NRGBA{R: 226, G: 65, B: 47, A: 255}
	breakColor = color.NRGBA{R: 76, G: 175, B: 80, A: 255}
	pauseColor = color.NRGBA{R: 140, G: 140, B: 140, A: 255}
)

// View shows the remaining time of the current period with its controls.
// All methods must run on the fyne goroutine.
type View struct {
	keeper        Controller
	clock         *canvas.Text
	periodLabel   *widget.Label
	progress      *widget.ProgressBar
	pauseButton   *widget.Button
	resetButton   *widget.Button
	skipButton    *widget.Button
	settings      *widget.Button
	periodButtons map[model.Period]*widget.Button
	content       fyne.CanvasObject
}

// New creates the view. onSettings is called by the Settings button.
func New(keeper Controller, onSettings func()) *View {
	view := &View{
		keeper:        keeper,
		periodButtons: make(map[model.Period]*widget.Button),
	}

	view.clock = canvas.NewText(display.FormatClock(0), workColor)
	view.clock.Alignment = fyne.TextAlignCenter
	view.clock.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.clock.TextSize = 48

	view.periodLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	view.progress = widget.NewProgressBar()

	view.pauseButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		view.keeper.TogglePause()
		view.Refresh()
	})
	view.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		view.keeper.Reset()
		view.Refresh()
	})
	view.skipButton = widget.NewButtonWithIcon("Skip", theme.MediaSkipNextIcon(), func() {
		view.keeper.Skip()
		view.Refresh()
	})
	view.settings = widget.NewButtonWithIcon("Settings", theme.SettingsIcon(), func() {
		if onSettings != nil {
			onSettings()
		}
	})

	periods := container.NewGridWithColumns(len(model.Periods()))
	for _, period := range model.Periods() {
		button := widget.NewButton(display.PeriodLabel(period), func() {
			view.keeper.ActivatePeriod(period)
			view.Refresh()
		})
		view.periodButtons[period] = button
		periods.Add(button)
	}

	controls := container.NewHBox(
		layout.NewSpacer(),
		view.pauseButton,
		view.resetButton,
		view.skipButton,
		layout.NewSpacer(),
	)

	view.content = container.NewVBox(
		periods,
		view.periodLabel,
		view.clock,
		view.progress,
		controls,
		container.NewHBox(layout.NewSpacer(), view.settings),
	)

	view.Refresh()
	return view
}

// Content returns the root canvas object.
func (view *View) Content() fyne.CanvasObject {
	return view.content
}

// Refresh reads the keeper state and redraws every widget.
func (view *View) Refresh() {
	state := view.keeper.Snapshot()
	period := state.Period()
	paused := state.IsPaused()

	view.clock.Text = display.FormatClock(state.RemainingTime())
	switch {
	case paused:
		view.clock.Color = pauseColor
	case period.IsBreak():
		view.clock.Color = breakColor
	default:
		view.clock.Color = workColor
	}
	view.clock.Refresh()

	label := display.PeriodLabel(period)
	if paused {
		label += " (paused)"
	}
	view.periodLabel.SetText(label)
	view.progress.SetValue(state.Progress())

	if paused {
		view.pauseButton.SetText("Start")
		view.pauseButton.SetIcon(theme.MediaPlayIcon())
	} else {
		view.pauseButton.SetText("Pause")
		view.pauseButton.SetIcon(theme.MediaPauseIcon())
	}

	for candidate, button := range view.periodButtons {
		importance := widget.MediumImportance
		if candidate == period {
			importance = widget.HighImportance
		}
		if button.Importance != importance {
			button.Importance = importance
			button.Refresh()
		}
	}
}

// ClockText is the remaining time currently on screen.
func (view *View) ClockText() string {
	return view.clock.Text
}
