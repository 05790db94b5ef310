package preferences

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"tomata/internal/core/model"
	"tomata/internal/ui/display"
)

// Steps offered for every period duration.
var durationSteps = []time.Duration{time.Hour, time.Minute, time.Second}

type adjustKey struct {
	period model.Period
	delta  time.Duration
}

// Window handles the preferences UI. It edits a draft copy of the settings;
// nothing is applied until Save succeeds.
type Window struct {
	window         fyne.Window
	saved          model.Settings
	draft          model.Settings
	onSave         func(model.Settings) error
	onTry          func(volume float64)
	durationLabels map[model.Period]*widget.Label
	adjustButtons  map[adjustKey]*widget.Button
	countLabel     *widget.Label
	countUp        *widget.Button
	countDown      *widget.Button
	longBreaks     *widget.Check
	autoStart      *widget.Check
	notifications  *widget.Check
	endingSound    *widget.Check
	volume         *widget.Slider
	tryButton      *widget.Button
	saveButton     *widget.Button
	cancelButton   *widget.Button
}

// New creates a preferences window. onSave persists and applies the settings;
// its error is shown to the user. onTry plays the beep at the given volume.
func New(app fyne.App, settings model.Settings, onSave func(model.Settings) error, onTry func(float64)) *Window {
	prefs := &Window{
		window:         app.NewWindow("Tomata Settings"),
		saved:          settings,
		draft:          settings,
		onSave:         onSave,
		onTry:          onTry,
		durationLabels: make(map[model.Period]*widget.Label),
		adjustButtons:  make(map[adjustKey]*widget.Button),
	}

	durations := container.NewVBox(
		widget.NewLabelWithStyle("Durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for _, period := range model.Periods() {
		durations.Add(prefs.durationRow(period))
	}

	prefs.countLabel = widget.NewLabel("")
	prefs.countDown = widget.NewButton("-", func() {
		prefs.draft = prefs.draft.DecreaseShortBreaksNumber(1)
		prefs.refresh()
	})
	prefs.countUp = widget.NewButton("+", func() {
		prefs.draft = prefs.draft.IncreaseShortBreaksNumber(1)
		prefs.refresh()
	})

	prefs.longBreaks = widget.NewCheck("Include long breaks", func(checked bool) {
		prefs.draft.LongBreaksIncluded = checked
	})
	prefs.autoStart = widget.NewCheck("Start next period automatically", func(checked bool) {
		prefs.draft.NextPeriodStartsAutomatically = checked
	})
	prefs.notifications = widget.NewCheck("System notifications", func(checked bool) {
		prefs.draft.SystemNotificationsEnabled = checked
	})
	prefs.endingSound = widget.NewCheck("Beep before a period ends", func(checked bool) {
		prefs.draft.PeriodEndingSoundEnabled = checked
	})

	prefs.volume = widget.NewSlider(0, 1)
	prefs.volume.Step = 0.05
	prefs.volume.OnChanged = func(value float64) {
		prefs.draft = prefs.draft.SetBeepVolume(value)
	}
	prefs.tryButton = widget.NewButton("Try", func() {
		if prefs.onTry != nil {
			prefs.onTry(prefs.draft.BeepVolume)
		}
	})

	form := container.NewVBox(
		durations,
		widget.NewSeparator(),
		container.NewHBox(widget.NewLabel("Short breaks before a long one"), layout.NewSpacer(), prefs.countDown, prefs.countLabel, prefs.countUp),
		prefs.longBreaks,
		prefs.autoStart,
		prefs.notifications,
		prefs.endingSound,
		widget.NewLabel("Beep volume"),
		container.NewBorder(nil, nil, nil, prefs.tryButton, prefs.volume),
	)

	prefs.saveButton = widget.NewButton("Save", prefs.handleSave)
	prefs.saveButton.Importance = widget.HighImportance
	prefs.cancelButton = widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.saved)
		prefs.window.Hide()
	})
	buttons := container.NewHBox(prefs.saveButton, layout.NewSpacer(), prefs.cancelButton)

	prefs.window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	prefs.window.Resize(fyne.NewSize(520, 480))
	prefs.window.SetCloseIntercept(func() {
		prefs.UpdateSettings(prefs.saved)
		prefs.window.Hide()
	})

	prefs.UpdateSettings(settings)
	return prefs
}

func (prefs *Window) durationRow(period model.Period) fyne.CanvasObject {
	value := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Monospace: true})
	prefs.durationLabels[period] = value

	row := container.NewHBox(widget.NewLabel(display.PeriodLabel(period)), layout.NewSpacer())
	for _, step := range durationSteps {
		row.Add(prefs.adjustButton(period, -step))
	}
	row.Add(value)
	for i := len(durationSteps) - 1; i >= 0; i-- {
		row.Add(prefs.adjustButton(period, durationSteps[i]))
	}
	return row
}

func (prefs *Window) adjustButton(period model.Period, delta time.Duration) *widget.Button {
	button := widget.NewButton(stepLabel(delta), func() {
		if delta < 0 {
			prefs.draft = prefs.draft.DecreaseDuration(period, -delta)
		} else {
			prefs.draft = prefs.draft.IncreaseDuration(period, delta)
		}
		prefs.refresh()
	})
	prefs.adjustButtons[adjustKey{period: period, delta: delta}] = button
	return button
}

func stepLabel(delta time.Duration) string {
	sign := "+"
	if delta < 0 {
		sign = "-"
		delta = -delta
	}
	switch delta {
	case time.Hour:
		return sign + "1h"
	case time.Minute:
		return sign + "1m"
	case time.Second:
		return sign + "1s"
	}
	return sign + delta.String()
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Settings returns the draft currently shown in the window.
func (prefs *Window) Settings() model.Settings {
	return prefs.draft
}

// UpdateSettings replaces window values and the saved baseline.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.saved = settings
	prefs.draft = settings
	prefs.longBreaks.SetChecked(settings.LongBreaksIncluded)
	prefs.autoStart.SetChecked(settings.NextPeriodStartsAutomatically)
	prefs.notifications.SetChecked(settings.SystemNotificationsEnabled)
	prefs.endingSound.SetChecked(settings.PeriodEndingSoundEnabled)
	prefs.volume.SetValue(settings.BeepVolume)
	// The slider may clamp or snap; keep the stored volume as is.
	prefs.draft.BeepVolume = settings.BeepVolume
	prefs.refresh()
}

func (prefs *Window) refresh() {
	for period, label := range prefs.durationLabels {
		label.SetText(display.FormatClock(prefs.draft.DurationFor(period)))
	}
	prefs.countLabel.SetText(fmt.Sprintf("%d", prefs.draft.ShortBreaksNumber))
}

func (prefs *Window) handleSave() {
	settings := prefs.draft
	if prefs.onSave != nil {
		if err := prefs.onSave(settings); err != nil {
			dialog.ShowError(fmt.Errorf("save settings: %w", err), prefs.window)
			return
		}
	}
	prefs.saved = settings
	prefs.window.Hide()
}
