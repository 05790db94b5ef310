// Package notify sends desktop notifications when a period starts.
package notify

import (
	"fyne.io/fyne/v2"

	"tomata/internal/core/model"
)

// Message returns the notification title and body for a period.
func Message(period model.Period) (string, string) {
	switch period {
	case model.PeriodWork:
		return "Work period", "Time to concentrate on your task."
	case model.PeriodShortBreak:
		return "Short break", "Stand up, stretch and rest your eyes for a moment."
	case model.PeriodLongBreak:
		return "Long break", "Well done. Take a proper rest before the next round."
	}
	return "Tomata", string(period)
}

// Desktop delivers notifications through the fyne app.
type Desktop struct {
	app fyne.App
}

// NewDesktop returns a notifier bound to app.
func NewDesktop(app fyne.App) *Desktop {
	return &Desktop{app: app}
}

// NotifyPeriod implements timekeeper.Notifier.
func (desktop *Desktop) NotifyPeriod(period model.Period) {
	title, body := Message(period)
	notification := fyne.NewNotification(title, body)
	fyne.Do(func() {
		desktop.app.SendNotification(notification)
	})
}
