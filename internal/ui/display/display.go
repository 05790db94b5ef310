// Package display formats timer values for every frontend.
package display

import (
	"fmt"
	"time"

	"tomata/internal/core/model"
)

// FormatClock renders d as HH:MM:SS, truncated to whole seconds.
// Negative durations render as zero.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// PeriodLabel is the human name of a period.
func PeriodLabel(period model.Period) string {
	switch period {
	case model.PeriodWork:
		return "Work"
	case model.PeriodShortBreak:
		return "Short break"
	case model.PeriodLongBreak:
		return "Long break"
	}
	return string(period)
}

// Status is the one-line summary shown in the tray and terminal header.
func Status(period model.Period, remaining time.Duration, paused bool) string {
	status := PeriodLabel(period) + " " + FormatClock(remaining)
	if paused {
		status += " (paused)"
	}
	return status
}
