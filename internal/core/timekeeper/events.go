package timekeeper

import (
	"time"

	"tomata/internal/core/model"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventPeriodActivated EventType = "period_activated"
	EventPeriodEnding    EventType = "period_ending"
	EventProgress        EventType = "progress"
	EventPauseChange     EventType = "pause_change"
	EventSettingsChange  EventType = "settings_change"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type      EventType
	Period    model.Period
	Paused    bool
	Remaining time.Duration
	Progress  float64
	At        time.Time
}
