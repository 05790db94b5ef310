package model

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidSettings indicates a settings snapshot violates its invariants.
var ErrInvalidSettings = errors.New("invalid settings")

const (
	DefaultWorkPeriod        = 25 * time.Minute
	DefaultShortBreakPeriod  = 5 * time.Minute
	DefaultLongBreakPeriod   = 8 * time.Minute
	DefaultShortBreaksNumber = 3
	DefaultBeepVolume        = 0.5
)

const maxDuration = time.Duration(math.MaxInt64)

// Settings is the user-adjustable configuration of the timer.
// Mutators return an adjusted copy and leave the receiver untouched.
type Settings struct {
	WorkPeriod       time.Duration
	ShortBreakPeriod time.Duration
	LongBreakPeriod  time.Duration

	// ShortBreaksNumber is how many short breaks are taken before a long one.
	ShortBreaksNumber int

	LongBreaksIncluded            bool
	NextPeriodStartsAutomatically bool
	SystemNotificationsEnabled    bool
	PeriodEndingSoundEnabled      bool

	// BeepVolume is a 0..1 gain; it is stored as given.
	BeepVolume float64
}

// DefaultSettings returns the settings used when nothing was persisted.
func DefaultSettings() Settings {
	return Settings{
		WorkPeriod:                    DefaultWorkPeriod,
		ShortBreakPeriod:              DefaultShortBreakPeriod,
		LongBreakPeriod:               DefaultLongBreakPeriod,
		ShortBreaksNumber:             DefaultShortBreaksNumber,
		LongBreaksIncluded:            true,
		NextPeriodStartsAutomatically: true,
		SystemNotificationsEnabled:    true,
		PeriodEndingSoundEnabled:      true,
		BeepVolume:                    DefaultBeepVolume,
	}
}

// DurationFor returns the configured length of the period.
func (settings Settings) DurationFor(period Period) time.Duration {
	switch period {
	case PeriodWork:
		return settings.WorkPeriod
	case PeriodShortBreak:
		return settings.ShortBreakPeriod
	case PeriodLongBreak:
		return settings.LongBreakPeriod
	}
	return 0
}

// WithDuration returns a copy with the period length replaced.
// Negative values are stored as zero.
func (settings Settings) WithDuration(period Period, duration time.Duration) Settings {
	if duration < 0 {
		duration = 0
	}
	switch period {
	case PeriodWork:
		settings.WorkPeriod = duration
	case PeriodShortBreak:
		settings.ShortBreakPeriod = duration
	case PeriodLongBreak:
		settings.LongBreakPeriod = duration
	}
	return settings
}

// IncreaseDuration lengthens the period by delta, saturating instead of overflowing.
func (settings Settings) IncreaseDuration(period Period, delta time.Duration) Settings {
	if delta <= 0 {
		return settings
	}
	current := settings.DurationFor(period)
	if current > maxDuration-delta {
		return settings.WithDuration(period, maxDuration)
	}
	return settings.WithDuration(period, current+delta)
}

// DecreaseDuration shortens the period by delta, clamping at zero.
func (settings Settings) DecreaseDuration(period Period, delta time.Duration) Settings {
	if delta <= 0 {
		return settings
	}
	current := settings.DurationFor(period)
	if delta >= current {
		return settings.WithDuration(period, 0)
	}
	return settings.WithDuration(period, current-delta)
}

// IncreaseShortBreaksNumber adds n short breaks before each long break.
func (settings Settings) IncreaseShortBreaksNumber(n int) Settings {
	if n <= 0 {
		return settings
	}
	if settings.ShortBreaksNumber > math.MaxInt-n {
		settings.ShortBreaksNumber = math.MaxInt
		return settings
	}
	settings.ShortBreaksNumber += n
	return settings
}

// DecreaseShortBreaksNumber removes n short breaks, clamping at zero.
func (settings Settings) DecreaseShortBreaksNumber(n int) Settings {
	if n <= 0 {
		return settings
	}
	if n >= settings.ShortBreaksNumber {
		settings.ShortBreaksNumber = 0
		return settings
	}
	settings.ShortBreaksNumber -= n
	return settings
}

// SetBeepVolume stores the volume without interpreting it.
func (settings Settings) SetBeepVolume(volume float64) Settings {
	settings.BeepVolume = volume
	return settings
}

// Validate reports the first field that breaks the non-negative invariants.
func (settings Settings) Validate() error {
	for _, period := range Periods() {
		if settings.DurationFor(period) < 0 {
			return fmt.Errorf("%w: %s duration is negative", ErrInvalidSettings, period)
		}
	}
	if settings.ShortBreaksNumber < 0 {
		return fmt.Errorf("%w: short breaks number is negative", ErrInvalidSettings)
	}
	if math.IsNaN(settings.BeepVolume) {
		return fmt.Errorf("%w: beep volume is not a number", ErrInvalidSettings)
	}
	return nil
}
