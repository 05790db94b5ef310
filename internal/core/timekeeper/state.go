package timekeeper

import (
	"math"
	"time"

	"tomata/internal/core/model"
)

// DefaultEndingAlertWindow is how close to the end of a period the ending alert fires.
const DefaultEndingAlertWindow = 5 * time.Second

const maxDuration = time.Duration(math.MaxInt64)

// Signals receives the side effects requested by State. Implementations must not block.
type Signals interface {
	PeriodActivated(period model.Period)
	PeriodEnding(period model.Period, remaining time.Duration, volume float64)
}

// StateOptions configures a State.
type StateOptions struct {
	// EndingAlertWindow of zero disables the ending alert. Negative uses the default.
	EndingAlertWindow time.Duration
	Signals           Signals
}

// State is the pomodoro state machine. The zero value is not usable; use NewState.
type State struct {
	settings            model.Settings
	elapsed             time.Duration
	period              model.Period
	paused              bool
	finished            bool
	shortBreaksFinished int
	endingAlertWindow   time.Duration
	signals             Signals
}

// NewState returns a paused work period with nothing elapsed.
func NewState(settings model.Settings, options StateOptions) State {
	if options.EndingAlertWindow < 0 {
		options.EndingAlertWindow = DefaultEndingAlertWindow
	}
	return State{
		settings:          settings,
		period:            model.PeriodWork,
		paused:            true,
		endingAlertWindow: options.EndingAlertWindow,
		signals:           options.Signals,
	}
}

// Settings returns the active settings snapshot.
func (state State) Settings() model.Settings { return state.settings }

// Elapsed returns the time spent in the current period.
func (state State) Elapsed() time.Duration { return state.elapsed }

// Period returns the current period.
func (state State) Period() model.Period { return state.period }

// IsPaused reports whether the stopwatch is frozen.
func (state State) IsPaused() bool { return state.paused }

// IsFinished reports whether the current period has run its full length.
func (state State) IsFinished() bool { return state.finished }

// ShortBreaksFinished returns the short breaks completed since the last long break.
func (state State) ShortBreaksFinished() int { return state.shortBreaksFinished }

// SetSettings replaces the settings snapshot. The finished flag is
// recomputed on the next elapsed time increase. Lowering the short break
// count below the breaks already taken makes the next break a long one.
func (state *State) SetSettings(settings model.Settings) {
	state.settings = settings
	if state.shortBreaksFinished > settings.ShortBreaksNumber {
		state.shortBreaksFinished = settings.ShortBreaksNumber
	}
}

// SetSignals replaces the signal receiver.
func (state *State) SetSignals(signals Signals) {
	state.signals = signals
}

// Start resumes the stopwatch.
func (state *State) Start() {
	state.paused = false
}

// Pause freezes the stopwatch.
func (state *State) Pause() {
	state.paused = true
}

// Reset restarts the current period from zero.
func (state *State) Reset() {
	state.ActivatePeriod(state.period)
}

// ActivatePeriod enters the period from zero. Every period change goes through here.
func (state *State) ActivatePeriod(period model.Period) {
	state.period = period
	state.elapsed = 0
	state.finished = false
	state.paused = !state.settings.NextPeriodStartsAutomatically
	if period == model.PeriodLongBreak {
		state.shortBreaksFinished = 0
	}

	if state.signals != nil {
		state.signals.PeriodActivated(period)
	}
}

// IncreaseElapsedTime advances the stopwatch by delta and recomputes the finished flag.
func (state *State) IncreaseElapsedTime(delta time.Duration) {
	if remaining := state.RemainingTime(); state.isEnding(remaining) {
		state.signals.PeriodEnding(state.period, remaining, state.settings.BeepVolume)
	}

	if delta > 0 {
		if state.elapsed > maxDuration-delta {
			state.elapsed = maxDuration
		} else {
			state.elapsed += delta
		}
	}
	state.finished = state.elapsed >= state.settings.DurationFor(state.period)
}

// CycleToNextPeriod moves on from the current period.
func (state *State) CycleToNextPeriod() {
	switch state.period {
	case model.PeriodShortBreak:
		state.shortBreaksFinished++
		state.ActivatePeriod(model.PeriodWork)
	case model.PeriodLongBreak:
		state.shortBreaksFinished = 0
		state.ActivatePeriod(model.PeriodWork)
	default:
		switch {
		case state.isLongBreakNext():
			state.ActivatePeriod(model.PeriodLongBreak)
		case state.settings.ShortBreaksNumber > 0:
			state.ActivatePeriod(model.PeriodShortBreak)
		default:
			state.ActivatePeriod(model.PeriodWork)
		}
	}
}

// RemainingTime returns the time left in the current period, never negative.
func (state State) RemainingTime() time.Duration {
	total := state.settings.DurationFor(state.period)
	if state.elapsed >= total {
		return 0
	}
	return total - state.elapsed
}

// Progress returns the elapsed fraction of the current period in [0, 1].
func (state State) Progress() float64 {
	total := state.settings.DurationFor(state.period)
	if total <= 0 {
		return 1
	}
	progress := float64(state.elapsed) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (state State) isLongBreakNext() bool {
	return state.shortBreaksFinished == state.settings.ShortBreaksNumber &&
		state.settings.LongBreaksIncluded
}

func (state State) isEnding(remaining time.Duration) bool {
	return state.signals != nil &&
		state.settings.PeriodEndingSoundEnabled &&
		remaining > 0 &&
		remaining <= state.endingAlertWindow
}
