package model

// Period identifies a phase of the pomodoro cycle.
type Period string

const (
	PeriodWork       Period = "work"
	PeriodShortBreak Period = "short_break"
	PeriodLongBreak  Period = "long_break"
)

// Periods lists every period in cycle order.
func Periods() []Period {
	return []Period{PeriodWork, PeriodShortBreak, PeriodLongBreak}
}

// IsBreak reports whether the period is a short or long break.
func (period Period) IsBreak() bool {
	return period == PeriodShortBreak || period == PeriodLongBreak
}

// Valid reports whether the period is one of the known periods.
func (period Period) Valid() bool {
	switch period {
	case PeriodWork, PeriodShortBreak, PeriodLongBreak:
		return true
	}
	return false
}
