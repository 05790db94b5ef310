package timekeeper

import (
	"sync"
	"time"

	"tomata/internal/core/model"
)

// Notifier announces a newly activated period to the user.
type Notifier interface {
	NotifyPeriod(period model.Period)
}

// Alerter plays the period-ending sound. RequestAlert must return immediately.
type Alerter interface {
	RequestAlert(volume float64)
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	// EndingAlertWindow follows StateOptions: zero disables, negative uses the default.
	EndingAlertWindow time.Duration
}

// TimeKeeper drives a State from a ticker and fans its changes out to observers.
type TimeKeeper struct {
	mu       sync.Mutex
	options  Config
	state    State
	notifier Notifier
	alerter  Alerter
	events   []chan Event
	stopCh   chan struct{}
	running  bool
	now      func() time.Time
}

// New creates a TimeKeeper holding a paused work period.
func New(settings model.Settings, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}

	keeper := &TimeKeeper{
		options: options,
		now:     time.Now,
	}
	keeper.state = NewState(settings, StateOptions{
		EndingAlertWindow: options.EndingAlertWindow,
		Signals:           keeperSignals{keeper: keeper},
	})
	return keeper
}

// SetNotifier injects the period notification sink.
func (keeper *TimeKeeper) SetNotifier(notifier Notifier) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.notifier = notifier
}

// SetAlerter injects the period-ending sound sink.
func (keeper *TimeKeeper) SetAlerter(alerter Alerter) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.alerter = alerter
}

// Subscribe registers a new observer channel. Slow observers miss events.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	keeper.events = append(keeper.events, ch)
	keeper.mu.Unlock()
	return ch
}

// Start launches the ticking loop.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	if keeper.running {
		keeper.mu.Unlock()
		return
	}
	keeper.running = true
	keeper.stopCh = make(chan struct{})
	stopCh := keeper.stopCh
	keeper.emitLocked(keeper.eventLocked(EventProgress))
	keeper.mu.Unlock()

	go keeper.run(stopCh)
}

// Stop terminates the ticking loop and closes observers.
func (keeper *TimeKeeper) Stop() {
	keeper.mu.Lock()
	if !keeper.running {
		keeper.mu.Unlock()
		return
	}
	close(keeper.stopCh)
	keeper.running = false
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Snapshot returns a detached copy of the current state.
func (keeper *TimeKeeper) Snapshot() State {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	snapshot := keeper.state
	snapshot.signals = nil
	return snapshot
}

// Settings returns the active settings.
func (keeper *TimeKeeper) Settings() model.Settings {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.state.Settings()
}

// UpdateSettings replaces the active settings snapshot.
func (keeper *TimeKeeper) UpdateSettings(settings model.Settings) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.state.SetSettings(settings)
	keeper.emitLocked(keeper.eventLocked(EventSettingsChange))
}

// Resume unfreezes the stopwatch.
func (keeper *TimeKeeper) Resume() {
	keeper.setPaused(false)
}

// Pause freezes the stopwatch.
func (keeper *TimeKeeper) Pause() {
	keeper.setPaused(true)
}

// TogglePause flips the pause flag and reports the new value.
func (keeper *TimeKeeper) TogglePause() bool {
	keeper.mu.Lock()
	paused := !keeper.state.IsPaused()
	keeper.mu.Unlock()
	keeper.setPaused(paused)
	return paused
}

// Reset restarts the current period.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.state.Reset()
	keeper.emitLocked(keeper.eventLocked(EventPeriodActivated))
}

// ActivatePeriod switches to the given period from zero.
func (keeper *TimeKeeper) ActivatePeriod(period model.Period) {
	if !period.Valid() {
		return
	}
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.state.ActivatePeriod(period)
	keeper.emitLocked(keeper.eventLocked(EventPeriodActivated))
}

// Skip ends the current period early and cycles to the next one.
func (keeper *TimeKeeper) Skip() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.state.CycleToNextPeriod()
	keeper.emitLocked(keeper.eventLocked(EventPeriodActivated))
}

func (keeper *TimeKeeper) setPaused(paused bool) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.state.IsPaused() == paused {
		return
	}
	if paused {
		keeper.state.Pause()
	} else {
		keeper.state.Start()
	}
	keeper.emitLocked(keeper.eventLocked(EventPauseChange))
}

func (keeper *TimeKeeper) run(stopCh <-chan struct{}) {
	ticker := time.NewTicker(keeper.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			keeper.tick()
		}
	}
}

// tick is one delivery of the tick source: advance unless paused, then
// cycle if the period is over.
func (keeper *TimeKeeper) tick() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	if !keeper.state.IsPaused() {
		keeper.state.IncreaseElapsedTime(keeper.options.TickInterval)
	}
	if keeper.state.IsFinished() {
		keeper.state.CycleToNextPeriod()
		keeper.emitLocked(keeper.eventLocked(EventPeriodActivated))
		return
	}
	if !keeper.state.IsPaused() {
		keeper.emitLocked(keeper.eventLocked(EventProgress))
	}
}

func (keeper *TimeKeeper) eventLocked(eventType EventType) Event {
	return Event{
		Type:      eventType,
		Period:    keeper.state.Period(),
		Paused:    keeper.state.IsPaused(),
		Remaining: keeper.state.RemainingTime(),
		Progress:  keeper.state.Progress(),
		At:        keeper.now(),
	}
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}

// keeperSignals forwards State side effects to the injected sinks. It runs
// with keeper.mu held.
type keeperSignals struct {
	keeper *TimeKeeper
}

func (signals keeperSignals) PeriodActivated(period model.Period) {
	keeper := signals.keeper
	if keeper.notifier != nil && keeper.state.Settings().SystemNotificationsEnabled {
		keeper.notifier.NotifyPeriod(period)
	}
}

func (signals keeperSignals) PeriodEnding(period model.Period, remaining time.Duration, volume float64) {
	keeper := signals.keeper
	if keeper.alerter != nil {
		keeper.alerter.RequestAlert(volume)
	}
	keeper.emitLocked(Event{
		Type:      EventPeriodEnding,
		Period:    period,
		Remaining: remaining,
		At:        keeper.now(),
	})
}
