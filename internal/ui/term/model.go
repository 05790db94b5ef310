// Package term is a terminal frontend for the timer built on Bubble Tea.
package term

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"tomata/internal/core/model"
	"tomata/internal/core/timekeeper"
	"tomata/internal/ui/display"
)

// Options configures the terminal model.
type Options struct {
	Settings          model.Settings
	TickInterval      time.Duration
	EndingAlertWindow time.Duration
	// Alerter plays the period-ending sound; nil stays silent.
	Alerter timekeeper.Alerter
	// Save persists settings on ctrl+s; nil disables saving.
	Save func(model.Settings) error
}

// Model is the Bubble Tea model. It owns its State directly; every mutation
// happens inside Update.
type Model struct {
	state    timekeeper.State
	signals  *signals
	tick     time.Duration
	save     func(model.Settings) error
	keys     keyMap
	help     help.Model
	progress progress.Model
	styles   styles
	message  string
	showHelp bool
	width    int
}

// New creates a paused model on a work period.
func New(opts Options) Model {
	tick := opts.TickInterval
	if tick <= 0 {
		tick = time.Second
	}

	sigs := &signals{alerter: opts.Alerter}
	state := timekeeper.NewState(opts.Settings, timekeeper.StateOptions{
		EndingAlertWindow: opts.EndingAlertWindow,
		Signals:           sigs,
	})

	return Model{
		state:    state,
		signals:  sigs,
		tick:     tick,
		save:     opts.Save,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		styles:   defaultStyles(),
	}
}

// State returns a copy of the timer state.
func (m Model) State() timekeeper.State {
	return m.state
}

// Message returns the transient status line.
func (m Model) Message() string {
	return m.message
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = clampWidth(msg.Width - 4)
		return m, nil

	case tickMsg:
		m.handleTick()
		return m, tickCmd(m.tick)
	}

	return m, nil
}

func (m *Model) handleTick() {
	if !m.state.IsPaused() {
		m.state.IncreaseElapsedTime(m.tick)
	}
	if m.state.IsFinished() {
		m.state.CycleToNextPeriod()
	}
	m.takeSignals()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp && !key.Matches(msg, m.keys.Quit) {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.help.ShowAll = true

	case key.Matches(msg, m.keys.Toggle):
		if m.state.IsPaused() {
			m.state.Start()
		} else {
			m.state.Pause()
		}

	case key.Matches(msg, m.keys.Reset):
		m.state.Reset()

	case key.Matches(msg, m.keys.Skip):
		m.state.CycleToNextPeriod()

	case key.Matches(msg, m.keys.Work):
		m.state.ActivatePeriod(model.PeriodWork)

	case key.Matches(msg, m.keys.ShortBreak):
		m.state.ActivatePeriod(model.PeriodShortBreak)

	case key.Matches(msg, m.keys.LongBreak):
		m.state.ActivatePeriod(model.PeriodLongBreak)

	case key.Matches(msg, m.keys.Longer):
		m.applySettings(m.state.Settings().IncreaseDuration(m.state.Period(), time.Minute))

	case key.Matches(msg, m.keys.Shorter):
		m.applySettings(m.state.Settings().DecreaseDuration(m.state.Period(), time.Minute))

	case key.Matches(msg, m.keys.MoreBreaks):
		m.applySettings(m.state.Settings().IncreaseShortBreaksNumber(1))

	case key.Matches(msg, m.keys.FewerBreaks):
		m.applySettings(m.state.Settings().DecreaseShortBreaksNumber(1))

	case key.Matches(msg, m.keys.Save):
		m.saveSettings()
		return m, nil

	default:
		return m, nil
	}

	m.takeSignals()
	return m, nil
}

func (m *Model) applySettings(settings model.Settings) {
	m.state.SetSettings(settings)
	m.message = "Settings changed (ctrl+s to save)"
}

func (m *Model) saveSettings() {
	if m.save == nil {
		m.message = "Saving is disabled"
		return
	}
	if err := m.save(m.state.Settings()); err != nil {
		m.message = fmt.Sprintf("Save failed: %v", err)
		return
	}
	m.message = "Settings saved"
}

func (m *Model) takeSignals() {
	if period, ok := m.signals.takeActivated(); ok {
		m.message = display.PeriodLabel(period) + " started"
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.showHelp {
		return m.styles.Frame.Render(m.help.View(m.keys))
	}

	period := m.state.Period()
	paused := m.state.IsPaused()

	periodStyle := m.styles.Work
	switch {
	case paused:
		periodStyle = m.styles.Paused
	case period.IsBreak():
		periodStyle = m.styles.Break
	}

	label := display.PeriodLabel(period)
	if paused {
		label += " (paused)"
	}

	settings := m.state.Settings()
	counter := fmt.Sprintf("Short breaks %d/%d", m.state.ShortBreaksFinished(), settings.ShortBreaksNumber)
	if !settings.LongBreaksIncluded {
		counter += ", long breaks off"
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Tomata"))
	b.WriteString("\n\n")
	b.WriteString(periodStyle.Render(label))
	b.WriteString("\n")
	b.WriteString(m.styles.Clock.Render(display.FormatClock(m.state.RemainingTime())))
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(m.state.Progress()))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render(counter))
	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Message.Render(m.message))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))

	return m.styles.Frame.Render(b.String())
}

func clampWidth(width int) int {
	const maxWidth = 60
	if width > maxWidth {
		return maxWidth
	}
	if width < 10 {
		return 10
	}
	return width
}

// Messages

type tickMsg time.Time

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// signals collects State side effects between updates.
type signals struct {
	alerter   timekeeper.Alerter
	activated model.Period
	pending   bool
}

func (s *signals) PeriodActivated(period model.Period) {
	s.activated = period
	s.pending = true
}

func (s *signals) PeriodEnding(_ model.Period, _ time.Duration, volume float64) {
	if s.alerter != nil {
		s.alerter.RequestAlert(volume)
	}
}

func (s *signals) takeActivated() (model.Period, bool) {
	if !s.pending {
		return "", false
	}
	s.pending = false
	return s.activated, true
}
