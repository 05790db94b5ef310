package term

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tomata/internal/core/model"
)

type fakeAlerter struct {
	volumes []float64
}

func (alerter *fakeAlerter) RequestAlert(volume float64) {
	alerter.volumes = append(alerter.volumes, volume)
}

func testSettings() model.Settings {
	settings := model.DefaultSettings()
	settings.WorkPeriod = 3 * time.Second
	settings.ShortBreakPeriod = 2 * time.Second
	settings.LongBreakPeriod = 2 * time.Second
	settings.ShortBreaksNumber = 1
	settings.SystemNotificationsEnabled = true
	settings.PeriodEndingSoundEnabled = true
	settings.BeepVolume = 0.3
	return settings
}

func newTestModel(opts Options) Model {
	if opts.Settings == (model.Settings{}) {
		opts.Settings = testSettings()
	}
	if opts.TickInterval == 0 {
		opts.TickInterval = time.Second
	}
	return New(opts)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return updated, cmd
}

func TestNew_StartsPausedOnWork(t *testing.T) {
	m := newTestModel(Options{})
	state := m.State()
	if state.Period() != model.PeriodWork || !state.IsPaused() {
		t.Fatalf("initial state period=%q paused=%v", state.Period(), state.IsPaused())
	}
	if m.Init() == nil {
		t.Fatalf("Init should schedule a tick")
	}
}

func TestToggle(t *testing.T) {
	m := newTestModel(Options{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.State().IsPaused() {
		t.Fatalf("space should start the timer")
	}
	m, _ = update(t, m, runes("p"))
	if !m.State().IsPaused() {
		t.Fatalf("p should pause the timer")
	}
}

func TestTick_PausedDoesNotAdvance(t *testing.T) {
	m := newTestModel(Options{})

	m, cmd := update(t, m, tickMsg(time.Now()))
	if cmd == nil {
		t.Fatalf("tick should schedule the next tick")
	}
	if got := m.State().Elapsed(); got != 0 {
		t.Fatalf("elapsed = %v, want 0", got)
	}
}

func TestTick_CyclesAndAlerts(t *testing.T) {
	alerter := &fakeAlerter{}
	m := newTestModel(Options{Alerter: alerter, EndingAlertWindow: time.Second})
	m, _ = update(t, m, runes("p"))

	for i := 0; i < 3; i++ {
		m, _ = update(t, m, tickMsg(time.Now()))
	}

	state := m.State()
	if state.Period() != model.PeriodShortBreak {
		t.Fatalf("period = %q, want short_break", state.Period())
	}
	if state.Elapsed() != 0 || state.IsPaused() {
		t.Fatalf("short break should start running from zero: %+v", state)
	}
	if len(alerter.volumes) != 1 || alerter.volumes[0] != 0.3 {
		t.Fatalf("alerts = %v, want [0.3]", alerter.volumes)
	}
	if got := m.Message(); got != "Short break started" {
		t.Fatalf("message = %q", got)
	}
}

func TestActivationMessage_WithoutNotifications(t *testing.T) {
	settings := testSettings()
	settings.SystemNotificationsEnabled = false
	m := newTestModel(Options{Settings: settings})

	m, _ = update(t, m, runes("l"))
	if got := m.Message(); got != "Long break started" {
		t.Fatalf("message = %q, want the activated period", got)
	}
}

func TestPeriodKeys(t *testing.T) {
	cases := []struct {
		key  string
		want model.Period
	}{
		{"w", model.PeriodWork},
		{"s", model.PeriodShortBreak},
		{"l", model.PeriodLongBreak},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			m := newTestModel(Options{})
			m, _ = update(t, m, runes(tc.key))
			if got := m.State().Period(); got != tc.want {
				t.Fatalf("period = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSkipFollowsCycle(t *testing.T) {
	m := newTestModel(Options{})

	want := []model.Period{
		model.PeriodShortBreak,
		model.PeriodWork,
		model.PeriodLongBreak,
		model.PeriodWork,
	}
	for i, period := range want {
		m, _ = update(t, m, runes("n"))
		if got := m.State().Period(); got != period {
			t.Fatalf("skip %d: period = %q, want %q", i, got, period)
		}
	}
}

func TestReset(t *testing.T) {
	m := newTestModel(Options{})
	m, _ = update(t, m, runes("p"))
	m, _ = update(t, m, tickMsg(time.Now()))

	m, _ = update(t, m, runes("r"))
	if got := m.State().Elapsed(); got != 0 {
		t.Fatalf("elapsed after reset = %v, want 0", got)
	}
}

func TestSettingKeys(t *testing.T) {
	m := newTestModel(Options{})

	m, _ = update(t, m, runes("+"))
	if got := m.State().Settings().WorkPeriod; got != time.Minute+3*time.Second {
		t.Fatalf("WorkPeriod = %v, want 1m3s", got)
	}
	m, _ = update(t, m, runes("-"))
	m, _ = update(t, m, runes("-"))
	if got := m.State().Settings().WorkPeriod; got != 0 {
		t.Fatalf("WorkPeriod = %v, want 0", got)
	}

	m, _ = update(t, m, runes("]"))
	if got := m.State().Settings().ShortBreaksNumber; got != 2 {
		t.Fatalf("ShortBreaksNumber = %d, want 2", got)
	}
	m, _ = update(t, m, runes("["))
	m, _ = update(t, m, runes("["))
	m, _ = update(t, m, runes("["))
	if got := m.State().Settings().ShortBreaksNumber; got != 0 {
		t.Fatalf("ShortBreaksNumber = %d, want 0", got)
	}
}

func TestSave(t *testing.T) {
	var saved []model.Settings
	m := newTestModel(Options{Save: func(settings model.Settings) error {
		saved = append(saved, settings)
		return nil
	}})

	m, _ = update(t, m, runes("]"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if len(saved) != 1 || saved[0].ShortBreaksNumber != 2 {
		t.Fatalf("saved = %+v", saved)
	}
	if got := m.Message(); got != "Settings saved" {
		t.Fatalf("message = %q", got)
	}
}

func TestSave_Error(t *testing.T) {
	m := newTestModel(Options{Save: func(model.Settings) error {
		return errors.New("read-only")
	}})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if got := m.Message(); !strings.Contains(got, "read-only") {
		t.Fatalf("message = %q, want the save error", got)
	}
}

func TestSave_Disabled(t *testing.T) {
	m := newTestModel(Options{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if got := m.Message(); got != "Saving is disabled" {
		t.Fatalf("message = %q", got)
	}
}

func TestQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		m := newTestModel(Options{})
		_, cmd := update(t, m, msg)
		if cmd == nil {
			t.Fatalf("%q: expected quit command", msg.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%q: command did not quit", msg.String())
		}
	}
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(Options{})

	m, _ = update(t, m, runes("?"))
	if !m.showHelp {
		t.Fatalf("? should open help")
	}
	if view := m.View(); !strings.Contains(view, "Next period") {
		t.Fatalf("help view missing bindings:\n%s", view)
	}

	// Any key closes help without acting.
	m, _ = update(t, m, runes("n"))
	if m.showHelp {
		t.Fatalf("key should close help")
	}
	if got := m.State().Period(); got != model.PeriodWork {
		t.Fatalf("closing help must not skip, period = %q", got)
	}
}

func TestView(t *testing.T) {
	m := newTestModel(Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	view := m.View()
	for _, want := range []string{"Tomata", "Work (paused)", "00:00:03", "Short breaks 0/1"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	if m.progress.Width != 60 {
		t.Fatalf("progress width = %d, want 60", m.progress.Width)
	}
}

func TestClampWidth(t *testing.T) {
	cases := map[int]int{-5: 10, 0: 10, 30: 30, 200: 60}
	for in, want := range cases {
		if got := clampWidth(in); got != want {
			t.Fatalf("clampWidth(%d) = %d, want %d", in, got, want)
		}
	}
}
