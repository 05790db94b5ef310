package term

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings of the terminal timer.
type keyMap struct {
	// Timer
	Toggle key.Binding
	Reset  key.Binding
	Skip   key.Binding

	// Periods
	Work       key.Binding
	ShortBreak key.Binding
	LongBreak  key.Binding

	// Settings
	Longer      key.Binding
	Shorter     key.Binding
	MoreBreaks  key.Binding
	FewerBreaks key.Binding
	Save        key.Binding

	// Global
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("Space", "Start/pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Restart period"),
		),
		Skip: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Next period"),
		),

		Work: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Work"),
		),
		ShortBreak: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Short break"),
		),
		LongBreak: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Long break"),
		),

		Longer: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Period +1m"),
		),
		Shorter: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Period -1m"),
		),
		MoreBreaks: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "More short breaks"),
		),
		FewerBreaks: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Fewer short breaks"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save settings"),
		),

		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Skip, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Skip},
		{k.Work, k.ShortBreak, k.LongBreak},
		{k.Longer, k.Shorter, k.MoreBreaks, k.FewerBreaks, k.Save},
		{k.Help, k.Quit},
	}
}
