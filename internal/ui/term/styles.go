package term

import "github.com/charmbracelet/lipgloss"

var (
	workColor  = lipgloss.Color("#E2412F")
	breakColor = lipgloss.Color("#4CAF50")
	mutedColor = lipgloss.Color("#8C8C8C")
)

type styles struct {
	Title   lipgloss.Style
	Work    lipgloss.Style
	Break   lipgloss.Style
	Paused  lipgloss.Style
	Clock   lipgloss.Style
	Muted   lipgloss.Style
	Message lipgloss.Style
	Frame   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(workColor),
		Work: lipgloss.NewStyle().
			Bold(true).
			Foreground(workColor),
		Break: lipgloss.NewStyle().
			Bold(true).
			Foreground(breakColor),
		Paused: lipgloss.NewStyle().
			Bold(true).
			Foreground(mutedColor),
		Clock: lipgloss.NewStyle().
			Bold(true).
			Padding(1, 0),
		Muted: lipgloss.NewStyle().
			Foreground(mutedColor),
		Message: lipgloss.NewStyle().
			Italic(true),
		Frame: lipgloss.NewStyle().
			Padding(1, 2),
	}
}
