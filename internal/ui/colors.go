package ui

import "github.com/charmbracelet/lipgloss"

const (
	Primary   = lipgloss.Color("#fff")
	Secondary = lipgloss.Color("#888")
	Faded     = lipgloss.Color("#555")

	Green  = lipgloss.Color("#00a352")
	Red    = lipgloss.Color("#c42912")
	Yellow = lipgloss.Color("#c4b810")
	Orange = lipgloss.Color("#c27510")
)

// DueColor implements the board legend:
// red = due today or expired, orange = ≤3 days, yellow = ≤7 days.
func DueColor(daysUntilDue int) lipgloss.Color {
	switch {
	case daysUntilDue <= 0:
		return Red
	case daysUntilDue <= 3:
		return Orange
	case daysUntilDue <= 7:
		return Yellow
	default:
		return Faded
	}
}
