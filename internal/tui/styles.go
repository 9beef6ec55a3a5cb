package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Primary   = lipgloss.Color("#4ECDC4")
	Secondary = lipgloss.Color("#6C757D")
	Warning   = lipgloss.Color("#FF6B6B")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	// Date header
	DayNumberStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	WeekdayStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	MonthYearStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1)

	// Event list
	EventListStyle = lipgloss.NewStyle().
			Padding(1, 2)

	EventItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	EventItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	AllDayBadgeStyle = lipgloss.NewStyle().
				Foreground(Primary).
				Bold(true)

	// Editor form
	FormStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	FormLabelStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Width(12)

	FormLabelFocusedStyle = lipgloss.NewStyle().
				Foreground(Primary).
				Bold(true).
				Width(12)

	FormDisabledStyle = lipgloss.NewStyle().
				Foreground(Border)

	// Confirm dialog
	ConfirmStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Warning).
			Padding(1, 2)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Warning)
)

// CategoryStyle renders text in a category's color.
func CategoryStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
