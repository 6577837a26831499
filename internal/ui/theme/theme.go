// Package theme holds the colors and text styles shared by every screen.
package theme

import "charm.land/lipgloss/v2"

// Palette: basil, pomodoro and mozzarella on a slate background.
var (
	Primary = lipgloss.Color("#16A34A")
	Accent  = lipgloss.Color("#F59E0B")
	Success = lipgloss.Color("#22C55E")
	Error   = lipgloss.Color("#DC2626")
	Text    = lipgloss.Color("#F8FAFC")
	TextDim = lipgloss.Color("#94A3B8")
	BgCard  = lipgloss.Color("#1F2937")
	Border  = lipgloss.Color("#374151")
)

var (
	Body     = lipgloss.NewStyle().Foreground(Text)
	Prompt   = Body.Bold(true)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim)
	Hint     = Subtitle.Italic(true)
	Title    = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	Selected   = Title
	Unselected = Body

	Correct   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Notice    = lipgloss.NewStyle().Foreground(Accent).Bold(true)
)

// Boxes.
var (
	Card = lipgloss.NewStyle().Background(BgCard).Padding(1, 2).
		Border(lipgloss.RoundedBorder()).BorderForeground(Border)
	Dialog = lipgloss.NewStyle().Padding(1, 2).
		Border(lipgloss.DoubleBorder()).BorderForeground(Accent)
)
