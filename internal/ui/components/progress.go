package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/italiano/internal/ui/theme"
)

// ScoreBar shows graded fields of a list: correct, incorrect and ungraded
// segments followed by a count.
type ScoreBar struct {
	Correct   int
	Incorrect int
	Total     int
	Width     int
}

// View renders the bar.
func (p ScoreBar) View() string {
	label := fmt.Sprintf("  %d/%d", p.Correct, p.Total)
	if p.Incorrect > 0 {
		label += fmt.Sprintf("  (%d wrong)", p.Incorrect)
	}

	barWidth := max(p.Width-lipgloss.Width(label), 4)
	good, bad := 0, 0
	if p.Total > 0 {
		good = barWidth * p.Correct / p.Total
		bad = barWidth * p.Incorrect / p.Total
	}
	empty := max(barWidth-good-bad, 0)

	return lipgloss.NewStyle().Background(theme.Success).Render(strings.Repeat(" ", good)) +
		lipgloss.NewStyle().Background(theme.Error).Render(strings.Repeat(" ", bad)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
}
