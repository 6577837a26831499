package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	prac "github.com/abhisek/italiano/internal/practice"
	"github.com/abhisek/italiano/internal/ui/components"
	"github.com/abhisek/italiano/internal/ui/theme"
)

// linesPerItem is the rendered height of one item: prompt, fields, gap.
const linesPerItem = 3

func (s *Screen[T]) View(width, height int) string {
	var top, bottom []string

	correct, incorrect, total := s.engine.Progress()
	top = append(top, components.ScoreBar{
		Correct: correct, Incorrect: incorrect, Total: total, Width: width - 4,
	}.View(), "")

	if s.filtering {
		bottom = append(bottom, theme.Notice.Render("  / ")+s.filter.View())
	}
	if n, ok := s.engine.Notification(); ok {
		bottom = append(bottom, theme.Notice.Render("  ! "+n.Message))
	}
	if s.explaining {
		bottom = append(bottom, theme.Hint.Render("  Asking for an explanation..."))
	}
	if s.explanation != nil {
		bottom = append(bottom, s.renderExplanation(width))
	}

	if d := s.engine.ResetDialog(); d.Open {
		return strings.Join(top, "\n") + "\n" + s.renderResetDialog(d, width)
	}

	rows := height - len(top) - lipgloss.Height(strings.Join(bottom, "\n")) - 1
	list := s.renderList(width, rows)

	return strings.Join(top, "\n") + "\n" + list + "\n" + strings.Join(bottom, "\n")
}

func (s *Screen[T]) renderList(width, rows int) string {
	visible := s.engine.Visible()
	if len(visible) == 0 {
		msg := "No words yet. Import some with `italiano import <file>`."
		if s.engine.Filter() != "" {
			msg = "Nothing matches the filter."
		}
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(theme.TextDim).Italic(true).Render("\n" + msg)
	}

	kind := s.engine.Kind()
	focus := s.engine.Focus()

	fit := max(rows/linesPerItem, 1)
	start := 0
	if i := s.visibleIndex(focus.ID); i >= fit {
		start = i - fit + 1
	}
	end := min(start+fit, len(visible))

	var b strings.Builder
	for _, item := range visible[start:end] {
		id := kind.ID(item)
		st := s.engine.Statistics(id, "")

		prompt := theme.Prompt.Render("  " + kind.Prompt(item))
		counts := lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("✓%d ✗%d", st.Correct, st.Wrong))
		gap := max(width-lipgloss.Width(prompt)-lipgloss.Width(counts)-4, 1)
		b.WriteString(prompt + strings.Repeat(" ", gap) + counts + "\n")

		var fields []string
		for _, f := range kind.Fields(item) {
			focused := focus.ID == id && focus.Field == f.Key
			live := ""
			if focused {
				live = s.input.View()
			}
			fields = append(fields, components.RenderField(
				f.Key, s.engine.Input(id, f.Key), live,
				markOf(s.engine.Verdict(id, f.Key)), focused,
			))
		}
		b.WriteString(lipgloss.NewStyle().Width(width - 2).PaddingLeft(4).
			Render(strings.Join(fields, "   ")))
		b.WriteString("\n\n")
	}

	if end < len(visible) {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  … %d more", len(visible)-end)))
	}
	return b.String()
}

func markOf(v prac.Verdict) components.Mark {
	switch v {
	case prac.Correct:
		return components.MarkCorrect
	case prac.Incorrect:
		return components.MarkIncorrect
	}
	return components.MarkNone
}

func (s *Screen[T]) renderResetDialog(d prac.ResetDialog, width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Reset statistics"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Forget every attempt for %q?", d.Label)))
	if d.Err != nil {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(d.Err.Error()))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Press Y to try again or N to cancel."))
	}
	if s.busy {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Resetting..."))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Dialog.Render(b.String()))
}

func (s *Screen[T]) renderExplanation(width int) string {
	e := s.explanation
	if e.Err != nil {
		return theme.Incorrect.Render("  Could not explain: " + e.Err.Error())
	}
	body := theme.Body.Render(e.Explanation.Explanation) + "\n" +
		theme.Selected.Render("Rule: ") + theme.Body.Render(e.Explanation.Rule)
	return theme.Card.Width(width - 4).Render(body)
}
