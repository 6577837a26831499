package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/italiano/internal/ui/theme"
)

// Mark is the verdict glyph drawn after a field.
type Mark int

const (
	MarkNone Mark = iota
	MarkCorrect
	MarkIncorrect
)

// FieldInput is the single live text input of the practice list. It is
// rebound to whichever field has focus.
type FieldInput struct {
	Model textinput.Model
}

// NewFieldInput creates a focused input limited to limit characters.
func NewFieldInput(limit int) FieldInput {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = limit
	ti.Focus()
	return FieldInput{Model: ti}
}

// Bind replaces the text with value and puts the cursor at its end.
func (f *FieldInput) Bind(value string) {
	f.Model.SetValue(value)
	f.Model.CursorEnd()
}

// Update forwards a message to the text input.
func (f FieldInput) Update(msg tea.Msg) (FieldInput, tea.Cmd) {
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// Value returns the current text.
func (f FieldInput) Value() string {
	return f.Model.Value()
}

// View renders the input.
func (f FieldInput) View() string {
	return f.Model.View()
}

// RenderField draws "label value mark". When live is non-empty it replaces
// value (the focused field shows the text input).
func RenderField(label, value, live string, mark Mark, focused bool) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if focused {
		labelStyle = theme.Selected
	}

	body := value
	if focused && live != "" {
		body = live
	} else if body == "" {
		body = lipgloss.NewStyle().Foreground(theme.Border).Render("____")
	}

	out := labelStyle.Render(label+":") + " " + body
	switch mark {
	case MarkCorrect:
		out += " " + theme.Correct.Render("✓")
	case MarkIncorrect:
		out += " " + theme.Incorrect.Render("✗")
	}
	return out
}
