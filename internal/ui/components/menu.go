package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/italiano/internal/ui/theme"
)

// MenuItem is one menu line. Detail is rendered dimmed after the label;
// disabled items are skipped by the cursor.
type MenuItem struct {
	Label    string
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical menu. Arrow keys and j/k move with wrap-around, a digit
// runs the item with that number directly.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	return m.move(1)
}

// move advances the cursor by delta to the next enabled item.
func (m Menu) move(delta int) Menu {
	n := len(m.Items)
	for step := 1; step <= n; step++ {
		i := ((m.Selected+delta*step)%n + n) % n
		if !m.Items[i].Disabled {
			m.Selected = i
			return m
		}
	}
	return m
}

// Settle moves the cursor off an item that has been disabled since.
func (m Menu) Settle() Menu {
	if m.Selected >= 0 && m.Selected < len(m.Items) && !m.Items[m.Selected].Disabled {
		return m
	}
	return m.move(1)
}

func (m Menu) run(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}
	switch s := key.String(); s {
	case "up", "k":
		return m.move(-1), nil
	case "down", "j":
		return m.move(1), nil
	case "enter":
		return m, m.run(m.Selected)
	default:
		if d, err := strconv.Atoi(s); err == nil && d >= 1 && d <= 9 {
			if i := d - 1; i < len(m.Items) && !m.Items[i].Disabled {
				m.Selected = i
				return m, m.run(i)
			}
		}
	}
	return m, nil
}

func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		style, cursor := theme.Unselected, " "
		switch {
		case item.Disabled:
			style = theme.Subtitle
		case i == m.Selected:
			style, cursor = theme.Selected, "▸"
		}
		b.WriteString(style.Render("  " + cursor + " " + strconv.Itoa(i+1) + "  " + item.Label))
		if item.Detail != "" {
			b.WriteString("  " + theme.Subtitle.Render(item.Detail))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
