// Package history shows recent practice sessions reconstructed from the
// attempt events written by statistics updates.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/italiano/internal/router"
	"github.com/abhisek/italiano/internal/screen"
	"github.com/abhisek/italiano/internal/store"
	"github.com/abhisek/italiano/internal/ui/layout"
	"github.com/abhisek/italiano/internal/ui/theme"
	"github.com/abhisek/italiano/internal/vocab"
)

// pageSize bounds how many attempts are loaded.
const pageSize = 500

// Session groups the attempts recorded by one run of the app.
type Session struct {
	ID       string
	Attempts []store.AttemptEvent // newest first
	Correct  int
}

// Accuracy is the share of correct attempts, in percent.
func (s Session) Accuracy() int {
	if len(s.Attempts) == 0 {
		return 0
	}
	return s.Correct * 100 / len(s.Attempts)
}

// Kinds counts attempts per vocabulary kind in menu order.
func (s Session) Kinds() string {
	counts := make(map[vocab.Kind]int)
	for _, a := range s.Attempts {
		counts[a.Kind]++
	}
	var parts []string
	for _, k := range vocab.AllKinds {
		if n := counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", k, n))
		}
	}
	return strings.Join(parts, ", ")
}

// Group splits attempts (newest first) into sessions ordered by their most
// recent attempt.
func Group(attempts []store.AttemptEvent) []Session {
	var out []Session
	pos := make(map[string]int)
	for _, a := range attempts {
		i, seen := pos[a.SessionID]
		if !seen {
			i = len(out)
			pos[a.SessionID] = i
			out = append(out, Session{ID: a.SessionID})
		}
		s := &out[i]
		s.Attempts = append(s.Attempts, a)
		if a.Correct {
			s.Correct++
		}
	}
	return out
}

type loadedMsg struct {
	sessions []Session
	err      error
}

type Screen struct {
	events   store.EventRepo
	sessions []Session
	cursor   int
	open     map[string]bool
	state    string // "loading", "ready" or the load error
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

func New(events store.EventRepo) *Screen {
	return &Screen{events: events, open: make(map[string]bool), state: "loading"}
}

func (s *Screen) Init() tea.Cmd {
	events := s.events
	return func() tea.Msg {
		attempts, err := events.QueryAttempts(context.Background(), store.QueryOpts{Limit: pageSize})
		return loadedMsg{sessions: Group(attempts), err: err}
	}
}

func (s *Screen) Title() string { return "History" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Toggle attempts"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			s.state = msg.err.Error()
			return s, nil
		}
		s.sessions, s.state = msg.sessions, "ready"

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, router.Back()
		case "up", "k":
			s.cursor = max(s.cursor-1, 0)
		case "down", "j":
			s.cursor = min(s.cursor+1, max(len(s.sessions)-1, 0))
		case "enter", "space":
			if s.cursor < len(s.sessions) {
				id := s.sessions[s.cursor].ID
				s.open[id] = !s.open[id]
			}
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	placeholder := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim)
	switch {
	case s.state == "loading":
		return placeholder.Render("\n\nLoading history...")
	case s.state != "ready":
		return placeholder.Foreground(theme.Error).Render("\n\nCould not load history: " + s.state)
	case len(s.sessions) == 0:
		return placeholder.Italic(true).Render("\n\nNo attempts yet. Start practicing!")
	}

	var lines []string
	cursorLine := 0
	for i, sess := range s.sessions {
		if i == s.cursor {
			cursorLine = len(lines)
		}
		lines = append(lines, s.sessionLine(sess, i == s.cursor))
		if s.open[sess.ID] {
			for _, a := range sess.Attempts {
				lines = append(lines, attemptLine(a))
			}
		}
	}

	// Keep the selected session on screen.
	start := 0
	if height > 0 && cursorLine >= height {
		start = cursorLine - height + 1
	}
	end := len(lines)
	if height > 0 {
		end = min(start+height, end)
	}
	return strings.Join(lines[start:end], "\n")
}

func (s *Screen) sessionLine(sess Session, selected bool) string {
	style, marker := theme.Unselected, "  "
	if selected {
		style, marker = theme.Selected, "▸ "
	}
	when := sess.Attempts[0].Timestamp.Local().Format("Mon 02 Jan 15:04")
	summary := fmt.Sprintf("%s%s  %3d attempts  %3d%% correct", marker, when, len(sess.Attempts), sess.Accuracy())
	return style.Render(summary) + "  " + theme.Subtitle.Render(sess.Kinds())
}

func attemptLine(a store.AttemptEvent) string {
	mark := theme.Correct.Render("✓")
	if !a.Correct {
		mark = theme.Incorrect.Render("✗")
	}
	item := a.Item
	if a.Mood != "" {
		item += " · " + a.Mood + " " + a.Tense
		if a.Person != "" {
			item += " · " + a.Person
		}
	}
	return fmt.Sprintf("      %s %s", mark, item)
}
