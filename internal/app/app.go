package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/italiano/internal/router"
	"github.com/abhisek/italiano/internal/screen"
	"github.com/abhisek/italiano/internal/screens/home"
	"github.com/abhisek/italiano/internal/screens/practice"
	"github.com/abhisek/italiano/internal/store"
	"github.com/abhisek/italiano/internal/ui/layout"
	"github.com/abhisek/italiano/internal/vocab"
)

// Options are the dependencies of the TUI.
type Options struct {
	Practice practice.Deps
	Events   store.EventRepo

	// Start opens this kind directly instead of waiting on the menu.
	Start vocab.Kind
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	start  tea.Cmd
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	open := func(ctx context.Context, kind vocab.Kind) (screen.Screen, error) {
		return practice.Open(ctx, kind, opts.Practice)
	}
	m := AppModel{
		router: router.New(home.New(home.Options{
			Open:       open,
			Vocab:      opts.Practice.Vocab,
			Events:     opts.Events,
			MoodTenses: opts.Practice.MoodTenses,
		})),
	}
	if opts.Start != "" {
		m.start = home.OpenCmd(open, opts.Start)
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.start)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.closeAll()
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.Escaping() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Back()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// closeAll pops every screen so pending statistics writes finish.
func (m AppModel) closeAll() {
	m.router.PopToRoot()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := active.Title(), ""
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}
	header := layout.RenderHeader(title, status, m.width)

	var hints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		hints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(hints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
