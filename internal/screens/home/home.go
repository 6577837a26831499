package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/italiano/internal/router"
	"github.com/abhisek/italiano/internal/screen"
	"github.com/abhisek/italiano/internal/screens/history"
	"github.com/abhisek/italiano/internal/screens/notice"
	"github.com/abhisek/italiano/internal/store"
	"github.com/abhisek/italiano/internal/ui/components"
	"github.com/abhisek/italiano/internal/ui/theme"
	"github.com/abhisek/italiano/internal/vocab"
)

const banner = `  _ _        _ _
 (_) |_ __ _| (_)__ _ _ _  ___
 | |  _/ _' | | / _' | ' \/ _ \
 |_|\__\__,_|_|_\__,_|_||_\___/`

// Opener builds the practice screen of a kind.
type Opener func(ctx context.Context, kind vocab.Kind) (screen.Screen, error)

// Options wires the home menu.
type Options struct {
	Open       Opener
	Vocab      store.VocabRepo
	Events     store.EventRepo
	MoodTenses []vocab.MoodTense
}

type countsLoadedMsg struct {
	Counts map[vocab.Kind]int
	Err    error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	opts Options
	menu components.Menu
	err  string
}

var _ screen.Screen = (*HomeScreen)(nil)

var kindLabels = map[vocab.Kind]string{
	vocab.KindNoun:        "Nouns",
	vocab.KindAdjective:   "Adjectives",
	vocab.KindVerb:        "Verbs",
	vocab.KindConjugation: "Conjugations",
}

// New creates the home screen.
func New(opts Options) *HomeScreen {
	var items []components.MenuItem
	for _, k := range vocab.AllKinds {
		items = append(items, components.MenuItem{
			Label:  kindLabels[k],
			Action: func() tea.Cmd { return OpenCmd(opts.Open, k) },
		})
	}
	items = append(items,
		components.MenuItem{
			Label:    "History",
			Disabled: opts.Events == nil,
			Action: func() tea.Cmd {
				return router.Open(history.New(opts.Events))
			},
		},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	)

	return &HomeScreen{opts: opts, menu: components.NewMenu(items)}
}

// OpenCmd opens a practice screen, or a notice explaining why it could not.
func OpenCmd(open Opener, kind vocab.Kind) tea.Cmd {
	return func() tea.Msg {
		scr, err := open(context.Background(), kind)
		if err != nil {
			return router.PushScreenMsg{Screen: notice.New(kindLabels[kind], "Could not open practice:\n"+err.Error())}
		}
		return router.PushScreenMsg{Screen: scr}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.opts.Vocab == nil {
		return nil
	}
	repo, enabled := h.opts.Vocab, h.opts.MoodTenses
	return func() tea.Msg {
		counts, err := Count(context.Background(), repo, enabled)
		return countsLoadedMsg{Counts: counts, Err: err}
	}
}

// Count returns how many practice items each kind has.
func Count(ctx context.Context, repo store.VocabRepo, enabled []vocab.MoodTense) (map[vocab.Kind]int, error) {
	counts := make(map[vocab.Kind]int, len(vocab.AllKinds))
	nouns, err := repo.Nouns(ctx)
	if err != nil {
		return nil, err
	}
	counts[vocab.KindNoun] = len(nouns)
	adjs, err := repo.Adjectives(ctx)
	if err != nil {
		return nil, err
	}
	counts[vocab.KindAdjective] = len(adjs)
	verbs, err := repo.Verbs(ctx)
	if err != nil {
		return nil, err
	}
	counts[vocab.KindVerb] = len(verbs)
	conj, err := repo.Conjugations(ctx, enabled)
	if err != nil {
		return nil, err
	}
	counts[vocab.KindConjugation] = len(conj)
	return counts, nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(countsLoadedMsg); ok {
		if msg.Err != nil {
			h.err = msg.Err.Error()
			return h, nil
		}
		for i, k := range vocab.AllKinds {
			n := msg.Counts[k]
			h.menu.Items[i].Detail = fmt.Sprintf("%d", n)
			h.menu.Items[i].Disabled = n == 0
		}
		h.menu = h.menu.Settle()
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string
	sections = append(sections,
		theme.Title.Render(banner),
		theme.Subtitle.Render("vocabulary practice"),
		h.menu.View(),
	)
	if h.err != "" {
		sections = append(sections, theme.Incorrect.Render(h.err))
	}
	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
