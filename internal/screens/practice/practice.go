package practice

import (
	"context"
	"fmt"
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/text/language"

	"github.com/abhisek/italiano/internal/explain"
	prac "github.com/abhisek/italiano/internal/practice"
	"github.com/abhisek/italiano/internal/screen"
	"github.com/abhisek/italiano/internal/stats"
	"github.com/abhisek/italiano/internal/ui/components"
	"github.com/abhisek/italiano/internal/ui/layout"
	"github.com/abhisek/italiano/internal/vocab"
)

const (
	tickInterval = 500 * time.Millisecond
	inputLimit   = 64
)

// Screen is the practice list of one vocabulary kind.
type Screen[T any] struct {
	engine  *prac.Engine[T]
	queue   *prac.Queue
	explain *explain.Service

	input     components.FieldInput
	bound     prac.Focus
	filter    components.FieldInput
	filtering bool

	explanation *explainedMsg
	explaining  bool
	busy        bool
}

var _ screen.Screen = (*Screen[vocab.Noun])(nil)
var _ screen.KeyHintProvider = (*Screen[vocab.Noun])(nil)
var _ screen.StatusProvider = (*Screen[vocab.Noun])(nil)
var _ screen.EscapeHandler = (*Screen[vocab.Noun])(nil)
var _ screen.Closer = (*Screen[vocab.Noun])(nil)

func newScreen[T any](kind prac.Kind[T], items []T, cache *stats.Cache, d Deps) *Screen[T] {
	queue := &prac.Queue{}
	opts := []prac.Option{
		prac.WithScheduler(queue),
		prac.WithLogger(d.logger()),
		prac.WithOrdering(d.Order),
	}
	if d.Locale != language.Und {
		opts = append(opts, prac.WithLanguage(d.Locale))
	}
	opts = append(opts, d.EngineOptions...)

	s := &Screen[T]{
		engine:  prac.New(kind, items, cache, opts...),
		queue:   queue,
		explain: d.Explain,
		input:   components.NewFieldInput(inputLimit),
		filter:  components.NewFieldInput(inputLimit),
	}
	s.sync()
	return s
}

// Engine exposes the underlying engine.
func (s *Screen[T]) Engine() *prac.Engine[T] {
	return s.engine
}

func (s *Screen[T]) notify(msg string) {
	s.engine.Notify(msg)
}

func (s *Screen[T]) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (s *Screen[T]) Title() string {
	switch s.engine.Kind().Name {
	case vocab.KindNoun:
		return "Nouns"
	case vocab.KindAdjective:
		return "Adjectives"
	case vocab.KindVerb:
		return "Verbs"
	case vocab.KindConjugation:
		return "Conjugations"
	}
	return string(s.engine.Kind().Name)
}

func (s *Screen[T]) Status() string {
	st := s.engine.Ordering()
	status := fmt.Sprintf("sort: %s  show: %s", st.Mode, st.Cap)
	if f := s.engine.Filter(); f != "" {
		status += fmt.Sprintf("  filter: %q", f)
	}
	return status
}

func (s *Screen[T]) Escaping() bool {
	return s.filtering || s.engine.ResetDialog().Open || s.explanation != nil
}

// Close waits for background statistics writes.
func (s *Screen[T]) Close() {
	s.engine.Wait()
}

func (s *Screen[T]) KeyHints() []layout.KeyHint {
	if s.engine.ResetDialog().Open {
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset"},
			{Key: "N", Description: "Cancel"},
		}
	}
	if s.filtering {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Keep filter"},
			{Key: "Esc", Description: "Clear filter"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Check"},
		{Key: "Tab", Description: "Next"},
		{Key: "^S", Description: "Show"},
		{Key: "^L", Description: "Clear"},
		{Key: "^O", Description: "Sort"},
		{Key: "^N", Description: "Cap"},
		{Key: "^R", Description: "Refresh"},
		{Key: "^X", Description: "Reset"},
		{Key: "/", Description: "Filter"},
	}
	if s.explain.Enabled() {
		hints = append(hints, layout.KeyHint{Key: "^E", Description: "Explain"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *Screen[T]) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	cmd := s.update(msg)
	if s.queue.Drain() > 0 || s.engine.Focus() != s.bound {
		s.sync()
	}
	return s, cmd
}

func (s *Screen[T]) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tickMsg:
		return tickCmd()

	case refreshedMsg:
		s.busy = false
		if msg.Err != nil {
			s.engine.Notify("Could not reload statistics: " + msg.Err.Error())
		}
		return nil

	case resetDoneMsg:
		s.busy = false
		return nil

	case explainedMsg:
		s.explaining = false
		s.explanation = &msg
		return nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.filtering {
		return s.updateFilter(msg)
	}
	return s.updateInput(msg)
}

// sync rebinds the text input to the engine's focus.
func (s *Screen[T]) sync() {
	f := s.engine.Focus()
	s.bound = f
	s.input.Bind(s.engine.Input(f.ID, f.Field))
}

func (s *Screen[T]) updateInput(msg tea.Msg) tea.Cmd {
	if s.bound.ID == "" {
		return nil
	}
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if v := s.input.Value(); v != before {
		s.engine.InputChange(s.bound.ID, s.bound.Field, v)
	}
	return cmd
}

func (s *Screen[T]) updateFilter(msg tea.Msg) tea.Cmd {
	before := s.filter.Value()
	var cmd tea.Cmd
	s.filter, cmd = s.filter.Update(msg)
	if v := s.filter.Value(); v != before {
		s.engine.SetFilter(v)
		s.refocus()
	}
	return cmd
}

func (s *Screen[T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if s.engine.ResetDialog().Open {
		return s.handleResetKey(key)
	}

	if s.explanation != nil {
		s.explanation = nil
		if key == "esc" {
			return nil
		}
	}

	if s.filtering {
		switch key {
		case "enter":
			s.filtering = false
		case "esc":
			s.filtering = false
			s.filter.Bind("")
			s.engine.SetFilter("")
			s.refocus()
		default:
			return s.updateFilter(msg)
		}
		return nil
	}

	f := s.engine.Focus()
	switch key {
	case "enter":
		s.engine.KeyDown(prac.CommitKey, f.ID, f.Field, s.visibleIndex(f.ID))
	case "tab", "down":
		s.move(1)
	case "shift+tab", "up":
		s.move(-1)
	case "ctrl+s":
		s.engine.ShowAnswer(f.ID)
		s.input.Bind(s.engine.Input(f.ID, f.Field))
	case "ctrl+l":
		s.engine.Clear(f.ID, f.Field)
		s.input.Bind("")
	case "ctrl+o":
		s.engine.SetSortMode(s.engine.Ordering().Mode.Next())
		s.refocus()
		if s.engine.Ordering().Mode.UsesStatistics() {
			return s.refresh()
		}
	case "ctrl+n":
		s.engine.SetDisplayCap(s.engine.Ordering().Cap.Next())
		s.refocus()
	case "ctrl+r":
		return s.refresh()
	case "ctrl+x":
		s.engine.OpenReset(f.ID)
	case "ctrl+e":
		return s.requestExplanation(f)
	case "/":
		s.filtering = true
		s.filter.Bind(s.engine.Filter())
	default:
		return s.updateInput(msg)
	}
	return nil
}

func (s *Screen[T]) handleResetKey(key string) tea.Cmd {
	switch key {
	case "y", "Y", "enter":
		if s.busy {
			return nil
		}
		s.busy = true
		e := s.engine
		return func() tea.Msg {
			return resetDoneMsg{Err: e.ConfirmReset(context.Background())}
		}
	case "n", "N", "esc":
		s.engine.CancelReset()
	}
	return nil
}

func (s *Screen[T]) refresh() tea.Cmd {
	s.busy = true
	e := s.engine
	return func() tea.Msg {
		return refreshedMsg{Err: e.Refresh(context.Background())}
	}
}

func (s *Screen[T]) requestExplanation(f prac.Focus) tea.Cmd {
	if !s.explain.Enabled() {
		s.engine.Notify("Explanations are off: set ITALIANO_LLM_PROVIDER to enable them")
		return nil
	}
	if s.explaining || s.engine.Verdict(f.ID, f.Field) != prac.Incorrect {
		return nil
	}
	item, ok := s.engine.Item(f.ID)
	if !ok {
		return nil
	}
	kind := s.engine.Kind()
	var expected string
	for _, fld := range kind.Fields(item) {
		if fld.Key == f.Field {
			expected = fld.Answer
		}
	}
	m := explain.Mistake{
		Kind:     kind.Name,
		Prompt:   kind.Prompt(item),
		Field:    f.Field,
		Given:    s.engine.Input(f.ID, f.Field),
		Expected: expected,
	}

	s.explaining = true
	svc := s.explain
	return func() tea.Msg {
		exp, err := svc.Explain(context.Background(), m)
		return explainedMsg{ID: f.ID, Field: f.Field, Explanation: exp, Err: err}
	}
}

// slots lists every field of the visible list in display order.
func (s *Screen[T]) slots() []prac.Focus {
	kind := s.engine.Kind()
	var out []prac.Focus
	for _, it := range s.engine.Visible() {
		id := kind.ID(it)
		for _, f := range kind.Fields(it) {
			out = append(out, prac.Focus{ID: id, Field: f.Key})
		}
	}
	return out
}

// move shifts focus by delta fields. Leaving a field is a blur: per-field
// kinds grade the field, per-item kinds grade the item once focus leaves it.
func (s *Screen[T]) move(delta int) {
	all := s.slots()
	cur := s.engine.Focus()
	i := slices.Index(all, cur)
	j := i + delta
	if i < 0 || j < 0 || j >= len(all) {
		return
	}
	next := all[j]

	if s.engine.Kind().Grading == prac.GradeField || next.ID != cur.ID {
		s.engine.Validate(cur.ID, cur.Field, true)
	}
	s.engine.SetFocus(next)
}

// refocus keeps focus on a visible field after the list changed.
func (s *Screen[T]) refocus() {
	all := s.slots()
	if len(all) == 0 || slices.Contains(all, s.engine.Focus()) {
		return
	}
	s.engine.SetFocus(all[0])
}

func (s *Screen[T]) visibleIndex(id string) int {
	kind := s.engine.Kind()
	return slices.IndexFunc(s.engine.Visible(), func(it T) bool { return kind.ID(it) == id })
}
