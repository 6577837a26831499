package practice

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/italiano/internal/ordering"
	prac "github.com/abhisek/italiano/internal/practice"
	"github.com/abhisek/italiano/internal/stats"
	"github.com/abhisek/italiano/internal/store"
	"github.com/abhisek/italiano/internal/vocab"
)

type fakeVocab struct {
	store.VocabRepo
	nouns []vocab.Noun
	verbs []vocab.Verb
	err   error
}

func (f *fakeVocab) Nouns(context.Context) ([]vocab.Noun, error) { return f.nouns, f.err }
func (f *fakeVocab) Verbs(context.Context) ([]vocab.Verb, error) { return f.verbs, f.err }

var nouns = []vocab.Noun{
	{ID: "house", English: "House", Singular: "casa", Plural: "case", Gender: vocab.Feminine},
	{ID: "book", English: "Book", Singular: "libro", Plural: "libri", Gender: vocab.Masculine},
	{ID: "tree", English: "Tree", Singular: "albero", Plural: "alberi", Gender: vocab.Masculine},
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func typeText(s *Screen[vocab.Noun], text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func openNouns(t *testing.T, src *stats.MemorySource) *Screen[vocab.Noun] {
	t.Helper()
	scr, err := Open(context.Background(), vocab.KindNoun, Deps{
		Vocab:         &fakeVocab{nouns: nouns},
		Source:        func(vocab.Kind) stats.Source { return src },
		EngineOptions: []prac.Option{prac.WithGo(func(fn func()) { fn() })},
	})
	require.NoError(t, err)
	s, ok := scr.(*Screen[vocab.Noun])
	require.True(t, ok)
	return s
}

func visibleIDs(s *Screen[vocab.Noun]) []string {
	var ids []string
	for _, n := range s.Engine().Visible() {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestPracticeScreen_TypeAndCommit(t *testing.T) {
	src := stats.NewMemorySource(nil)
	s := openNouns(t, src)
	e := s.Engine()

	assert.Equal(t, prac.Focus{ID: "house", Field: vocab.FieldSingular}, e.Focus())

	typeText(s, "casa")
	assert.Equal(t, "casa", e.Input("house", vocab.FieldSingular))

	s.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, prac.Focus{ID: "house", Field: vocab.FieldPlural}, e.Focus())
	assert.Equal(t, prac.Unvalidated, e.Verdict("house", vocab.FieldSingular))

	typeText(s, "casi")
	s.Update(specialKey(tea.KeyEnter))

	assert.Equal(t, prac.Correct, e.Verdict("house", vocab.FieldSingular))
	assert.Equal(t, prac.Incorrect, e.Verdict("house", vocab.FieldPlural))
	assert.Equal(t, prac.Focus{ID: "book", Field: vocab.FieldSingular}, e.Focus())
	assert.Equal(t, []stats.RecordCall{{Key: stats.ItemKey("house"), Correct: false}}, src.Calls())
	assert.Empty(t, s.input.Value(), "input should be rebound to the new field")
}

func TestPracticeScreen_TabLeavingItemValidates(t *testing.T) {
	src := stats.NewMemorySource(nil)
	s := openNouns(t, src)
	e := s.Engine()

	typeText(s, "casa")
	s.Update(specialKey(tea.KeyTab))
	assert.Equal(t, prac.Unvalidated, e.Verdict("house", vocab.FieldSingular), "moving within an item does not grade")

	typeText(s, "case")
	s.Update(specialKey(tea.KeyTab))
	assert.Equal(t, prac.Correct, e.Verdict("house", vocab.FieldPlural))
	assert.Equal(t, "book", e.Focus().ID)
	assert.Len(t, src.Calls(), 1)

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, prac.Focus{ID: "house", Field: vocab.FieldPlural}, e.Focus())
	assert.Equal(t, "case", s.input.Value())
}

func TestPracticeScreen_ShowAnswerAndClear(t *testing.T) {
	src := stats.NewMemorySource(nil)
	s := openNouns(t, src)
	e := s.Engine()

	s.Update(ctrlKey('s'))
	assert.Equal(t, "casa", s.input.Value())
	assert.Equal(t, prac.Correct, e.Verdict("house", vocab.FieldPlural))
	assert.Empty(t, src.Calls())

	s.Update(ctrlKey('l'))
	assert.Empty(t, e.Input("house", vocab.FieldSingular))
	assert.Equal(t, prac.Unvalidated, e.Verdict("house", vocab.FieldSingular))
	assert.Equal(t, prac.Focus{ID: "house", Field: vocab.FieldSingular}, e.Focus())
	assert.Zero(t, s.queue.Len(), "deferred focus should be drained by Update")
}

func TestPracticeScreen_ResetDialog(t *testing.T) {
	src := stats.NewMemorySource(map[stats.Key]stats.Record{
		stats.ItemKey("house"): {Wrong: 3},
	})
	s := openNouns(t, src)
	e := s.Engine()

	s.Update(ctrlKey('x'))
	require.True(t, e.ResetDialog().Open)
	assert.True(t, s.Escaping())
	assert.Contains(t, s.View(80, 24), `"House"`)

	_, cmd := s.Update(keyPress('y'))
	require.NotNil(t, cmd)
	s.Update(cmd())

	assert.False(t, e.ResetDialog().Open)
	assert.Equal(t, []string{"house"}, src.Resets())
	assert.Equal(t, stats.Record{}, e.Statistics("house", ""))
}

func TestPracticeScreen_ResetFailureKeepsDialog(t *testing.T) {
	src := stats.NewMemorySource(nil)
	src.SetResetErr(errors.New("database is locked"))
	s := openNouns(t, src)

	s.Update(ctrlKey('x'))
	_, cmd := s.Update(keyPress('y'))
	s.Update(cmd())

	d := s.Engine().ResetDialog()
	require.True(t, d.Open)
	require.Error(t, d.Err)
	assert.Contains(t, s.View(80, 24), "database is locked")

	s.Update(keyPress('n'))
	assert.False(t, s.Engine().ResetDialog().Open)
	assert.Len(t, src.Resets(), 1)
}

func TestPracticeScreen_Filter(t *testing.T) {
	s := openNouns(t, stats.NewMemorySource(nil))

	s.Update(keyPress('/'))
	require.True(t, s.filtering)
	typeText(s, "bo")
	assert.Equal(t, []string{"book"}, visibleIDs(s))
	assert.Equal(t, "book", s.Engine().Focus().ID, "focus follows the filtered list")
	assert.Empty(t, s.Engine().Input("book", vocab.FieldSingular), "filter keys are not answers")

	s.Update(specialKey(tea.KeyEscape))
	assert.False(t, s.filtering)
	assert.Equal(t, []string{"house", "book", "tree"}, visibleIDs(s))
}

func TestPracticeScreen_SortAndCap(t *testing.T) {
	s := openNouns(t, stats.NewMemorySource(nil))

	s.Update(ctrlKey('o'))
	assert.Equal(t, ordering.ModeAlphabetical, s.Engine().Ordering().Mode)
	assert.Equal(t, []string{"book", "house", "tree"}, visibleIDs(s))
	assert.Contains(t, s.Status(), "sort: alphabetical")

	s.Update(ctrlKey('n'))
	assert.Equal(t, ordering.Cap(10), s.Engine().Ordering().Cap)
}

func TestPracticeScreen_RefreshFailureNotifies(t *testing.T) {
	src := stats.NewMemorySource(nil)
	s := openNouns(t, src)
	s.Engine().SetSortMode(ordering.ModeMostErrors)
	src.ReadErr = errors.New("offline")

	_, cmd := s.Update(ctrlKey('r'))
	require.NotNil(t, cmd)
	s.Update(cmd())

	n, ok := s.Engine().Notification()
	require.True(t, ok)
	assert.Contains(t, n.Message, "offline")
}

func TestPracticeScreen_ExplainDisabled(t *testing.T) {
	s := openNouns(t, stats.NewMemorySource(nil))

	_, cmd := s.Update(ctrlKey('e'))
	assert.Nil(t, cmd)
	n, ok := s.Engine().Notification()
	require.True(t, ok)
	assert.Contains(t, n.Message, "ITALIANO_LLM_PROVIDER")
}

func TestOpen(t *testing.T) {
	t.Run("verbs", func(t *testing.T) {
		scr, err := Open(context.Background(), vocab.KindVerb, Deps{
			Vocab:  &fakeVocab{verbs: []vocab.Verb{{ID: "eat", English: "to eat", Infinitive: "mangiare"}}},
			Source: func(vocab.Kind) stats.Source { return stats.NewMemorySource(nil) },
		})
		require.NoError(t, err)
		assert.Equal(t, "Verbs", scr.Title())
	})

	t.Run("load error", func(t *testing.T) {
		_, err := Open(context.Background(), vocab.KindNoun, Deps{
			Vocab:  &fakeVocab{err: errors.New("no such table")},
			Source: func(vocab.Kind) stats.Source { return stats.NewMemorySource(nil) },
		})
		assert.ErrorContains(t, err, "no such table")
	})

	t.Run("statistics unavailable", func(t *testing.T) {
		src := stats.NewMemorySource(nil)
		src.ReadErr = errors.New("corrupt")
		scr, err := Open(context.Background(), vocab.KindNoun, Deps{
			Vocab:  &fakeVocab{nouns: nouns},
			Source: func(vocab.Kind) stats.Source { return src },
		})
		require.NoError(t, err)
		n, ok := scr.(*Screen[vocab.Noun]).Engine().Notification()
		require.True(t, ok)
		assert.Contains(t, n.Message, "corrupt")
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := Open(context.Background(), vocab.Kind("pronoun"), Deps{
			Source: func(vocab.Kind) stats.Source { return stats.NewMemorySource(nil) },
		})
		assert.Error(t, err)
	})
}
