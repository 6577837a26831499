package practice

import (
	"fmt"
	"time"

	"github.com/abhisek/italiano/internal/stats"
	"github.com/abhisek/italiano/internal/vocab"
)

// Grading selects how verdicts map to statistics records.
type Grading int

const (
	// GradeItem grades every filled field but records one attempt per item,
	// correct only when every field is.
	GradeItem Grading = iota

	// GradeField records one attempt per field. Each field owns its own
	// statistics key, so a field behaves like a single-field item: committing
	// it grades it even when more fields of the item follow.
	GradeField
)

// Kind parameterizes the engine for one vocabulary kind.
type Kind[T any] struct {
	Name   vocab.Kind
	ID     func(T) string
	Prompt func(T) string
	Fields func(T) []vocab.Field

	// Label names the item in the reset dialog. Defaults to Prompt.
	Label func(T) string

	// Key builds the statistics key of a field. Key(item, "").Item is the
	// top-level id that reset clears.
	Key func(item T, field string) stats.Key

	Window  time.Duration
	Grading Grading

	// Once refuses to regrade a field until it is cleared or edited.
	Once bool
}

func (k Kind[T]) label(item T) string {
	if k.Label != nil {
		return k.Label(item)
	}
	return k.Prompt(item)
}

// Debounce windows.
const (
	TranslationWindow = 100 * time.Millisecond
	ConjugationWindow = 500 * time.Millisecond
)

var NounKind = Kind[vocab.Noun]{
	Name:    vocab.KindNoun,
	ID:      func(n vocab.Noun) string { return n.ID },
	Prompt:  func(n vocab.Noun) string { return n.English },
	Fields:  vocab.Noun.Fields,
	Key:     func(n vocab.Noun, _ string) stats.Key { return stats.ItemKey(n.ID) },
	Window:  TranslationWindow,
	Grading: GradeItem,
}

var AdjectiveKind = Kind[vocab.Adjective]{
	Name:    vocab.KindAdjective,
	ID:      func(a vocab.Adjective) string { return a.ID },
	Prompt:  func(a vocab.Adjective) string { return a.English },
	Fields:  vocab.Adjective.Fields,
	Key:     func(a vocab.Adjective, _ string) stats.Key { return stats.ItemKey(a.ID) },
	Window:  TranslationWindow,
	Grading: GradeItem,
}

var VerbKind = Kind[vocab.Verb]{
	Name:    vocab.KindVerb,
	ID:      func(v vocab.Verb) string { return v.ID },
	Prompt:  func(v vocab.Verb) string { return v.English },
	Fields:  vocab.Verb.Fields,
	Key:     func(v vocab.Verb, _ string) stats.Key { return stats.ItemKey(v.ID) },
	Window:  TranslationWindow,
	Grading: GradeField,
}

// ConjugationKind drills one mood and tense of a verb. Every person is its
// own statistics key (verb, mood, tense, person), so the six persons are
// graded independently: committing "io" records "io" before focus moves to
// "tu", and a blank person never drags the others down.
var ConjugationKind = Kind[vocab.Conjugation]{
	Name:   vocab.KindConjugation,
	ID:     vocab.Conjugation.ID,
	Prompt: vocab.Conjugation.Prompt,
	Label: func(c vocab.Conjugation) string {
		return fmt.Sprintf("%s (%s)", c.English, c.Infinitive)
	},
	Fields: vocab.Conjugation.Fields,
	Key: func(c vocab.Conjugation, field string) stats.Key {
		return stats.ConjugationKey(c.VerbID, string(c.Mood), string(c.Tense), string(vocab.PersonForField(field)))
	},
	Window:  ConjugationWindow,
	Grading: GradeField,
	Once:    true,
}
