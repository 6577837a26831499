package vocab

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNounFields(t *testing.T) {
	n := Noun{ID: "n1", English: "cat", Singular: "gatto", Plural: "gatti"}
	fields := n.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, Field{Key: FieldSingular, Answer: "gatto"}, fields[0])
	assert.Equal(t, Field{Key: FieldPlural, Answer: "gatti"}, fields[1])
}

func TestAdjectiveFields(t *testing.T) {
	a := Adjective{
		ID: "a1", English: "beautiful",
		MasculineSingular: "bello", MasculinePlural: "belli",
		FeminineSingular: "bella", FemininePlural: "belle",
	}
	keys := make([]string, 0, 4)
	for _, f := range a.Fields() {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{
		FieldMasculineSingular, FieldMasculinePlural, FieldFeminineSingular, FieldFemininePlural,
	}, keys)
}

func TestConjugationFields(t *testing.T) {
	t.Run("persons in table order", func(t *testing.T) {
		c := Conjugation{
			VerbID: "v1", Mood: MoodIndicativo, Tense: TensePresente,
			Forms: map[Person]string{
				PersonLoro: "parlano", PersonIo: "parlo", PersonTu: "parli",
				PersonLuiLei: "parla", PersonNoi: "parliamo", PersonVoi: "parlate",
			},
		}
		fields := c.Fields()
		require.Len(t, fields, 6)
		assert.Equal(t, "io", fields[0].Key)
		assert.Equal(t, "parlo", fields[0].Answer)
		assert.Equal(t, "loro", fields[5].Key)
	})

	t.Run("imperative skips missing persons", func(t *testing.T) {
		c := Conjugation{
			VerbID: "v1", Mood: MoodImperativo, Tense: TensePresente,
			Forms: map[Person]string{PersonTu: "parla", PersonVoi: "parlate"},
		}
		fields := c.Fields()
		require.Len(t, fields, 2)
		assert.Equal(t, "tu", fields[0].Key)
	})

	t.Run("impersonal has a single field", func(t *testing.T) {
		c := Conjugation{
			VerbID: "v1", Mood: MoodGerundio, Tense: TensePresente,
			Forms: map[Person]string{"": "parlando"},
		}
		fields := c.Fields()
		require.Len(t, fields, 1)
		assert.Equal(t, Field{Key: FieldForm, Answer: "parlando"}, fields[0])
		assert.Equal(t, Person(""), PersonForField(FieldForm))
	})
}

func TestExpandConjugations(t *testing.T) {
	v := Verb{ID: "v1", English: "to speak", Infinitive: "parlare"}
	forms := ConjugationForms{
		{MoodIndicativo, TensePresente}:   {PersonIo: "parlo"},
		{MoodIndicativo, TenseImperfetto}: {PersonIo: "parlavo"},
		{MoodGerundio, TensePresente}:     {"": "parlando"},
	}

	got := ExpandConjugations(v, forms, []MoodTense{
		{MoodIndicativo, TensePresente},
		{MoodCongiuntivo, TensePresente}, // no stored forms
		{MoodGerundio, TensePresente},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "v1/indicativo/presente", got[0].ID())
	assert.Equal(t, "v1/gerundio/presente", got[1].ID())

	// Defaults apply when nothing is enabled.
	got = ExpandConjugations(v, forms, nil)
	require.Len(t, got, 2)
	assert.Equal(t, TenseImperfetto, got[1].Tense)
}

func TestParseMoodTense(t *testing.T) {
	mt, err := ParseMoodTense("congiuntivo:imperfetto")
	require.NoError(t, err)
	assert.Equal(t, MoodTense{MoodCongiuntivo, TenseImperfetto}, mt)

	_, err = ParseMoodTense("imperativo:futuro-semplice")
	assert.Error(t, err)
	_, err = ParseMoodTense("indicativo")
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"nouns", "noun"} {
		k, ok := ParseKind(s)
		assert.True(t, ok)
		assert.Equal(t, KindNoun, k)
	}
	_, ok := ParseKind("adverbs")
	assert.False(t, ok)
}

const validDocument = `{
  "version": 1,
  "nouns": [
    {"id": "n1", "english": "cat", "singular": "gatto", "plural": "gatti", "gender": "m"}
  ],
  "adjectives": [
    {"id": "a1", "english": "beautiful", "masculineSingular": "bello",
     "masculinePlural": "belli", "feminineSingular": "bella", "femininePlural": "belle"}
  ],
  "verbs": [
    {"id": "v1", "english": "to speak", "infinitive": "parlare",
     "conjugations": [
       {"mood": "indicativo", "tense": "presente",
        "forms": {"io": "parlo", "tu": "parli", "lui/lei": "parla",
                  "noi": "parliamo", "voi": "parlate", "loro": "parlano"}},
       {"mood": "gerundio", "tense": "presente", "form": "parlando"}
     ]}
  ]
}`

func TestReadDocument(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(validDocument))
	require.NoError(t, err)
	require.Len(t, doc.Nouns, 1)
	require.Len(t, doc.Adjectives, 1)
	require.Len(t, doc.Verbs, 1)

	assert.Equal(t, Masculine, doc.Nouns[0].Noun().Gender)
	assert.Equal(t, "belle", doc.Adjectives[0].Adjective().FemininePlural)

	forms := doc.Verbs[0].Forms()
	assert.Equal(t, "parliamo", forms[MoodTense{MoodIndicativo, TensePresente}][PersonNoi])
	assert.Equal(t, "parlando", forms[MoodTense{MoodGerundio, TensePresente}][""])
}

func TestReadDocument_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"missing version", `{"nouns": []}`},
		{"wrong version", `{"version": 2}`},
		{"missing plural", `{"version": 1, "nouns": [{"id": "n1", "english": "cat", "singular": "gatto"}]}`},
		{"empty singular", `{"version": 1, "nouns": [{"id": "n1", "english": "cat", "singular": "", "plural": "gatti"}]}`},
		{"bad gender", `{"version": 1, "nouns": [{"id": "n1", "english": "cat", "singular": "gatto", "plural": "gatti", "gender": "n"}]}`},
		{"duplicate id", `{"version": 1, "nouns": [
			{"id": "n1", "english": "cat", "singular": "gatto", "plural": "gatti"},
			{"id": "n1", "english": "dog", "singular": "cane", "plural": "cani"}]}`},
		{"unknown tense", `{"version": 1, "verbs": [{"id": "v1", "english": "to be", "infinitive": "essere",
			"conjugations": [{"mood": "indicativo", "tense": "aoristo", "forms": {"io": "sono"}}]}]}`},
		{"unknown person", `{"version": 1, "verbs": [{"id": "v1", "english": "to be", "infinitive": "essere",
			"conjugations": [{"mood": "indicativo", "tense": "presente", "forms": {"egli": "è"}}]}]}`},
		{"impersonal without form", `{"version": 1, "verbs": [{"id": "v1", "english": "to be", "infinitive": "essere",
			"conjugations": [{"mood": "participio", "tense": "passato"}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDocument(strings.NewReader(tt.doc))
			require.Error(t, err)
			var vErr *ValidationError
			assert.True(t, errors.As(err, &vErr), "want *ValidationError, got %T", err)
		})
	}
}
