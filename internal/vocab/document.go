package vocab

import (
	"encoding/json"
	"fmt"
	"io"
)

// DocumentVersion is the import document format version.
const DocumentVersion = 1

// Document is a vocabulary import file.
type Document struct {
	Version    int              `json:"version"`
	Nouns      []NounEntry      `json:"nouns,omitempty"`
	Adjectives []AdjectiveEntry `json:"adjectives,omitempty"`
	Verbs      []VerbEntry      `json:"verbs,omitempty"`
}

// NounEntry is a noun as written in an import file.
type NounEntry struct {
	ID       string `json:"id"`
	English  string `json:"english"`
	Singular string `json:"singular"`
	Plural   string `json:"plural"`
	Gender   string `json:"gender,omitempty"`
}

// AdjectiveEntry is an adjective as written in an import file.
type AdjectiveEntry struct {
	ID                string `json:"id"`
	English           string `json:"english"`
	MasculineSingular string `json:"masculineSingular"`
	MasculinePlural   string `json:"masculinePlural"`
	FeminineSingular  string `json:"feminineSingular"`
	FemininePlural    string `json:"femininePlural"`
}

// VerbEntry is a verb with its conjugation tables.
type VerbEntry struct {
	ID           string             `json:"id"`
	English      string             `json:"english"`
	Infinitive   string             `json:"infinitive"`
	Reflexive    bool               `json:"reflexive,omitempty"`
	Conjugations []ConjugationEntry `json:"conjugations,omitempty"`
}

// ConjugationEntry is one mood/tense table. Impersonal tenses use "form".
type ConjugationEntry struct {
	Mood  string            `json:"mood"`
	Tense string            `json:"tense"`
	Forms map[string]string `json:"forms,omitempty"`
	Form  string            `json:"form,omitempty"`
}

// ValidationError reports an import document that does not conform.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid vocabulary document: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ReadDocument parses and validates an import document.
func ReadDocument(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ValidationError{Err: err}
	}
	if err := doc.check(); err != nil {
		return nil, &ValidationError{Err: err}
	}
	return &doc, nil
}

// check enforces rules the schema cannot express.
func (d *Document) check() error {
	seen := make(map[string]bool)
	mark := func(kind Kind, id string) error {
		k := string(kind) + ":" + id
		if seen[k] {
			return fmt.Errorf("duplicate %s id %q", kind, id)
		}
		seen[k] = true
		return nil
	}
	for _, n := range d.Nouns {
		if err := mark(KindNoun, n.ID); err != nil {
			return err
		}
	}
	for _, a := range d.Adjectives {
		if err := mark(KindAdjective, a.ID); err != nil {
			return err
		}
	}
	for _, v := range d.Verbs {
		if err := mark(KindVerb, v.ID); err != nil {
			return err
		}
		for _, c := range v.Conjugations {
			mt := MoodTense{Mood: Mood(c.Mood), Tense: Tense(c.Tense)}
			if !mt.Valid() {
				return fmt.Errorf("verb %q: unknown mood/tense %s", v.ID, mt)
			}
			if mt.Mood.Impersonal() {
				if c.Form == "" {
					return fmt.Errorf("verb %q: %s needs a form", v.ID, mt)
				}
				continue
			}
			for p := range c.Forms {
				if !Person(p).Valid() {
					return fmt.Errorf("verb %q: %s: unknown person %q", v.ID, mt, p)
				}
			}
		}
	}
	return nil
}

// Noun converts the entry.
func (e NounEntry) Noun() Noun {
	return Noun{ID: e.ID, English: e.English, Singular: e.Singular, Plural: e.Plural, Gender: Gender(e.Gender)}
}

// Adjective converts the entry.
func (e AdjectiveEntry) Adjective() Adjective {
	return Adjective{
		ID:                e.ID,
		English:           e.English,
		MasculineSingular: e.MasculineSingular,
		MasculinePlural:   e.MasculinePlural,
		FeminineSingular:  e.FeminineSingular,
		FemininePlural:    e.FemininePlural,
	}
}

// Verb converts the entry.
func (e VerbEntry) Verb() Verb {
	return Verb{ID: e.ID, English: e.English, Infinitive: e.Infinitive, Reflexive: e.Reflexive}
}

// Forms converts the entry's tables.
func (e VerbEntry) Forms() ConjugationForms {
	out := make(ConjugationForms, len(e.Conjugations))
	for _, c := range e.Conjugations {
		mt := MoodTense{Mood: Mood(c.Mood), Tense: Tense(c.Tense)}
		forms := make(map[Person]string)
		if mt.Mood.Impersonal() {
			forms[""] = c.Form
		} else {
			for p, f := range c.Forms {
				forms[Person(p)] = f
			}
		}
		out[mt] = forms
	}
	return out
}
