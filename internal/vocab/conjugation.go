package vocab

import "fmt"

// Mood is an Italian verb mood.
type Mood string

const (
	MoodIndicativo   Mood = "indicativo"
	MoodCongiuntivo  Mood = "congiuntivo"
	MoodCondizionale Mood = "condizionale"
	MoodImperativo   Mood = "imperativo"
	MoodInfinito     Mood = "infinito"
	MoodGerundio     Mood = "gerundio"
	MoodParticipio   Mood = "participio"
)

// Tense is an Italian verb tense within a mood.
type Tense string

const (
	TensePresente           Tense = "presente"
	TenseImperfetto         Tense = "imperfetto"
	TensePassatoProssimo    Tense = "passato-prossimo"
	TensePassatoRemoto      Tense = "passato-remoto"
	TenseFuturoSemplice     Tense = "futuro-semplice"
	TenseTrapassatoProssimo Tense = "trapassato-prossimo"
	TenseFuturoAnteriore    Tense = "futuro-anteriore"
	TensePassato            Tense = "passato"
	TenseTrapassato         Tense = "trapassato"
)

// Person is a grammatical person.
type Person string

const (
	PersonIo     Person = "io"
	PersonTu     Person = "tu"
	PersonLuiLei Person = "lui/lei"
	PersonNoi    Person = "noi"
	PersonVoi    Person = "voi"
	PersonLoro   Person = "loro"
)

// Persons lists grammatical persons in conjugation-table order.
var Persons = []Person{PersonIo, PersonTu, PersonLuiLei, PersonNoi, PersonVoi, PersonLoro}

// MoodTense names one conjugation table.
type MoodTense struct {
	Mood  Mood
	Tense Tense
}

func (mt MoodTense) String() string {
	return fmt.Sprintf("%s %s", mt.Mood, mt.Tense)
}

// tenses maps every mood to the tenses practiced for it.
var tenses = map[Mood][]Tense{
	MoodIndicativo: {
		TensePresente, TenseImperfetto, TensePassatoProssimo, TensePassatoRemoto,
		TenseFuturoSemplice, TenseTrapassatoProssimo, TenseFuturoAnteriore,
	},
	MoodCongiuntivo:  {TensePresente, TenseImperfetto, TensePassato, TenseTrapassato},
	MoodCondizionale: {TensePresente, TensePassato},
	MoodImperativo:   {TensePresente},
	MoodInfinito:     {TensePresente, TensePassato},
	MoodGerundio:     {TensePresente, TensePassato},
	MoodParticipio:   {TensePresente, TensePassato},
}

// Moods lists moods in display order.
var Moods = []Mood{
	MoodIndicativo, MoodCongiuntivo, MoodCondizionale, MoodImperativo,
	MoodInfinito, MoodGerundio, MoodParticipio,
}

// Tenses returns the tenses known for a mood.
func Tenses(m Mood) []Tense {
	return tenses[m]
}

// Valid reports whether the mood/tense pair exists.
func (mt MoodTense) Valid() bool {
	for _, t := range tenses[mt.Mood] {
		if t == mt.Tense {
			return true
		}
	}
	return false
}

// Impersonal reports whether the mood has no person inflection.
func (m Mood) Impersonal() bool {
	switch m {
	case MoodInfinito, MoodGerundio, MoodParticipio:
		return true
	}
	return false
}

// Valid reports whether p is a known person.
func (p Person) Valid() bool {
	for _, q := range Persons {
		if p == q {
			return true
		}
	}
	return false
}

// DefaultMoodTenses is the set enabled when the learner picks nothing.
var DefaultMoodTenses = []MoodTense{
	{MoodIndicativo, TensePresente},
	{MoodIndicativo, TensePassatoProssimo},
	{MoodIndicativo, TenseImperfetto},
	{MoodIndicativo, TenseFuturoSemplice},
}

// Conjugation is one verb's forms for a single mood and tense.
// Impersonal tenses store their only form under the empty person.
type Conjugation struct {
	VerbID     string
	English    string
	Infinitive string
	Mood       Mood
	Tense      Tense
	Forms      map[Person]string
}

// ID identifies the conjugation table within the verb.
func (c Conjugation) ID() string {
	return fmt.Sprintf("%s/%s/%s", c.VerbID, c.Mood, c.Tense)
}

// Prompt is the text shown above the table.
func (c Conjugation) Prompt() string {
	return fmt.Sprintf("%s (%s): %s %s", c.English, c.Infinitive, c.Mood, c.Tense)
}

// Fields returns one field per inflected person in table order, or a single
// form field for impersonal tenses. Persons without a stored form are
// skipped (the imperative has no "io").
func (c Conjugation) Fields() []Field {
	if c.Mood.Impersonal() {
		return []Field{{Key: FieldForm, Answer: c.Forms[""]}}
	}
	fields := make([]Field, 0, len(Persons))
	for _, p := range Persons {
		form, ok := c.Forms[p]
		if !ok || form == "" {
			continue
		}
		fields = append(fields, Field{Key: string(p), Answer: form})
	}
	return fields
}

// PersonForField maps a conjugation field key back to a person.
// The impersonal form field maps to the empty person.
func PersonForField(key string) Person {
	if key == FieldForm {
		return ""
	}
	return Person(key)
}

// ConjugationForms is the stored table of a verb, keyed by mood and tense.
type ConjugationForms map[MoodTense]map[Person]string

// ExpandConjugations builds practice tables for the enabled mood/tense pairs.
// Pairs without stored forms are skipped.
func ExpandConjugations(v Verb, forms ConjugationForms, enabled []MoodTense) []Conjugation {
	if len(enabled) == 0 {
		enabled = DefaultMoodTenses
	}
	var out []Conjugation
	for _, mt := range enabled {
		f, ok := forms[mt]
		if !ok || len(f) == 0 {
			continue
		}
		out = append(out, Conjugation{
			VerbID:     v.ID,
			English:    v.English,
			Infinitive: v.Infinitive,
			Mood:       mt.Mood,
			Tense:      mt.Tense,
			Forms:      f,
		})
	}
	return out
}

// ParseMoodTense parses "mood:tense" (e.g. "indicativo:presente").
func ParseMoodTense(s string) (MoodTense, error) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			mt := MoodTense{Mood: Mood(s[:i]), Tense: Tense(s[i+1:])}
			if !mt.Valid() {
				return MoodTense{}, fmt.Errorf("unknown mood/tense %q", s)
			}
			return mt, nil
		}
	}
	return MoodTense{}, fmt.Errorf("invalid mood/tense %q: want mood:tense", s)
}
