package vocab

// Kind identifies a vocabulary practice kind.
type Kind string

const (
	KindNoun        Kind = "noun"
	KindAdjective   Kind = "adjective"
	KindVerb        Kind = "verb"
	KindConjugation Kind = "conjugation"
)

// AllKinds lists the practice kinds in menu order.
var AllKinds = []Kind{KindNoun, KindAdjective, KindVerb, KindConjugation}

// ParseKind maps a user-supplied name (singular or plural) to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "noun", "nouns":
		return KindNoun, true
	case "adjective", "adjectives", "adj":
		return KindAdjective, true
	case "verb", "verbs":
		return KindVerb, true
	case "conjugation", "conjugations", "conj":
		return KindConjugation, true
	}
	return "", false
}

// Field is one gradable sub-answer of an item.
type Field struct {
	Key    string
	Answer string
}

// Gender is the grammatical gender of a noun.
type Gender string

const (
	Masculine Gender = "m"
	Feminine  Gender = "f"
)

// Field keys for nouns and adjectives.
const (
	FieldSingular          = "singular"
	FieldPlural            = "plural"
	FieldMasculineSingular = "masculineSingular"
	FieldMasculinePlural   = "masculinePlural"
	FieldFeminineSingular  = "feminineSingular"
	FieldFemininePlural    = "femininePlural"
	FieldInfinitive        = "infinitive"
	FieldForm              = "form"
)

// Noun is a noun with its singular and plural forms.
type Noun struct {
	ID       string
	English  string
	Singular string
	Plural   string
	Gender   Gender
}

// Fields returns the answer fields in input order.
func (n Noun) Fields() []Field {
	return []Field{
		{Key: FieldSingular, Answer: n.Singular},
		{Key: FieldPlural, Answer: n.Plural},
	}
}

// Adjective is an adjective with its four inflected forms.
type Adjective struct {
	ID                string
	English           string
	MasculineSingular string
	MasculinePlural   string
	FeminineSingular  string
	FemininePlural    string
}

// Fields returns the answer fields in input order.
func (a Adjective) Fields() []Field {
	return []Field{
		{Key: FieldMasculineSingular, Answer: a.MasculineSingular},
		{Key: FieldMasculinePlural, Answer: a.MasculinePlural},
		{Key: FieldFeminineSingular, Answer: a.FeminineSingular},
		{Key: FieldFemininePlural, Answer: a.FemininePlural},
	}
}

// Verb is a verb practiced by translating to its infinitive.
type Verb struct {
	ID         string
	English    string
	Infinitive string
	Reflexive  bool
}

// Fields returns the single translation field.
func (v Verb) Fields() []Field {
	return []Field{{Key: FieldInfinitive, Answer: v.Infinitive}}
}
