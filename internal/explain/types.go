package explain

import "github.com/abhisek/italiano/internal/vocab"

// Mistake is a field the learner answered incorrectly.
type Mistake struct {
	Kind     vocab.Kind
	Prompt   string // e.g. "house" or "to be (essere) indicativo presente"
	Field    string // field key, e.g. "plural" or "noi"
	Given    string
	Expected string
}

// Explanation is an LLM-generated note on why the answer was wrong.
type Explanation struct {
	Explanation string
	Rule        string
}

// Config holds explanation generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the defaults used by the TUI.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.2,
	}
}
