package explain

import "github.com/abhisek/italiano/internal/llm"

// ExplanationSchema constrains the structured output of an explanation.
var ExplanationSchema = &llm.Schema{
	Name:        "grammar-explanation",
	Description: "Short explanation of an Italian vocabulary or grammar mistake",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "Why the given answer is wrong (1-3 sentences, English)",
			},
			"rule": map[string]any{
				"type":        "string",
				"description": "The grammar rule or pattern to remember, one line",
			},
		},
		"required":             []any{"explanation", "rule"},
		"additionalProperties": false,
	},
}
