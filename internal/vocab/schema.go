package vocab

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const documentSchemaURL = "schema://vocabulary-document.json"

// DocumentSchema is the JSON Schema an import file must satisfy.
var DocumentSchema = map[string]any{
	"type":     "object",
	"required": []any{"version"},
	"properties": map[string]any{
		"version": map[string]any{
			"type":  "integer",
			"const": DocumentVersion,
		},
		"nouns": map[string]any{
			"type":  "array",
			"items": entrySchema("id", "english", "singular", "plural"),
		},
		"adjectives": map[string]any{
			"type": "array",
			"items": entrySchema("id", "english",
				"masculineSingular", "masculinePlural", "feminineSingular", "femininePlural"),
		},
		"verbs": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "english", "infinitive"},
				"properties": map[string]any{
					"id":         nonEmptyString,
					"english":    nonEmptyString,
					"infinitive": nonEmptyString,
					"reflexive":  map[string]any{"type": "boolean"},
					"conjugations": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"mood", "tense"},
							"properties": map[string]any{
								"mood":  nonEmptyString,
								"tense": nonEmptyString,
								"form":  nonEmptyString,
								"forms": map[string]any{
									"type":                 "object",
									"additionalProperties": nonEmptyString,
								},
							},
						},
					},
				},
			},
		},
	},
}

var nonEmptyString = map[string]any{"type": "string", "minLength": 1}

// entrySchema describes an object whose listed properties are required
// non-empty strings.
func entrySchema(required ...string) map[string]any {
	props := make(map[string]any, len(required)+1)
	req := make([]any, 0, len(required))
	for _, r := range required {
		props[r] = nonEmptyString
		req = append(req, r)
	}
	props["gender"] = map[string]any{"type": "string", "enum": []any{"m", "f"}}
	return map[string]any{
		"type":       "object",
		"required":   req,
		"properties": props,
	}
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func documentSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler expects a decoded JSON value, not Go maps with typed ints.
		defBytes, err := json.Marshal(DocumentSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(documentSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(documentSchemaURL)
	})
	return compiledSchema, compileErr
}

// validateDocument checks raw JSON against DocumentSchema.
func validateDocument(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ValidationError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	sch, err := documentSchema()
	if err != nil {
		return fmt.Errorf("compile document schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}
