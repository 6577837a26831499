package explain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/italiano/internal/llm"
)

// ErrDisabled is returned when no LLM provider is configured.
var ErrDisabled = errors.New("explanations need an LLM provider (set ITALIANO_LLM_PROVIDER)")

// Service produces explanations for wrong answers.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates an explanation service. A nil provider yields a
// service whose calls fail with ErrDisabled.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Enabled reports whether a provider is wired in.
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

type explanationOutput struct {
	Explanation string `json:"explanation"`
	Rule        string `json:"rule"`
}

// Explain asks the provider why m.Given is wrong.
func (s *Service) Explain(ctx context.Context, m Mistake) (*Explanation, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	ctx = llm.WithPurpose(ctx, "explain")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(m)},
		},
		Schema:      ExplanationSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("explanation: %w", err)
	}

	var out explanationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse explanation response: %w", err)
	}
	return &Explanation{Explanation: out.Explanation, Rule: out.Rule}, nil
}
