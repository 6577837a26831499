package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by ITALIANO_LLM_PROVIDER.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration. An empty Provider disables
// LLM features.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for OpenAI-compatible APIs
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, defaults to the public endpoint
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // default https://openrouter.ai/api/v1
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with no provider selected.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// envBindings maps ITALIANO_* variables onto config fields.
func (c *Config) envBindings() map[string]*string {
	return map[string]*string{
		"ITALIANO_LLM_PROVIDER":       &c.Provider,
		"ITALIANO_ANTHROPIC_API_KEY":  &c.Anthropic.APIKey,
		"ITALIANO_ANTHROPIC_MODEL":    &c.Anthropic.Model,
		"ITALIANO_OPENAI_API_KEY":     &c.OpenAI.APIKey,
		"ITALIANO_OPENAI_MODEL":       &c.OpenAI.Model,
		"ITALIANO_OPENAI_BASE_URL":    &c.OpenAI.BaseURL,
		"ITALIANO_GEMINI_API_KEY":     &c.Gemini.APIKey,
		"ITALIANO_GEMINI_MODEL":       &c.Gemini.Model,
		"ITALIANO_GEMINI_BASE_URL":    &c.Gemini.BaseURL,
		"ITALIANO_OPENROUTER_API_KEY": &c.OpenRouter.APIKey,
		"ITALIANO_OPENROUTER_MODEL":   &c.OpenRouter.Model,
	}
}

// ConfigFromEnv builds a Config from ITALIANO_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for name, dst := range cfg.envBindings() {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("ITALIANO_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	return cfg
}

// DiscoverConfig probes the vendors' standard API key variables in priority
// order (Gemini, OpenAI, Anthropic, OpenRouter) and selects the first
// provider whose key is found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	probes := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter.APIKey},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			cfg.Provider = p.provider
			*p.key = k
			return cfg, true
		}
	}
	return Config{}, false
}

// ResolveConfig prefers explicit ITALIANO_* configuration and falls back to
// discovery. The returned config has an empty Provider when nothing is set.
func ResolveConfig() Config {
	cfg := ConfigFromEnv()
	if cfg.Provider != "" {
		return cfg
	}
	if found, ok := DiscoverConfig(); ok {
		return found
	}
	return cfg
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != ""
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "ITALIANO_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "ITALIANO_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "ITALIANO_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "ITALIANO_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	case "":
		return fmt.Errorf("no LLM provider configured (set ITALIANO_LLM_PROVIDER)")
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
