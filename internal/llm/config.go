package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single LLM request
	// (including retries). Default: 30s.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenRouter or compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-exp"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
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

// setFromEnv overwrites dst with the named variable's value when set.
func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// ConfigFromEnv builds a Config from SOLOQUIZ_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setFromEnv(&cfg.Provider, "SOLOQUIZ_LLM_PROVIDER")

	setFromEnv(&cfg.Anthropic.APIKey, "SOLOQUIZ_ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "SOLOQUIZ_ANTHROPIC_MODEL")

	setFromEnv(&cfg.OpenAI.APIKey, "SOLOQUIZ_OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "SOLOQUIZ_OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "SOLOQUIZ_OPENAI_BASE_URL")

	setFromEnv(&cfg.Gemini.APIKey, "SOLOQUIZ_GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "SOLOQUIZ_GEMINI_MODEL")

	setFromEnv(&cfg.OpenRouter.APIKey, "SOLOQUIZ_OPENROUTER_API_KEY")
	setFromEnv(&cfg.OpenRouter.Model, "SOLOQUIZ_OPENROUTER_MODEL")

	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none
// is set.
func DiscoverConfig() (Config, bool) {
	probes := []struct {
		env      string
		provider string
		key      func(*Config) *string
	}{
		{"GEMINI_API_KEY", "gemini", func(c *Config) *string { return &c.Gemini.APIKey }},
		{"OPENAI_API_KEY", "openai", func(c *Config) *string { return &c.OpenAI.APIKey }},
		{"ANTHROPIC_API_KEY", "anthropic", func(c *Config) *string { return &c.Anthropic.APIKey }},
		{"OPENROUTER_API_KEY", "openrouter", func(c *Config) *string { return &c.OpenRouter.APIKey }},
	}

	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			cfg := DefaultConfig()
			cfg.Provider = p.provider
			*p.key(&cfg) = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key, envName string
	switch c.Provider {
	case "mock":
		return nil
	case "anthropic":
		key, envName = c.Anthropic.APIKey, "SOLOQUIZ_ANTHROPIC_API_KEY"
	case "openai":
		key, envName = c.OpenAI.APIKey, "SOLOQUIZ_OPENAI_API_KEY"
	case "gemini":
		key, envName = c.Gemini.APIKey, "SOLOQUIZ_GEMINI_API_KEY"
	case "openrouter":
		key, envName = c.OpenRouter.APIKey, "SOLOQUIZ_OPENROUTER_API_KEY"
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}

	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", envName, c.Provider)
	}
	return nil
}
