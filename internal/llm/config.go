package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures the enrichment provider.
type Config struct {
	// Provider picks the backend: "anthropic", "openai", "gemini",
	// "openrouter" or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single request including its retries.
	Timeout time.Duration
}

// AnthropicConfig configures the Anthropic backend.
type AnthropicConfig struct {
	APIKey string
	Model  string // friendly alias or pinned ID; default "claude-haiku"
}

// OpenAIConfig configures the OpenAI backend. BaseURL points the client at
// any OpenAI-compatible endpoint.
type OpenAIConfig struct {
	APIKey  string
	Model   string // default "gpt-4o-mini"
	BaseURL string
}

// GeminiConfig configures the Gemini backend.
type GeminiConfig struct {
	APIKey string
	Model  string // default "gemini-flash"
}

// OpenRouterConfig configures the OpenRouter backend. Models use
// vendor-prefixed OpenRouter IDs.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // default "google/gemini-2.0-flash-exp"
	BaseURL string
}

// RetryConfig tunes the retry decorator.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the stock configuration: the cheap Anthropic model
// with three attempts and a 30 second ceiling per request.
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

// ConfigFromEnv overlays PRIMAGEN_* environment variables on the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	overlayEnv(&cfg.Provider, "PRIMAGEN_LLM_PROVIDER")
	overlayEnv(&cfg.Anthropic.APIKey, "PRIMAGEN_ANTHROPIC_API_KEY")
	overlayEnv(&cfg.Anthropic.Model, "PRIMAGEN_ANTHROPIC_MODEL")
	overlayEnv(&cfg.OpenAI.APIKey, "PRIMAGEN_OPENAI_API_KEY")
	overlayEnv(&cfg.OpenAI.Model, "PRIMAGEN_OPENAI_MODEL")
	overlayEnv(&cfg.OpenAI.BaseURL, "PRIMAGEN_OPENAI_BASE_URL")
	overlayEnv(&cfg.Gemini.APIKey, "PRIMAGEN_GEMINI_API_KEY")
	overlayEnv(&cfg.Gemini.Model, "PRIMAGEN_GEMINI_MODEL")
	overlayEnv(&cfg.OpenRouter.APIKey, "PRIMAGEN_OPENROUTER_API_KEY")
	overlayEnv(&cfg.OpenRouter.Model, "PRIMAGEN_OPENROUTER_MODEL")

	return cfg
}

func overlayEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig checks the providers' own API key variables in priority
// order (Gemini, OpenAI, Anthropic, OpenRouter) and returns a Config for
// the first key found. The second return is false when no key is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	candidates := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", "gemini", &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", "openai", &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", "anthropic", &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", "openrouter", &cfg.OpenRouter.APIKey},
	}
	for _, c := range candidates {
		if k := os.Getenv(c.env); k != "" {
			cfg.Provider = c.provider
			*c.key = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("PRIMAGEN_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("PRIMAGEN_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("PRIMAGEN_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("PRIMAGEN_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
