package llm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config selects and configures the generation backend.
type Config struct {
	// Provider is one of "openai", "anthropic", "gemini", "openrouter", "mock".
	Provider string `yaml:"provider"`

	OpenAI     OpenAIConfig     `yaml:"openai"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`

	// Timeout bounds a single generation call. A call that runs out of time
	// surfaces as a generation failure.
	Timeout time.Duration `yaml:"timeout"`

	// MaxTokens is the response budget for each call.
	MaxTokens int `yaml:"max_tokens"`

	// Temperature for every call. Distractors and topics want variety.
	Temperature float64 `yaml:"temperature"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// RetryConfig configures WithRetry. MaxAttempts of 1 (the default) means
// no retry layer is installed.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns the defaults: OpenAI gpt-4o, single attempt, 30s.
func DefaultConfig() Config {
	return Config{
		Provider:   "openai",
		OpenAI:     OpenAIConfig{Model: "gpt-4o"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "openai/gpt-4o"},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout:     30 * time.Second,
		MaxTokens:   1024,
		Temperature: 0.9,
	}
}

// DefaultConfigPath returns the config file path: ELLA_CONFIG, then
// $XDG_CONFIG_HOME/ella/config.yaml.
func DefaultConfigPath() (string, error) {
	if p := os.Getenv("ELLA_CONFIG"); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "ella", "config.yaml"), nil
}

// LoadFile overlays the YAML file at path onto cfg. A missing file is not
// an error.
func LoadFile(cfg Config, path string) (Config, error) {
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays ELLA_* environment variables onto cfg.
func ApplyEnv(cfg Config) Config {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	set(&cfg.Provider, "ELLA_LLM_PROVIDER")

	set(&cfg.OpenAI.APIKey, "ELLA_OPENAI_API_KEY")
	set(&cfg.OpenAI.Model, "ELLA_OPENAI_MODEL")
	set(&cfg.OpenAI.BaseURL, "ELLA_OPENAI_BASE_URL")

	set(&cfg.Anthropic.APIKey, "ELLA_ANTHROPIC_API_KEY")
	set(&cfg.Anthropic.Model, "ELLA_ANTHROPIC_MODEL")

	set(&cfg.Gemini.APIKey, "ELLA_GEMINI_API_KEY")
	set(&cfg.Gemini.Model, "ELLA_GEMINI_MODEL")

	set(&cfg.OpenRouter.APIKey, "ELLA_OPENROUTER_API_KEY")
	set(&cfg.OpenRouter.Model, "ELLA_OPENROUTER_MODEL")

	if v := os.Getenv("ELLA_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}

	return cfg
}

// ConfigFromEnv is DefaultConfig with the environment applied.
func ConfigFromEnv() Config {
	return ApplyEnv(DefaultConfig())
}

// Discover fills in a provider from the conventional vendor key variables
// (OPENAI_API_KEY first, then Anthropic, Gemini, OpenRouter) when cfg has
// no usable key of its own. It reports whether a key was found.
func Discover(cfg Config) (Config, bool) {
	if cfg.Validate() == nil {
		return cfg, true
	}

	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return cfg, false
}

// Validate checks that the selected provider has what it needs.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case "openai":
		key, env = c.OpenAI.APIKey, "ELLA_OPENAI_API_KEY"
	case "anthropic":
		key, env = c.Anthropic.APIKey, "ELLA_ANTHROPIC_API_KEY"
	case "gemini":
		key, env = c.Gemini.APIKey, "ELLA_GEMINI_API_KEY"
	case "openrouter":
		key, env = c.OpenRouter.APIKey, "ELLA_OPENROUTER_API_KEY"
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
