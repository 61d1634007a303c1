// Package config binds the application configuration from environment
// variables and resolves provider credentials from a secrets directory
// before falling back to the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DefaultSecretsDir is where container orchestrators mount file-per-key
// secrets.
const DefaultSecretsDir = "/run/secrets"

// Provider names accepted in LLM_PROVIDER.
const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// AppConfig defines all configurable parameters, sourced from environment
// variables (loaded from .env for local runs). API keys are resolved
// separately through Credentials so the secrets directory wins over env.
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`
	SecretsDir  string `envconfig:"SECRETS_DIR" default:"/run/secrets"`

	// Catalog
	CatalogPath string `envconfig:"CATALOG_PATH" default:"catalog.json"`

	// Retrieval
	Embedder EmbedderConfig

	// Vehicle resolution
	Vehicle VehicleConfig

	// LLM provider selection. Required only when both credentials are set.
	Provider string `envconfig:"LLM_PROVIDER"`
	Groq     GroqConfig
	Gemini   GeminiConfig
}

type EmbedderConfig struct {
	Type string `envconfig:"EMBEDDER_TYPE" default:"tfidf"`

	// Remote embedder settings, used when Type is "openai".
	BaseURL string `envconfig:"EMBEDDER_BASE_URL"`
	Model   string `envconfig:"EMBEDDER_MODEL" default:"text-embedding-3-small"`
}

type VehicleConfig struct {
	DecodeBaseURL string        `envconfig:"VIN_DECODE_BASE_URL" default:"https://vpic.nhtsa.dot.gov"`
	DecodeTimeout time.Duration `envconfig:"VIN_DECODE_TIMEOUT" default:"5s"`
}

type GroqConfig struct {
	BaseURL     string  `envconfig:"GROQ_BASE_URL"`
	Model       string  `envconfig:"GROQ_MODEL" default:"llama3-70b-8192"`
	Temperature float32 `envconfig:"GROQ_TEMPERATURE" default:"0.6"`
	MaxTokens   int     `envconfig:"GROQ_MAX_TOKENS" default:"1000"`
}

type GeminiConfig struct {
	BaseURL     string  `envconfig:"GEMINI_BASE_URL"`
	Temperature float32 `envconfig:"GEMINI_TEMPERATURE" default:"0.6"`
	MaxTokens   int     `envconfig:"GEMINI_MAX_TOKENS" default:"1000"`
}

// Load binds AppConfig from the environment.
func Load() (*AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing environment config: %w", err)
	}
	if cfg.SecretsDir == "" {
		cfg.SecretsDir = DefaultSecretsDir
	}
	return &cfg, nil
}

// Credentials holds the resolved provider API keys. An empty value means the
// credential is not configured anywhere.
type Credentials struct {
	GroqAPIKey     string
	GeminiAPIKey   string
	EmbedderAPIKey string
}

// Credentials resolves API keys, preferring file-per-key entries in the
// secrets directory over environment variables.
func (c *AppConfig) Credentials() Credentials {
	return Credentials{
		GroqAPIKey:     lookupSecret(c.SecretsDir, "GROQ_API_KEY"),
		GeminiAPIKey:   lookupSecret(c.SecretsDir, "GEMINI_API_KEY"),
		EmbedderAPIKey: lookupSecret(c.SecretsDir, "OPENAI_API_KEY"),
	}
}

// SelectProvider decides which generation provider runs for this process.
// With both credentials configured the choice must be made explicitly via
// LLM_PROVIDER; with exactly one the selection is automatic; with none the
// process cannot start.
func (c *AppConfig) SelectProvider(creds Credentials) (string, error) {
	switch {
	case creds.GroqAPIKey != "" && creds.GeminiAPIKey != "":
		switch strings.ToLower(c.Provider) {
		case ProviderGroq, ProviderGemini:
			return strings.ToLower(c.Provider), nil
		case "":
			return "", fmt.Errorf("both GROQ_API_KEY and GEMINI_API_KEY are configured; set LLM_PROVIDER to %q or %q", ProviderGroq, ProviderGemini)
		default:
			return "", fmt.Errorf("unknown LLM_PROVIDER %q", c.Provider)
		}
	case creds.GroqAPIKey != "":
		return ProviderGroq, nil
	case creds.GeminiAPIKey != "":
		return ProviderGemini, nil
	default:
		return "", fmt.Errorf("no provider credential configured; set GROQ_API_KEY or GEMINI_API_KEY")
	}
}

// lookupSecret reads <dir>/<key> if present, then falls back to the
// environment variable of the same name.
func lookupSecret(dir, key string) string {
	if dir != "" {
		if data, err := os.ReadFile(filepath.Join(dir, key)); err == nil {
			if v := strings.TrimSpace(string(data)); v != "" {
				return v
			}
		}
	}
	return strings.TrimSpace(os.Getenv(key))
}
