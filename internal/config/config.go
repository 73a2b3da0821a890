package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read at startup.
const (
	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvOpenAIOrg     = "OPENAI_API_ORG"
	EnvGeminiKey     = "GEMINI_API_KEY"
	EnvAnthropicKey  = "ANTHROPIC_API_KEY"
	EnvOllamaBaseURL = "OLLAMA_BASE_URL"
	EnvWhisperBin    = "VIDSTAMP_WHISPER_BIN"
	EnvWhisperModel  = "VIDSTAMP_WHISPER_MODEL"
)

// Defaults for the local providers.
const (
	DefaultOllamaBaseURL = "http://localhost:11434"
	DefaultWhisperBin    = "whisper-cli"
	DefaultWhisperModel  = "models/ggml-base.en.bin"
)

// ErrMissingCredential indicates a provider was selected without its API key.
var ErrMissingCredential = errors.New("missing credential")

// Config holds credentials and endpoints for the external providers. It is
// built once at process start and handed to the provider constructors.
type Config struct {
	OpenAIAPIKey    string
	OpenAIOrg       string
	GeminiAPIKey    string
	AnthropicAPIKey string
	OllamaBaseURL   string
	WhisperBin      string
	WhisperModel    string
}

// Load reads envFile (or ./.env when envFile is empty) into the process
// environment and then builds a Config from it. A missing default .env is not
// an error; a missing explicit envFile is. Variables already set in the
// environment take precedence over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	return FromEnv(os.Getenv), nil
}

// FromEnv builds a Config from getenv, applying defaults for local providers.
func FromEnv(getenv func(string) string) Config {
	cfg := Config{
		OpenAIAPIKey:    strings.TrimSpace(getenv(EnvOpenAIKey)),
		OpenAIOrg:       strings.TrimSpace(getenv(EnvOpenAIOrg)),
		GeminiAPIKey:    strings.TrimSpace(getenv(EnvGeminiKey)),
		AnthropicAPIKey: strings.TrimSpace(getenv(EnvAnthropicKey)),
		OllamaBaseURL:   strings.TrimSpace(getenv(EnvOllamaBaseURL)),
		WhisperBin:      strings.TrimSpace(getenv(EnvWhisperBin)),
		WhisperModel:    strings.TrimSpace(getenv(EnvWhisperModel)),
	}

	if cfg.OllamaBaseURL == "" {
		cfg.OllamaBaseURL = DefaultOllamaBaseURL
	}
	if cfg.WhisperBin == "" {
		cfg.WhisperBin = DefaultWhisperBin
	}
	if cfg.WhisperModel == "" {
		cfg.WhisperModel = DefaultWhisperModel
	}

	return cfg
}

// APIKey returns the key for a hosted provider and the variable it comes
// from. Local providers (whisper, ollama) have no key.
func (c Config) APIKey(provider string) (key, envVar string) {
	switch strings.ToLower(provider) {
	case "openai":
		return c.OpenAIAPIKey, EnvOpenAIKey
	case "gemini":
		return c.GeminiAPIKey, EnvGeminiKey
	case "anthropic":
		return c.AnthropicAPIKey, EnvAnthropicKey
	default:
		return "", ""
	}
}

// Validate checks that every hosted provider in providers has a key.
func (c Config) Validate(providers ...string) error {
	var missing []string
	seen := make(map[string]bool)
	for _, p := range providers {
		key, envVar := c.APIKey(p)
		if envVar == "" || key != "" || seen[envVar] {
			continue
		}
		seen[envVar] = true
		missing = append(missing, fmt.Sprintf("%s (provider %s)", envVar, p))
	}

	if len(missing) > 0 {
		return fmt.Errorf(
			"%w: set %s in the environment or a .env file",
			ErrMissingCredential,
			strings.Join(missing, ", "),
		)
	}
	return nil
}
