package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvAppliesDefaults(t *testing.T) {
	cfg := FromEnv(envMap(map[string]string{
		EnvOpenAIKey: "  sk-test  ",
		EnvOpenAIOrg: "org-123",
	}))

	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "org-123", cfg.OpenAIOrg)
	assert.Equal(t, DefaultOllamaBaseURL, cfg.OllamaBaseURL)
	assert.Equal(t, DefaultWhisperBin, cfg.WhisperBin)
	assert.Equal(t, DefaultWhisperModel, cfg.WhisperModel)
}

func TestFromEnvKeepsOverrides(t *testing.T) {
	cfg := FromEnv(envMap(map[string]string{
		EnvOllamaBaseURL: "http://gpu-box:11434",
		EnvWhisperBin:    "/opt/whisper/main",
		EnvWhisperModel:  "/opt/whisper/ggml-small.en.bin",
	}))

	assert.Equal(t, "http://gpu-box:11434", cfg.OllamaBaseURL)
	assert.Equal(t, "/opt/whisper/main", cfg.WhisperBin)
	assert.Equal(t, "/opt/whisper/ggml-small.en.bin", cfg.WhisperModel)
}

func TestValidate(t *testing.T) {
	cfg := Config{OpenAIAPIKey: "sk-test"}

	tests := []struct {
		name      string
		providers []string
		wantErr   bool
	}{
		{"openai present", []string{"openai", "openai"}, false},
		{"local providers need nothing", []string{"whisper", "ollama"}, false},
		{"gemini missing", []string{"openai", "gemini"}, true},
		{"anthropic missing", []string{"anthropic"}, true},
		{"case insensitive", []string{"OpenAI"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cfg.Validate(tt.providers...)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMissingCredential)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateNamesEveryMissingVariableOnce(t *testing.T) {
	err := Config{}.Validate("gemini", "anthropic", "gemini")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvGeminiKey)
	assert.Contains(t, err.Error(), EnvAnthropicKey)
}

func TestLoadExplicitEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("VIDSTAMP_WHISPER_BIN=/from/file\n"), 0o644))

	t.Setenv(EnvWhisperBin, "")
	require.NoError(t, os.Unsetenv(EnvWhisperBin))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/file", cfg.WhisperBin)
}

func TestLoadMissingExplicitEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	require.Error(t, err)
}
