// Package chapters asks a language model for video chapter timestamps and
// writes them out as a plain text list.
package chapters

import (
	"context"
	"fmt"
	"time"

	"github.com/mgpai22/vidstamp/internal/config"
)

// one line of the timestamps file, e.g. "0:15 - Setup"
type Label string

// input for label generation
type Request struct {
	Transcript string        // flat transcript text
	Captions   string        // timed SRT body, preferred when present
	Duration   time.Duration // full video length
}

// interface for chapter label generation
type Generator interface {
	Generate(ctx context.Context, req Request) ([]Label, error)
}

// label generation provider
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
	ProviderOllama    Provider = "ollama"
)

const DefaultTemperature = 0.7

type Options struct {
	Model       string
	Prompt      string  // extra instructions appended to the user prompt
	Temperature float64 // 0 means DefaultTemperature
}

func (o Options) temperature() float64 {
	if o.Temperature > 0 {
		return o.Temperature
	}
	return DefaultTemperature
}

// creates Generator based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	cfg config.Config,
	opts Options,
) (Generator, error) {
	if err := cfg.Validate(string(provider)); err != nil {
		return nil, err
	}

	switch provider {
	case ProviderOpenAI:
		return NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIOrg, opts)
	case ProviderAnthropic:
		return NewAnthropicGenerator(cfg.AnthropicAPIKey, opts)
	case ProviderGemini:
		return NewGeminiGenerator(ctx, cfg.GeminiAPIKey, opts)
	case ProviderOllama:
		return NewOllamaGenerator(cfg.OllamaBaseURL, opts)
	default:
		return nil, fmt.Errorf("unsupported label provider: %s", provider)
	}
}
