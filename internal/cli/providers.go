package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mgpai22/vidstamp/internal/apierr"
	"github.com/mgpai22/vidstamp/internal/chapters"
	"github.com/mgpai22/vidstamp/internal/transcribe"
)

const (
	retryBaseDelay = 2 * time.Second
	retryMaxDelay  = 30 * time.Second
)

func parseTranscriber(name string) (transcribe.Provider, error) {
	switch p := transcribe.Provider(strings.ToLower(strings.TrimSpace(name))); p {
	case transcribe.ProviderOpenAI, transcribe.ProviderGemini, transcribe.ProviderWhisper:
		return p, nil
	default:
		return "", fmt.Errorf(
			"%w: unsupported transcriber %q: use openai, gemini, or whisper",
			ErrUsage,
			name,
		)
	}
}

func parseLabeler(name string) (chapters.Provider, error) {
	switch p := chapters.Provider(strings.ToLower(strings.TrimSpace(name))); p {
	case chapters.ProviderOpenAI, chapters.ProviderAnthropic, chapters.ProviderGemini, chapters.ProviderOllama:
		return p, nil
	default:
		return "", fmt.Errorf(
			"%w: unsupported labeler %q: use openai, anthropic, gemini, or ollama",
			ErrUsage,
			name,
		)
	}
}

func retryConfig(retries int, op string) apierr.RetryConfig {
	return apierr.RetryConfig{
		MaxRetries: retries,
		BaseDelay:  retryBaseDelay,
		MaxDelay:   retryMaxDelay,
		OnRetry: func(attempt int, err error) {
			logger.Warnw("Retrying after transient failure",
				"op", op,
				"attempt", attempt,
				"error", err,
			)
		},
	}
}

// retries transient transcription failures
type retryingTranscriber struct {
	inner transcribe.Transcriber
	cfg   apierr.RetryConfig
}

func (r retryingTranscriber) Transcribe(ctx context.Context, audioPath string) (*transcribe.Result, error) {
	return apierr.RetryWithBackoff(ctx, r.cfg, func() (*transcribe.Result, error) {
		return r.inner.Transcribe(ctx, audioPath)
	}, apierr.IsRetryable)
}

// retries transient label generation failures
type retryingGenerator struct {
	inner chapters.Generator
	cfg   apierr.RetryConfig
}

func (r retryingGenerator) Generate(ctx context.Context, req chapters.Request) ([]chapters.Label, error) {
	return apierr.RetryWithBackoff(ctx, r.cfg, func() ([]chapters.Label, error) {
		return r.inner.Generate(ctx, req)
	}, apierr.IsRetryable)
}

func newGenerator(
	ctx context.Context,
	labeler string,
	model, prompt string,
	retries int,
) (chapters.Generator, error) {
	provider, err := parseLabeler(labeler)
	if err != nil {
		return nil, err
	}

	g, err := chapters.Factory(ctx, provider, cfg, chapters.Options{
		Model:  model,
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create label generator: %w", err)
	}

	return retryingGenerator{inner: g, cfg: retryConfig(retries, "label generation")}, nil
}
