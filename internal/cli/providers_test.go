package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgpai22/vidstamp/internal/apierr"
	"github.com/mgpai22/vidstamp/internal/chapters"
	"github.com/mgpai22/vidstamp/internal/subtitle"
	"github.com/mgpai22/vidstamp/internal/transcribe"
)

func TestParseTranscriber(t *testing.T) {
	tests := []struct {
		in      string
		want    transcribe.Provider
		wantErr bool
	}{
		{"openai", transcribe.ProviderOpenAI, false},
		{"Gemini", transcribe.ProviderGemini, false},
		{" whisper ", transcribe.ProviderWhisper, false},
		{"anthropic", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTranscriber(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUsage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLabeler(t *testing.T) {
	tests := []struct {
		in      string
		want    chapters.Provider
		wantErr bool
	}{
		{"openai", chapters.ProviderOpenAI, false},
		{"ANTHROPIC", chapters.ProviderAnthropic, false},
		{"gemini", chapters.ProviderGemini, false},
		{"ollama", chapters.ProviderOllama, false},
		{"whisper", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLabeler(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUsage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type flakyTranscriber struct {
	failures int
	err      error
	calls    int
}

func (f *flakyTranscriber) Transcribe(context.Context, string) (*transcribe.Result, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return &transcribe.Result{Segments: []subtitle.Segment{{Start: 0, End: 1, Text: "ok"}}}, nil
}

type flakyGenerator struct {
	failures int
	err      error
	calls    int
}

func (f *flakyGenerator) Generate(context.Context, chapters.Request) ([]chapters.Label, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return []chapters.Label{"0:00 - Intro"}, nil
}

func fastRetry(retries int) apierr.RetryConfig {
	return apierr.RetryConfig{MaxRetries: retries, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}
}

func TestRetryingTranscriber(t *testing.T) {
	rateLimited := apierr.FromStatus(429, errors.New("slow down"))

	inner := &flakyTranscriber{failures: 2, err: rateLimited}
	r := retryingTranscriber{inner: inner, cfg: fastRetry(2)}

	res, err := r.Transcribe(context.Background(), "audio.mp3")
	require.NoError(t, err)
	assert.Len(t, res.Segments, 1)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryingTranscriberGivesUp(t *testing.T) {
	inner := &flakyTranscriber{failures: 5, err: apierr.FromStatus(503, errors.New("unavailable"))}
	r := retryingTranscriber{inner: inner, cfg: fastRetry(1)}

	_, err := r.Transcribe(context.Background(), "audio.mp3")
	assert.ErrorIs(t, err, apierr.ErrServer)
	assert.Equal(t, 2, inner.calls)
}

func TestRetryingGeneratorSkipsPermanentErrors(t *testing.T) {
	inner := &flakyGenerator{failures: 1, err: apierr.FromStatus(401, errors.New("bad key"))}
	g := retryingGenerator{inner: inner, cfg: fastRetry(3)}

	_, err := g.Generate(context.Background(), chapters.Request{})
	assert.ErrorIs(t, err, apierr.ErrAuthFailed)
	assert.Equal(t, 1, inner.calls)
}

func TestRetryingGeneratorZeroRetries(t *testing.T) {
	inner := &flakyGenerator{failures: 1, err: apierr.FromStatus(429, errors.New("slow down"))}
	g := retryingGenerator{inner: inner, cfg: fastRetry(0)}

	_, err := g.Generate(context.Background(), chapters.Request{})
	assert.ErrorIs(t, err, apierr.ErrRateLimit)
	assert.Equal(t, 1, inner.calls)
}
