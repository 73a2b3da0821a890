package transcribe

import (
	"context"
	"fmt"
	"time"

	"github.com/mgpai22/vidstamp/internal/audio"
	"github.com/mgpai22/vidstamp/internal/config"
	"github.com/mgpai22/vidstamp/internal/subtitle"
)

// transcription result
type Result struct {
	Segments []subtitle.Segment
	Language string
	Duration time.Duration
}

// interface for audio transcription
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
}

// transcription service provider
type Provider string

const (
	ProviderWhisper Provider = "whisper"
	ProviderOpenAI  Provider = "openai"
	ProviderGemini  Provider = "gemini"
)

// audio container each provider expects from extraction
func (p Provider) AudioFormat() string {
	if p == ProviderWhisper {
		return "wav"
	}
	return "mp3"
}

// transcription options
type Options struct {
	Language string // Source language of audio
	Model    string
	Prompt   string
}

// creates transcriber based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	cfg config.Config,
	opts Options,
) (Transcriber, error) {
	if err := cfg.Validate(string(provider)); err != nil {
		return nil, err
	}

	switch provider {
	case ProviderGemini:
		return NewGeminiTranscriber(ctx, cfg.GeminiAPIKey, opts)
	case ProviderWhisper:
		return NewWhisperCppTranscriber(cfg.WhisperBin, cfg.WhisperModel, opts)
	case ProviderOpenAI:
		return NewOpenAITranscriber(ctx, cfg.OpenAIAPIKey, cfg.OpenAIOrg, opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

// transcribes chunks one after another, shifting every segment by the
// chunk's start offset
func TranscribeChunks(
	ctx context.Context,
	t Transcriber,
	chunks []audio.ChunkInfo,
) (*Result, error) {
	if len(chunks) == 0 {
		return &Result{}, nil
	}

	merged := &Result{}
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := t.Transcribe(ctx, chunk.Path)
		if err != nil {
			return nil, fmt.Errorf("chunk %d failed: %w", chunk.Index, err)
		}

		merged.Segments = append(
			merged.Segments,
			shiftSegments(result.Segments, chunk.StartTime)...,
		)
		if merged.Language == "" {
			merged.Language = result.Language
		}
	}

	merged.Duration = chunks[len(chunks)-1].EndTime

	return merged, nil
}

func shiftSegments(segments []subtitle.Segment, offset time.Duration) []subtitle.Segment {
	shift := offset.Seconds()
	adjusted := make([]subtitle.Segment, len(segments))
	for i, seg := range segments {
		adjusted[i] = subtitle.Segment{
			Start: seg.Start + shift,
			End:   seg.End + shift,
			Text:  seg.Text,
		}
	}
	return adjusted
}

// best effort duration of the audio file sent to a provider
func probeDuration(ctx context.Context, audioPath string) time.Duration {
	d, err := audio.GetDuration(ctx, audioPath)
	if err != nil {
		return 0
	}
	return d
}
