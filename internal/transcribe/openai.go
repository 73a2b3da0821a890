package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/mgpai22/vidstamp/internal/apierr"
	"github.com/mgpai22/vidstamp/internal/subtitle"
)

// implements Transcriber interface using OpenAI Audio API
type OpenAITranscriber struct {
	client  openai.Client
	model   string
	options Options
}

// verbose_json response structure from Whisper
type whisperVerboseResponse struct {
	Text     string             `json:"text"`
	Segments []subtitle.Segment `json:"segments"`
	Language string             `json:"language"`
	Duration float64            `json:"duration"`
}

func NewOpenAITranscriber(
	ctx context.Context,
	apiKey, organization string,
	opts Options,
) (*OpenAITranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if organization != "" {
		reqOpts = append(reqOpts, option.WithOrganization(organization))
	}
	client := openai.NewClient(reqOpts...)

	model := opts.Model
	if model == "" {
		model = "whisper-1"
	}

	return &OpenAITranscriber{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

// transcribes single audio file
func (t *OpenAITranscriber) Transcribe(
	ctx context.Context,
	audioPath string,
) (*Result, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	params := openai.AudioTranscriptionNewParams{
		File:                   file,
		Model:                  openai.AudioModel(t.model),
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []string{"segment"},
	}

	if t.options.Language != "" {
		params.Language = openai.String(t.options.Language)
	}

	if t.options.Prompt != "" {
		params.Prompt = openai.String(t.options.Prompt)
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", apierr.Classify(err))
	}

	duration := probeDuration(ctx, audioPath)

	segments, lang, err := parseVerboseJSONResponse(resp.RawJSON(), duration)
	if err != nil {
		if strings.TrimSpace(resp.Text) == "" {
			return nil, apierr.Malformed("whisper response: %v", err)
		}
		segments = []subtitle.Segment{{
			Start: 0,
			End:   duration.Seconds(),
			Text:  resp.Text,
		}}
	}

	if lang == "" {
		lang = t.options.Language
	}

	return &Result{
		Segments: segments,
		Language: lang,
		Duration: duration,
	}, nil
}

// segments are returned in order, text untouched
func parseVerboseJSONResponse(
	rawJSON string,
	fallbackDuration time.Duration,
) ([]subtitle.Segment, string, error) {
	if rawJSON == "" {
		return nil, "", fmt.Errorf("empty response")
	}

	var verboseResp whisperVerboseResponse
	if err := json.Unmarshal([]byte(rawJSON), &verboseResp); err != nil {
		return nil, "", fmt.Errorf("failed to parse verbose_json response: %w", err)
	}

	if len(verboseResp.Segments) == 0 {
		if strings.TrimSpace(verboseResp.Text) == "" {
			return nil, "", fmt.Errorf("no segments or text in response")
		}
		end := fallbackDuration.Seconds()
		if verboseResp.Duration > 0 {
			end = verboseResp.Duration
		}
		return []subtitle.Segment{{
			Start: 0,
			End:   end,
			Text:  verboseResp.Text,
		}}, verboseResp.Language, nil
	}

	return verboseResp.Segments, verboseResp.Language, nil
}
