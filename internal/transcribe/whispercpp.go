package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mgpai22/vidstamp/internal/apierr"
	"github.com/mgpai22/vidstamp/internal/subtitle"
)

// implements Transcriber by running a local whisper.cpp binary
type WhisperCppTranscriber struct {
	binary  string
	model   string
	options Options
}

// -oj output of whisper.cpp
type whisperCppOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func NewWhisperCppTranscriber(binary, model string, opts Options) (*WhisperCppTranscriber, error) {
	if opts.Model != "" {
		model = opts.Model
	}
	if model == "" {
		return nil, fmt.Errorf("whisper model path is required")
	}

	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("whisper binary %q not found: %w", binary, err)
	}

	return &WhisperCppTranscriber{
		binary:  path,
		model:   model,
		options: opts,
	}, nil
}

// transcribes a 16 kHz wav file
func (t *WhisperCppTranscriber) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	outDir, err := os.MkdirTemp("", "vidstamp-whisper-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(outDir)

	prefix := filepath.Join(outDir, "transcript")

	cmd := exec.CommandContext(ctx, t.binary, t.args(audioPath, prefix)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", apierr.ErrTimeout, ctx.Err())
		}
		return nil, fmt.Errorf(
			"whisper.cpp failed: %w: %s",
			err,
			truncateString(strings.TrimSpace(stderr.String()), 500),
		)
	}

	data, err := os.ReadFile(prefix + ".json")
	if err != nil {
		return nil, apierr.Malformed("whisper.cpp produced no JSON output: %v", err)
	}

	segments, lang, err := parseWhisperCppOutput(data)
	if err != nil {
		return nil, err
	}
	if lang == "" {
		lang = t.options.Language
	}

	return &Result{
		Segments: segments,
		Language: lang,
		Duration: probeDuration(ctx, audioPath),
	}, nil
}

func (t *WhisperCppTranscriber) args(audioPath, outputPrefix string) []string {
	args := []string{
		"-m", t.model,
		"-f", audioPath,
		"-oj",
		"-of", outputPrefix,
		"-np",
	}
	if t.options.Language != "" {
		args = append(args, "-l", t.options.Language)
	}
	if t.options.Prompt != "" {
		args = append(args, "--prompt", t.options.Prompt)
	}
	return args
}

func parseWhisperCppOutput(data []byte) ([]subtitle.Segment, string, error) {
	var out whisperCppOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, "", apierr.Malformed("whisper.cpp output: %v", err)
	}

	segments := make([]subtitle.Segment, len(out.Transcription))
	for i, tr := range out.Transcription {
		segments[i] = subtitle.Segment{
			Start: float64(tr.Offsets.From) / 1000,
			End:   float64(tr.Offsets.To) / 1000,
			Text:  tr.Text,
		}
	}

	return segments, out.Result.Language, nil
}
