// Package pipeline runs the video to captions and chapters flow. Every step
// runs after the previous one has finished; nothing is retried here.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mgpai22/vidstamp/internal/apierr"
	"github.com/mgpai22/vidstamp/internal/audio"
	"github.com/mgpai22/vidstamp/internal/chapters"
	"github.com/mgpai22/vidstamp/internal/logging"
	"github.com/mgpai22/vidstamp/internal/subtitle"
	"github.com/mgpai22/vidstamp/internal/transcribe"
	"github.com/mgpai22/vidstamp/internal/video"
)

const (
	opTranscribe = "transcription"
	opLabels     = "label generation"
)

// splits an audio file into fixed-length pieces
type ChunkFunc func(
	ctx context.Context,
	audioPath string,
	chunkDuration time.Duration,
	outputDir string,
) ([]audio.ChunkInfo, error)

type Deps struct {
	Media       video.Processor
	Transcriber transcribe.Transcriber
	Generator   chapters.Generator
	Chunk       ChunkFunc // defaults to audio.ChunkAudio
	Log         *logging.Logger
}

type Pipeline struct{ d Deps }

func New(d Deps) Pipeline {
	if d.Chunk == nil {
		d.Chunk = audio.ChunkAudio
	}
	if d.Log == nil {
		d.Log = logging.Nop()
	}
	return Pipeline{d: d}
}

type Input struct {
	VideoPath      string
	CaptionsPath   string
	TimestampsPath string

	// WorkDir holds extracted audio; a temp dir is used and removed when empty.
	WorkDir string

	AudioFormat   string        // mp3 or wav
	ChunkDuration time.Duration // 0 sends the whole file in one request
}

type Result struct {
	Duration       time.Duration
	Language       string
	Entries        []subtitle.Entry
	Labels         []chapters.Label
	CaptionsPath   string
	TimestampsPath string
}

func (p Pipeline) Run(ctx context.Context, in Input) (*Result, error) {
	log := p.d.Log

	info, err := p.d.Media.GetInfo(ctx, in.VideoPath)
	if err != nil {
		return nil, err
	}
	if !info.HasAudio {
		return nil, &audio.MediaError{Path: in.VideoPath, Err: audio.ErrNoAudioStream}
	}
	log.Infow("video probed",
		"path", in.VideoPath,
		"duration", chapters.FormatDuration(info.Duration),
		"audio_codec", info.AudioCodec,
	)

	workDir, cleanup, err := prepareWorkDir(in.WorkDir)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	format := in.AudioFormat
	if format == "" {
		format = "mp3"
	}
	audioPath := filepath.Join(workDir, "audio."+format)

	opts := video.DefaultExtractAudioOptions()
	opts.Format = format
	if format == "mp3" {
		opts.Bitrate = "64k"
	}
	if err := p.d.Media.ExtractAudio(ctx, in.VideoPath, audioPath, opts); err != nil {
		return nil, err
	}
	log.Debugw("audio extracted", "path", audioPath, "format", format)

	tr, err := p.transcribe(ctx, audioPath, workDir, in.ChunkDuration)
	if err != nil {
		return nil, apierr.Wrap(opTranscribe, err)
	}
	log.Infow("transcription complete", "segments", len(tr.Segments), "language", tr.Language)

	doc, err := subtitle.Format(tr.Segments)
	if err != nil {
		return nil, err
	}

	if err := doc.WriteFile(in.CaptionsPath); err != nil {
		return nil, err
	}
	log.Infow("captions written", "path", in.CaptionsPath, "entries", len(doc.Entries))

	labels, err := p.labels(ctx, doc, info.Duration, in.TimestampsPath)
	if err != nil {
		return nil, err
	}

	return &Result{
		Duration:       info.Duration,
		Language:       tr.Language,
		Entries:        doc.Entries,
		Labels:         labels,
		CaptionsPath:   in.CaptionsPath,
		TimestampsPath: in.TimestampsPath,
	}, nil
}

type LabelsInput struct {
	CaptionsPath   string
	TimestampsPath string

	// Duration of the video; probed from VideoPath when zero.
	Duration  time.Duration
	VideoPath string
}

// regenerates the timestamps file from an existing caption file
func (p Pipeline) RunLabels(ctx context.Context, in LabelsInput) (*Result, error) {
	duration := in.Duration
	if duration <= 0 {
		if in.VideoPath == "" || p.d.Media == nil {
			return nil, fmt.Errorf("video duration is required")
		}
		info, err := p.d.Media.GetInfo(ctx, in.VideoPath)
		if err != nil {
			return nil, err
		}
		duration = info.Duration
	}

	entries, err := subtitle.ParseFile(in.CaptionsPath)
	if err != nil {
		return nil, err
	}

	doc, err := subtitle.Format(subtitle.SegmentsFromEntries(entries))
	if err != nil {
		return nil, err
	}

	labels, err := p.labels(ctx, doc, duration, in.TimestampsPath)
	if err != nil {
		return nil, err
	}

	return &Result{
		Duration:       duration,
		Entries:        doc.Entries,
		Labels:         labels,
		CaptionsPath:   in.CaptionsPath,
		TimestampsPath: in.TimestampsPath,
	}, nil
}

func (p Pipeline) transcribe(
	ctx context.Context,
	audioPath, workDir string,
	chunkDuration time.Duration,
) (*transcribe.Result, error) {
	if chunkDuration <= 0 {
		return p.d.Transcriber.Transcribe(ctx, audioPath)
	}

	chunks, err := p.d.Chunk(ctx, audioPath, chunkDuration, filepath.Join(workDir, "chunks"))
	if err != nil {
		return nil, err
	}
	defer audio.CleanupChunks(chunks)

	p.d.Log.Infow("transcribing in chunks", "chunks", len(chunks), "chunk_duration", chunkDuration)

	return transcribe.TranscribeChunks(ctx, p.d.Transcriber, chunks)
}

func (p Pipeline) labels(
	ctx context.Context,
	doc *subtitle.Document,
	duration time.Duration,
	path string,
) ([]chapters.Label, error) {
	labels, err := p.d.Generator.Generate(ctx, chapters.Request{
		Transcript: doc.Transcript,
		Captions:   doc.Body,
		Duration:   duration,
	})
	if err != nil {
		return nil, apierr.Wrap(opLabels, err)
	}

	if err := chapters.WriteLabels(path, labels); err != nil {
		return nil, err
	}
	p.d.Log.Infow("timestamps written", "path", path, "labels", len(labels))

	return labels, nil
}

func prepareWorkDir(dir string) (string, func(), error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", nil, fmt.Errorf("failed to create work directory: %w", err)
		}
		return dir, func() {}, nil
	}

	tmp, err := os.MkdirTemp("", "vidstamp-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	return tmp, func() { _ = os.RemoveAll(tmp) }, nil
}
