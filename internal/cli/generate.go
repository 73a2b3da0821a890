package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgpai22/vidstamp/internal/audio"
	"github.com/mgpai22/vidstamp/internal/chapters"
	"github.com/mgpai22/vidstamp/internal/pipeline"
	"github.com/mgpai22/vidstamp/internal/transcribe"
	"github.com/mgpai22/vidstamp/internal/video"
)

var generateCmd = &cobra.Command{
	Use:   "generate [video_file]",
	Short: "Generate captions and chapter timestamps for a video",
	Long: `Generate an SRT caption file and a list of chapter timestamps for a video.

The audio track is extracted with ffmpeg, transcribed, and written as SRT.
The timed captions are then sent to a language model which proposes chapter
timestamps in the format video platforms expect in a description.

Transcribers: openai (Whisper API), gemini, whisper (local whisper.cpp).
Labelers: openai, anthropic, gemini, ollama (local).

Examples:
  vidstamp generate talk.mp4
  vidstamp generate talk.mp4 --captions talk.srt --timestamps talk.txt
  vidstamp generate talk.mp4 --transcriber whisper --labeler ollama
  vidstamp generate lecture.mkv --transcriber gemini --chunk-duration 10`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().
		String("captions", "segments.srt", "Output path for the SRT caption file")
	generateCmd.Flags().
		String("timestamps", "timestamps.txt", "Output path for the chapter timestamps")
	generateCmd.Flags().
		StringP("transcriber", "t", "openai", "Transcription provider (openai, gemini, whisper)")
	generateCmd.Flags().
		StringP("labeler", "m", "openai", "Timestamp label provider (openai, anthropic, gemini, ollama)")
	generateCmd.Flags().
		String("transcribe-model", "", "Transcription model (provider default when empty)")
	generateCmd.Flags().
		String("label-model", "", "Label model (provider default when empty)")
	generateCmd.Flags().
		StringP("language", "l", "en", "Spoken language code (e.g., en, es, fr)")
	generateCmd.Flags().
		IntP("chunk-duration", "d", 0, "Split audio into chunks of this many minutes (0 = no splitting)")
	generateCmd.Flags().
		Int("retries", 2, "Retries for rate-limited or failed provider calls")
	generateCmd.Flags().
		String("prompt", "", "Extra instructions for chapter generation")
	generateCmd.Flags().
		String("transcribe-prompt", "", "Vocabulary hint passed to the transcriber")
	generateCmd.Flags().
		String("work-dir", "", "Keep extracted audio in this directory instead of a temp dir")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	ctx := cmd.Context()

	if _, err := os.Stat(videoPath); err != nil {
		return &audio.MediaError{Path: videoPath, Err: err}
	}
	if !audio.IsMediaFile(videoPath) {
		return fmt.Errorf(
			"%w: unsupported file type: %s (expected a video or audio file)",
			ErrUsage,
			filepath.Ext(videoPath),
		)
	}

	captionsPath, _ := cmd.Flags().GetString("captions")
	timestampsPath, _ := cmd.Flags().GetString("timestamps")
	transcriberName, _ := cmd.Flags().GetString("transcriber")
	labelerName, _ := cmd.Flags().GetString("labeler")
	transcribeModel, _ := cmd.Flags().GetString("transcribe-model")
	labelModel, _ := cmd.Flags().GetString("label-model")
	language, _ := cmd.Flags().GetString("language")
	chunkDuration, _ := cmd.Flags().GetInt("chunk-duration")
	retries, _ := cmd.Flags().GetInt("retries")
	prompt, _ := cmd.Flags().GetString("prompt")
	transcribePrompt, _ := cmd.Flags().GetString("transcribe-prompt")
	workDir, _ := cmd.Flags().GetString("work-dir")

	if chunkDuration < 0 {
		return fmt.Errorf("%w: --chunk-duration must not be negative", ErrUsage)
	}
	if retries < 0 {
		return fmt.Errorf("%w: --retries must not be negative", ErrUsage)
	}

	transcriberProvider, err := parseTranscriber(transcriberName)
	if err != nil {
		return err
	}
	labelerProvider, err := parseLabeler(labelerName)
	if err != nil {
		return err
	}

	if err := cfg.Validate(string(transcriberProvider), string(labelerProvider)); err != nil {
		return err
	}

	logger.Infow("Starting caption and timestamp generation",
		"input", videoPath,
		"captions", captionsPath,
		"timestamps", timestampsPath,
		"transcriber", transcriberProvider,
		"labeler", labelerProvider,
		"chunk_duration", chunkDuration,
	)

	transcriber, err := transcribe.Factory(ctx, transcriberProvider, cfg, transcribe.Options{
		Language: language,
		Model:    transcribeModel,
		Prompt:   transcribePrompt,
	})
	if err != nil {
		return fmt.Errorf("failed to create transcriber: %w", err)
	}

	generator, err := newGenerator(ctx, string(labelerProvider), labelModel, prompt, retries)
	if err != nil {
		return err
	}

	p := pipeline.New(pipeline.Deps{
		Media: video.NewProcessor(),
		Transcriber: retryingTranscriber{
			inner: transcriber,
			cfg:   retryConfig(retries, "transcription"),
		},
		Generator: generator,
		Log:       logger,
	})

	result, err := p.Run(ctx, pipeline.Input{
		VideoPath:      videoPath,
		CaptionsPath:   captionsPath,
		TimestampsPath: timestampsPath,
		WorkDir:        workDir,
		AudioFormat:    transcriberProvider.AudioFormat(),
		ChunkDuration:  time.Duration(chunkDuration) * time.Minute,
	})
	if err != nil {
		return err
	}

	printResult(cmd, result)

	return nil
}

func printResult(cmd *cobra.Command, result *pipeline.Result) {
	out := cmd.OutOrStdout()

	absCaptions, _ := filepath.Abs(result.CaptionsPath)
	absTimestamps, _ := filepath.Abs(result.TimestampsPath)

	fmt.Fprintf(out, "Video duration: %s\n", chapters.FormatDuration(result.Duration))
	fmt.Fprintf(out, "Captions written: %s\n", absCaptions)
	fmt.Fprintf(out, "  Entries: %d\n", len(result.Entries))
	fmt.Fprintf(out, "Timestamps written: %s\n", absTimestamps)
	for _, l := range result.Labels {
		fmt.Fprintf(out, "  %s\n", l)
	}
}
