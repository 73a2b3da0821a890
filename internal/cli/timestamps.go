package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mgpai22/vidstamp/internal/pipeline"
	"github.com/mgpai22/vidstamp/internal/video"
)

var timestampsCmd = &cobra.Command{
	Use:   "timestamps [captions.srt]",
	Short: "Regenerate chapter timestamps from an existing caption file",
	Long: `Ask a language model for chapter timestamps using an SRT file produced
earlier, without transcribing the video again.

The video length is taken from --duration or probed from --video.

Examples:
  vidstamp timestamps segments.srt --video talk.mp4
  vidstamp timestamps segments.srt --duration 42m10s --labeler anthropic`,
	Args: cobra.ExactArgs(1),
	RunE: runTimestamps,
}

func init() {
	rootCmd.AddCommand(timestampsCmd)

	timestampsCmd.Flags().
		String("timestamps", "timestamps.txt", "Output path for the chapter timestamps")
	timestampsCmd.Flags().
		StringP("labeler", "m", "openai", "Timestamp label provider (openai, anthropic, gemini, ollama)")
	timestampsCmd.Flags().
		String("label-model", "", "Label model (provider default when empty)")
	timestampsCmd.Flags().
		Duration("duration", 0, "Video length (e.g., 42m10s)")
	timestampsCmd.Flags().
		String("video", "", "Video file to probe for its length")
	timestampsCmd.Flags().
		Int("retries", 2, "Retries for rate-limited or failed provider calls")
	timestampsCmd.Flags().
		String("prompt", "", "Extra instructions for chapter generation")
}

func runTimestamps(cmd *cobra.Command, args []string) error {
	captionsPath := args[0]
	ctx := cmd.Context()

	timestampsPath, _ := cmd.Flags().GetString("timestamps")
	labeler, _ := cmd.Flags().GetString("labeler")
	labelModel, _ := cmd.Flags().GetString("label-model")
	duration, _ := cmd.Flags().GetDuration("duration")
	videoPath, _ := cmd.Flags().GetString("video")
	retries, _ := cmd.Flags().GetInt("retries")
	prompt, _ := cmd.Flags().GetString("prompt")

	if duration <= 0 && videoPath == "" {
		return fmt.Errorf("%w: one of --duration or --video is required", ErrUsage)
	}
	if retries < 0 {
		return fmt.Errorf("%w: --retries must not be negative", ErrUsage)
	}
	if _, err := os.Stat(captionsPath); err != nil {
		return fmt.Errorf("captions file: %w", err)
	}

	generator, err := newGenerator(ctx, labeler, labelModel, prompt, retries)
	if err != nil {
		return err
	}

	logger.Infow("Regenerating timestamps",
		"captions", captionsPath,
		"timestamps", timestampsPath,
		"labeler", labeler,
	)

	p := pipeline.New(pipeline.Deps{
		Media:     video.NewProcessor(),
		Generator: generator,
		Log:       logger,
	})

	result, err := p.RunLabels(ctx, pipeline.LabelsInput{
		CaptionsPath:   captionsPath,
		TimestampsPath: timestampsPath,
		Duration:       duration,
		VideoPath:      videoPath,
	})
	if err != nil {
		return err
	}

	printResult(cmd, result)

	return nil
}
