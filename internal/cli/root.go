package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mgpai22/vidstamp/internal/config"
	"github.com/mgpai22/vidstamp/internal/logging"
)

var (
	verbose bool
	envFile string
	logger  *logging.Logger
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "vidstamp",
	Short: "Captions and chapter timestamps for videos",
	Long: `vidstamp transcribes a video, writes the transcript as an SRT caption
file and asks a language model for chapter timestamps you can paste into a
video description.

Credentials are read from the environment or a .env file.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		loaded, err := config.Load(envFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&envFile, "env-file", "", "Load environment variables from this file instead of ./.env")
}
