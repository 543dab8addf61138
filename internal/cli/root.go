package cli

import (
	"fmt"

	"github.com/mgpai22/lrctool/internal/config"
	"github.com/mgpai22/lrctool/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configFile string
	cfg        *config.Config
	logger     *logging.Logger

	// set when a searched config file or .env could not be loaded; only the
	// translation step needs them, so plain conversions run on defaults
	cfgErr error
)

var rootCmd = &cobra.Command{
	Use:   "lrctool",
	Short: "Convert timestamped transcripts to SRT or ASS subtitles",
	Long: `lrctool converts LRC-style transcripts, one "[HH:MM:SS.fff]speaker<TAB>text"
line per utterance, into SubRip (SRT) or Advanced SubStation Alpha (ASS)
subtitles.

Lines can optionally be machine translated with Gemini, OpenAI or Anthropic
before the subtitles are written.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var opts []config.Option
		if configFile != "" {
			opts = append(opts, config.WithConfigFile(configFile))
		}

		cfgErr = nil
		loaded, err := config.Load(opts...)
		if err != nil {
			if configFile != "" {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfgErr = fmt.Errorf("failed to load configuration: %w", err)
			loaded = config.Default()
		}
		cfg = loaded

		logger = logging.NewLogger(verbose || cfg.Verbose)
		if cfgErr != nil {
			logger.Warnw("Ignoring unreadable configuration, using defaults",
				"error", cfgErr,
			)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configFile, "config", "", "Config file (default ./lrctool.yaml or ~/.config/lrctool/lrctool.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
