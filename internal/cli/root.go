package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tessro/scrub/internal/config"
	scruberrors "github.com/tessro/scrub/internal/errors"
	"github.com/tessro/scrub/internal/logging"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool

	cfg *config.Config
)

// optionalConfig marks commands that run before a config file exists.
const optionalConfig = "optional-config"

var rootCmd = &cobra.Command{
	Use:   "scrub",
	Short: "Scrub through a day of recorded footage",
	Long:  `Scrub is a 24-hour playback timeline: drag the playhead, autoplay at 1X-8X, and jump or step through a day of recordings.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.scrubrc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig(cmd *cobra.Command) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		if errors.Is(err, scruberrors.ErrConfigNotFound) && cmd.Annotations[optionalConfig] == "true" {
			cfg = config.Default()
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if verbose {
		cfg.Log.Level = "debug"
	}

	return nil
}

// newLogger builds the process logger. Headless commands pass stderr;
// the dashboard passes nil so nothing reaches the alternate screen.
func newLogger(fallback io.Writer) (*slog.Logger, io.Closer, error) {
	return logging.New(cfg.Log, fallback)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, scruberrors.Format(err))
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}
