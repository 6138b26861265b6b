package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessro/scrub/internal/catalog"
	"github.com/tessro/scrub/internal/core"
	"github.com/tessro/scrub/internal/timeline"
	"github.com/tessro/scrub/internal/tui"
)

var (
	tuiDate     string
	tuiAt       string
	tuiSegments string
)

var tuiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Launch the playback dashboard",
	Long: `Launch the interactive playback dashboard.

The dashboard shows:
  • Channels - camera feeds to review
  • Activity - playback events as they happen
  • Feed     - the selected channel with date and time overlay
  • Ruler    - 24 hours of recordings; drag with the mouse to scrub

Keyboard shortcuts:
  q, Ctrl+C    Quit
  ?            Help
  Space        Play/Pause
  Home/End     Jump to 00:00:00 / 24:00:00
  ←/→          Step back/forward
  s            Cycle speed (1X, 2X, 4X, 8X)
  z            Toggle 24H / 1H ruler
  [/]          Previous/next day
  t            Type a time
  i/o/x        Mark clip in/out, clear
  y            Copy current timestamp
  Tab          Switch panel`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiDate, "date", "d", "", "date to review (YYYY/MM/DD, default today)")
	tuiCmd.Flags().StringVar(&tuiAt, "at", "", "start time (HH:MM[:SS])")
	tuiCmd.Flags().StringVar(&tuiSegments, "segments", "", "segments file (default: timeline.segments)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	date, err := parseDateFlag(tuiDate)
	if err != nil {
		return err
	}

	day, err := loadSegments(tuiSegments)
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(nil)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	return tui.Run(tui.Options{
		Config: cfg,
		Logger: logger,
		Date:   date,
		Day:    day,
		At:     tuiAt,
	})
}

// parseDateFlag returns the zero date for an empty flag.
func parseDateFlag(s string) (timeline.Date, error) {
	if s == "" {
		return timeline.Date{}, nil
	}
	return timeline.ParseDate(s)
}

// loadSegments reads the segments file named by the flag or config. It
// returns nil when neither is set. Skipped entries are reported on stderr.
func loadSegments(path string) (*core.Day, error) {
	if path == "" {
		path = cfg.Timeline.Segments
	}
	if path == "" {
		return nil, nil
	}

	result, err := catalog.LoadDay(path)
	if err != nil {
		return nil, err
	}
	if result.HasErrors() {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "warning: skipped entries in %s: %s\n", path, result.ErrorSummary())
	}
	return &result.Data, nil
}
