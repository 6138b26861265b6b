package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/scrub/internal/catalog"
	"github.com/tessro/scrub/internal/timeline"
)

var segmentsDate string

var channelsCmd = &cobra.Command{
	Use:     "channels",
	Aliases: []string{"ch"},
	Short:   "List camera channels",
	RunE: func(cmd *cobra.Command, args []string) error {
		channels := catalog.Channels()
		out := cmd.OutOrStdout()
		if JSONOutput() {
			return printJSON(out, channels)
		}

		t := NewTableWriter(out, "ID", "NAME", "STATUS")
		for _, ch := range channels {
			t.Row(strconv.Itoa(ch.ID), ch.Name, string(ch.Status))
		}
		t.Flush()
		return nil
	},
}

var segmentsCmd = &cobra.Command{
	Use:   "segments [file]",
	Short: "Show the recordings and motion markers for a day",
	Long: `List recording spans and motion markers from a segments file. Without a
file (and no timeline.segments setting) the built-in sample day is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSegments,
}

func init() {
	segmentsCmd.Flags().StringVarP(&segmentsDate, "date", "d", "", "date for the sample day (YYYY/MM/DD, default today)")
	rootCmd.AddCommand(channelsCmd)
	rootCmd.AddCommand(segmentsCmd)
}

func runSegments(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	day, err := loadSegments(path)
	if err != nil {
		return err
	}
	if day == nil {
		date, err := parseDateFlag(segmentsDate)
		if err != nil {
			return err
		}
		if date.IsZero() {
			date = timeline.Today()
		}
		sample := catalog.SampleDay(date)
		day = &sample
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return printJSON(out, day)
	}

	if day.Date != "" {
		_, _ = fmt.Fprintf(out, "Date: %s\n\n", day.Date)
	}
	t := NewTableWriter(out, "START", "END", "KIND", "LENGTH")
	for _, r := range day.Recordings {
		t.Row(clockOf(r.Start), clockOf(r.End), string(r.Kind), (r.End - r.Start).String())
	}
	t.Flush()

	if len(day.Motion) > 0 {
		_, _ = fmt.Fprintln(out)
		m := NewTableWriter(out, "MOTION", "LABEL")
		for _, mk := range day.Motion {
			m.Row(clockOf(mk.At), mk.Label)
		}
		m.Flush()
	}
	return nil
}

// clockOf formats an offset since midnight as HH:MM:SS.
func clockOf(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
}
