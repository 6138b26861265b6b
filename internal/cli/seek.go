package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	scruberrors "github.com/tessro/scrub/internal/errors"
	"github.com/tessro/scrub/internal/ruler"
	"github.com/tessro/scrub/internal/scrub"
	"github.com/tessro/scrub/internal/timeline"
)

var (
	seekX      float64
	seekWidth  float64
	seekOrigin float64
	seekDate   string
)

var seekCmd = &cobra.Command{
	Use:   "seek [HH:MM[:SS]]",
	Short: "Resolve a time or ruler coordinate to a playhead position",
	Long: `Show where the playhead lands for a typed time, or for a pointer at X
on a ruler of the given width.`,
	Example: `  scrub seek 06:30
  scrub seek --x 250 --width 1000
  scrub seek --x 420 --width 800 --origin 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSeek,
}

func init() {
	seekCmd.Flags().Float64Var(&seekX, "x", 0, "pointer X coordinate")
	seekCmd.Flags().Float64Var(&seekWidth, "width", 0, "ruler width")
	seekCmd.Flags().Float64Var(&seekOrigin, "origin", 0, "ruler left edge")
	seekCmd.Flags().StringVarP(&seekDate, "date", "d", "", "date for the timestamp (YYYY/MM/DD, default today)")
	rootCmd.AddCommand(seekCmd)
}

type seekResult struct {
	Position  float64 `json:"position"`
	Clock     string  `json:"clock"`
	Offset    float64 `json:"offset_percent"`
	Timestamp string  `json:"timestamp"`
}

func runSeek(cmd *cobra.Command, args []string) error {
	var p float64
	switch {
	case len(args) == 1:
		tod, err := timeline.ParseTimeOfDay(args[0])
		if err != nil {
			return err
		}
		p = tod.Position()
	case cmd.Flags().Changed("x"):
		if seekWidth <= 0 {
			return fmt.Errorf("%w: --width must be positive", scruberrors.ErrInvalidGeometry)
		}
		geom := scrub.Geometry{OriginX: seekOrigin, Width: seekWidth, Window: ruler.FullDay}
		p = geom.PositionAt(seekX)
	default:
		return fmt.Errorf("give a time or --x with --width")
	}

	date, err := parseDateFlag(seekDate)
	if err != nil {
		return err
	}
	if date.IsZero() {
		date = timeline.Today()
	}

	tod := timeline.TimeAt(p)
	res := seekResult{
		Position:  p,
		Clock:     tod.String(),
		Offset:    ruler.PercentOffset(p, ruler.FullDay),
		Timestamp: date.At(tod).Format("2006/01/02 15:04:05"),
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return printJSON(out, res)
	}

	t := NewTableWriter(out)
	t.Row("Position:", fmt.Sprintf("%.4f", res.Position))
	t.Row("Clock:", res.Clock)
	t.Row("Offset:", fmt.Sprintf("%.2f%%", res.Offset))
	t.Row("Timestamp:", res.Timestamp)
	t.Flush()
	return nil
}
