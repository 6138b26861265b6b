// Package ruler projects the playback position and recording segments onto
// a ruler of a given width. Everything here is a pure function of its
// inputs; nothing writes the position.
package ruler

import (
	"fmt"
	"math"
	"time"

	"github.com/tessro/scrub/internal/core"
	"github.com/tessro/scrub/internal/timeline"
)

const day = 24 * time.Hour

// HourSpan is the share of the position range one hour covers.
const HourSpan = timeline.MaxPosition / 24

// Window is the slice of the day the ruler shows, in positions.
type Window struct {
	From float64
	To   float64
}

// FullDay shows the whole 24 hours.
var FullDay = Window{From: timeline.MinPosition, To: timeline.MaxPosition}

// Around returns a window of the given span centered on p, shifted to stay
// inside the day.
func Around(p, span float64) Window {
	if span <= 0 || span >= timeline.MaxPosition {
		return FullDay
	}
	from := timeline.Clamp(p) - span/2
	if from < timeline.MinPosition {
		from = timeline.MinPosition
	}
	if from+span >= timeline.MaxPosition {
		return Window{From: timeline.MaxPosition - span, To: timeline.MaxPosition}
	}
	return Window{From: from, To: from + span}
}

// Normalize orders and clamps the bounds; an empty window becomes FullDay.
func (w Window) Normalize() Window {
	from, to := timeline.Clamp(w.From), timeline.Clamp(w.To)
	if from > to {
		from, to = to, from
	}
	if to-from <= 0 {
		return FullDay
	}
	return Window{From: from, To: to}
}

// Span returns the width of the window in positions.
func (w Window) Span() float64 {
	return w.To - w.From
}

// IsFullDay reports whether the window covers the whole day.
func (w Window) IsFullDay() bool {
	return w.Normalize() == FullDay
}

// Contains reports whether p lies inside the window.
func (w Window) Contains(p float64) bool {
	w = w.Normalize()
	return p >= w.From && p <= w.To
}

// Fraction maps p to [0,1] across the window, clamping outside values.
func (w Window) Fraction(p float64) float64 {
	w = w.Normalize()
	f := (timeline.Clamp(p) - w.From) / w.Span()
	return math.Max(0, math.Min(1, f))
}

// Label describes the window, e.g. "24H" or "1H".
func (w Window) Label() string {
	w = w.Normalize()
	hours := w.Span() / HourSpan
	if math.Abs(hours-math.Round(hours)) < 1e-9 {
		return fmt.Sprintf("%dH", int(math.Round(hours)))
	}
	return fmt.Sprintf("%.1fH", hours)
}

// PercentOffset returns the playhead offset as a percentage of the ruler.
func PercentOffset(p float64, w Window) float64 {
	return w.Fraction(p) * 100
}

// Column returns the cell (or pixel) index of p on a ruler width cells
// wide. The start of the window is column 0, the end is width-1.
func Column(p float64, width int, w Window) int {
	if width <= 1 {
		return 0
	}
	return int(math.Round(w.Fraction(p) * float64(width-1)))
}

// PositionOf converts an offset since midnight to a position.
func PositionOf(d time.Duration) float64 {
	return timeline.Clamp(float64(d) / float64(day) * timeline.MaxPosition)
}

// Tick is an hour mark on the ruler.
type Tick struct {
	Hour   int
	Column int
	Label  string
}

// HourTicks returns the hour marks visible in the window.
func HourTicks(width int, w Window) []Tick {
	w = w.Normalize()
	var ticks []Tick
	for h := 0; h <= 24; h++ {
		p := float64(h) * HourSpan
		if !w.Contains(p) {
			continue
		}
		if h == 24 && w.IsFullDay() {
			// The full-day ruler labels hour starts only, as 00:00..23:00.
			continue
		}
		ticks = append(ticks, Tick{
			Hour:   h,
			Column: Column(p, width, w),
			Label:  fmt.Sprintf("%02d:00", h),
		})
	}
	return ticks
}

// Span is a recorded range projected onto columns, inclusive.
type Span struct {
	Start int
	End   int
	Kind  core.SpanKind
}

// Projection is a day of segment data laid out on a ruler.
type Projection struct {
	Width      int
	Recordings []Span
	Motion     []int
}

// Project lays out recording spans and motion markers. Segments outside
// the window are dropped; partial ones are cut at the window edge.
func Project(d core.Day, width int, w Window) Projection {
	w = w.Normalize()
	proj := Projection{Width: width}
	if width <= 0 {
		return proj
	}

	for _, r := range d.Recordings {
		from, to := PositionOf(r.Start), PositionOf(r.End)
		if to <= w.From || from >= w.To || to <= from {
			continue
		}
		proj.Recordings = append(proj.Recordings, Span{
			Start: Column(math.Max(from, w.From), width, w),
			End:   Column(math.Min(to, w.To), width, w),
			Kind:  r.Kind,
		})
	}

	for _, m := range d.Motion {
		p := PositionOf(m.At)
		if w.Contains(p) {
			proj.Motion = append(proj.Motion, Column(p, width, w))
		}
	}

	return proj
}

// Cell is what one ruler column shows.
type Cell int

const (
	CellEmpty Cell = iota
	CellRecorded
	CellEvent
	CellMotion
)

// Cells flattens a projection to one cell per column. Motion wins over
// event recordings, which win over continuous recordings.
func (p Projection) Cells() []Cell {
	cells := make([]Cell, p.Width)
	for _, s := range p.Recordings {
		c := CellRecorded
		if s.Kind == core.SpanEvent {
			c = CellEvent
		}
		for i := s.Start; i <= s.End && i < len(cells); i++ {
			if i >= 0 && cells[i] < c {
				cells[i] = c
			}
		}
	}
	for _, col := range p.Motion {
		if col >= 0 && col < len(cells) {
			cells[col] = CellMotion
		}
	}
	return cells
}
