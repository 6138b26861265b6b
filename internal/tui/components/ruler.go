package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/scrub/internal/core"
	"github.com/tessro/scrub/internal/ruler"
	"github.com/tessro/scrub/internal/tui/styles"
)

// RulerHeight is the number of rows Ruler.Render produces.
const RulerHeight = 3

// Ruler draws the hour labels, the recorded segments and the playhead.
type Ruler struct{}

// NewRuler creates a new Ruler component
func NewRuler() *Ruler {
	return &Ruler{}
}

// Render renders the ruler width columns wide.
func (r *Ruler) Render(day core.Day, pos float64, w ruler.Window, width int, dragging bool) string {
	if width <= 0 {
		return ""
	}
	head := ruler.Column(pos, width, w)

	labels := styles.Label.Render(r.labels(width, w))

	cells := ruler.Project(day, width, w).Cells()
	var bar strings.Builder
	for i, c := range cells {
		if i == head {
			bar.WriteString(lipgloss.NewStyle().Foreground(styles.Playhead).Bold(true).Render("┃"))
			continue
		}
		bar.WriteString(styles.RulerCell(c))
	}

	caretStyle := lipgloss.NewStyle().Foreground(styles.Playhead)
	if dragging {
		caretStyle = caretStyle.Bold(true).Foreground(styles.Accent)
	}
	caret := strings.Repeat(" ", head) + caretStyle.Render("▲") + strings.Repeat(" ", width-head-1)

	return lipgloss.JoinVertical(lipgloss.Left, labels, bar.String(), caret)
}

// labels lays out hour labels, dropping any that would overlap the one
// before.
func (r *Ruler) labels(width int, w ruler.Window) string {
	line := []byte(strings.Repeat(" ", width))
	next := 0
	for _, t := range ruler.HourTicks(width, w) {
		col := t.Column
		if col+len(t.Label) > width {
			col = width - len(t.Label)
		}
		if col < next || col < 0 {
			continue
		}
		copy(line[col:], t.Label)
		next = col + len(t.Label) + 1
	}
	return string(line)
}
