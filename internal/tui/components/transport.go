package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/scrub/internal/session"
	"github.com/tessro/scrub/internal/timeline"
	"github.com/tessro/scrub/internal/tui/styles"
)

// Transport displays the playback buttons, speed, clock and date.
type Transport struct{}

// NewTransport creates a new Transport component
func NewTransport() *Transport {
	return &Transport{}
}

// Render renders the transport bar. clock replaces the time display,
// which lets the caller swap in a text input while editing.
func (t *Transport) Render(snap session.Snapshot, clock string, width int) string {
	if clock == "" {
		clock = styles.Clock.Render(snap.Time.String())
	}

	buttons := strings.Join([]string{
		styles.Muted.Render("⏮"),
		styles.Muted.Render("⏪"),
		styles.StatusIcon(snap.PlayState == timeline.Playing),
		styles.Muted.Render("⏩"),
		styles.Muted.Render("⏭"),
	}, "  ")

	speed := styles.Highlight.Render(snap.Speed.String())
	date := styles.Subtitle.Render(snap.Date.String())
	zoom := styles.Label.Render(snap.Zoom.String())

	line := fmt.Sprintf("%s   %s   %s   %s   %s", buttons, speed, clock, date, zoom)
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(line)
}

// RenderClip renders the clip marks row.
func (t *Transport) RenderClip(clip session.Clip, width int) string {
	in, out, _ := strings.Cut(clip.String(), " - ")
	line := styles.Label.Render("IN ") + in + styles.Label.Render("  OUT ") + out
	if clip.Complete() {
		line += styles.Dim.Render(fmt.Sprintf("  (%s)", clip.Duration()))
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(line)
}
