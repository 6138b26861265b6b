package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/scrub/internal/core"
	"github.com/tessro/scrub/internal/session"
	"github.com/tessro/scrub/internal/tui/styles"
)

// Feed is the video surface placeholder for the selected channel.
type Feed struct{}

// NewFeed creates a new Feed component
func NewFeed() *Feed {
	return &Feed{}
}

// Render renders the feed panel. footage is false when no recording
// covers the playhead.
func (f *Feed) Render(ch core.Channel, snap session.Snapshot, footage bool, width, height int) string {
	inner := width - 4
	if inner < 1 {
		inner = 1
	}
	title := styles.PanelTitle(ch.Name, true)

	badge := styles.ChannelBadge(ch.Status)
	if !footage {
		badge = lipgloss.JoinVertical(lipgloss.Center, badge, styles.Muted.Render("NO FOOTAGE"))
	}

	body := lipgloss.NewStyle().
		Width(inner).
		Height(max(height-5, 1)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(badge)

	osd := lipgloss.NewStyle().
		Width(inner).
		Align(lipgloss.Right).
		Render(styles.Muted.Render(snap.Date.String() + " " + snap.Time.String()))

	panel := styles.Panel(false).
		Width(width - 2).
		Height(height - 2)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		body,
		osd,
	))
}
