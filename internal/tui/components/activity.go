package components

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tessro/scrub/internal/tui/styles"
)

// ActivityEntry is a formatted playback event
type ActivityEntry struct {
	Text string
	At   time.Time
}

// Activity displays recent playback events, newest first
type Activity struct {
	now func() time.Time
}

// NewActivity creates a new Activity component
func NewActivity() *Activity {
	return &Activity{now: time.Now}
}

// Render renders the activity panel
func (a *Activity) Render(entries []ActivityEntry, width, height int, focused bool) string {
	title := styles.PanelTitle("Activity", focused)

	var content string
	if len(entries) == 0 {
		content = styles.Muted.Render("No activity yet")
	} else {
		content = a.renderEntries(entries, width-4, height-4)
	}

	panel := styles.Panel(focused).
		Width(width - 2).
		Height(height - 2)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (a *Activity) renderEntries(entries []ActivityEntry, width, maxLines int) string {
	lines := make([]string, 0, max(maxLines, 0))
	now := a.now()

	for i, entry := range entries {
		if i >= maxLines {
			break
		}

		ago := humanize.RelTime(entry.At, now, "ago", "from now")
		text := truncate(entry.Text, width-lipgloss.Width(ago)-1)

		padding := width - lipgloss.Width(text) - lipgloss.Width(ago)
		if padding < 1 {
			padding = 1
		}

		lines = append(lines, text+styles.Repeat(" ", padding)+styles.Dim.Render(ago))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
