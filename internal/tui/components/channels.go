package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/scrub/internal/core"
	"github.com/tessro/scrub/internal/tui/styles"
)

// Channels displays the channel list
type Channels struct {
	selected int
}

// NewChannels creates a new Channels component
func NewChannels() *Channels {
	return &Channels{selected: 0}
}

// SelectNext selects the next channel
func (c *Channels) SelectNext() {
	c.selected++
}

// SelectPrev selects the previous channel
func (c *Channels) SelectPrev() {
	if c.selected > 0 {
		c.selected--
	}
}

// Select moves the selection to index i.
func (c *Channels) Select(i int) {
	c.selected = i
}

// Selected returns the selected channel index, clamped to n channels.
func (c *Channels) Selected(n int) int {
	if c.selected >= n {
		c.selected = n - 1
	}
	if c.selected < 0 {
		c.selected = 0
	}
	return c.selected
}

// Render renders the channels panel
func (c *Channels) Render(channels []core.Channel, width, height int, focused bool) string {
	title := styles.PanelTitle("Channels", focused)

	var content string
	if len(channels) == 0 {
		content = styles.Muted.Render("No channels")
	} else {
		content = c.renderChannels(channels, height-4, focused)
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

func (c *Channels) renderChannels(channels []core.Channel, maxLines int, focused bool) string {
	selected := c.Selected(len(channels))

	// Keep the selection visible
	start := 0
	if maxLines > 0 && selected >= maxLines {
		start = selected - maxLines + 1
	}

	lines := make([]string, 0, len(channels))
	for i := start; i < len(channels); i++ {
		ch := channels[i]

		selector := "  "
		if i == selected {
			selector = "▸ "
		}

		dot := styles.Dim.Render("●")
		switch ch.Status {
		case core.ChannelLive:
			dot = styles.Playing.Render("●")
		case core.ChannelRecording:
			dot = styles.Paused.Render("●")
		case core.ChannelError:
			dot = styles.ErrorText.Render("●")
		}

		name := ch.Name
		if i == selected && focused {
			name = styles.Highlight.Render(name)
		}

		lines = append(lines, fmt.Sprintf("%s%s %s", selector, dot, name))

		if maxLines > 0 && len(lines) >= maxLines {
			break
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
