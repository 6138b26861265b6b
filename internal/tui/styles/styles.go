package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/scrub/internal/core"
	"github.com/tessro/scrub/internal/ruler"
)

// Colors - a dark control-room palette
var (
	// Primary colors
	Primary   = lipgloss.Color("#3B82F6") // Blue
	Secondary = lipgloss.Color("#22C55E") // Green
	Accent    = lipgloss.Color("#F59E0B") // Amber

	// Status colors
	Success = lipgloss.Color("#22C55E") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#EF4444") // Red
	Info    = lipgloss.Color("#3B82F6") // Blue

	// Neutral colors
	Border    = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}
	Text      = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}
	TextMuted = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}
	TextDim   = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}

	// Ruler colors
	Recorded = lipgloss.Color("#14532D") // Dim green
	Event    = lipgloss.Color("#22C55E") // Bright green
	Motion   = lipgloss.Color("#F97316") // Orange
	Playhead = lipgloss.Color("#3B82F6") // Blue
)

// Text styles
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextMuted)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Highlight = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Playing = lipgloss.NewStyle().
		Foreground(Secondary)

	Paused = lipgloss.NewStyle().
		Foreground(Warning)

	Clock = lipgloss.NewStyle().
		Bold(true).
		Foreground(Playhead)

	ErrorText = lipgloss.NewStyle().
		Foreground(Error)
)

// Border styles
var (
	BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)

	FocusedBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary)
)

// Panel creates a styled panel with optional focus
func Panel(focused bool) lipgloss.Style {
	if focused {
		return FocusedBorder.Padding(0, 1)
	}
	return BorderStyle.Padding(0, 1)
}

// PanelTitle creates a styled panel title
func PanelTitle(title string, focused bool) string {
	style := Label
	if focused {
		style = Highlight
	}
	return style.Render(" " + title + " ")
}

// RulerCell renders one column of the segment bar.
func RulerCell(c ruler.Cell) string {
	switch c {
	case ruler.CellRecorded:
		return lipgloss.NewStyle().Foreground(Recorded).Render("▄")
	case ruler.CellEvent:
		return lipgloss.NewStyle().Foreground(Event).Render("▄")
	case ruler.CellMotion:
		return lipgloss.NewStyle().Foreground(Motion).Render("▲")
	default:
		return Dim.Render("─")
	}
}

// StatusIcon returns an icon for playback status
func StatusIcon(playing bool) string {
	if playing {
		return Playing.Render("⏸")
	}
	return Paused.Render("▶")
}

// ChannelBadge returns the badge shown on a feed for its status.
func ChannelBadge(s core.ChannelStatus) string {
	switch s {
	case core.ChannelLive:
		return lipgloss.NewStyle().Bold(true).Foreground(Error).Render("● LIVE")
	case core.ChannelRecording:
		return lipgloss.NewStyle().Bold(true).Foreground(Warning).Render("● REC")
	case core.ChannelError:
		return ErrorText.Render("⚠ NO SIGNAL")
	case core.ChannelLoading:
		return Dim.Render("… LOADING")
	default:
		return Dim.Render("?")
	}
}

// Repeat repeats a string n times
func Repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}
