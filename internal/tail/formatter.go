package tail

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Formatter formats events for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithTemplate sets a custom format template.
func WithTemplate(tmpl string) FormatterOption {
	return func(f *Formatter) {
		if tmpl != "" {
			t, err := template.New("format").Parse(tmpl)
			if err == nil {
				f.template = t
			}
		}
	}
}

// ParseTemplate checks a --format template before it is handed to
// WithTemplate, which ignores templates that fail to parse.
func ParseTemplate(tmpl string) error {
	_, err := template.New("format").Parse(tmpl)
	return err
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		showEmoji:     true,
		showTimestamp: false,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a string.
func (f *Formatter) Format(e Event) string {
	if f.template != nil {
		return f.formatTemplate(e)
	}
	return f.formatLine(e)
}

// formatLine formats an event as a simple line.
func (f *Formatter) formatLine(e Event) string {
	var parts []string

	if f.showTimestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05"))
	}

	if f.showEmoji {
		parts = append(parts, eventEmoji(e.Type))
	}

	parts = append(parts, eventDescription(e))

	return strings.Join(parts, " ")
}

// formatTemplate formats an event using a custom template.
func (f *Formatter) formatTemplate(e Event) string {
	c := e.Current
	data := templateData{
		Type:      eventTypeName(e.Type),
		Emoji:     eventEmoji(e.Type),
		Timestamp: e.Timestamp,
		Time:      e.Timestamp.Format("15:04:05"),
		Clock:     c.Time.String(),
		Position:  c.Position,
		Speed:     c.Speed.String(),
		State:     c.PlayState.String(),
		Date:      c.Date.String(),
		Zoom:      c.Zoom.String(),
		Clip:      c.Clip.String(),
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(e)
	}
	return buf.String()
}

type templateData struct {
	Type      string
	Emoji     string
	Timestamp time.Time
	Time      string
	Clock     string
	Position  float64
	Speed     string
	State     string
	Date      string
	Zoom      string
	Clip      string
}

// eventDescription returns a human-readable description of the event.
func eventDescription(e Event) string {
	c := e.Current
	switch e.Type {
	case EventHour:
		return fmt.Sprintf("%s %02d:00", c.Date, c.Time.Hour)
	case EventPlay:
		return fmt.Sprintf("Playing at %s from %s", c.Speed, c.Time)
	case EventPause:
		return fmt.Sprintf("Paused at %s", c.Time)
	case EventSpeedChange:
		return fmt.Sprintf("Speed: %s", c.Speed)
	case EventDragStart:
		return fmt.Sprintf("Scrubbing from %s", e.Previous.Time)
	case EventDragEnd:
		return fmt.Sprintf("Scrubbed to %s", c.Time)
	case EventWrap:
		return fmt.Sprintf("Looped to %s", c.Time)
	case EventDateChange:
		return fmt.Sprintf("Date: %s", c.Date)
	case EventZoomChange:
		return fmt.Sprintf("Zoom: %s", c.Zoom)
	case EventClipChange:
		return fmt.Sprintf("Clip: %s", c.Clip)
	default:
		return "Unknown event"
	}
}

// eventEmoji returns an emoji for the event type.
func eventEmoji(t EventType) string {
	switch t {
	case EventHour:
		return "🕐"
	case EventPlay:
		return "▶️"
	case EventPause:
		return "⏸️"
	case EventSpeedChange:
		return "⏩"
	case EventDragStart, EventDragEnd:
		return "👆"
	case EventWrap:
		return "🔁"
	case EventDateChange:
		return "📅"
	case EventZoomChange:
		return "🔍"
	case EventClipChange:
		return "✂️"
	default:
		return "❓"
	}
}

// eventTypeName returns the name of the event type.
func eventTypeName(t EventType) string {
	switch t {
	case EventHour:
		return "hour"
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventSpeedChange:
		return "speed_change"
	case EventDragStart:
		return "drag_start"
	case EventDragEnd:
		return "drag_end"
	case EventWrap:
		return "wrap"
	case EventDateChange:
		return "date_change"
	case EventZoomChange:
		return "zoom_change"
	case EventClipChange:
		return "clip_change"
	default:
		return "unknown"
	}
}

// String returns the event type name.
func (t EventType) String() string {
	return eventTypeName(t)
}
