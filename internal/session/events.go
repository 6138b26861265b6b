package session

import "github.com/tessro/scrub/internal/timeline"

// EventKind names what changed.
type EventKind int

const (
	EventPosition EventKind = iota
	EventPlayState
	EventSpeed
	EventDrag
	EventWrap
	EventDate
	EventZoom
	EventClip
)

// String returns the event name used in tail output.
func (k EventKind) String() string {
	switch k {
	case EventPosition:
		return "position"
	case EventPlayState:
		return "play"
	case EventSpeed:
		return "speed"
	case EventDrag:
		return "drag"
	case EventWrap:
		return "wrap"
	case EventDate:
		return "date"
	case EventZoom:
		return "zoom"
	case EventClip:
		return "clip"
	default:
		return "unknown"
	}
}

// Snapshot is the observable state of a session at one instant.
type Snapshot struct {
	Position  float64
	Time      timeline.TimeOfDay
	Speed     timeline.Speed
	PlayState timeline.PlayState
	DragState timeline.DragState
	Date      timeline.Date
	Zoom      Zoom
	Clip      Clip
}

// Event is delivered to session listeners after a change.
type Event struct {
	Kind     EventKind
	Snapshot Snapshot
}
