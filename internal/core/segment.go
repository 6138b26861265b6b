package core

import "time"

// SpanKind tells continuous recording apart from event-triggered clips.
type SpanKind string

const (
	SpanContinuous SpanKind = "continuous"
	SpanEvent      SpanKind = "event"
)

// RecordingSpan is a range of the day with footage, as offsets since
// midnight.
type RecordingSpan struct {
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`
	Kind  SpanKind      `json:"kind"`
}

// MotionMarker is a detected motion event.
type MotionMarker struct {
	At    time.Duration `json:"at"`
	Label string        `json:"label,omitempty"`
}

// Day is the segment data painted behind the ruler for one date. It is
// supplied by the recorder; the playback engine never computes it.
type Day struct {
	Date       string          `json:"date"`
	Recordings []RecordingSpan `json:"recordings"`
	Motion     []MotionMarker  `json:"motion"`
}

// HasFootage reports whether any recording covers the offset.
func (d *Day) HasFootage(at time.Duration) bool {
	if d == nil {
		return false
	}
	for _, r := range d.Recordings {
		if at >= r.Start && at < r.End {
			return true
		}
	}
	return false
}
