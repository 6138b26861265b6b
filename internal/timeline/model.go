// Package timeline holds the normalized playback position for a 24-hour
// window and the value types derived from it.
//
// A Model is not safe for concurrent use. All reads and writes are expected
// to come from one event loop, which serializes the writers (drag gestures,
// the autoplay clock, transport commands) without locking.
package timeline

import (
	"math"
	"slices"
)

const (
	// MinPosition is the start of the window (00:00:00).
	MinPosition = 0.0
	// MaxPosition is the end of the window (24:00:00).
	MaxPosition = 100.0
	// MinutesPerDay is the span the position range maps onto.
	MinutesPerDay = 1440
)

// Model owns the single position value. Everything else reads it.
type Model struct {
	position       float64
	listeners      []listener
	nextListenerID int
}

type listener struct {
	id int
	fn func(float64)
}

// NewModel creates a model positioned at the start of the day.
func NewModel() *Model {
	return &Model{}
}

// SetPosition clamps p into [MinPosition, MaxPosition] and stores it.
// The write is never rejected; the last writer wins. Listeners are
// notified once per call in registration order, even when the value is
// unchanged.
func (m *Model) SetPosition(p float64) {
	m.position = Clamp(p)
	for _, l := range slices.Clone(m.listeners) {
		l.fn(m.position)
	}
}

// Position returns the stored position.
func (m *Model) Position() float64 {
	return m.position
}

// TimeOfDay derives the wall-clock time from the position on every call.
func (m *Model) TimeOfDay() TimeOfDay {
	return TimeAt(m.position)
}

// AddListener registers a callback fired after every write.
// Returns an unsubscribe function.
func (m *Model) AddListener(fn func(float64)) func() {
	id := m.nextListenerID
	m.nextListenerID++
	m.listeners = append(m.listeners, listener{id: id, fn: fn})
	return func() {
		m.listeners = slices.DeleteFunc(m.listeners, func(l listener) bool { return l.id == id })
	}
}

// Clamp limits p to the valid position range. NaN maps to MinPosition.
func Clamp(p float64) float64 {
	switch {
	case math.IsNaN(p), p < MinPosition:
		return MinPosition
	case p > MaxPosition:
		return MaxPosition
	}
	return p
}
