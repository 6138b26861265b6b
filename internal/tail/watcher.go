// Package tail turns session changes into a stream of printable events
// for the headless player.
package tail

import (
	"time"

	"github.com/tessro/scrub/internal/session"
	"github.com/tessro/scrub/internal/timeline"
)

// EventType represents the type of playback event.
type EventType int

const (
	EventHour EventType = iota
	EventPlay
	EventPause
	EventSpeedChange
	EventDragStart
	EventDragEnd
	EventWrap
	EventDateChange
	EventZoomChange
	EventClipChange
)

// Event represents a playback state change.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Previous  session.Snapshot
	Current   session.Snapshot
}

// Source is the session a watcher observes.
type Source interface {
	AddListener(fn func(session.Event)) func()
	Snapshot() session.Snapshot
}

// Watcher listens to a session and emits events on a buffered channel.
// Start and Stop must run on the session's event loop; Events may be read
// from any goroutine.
type Watcher struct {
	source      Source
	events      chan Event
	now         func() time.Time
	unsubscribe func()
	stopped     bool
	prev        session.Snapshot
	dropped     int
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithBuffer sets the channel capacity.
func WithBuffer(n int) WatcherOption {
	return func(w *Watcher) {
		if n > 0 {
			w.events = make(chan Event, n)
		}
	}
}

// WithClock sets the wall clock used for timestamps.
func WithClock(now func() time.Time) WatcherOption {
	return func(w *Watcher) {
		w.now = now
	}
}

// NewWatcher creates a new session watcher.
func NewWatcher(source Source, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		source: source,
		events: make(chan Event, 64),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Events returns the channel of playback events. It is closed by Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Dropped returns how many events were discarded because the channel
// was full.
func (w *Watcher) Dropped() int {
	return w.dropped
}

// Start subscribes to the session.
func (w *Watcher) Start() {
	if w.unsubscribe != nil || w.stopped {
		return
	}
	w.prev = w.source.Snapshot()
	w.unsubscribe = w.source.AddListener(w.observe)
}

// Stop unsubscribes and closes the event channel.
func (w *Watcher) Stop() {
	if w.stopped {
		return
	}
	w.stopped = true
	if w.unsubscribe != nil {
		w.unsubscribe()
		w.unsubscribe = nil
	}
	close(w.events)
}

func (w *Watcher) observe(e session.Event) {
	events := diffSnapshots(e.Kind, w.prev, e.Snapshot, w.now())
	for _, ev := range events {
		select {
		case w.events <- ev:
		default:
			// Drop event if channel is full
			w.dropped++
		}
	}
	w.prev = e.Snapshot
}

// diffSnapshots compares two snapshots and returns detected events.
func diffSnapshots(kind session.EventKind, prev, curr session.Snapshot, now time.Time) []Event {
	var events []Event
	add := func(t EventType) {
		events = append(events, Event{Type: t, Timestamp: now, Previous: prev, Current: curr})
	}

	switch kind {
	case session.EventWrap:
		add(EventWrap)
		return events
	case session.EventDate:
		add(EventDateChange)
		return events
	case session.EventZoom:
		add(EventZoomChange)
		return events
	case session.EventClip:
		add(EventClipChange)
		return events
	}

	// Play/Pause detection
	if prev.PlayState != curr.PlayState {
		if curr.PlayState == timeline.Playing {
			add(EventPlay)
		} else {
			add(EventPause)
		}
	}

	if prev.Speed != curr.Speed {
		add(EventSpeedChange)
	}

	// Drag detection
	if prev.DragState != curr.DragState {
		if curr.DragState == timeline.Dragging {
			add(EventDragStart)
		} else {
			add(EventDragEnd)
		}
	}

	// Hour marks only count while the clock drives the position.
	if kind == session.EventPosition && curr.PlayState == timeline.Playing &&
		curr.DragState == timeline.Idle && hourCrossed(prev, curr) {
		add(EventHour)
	}

	return events
}

// hourCrossed reports whether playback moved forward into a new hour.
func hourCrossed(prev, curr session.Snapshot) bool {
	return curr.Position > prev.Position && curr.Time.Hour > prev.Time.Hour
}
