package tail

import (
	"testing"
	"time"

	"github.com/tessro/scrub/internal/session"
	"github.com/tessro/scrub/internal/timeline"
)

type stepScheduler struct {
	pending []func()
}

func (s *stepScheduler) Schedule(_ time.Duration, fn func()) func() {
	canceled := false
	s.pending = append(s.pending, func() {
		if !canceled {
			fn()
		}
	})
	return func() { canceled = true }
}

func (s *stepScheduler) fire(n int) {
	for i := 0; i < n; i++ {
		due := s.pending
		s.pending = nil
		for _, fn := range due {
			fn()
		}
	}
}

var fixedNow = time.Date(2024, 3, 9, 21, 5, 0, 0, time.UTC)

func newTestSession(t *testing.T) (*session.Session, *stepScheduler) {
	t.Helper()
	sched := &stepScheduler{}
	s := session.New(session.Options{
		Scheduler: sched,
		Date:      timeline.Date{Year: 2024, Month: time.March, Day: 9},
	})
	if err := s.Resize(0, 100); err != nil {
		t.Fatal(err)
	}
	return s, sched
}

func drain(w *Watcher) []EventType {
	var types []EventType
	for {
		select {
		case e := <-w.Events():
			types = append(types, e.Type)
		default:
			return types
		}
	}
}

func TestWatcherEvents(t *testing.T) {
	s, sched := newTestSession(t)
	w := NewWatcher(s, WithClock(func() time.Time { return fixedNow }))
	w.Start()

	s.TogglePlay()
	sched.fire(50) // 5.0 positions = 01:12:00
	s.CycleSpeed()
	s.Scrub().GestureStart(50)
	s.Scrub().GestureEnd()
	s.TogglePlay()

	got := drain(w)
	want := []EventType{EventPlay, EventHour, EventSpeedChange, EventDragStart, EventDragEnd, EventPause}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWatcherWrap(t *testing.T) {
	s, sched := newTestSession(t)
	w := NewWatcher(s)
	w.Start()

	s.Model().SetPosition(99.95)
	s.TogglePlay()
	sched.fire(1)

	got := drain(w)
	if len(got) != 2 || got[1] != EventWrap {
		t.Errorf("events = %v, want [play wrap]", got)
	}
}

func TestWatcherDropsWhenFull(t *testing.T) {
	s, _ := newTestSession(t)
	w := NewWatcher(s, WithBuffer(1))
	w.Start()

	s.ToggleZoom()
	s.ToggleZoom()
	s.ToggleZoom()

	if w.Dropped() != 2 {
		t.Errorf("Dropped() = %d, want 2", w.Dropped())
	}
	w.Stop()
	w.Stop()
	if _, ok := <-w.Events(); !ok {
		t.Error("buffered event lost on Stop")
	}
	if _, ok := <-w.Events(); ok {
		t.Error("channel not closed after Stop")
	}
}

func TestFormatterLine(t *testing.T) {
	curr := session.Snapshot{
		Position:  25,
		Time:      timeline.TimeAt(25),
		Speed:     timeline.Speed2X,
		PlayState: timeline.Playing,
		Date:      timeline.Date{Year: 2024, Month: time.March, Day: 9},
	}
	e := Event{Type: EventPlay, Timestamp: fixedNow, Current: curr}

	tests := []struct {
		name string
		opts []FormatterOption
		want string
	}{
		{"default", nil, "▶️ Playing at 2X from 06:00:00"},
		{"no emoji", []FormatterOption{WithEmoji(false)}, "Playing at 2X from 06:00:00"},
		{"timestamp", []FormatterOption{WithEmoji(false), WithTimestamp(true)}, "21:05:00 Playing at 2X from 06:00:00"},
		{"template", []FormatterOption{WithTemplate("{{.Type}} {{.Clock}} {{.Speed}} {{.Date}}")}, "play 06:00:00 2X 2024/03/09"},
		{"bad template", []FormatterOption{WithEmoji(false), WithTemplate("{{.Nope")}, "Playing at 2X from 06:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewFormatter(tt.opts...).Format(e); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatterDescriptions(t *testing.T) {
	f := NewFormatter(WithEmoji(false))
	prev := session.Snapshot{Time: timeline.TimeAt(10)}
	curr := session.Snapshot{Time: timeline.TimeAt(50), Zoom: session.ZoomHour}

	tests := []struct {
		typ  EventType
		want string
	}{
		{EventDragStart, "Scrubbing from 02:24:00"},
		{EventDragEnd, "Scrubbed to 12:00:00"},
		{EventZoomChange, "Zoom: 1H"},
		{EventPause, "Paused at 12:00:00"},
	}
	for _, tt := range tests {
		got := f.Format(Event{Type: tt.typ, Previous: prev, Current: curr})
		if got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.typ, got, tt.want)
		}
	}

	if err := ParseTemplate("{{.Clock"); err == nil {
		t.Errorf("ParseTemplate() error = %v", err)
	}
}
