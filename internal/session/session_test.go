package session

import (
	"errors"
	"math"
	"slices"
	"testing"
	"time"

	scruberrors "github.com/tessro/scrub/internal/errors"
	"github.com/tessro/scrub/internal/ruler"
	"github.com/tessro/scrub/internal/scrub"
	"github.com/tessro/scrub/internal/timeline"
	"github.com/tessro/scrub/internal/transport"
)

type fakeScheduler struct {
	pending []*pendingTick
}

type pendingTick struct {
	fn       func()
	canceled bool
}

func (s *fakeScheduler) Schedule(_ time.Duration, fn func()) func() {
	p := &pendingTick{fn: fn}
	s.pending = append(s.pending, p)
	return func() { p.canceled = true }
}

func (s *fakeScheduler) live() int {
	n := 0
	for _, p := range s.pending {
		if !p.canceled {
			n++
		}
	}
	return n
}

func (s *fakeScheduler) fire(n int) {
	for i := 0; i < n; i++ {
		due := s.pending
		s.pending = nil
		for _, p := range due {
			if !p.canceled {
				p.fn()
			}
		}
	}
}

type fakeCapture struct {
	active   *scrub.Handlers
	released int
}

func (c *fakeCapture) BeginDragCapture(h scrub.Handlers) scrub.Release {
	c.active = &h
	return func() {
		c.released++
		c.active = nil
	}
}

var testDate = timeline.Date{Year: 2024, Month: time.March, Day: 9}

func newTestSession(t *testing.T, opts Options) (*Session, *fakeScheduler, *fakeCapture) {
	t.Helper()
	sched := &fakeScheduler{}
	capture := &fakeCapture{}
	opts.Scheduler = sched
	opts.Capturer = capture
	if opts.Date.IsZero() {
		opts.Date = testDate
	}
	s := New(opts)
	if err := s.Resize(0, 1000); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	return s, sched, capture
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMountDefaults(t *testing.T) {
	s, sched, _ := newTestSession(t, Options{})
	snap := s.Snapshot()
	if snap.Position != 0 || snap.Time.String() != "00:00:00" {
		t.Errorf("mount position = %v %s, want 0 00:00:00", snap.Position, snap.Time)
	}
	if snap.PlayState != timeline.Paused || snap.Speed != timeline.Speed1X || snap.DragState != timeline.Idle {
		t.Errorf("mount state = %v/%v/%v", snap.PlayState, snap.Speed, snap.DragState)
	}
	if snap.Zoom != ZoomDay || snap.Date != testDate {
		t.Errorf("mount zoom/date = %v %v", snap.Zoom, snap.Date)
	}
	if sched.live() != 0 {
		t.Errorf("paused session armed %d ticks", sched.live())
	}
}

func TestPlaybackScenario(t *testing.T) {
	s, sched, _ := newTestSession(t, Options{})
	s.TogglePlay()
	if s.Owner() != timeline.WriterClock {
		t.Errorf("Owner() = %v while playing, want clock", s.Owner())
	}
	sched.fire(100)
	if got := s.Snapshot().Time.String(); got != "02:24:00" {
		t.Errorf("after 100 ticks time = %s, want 02:24:00", got)
	}
	s.TogglePlay()
	if sched.live() != 0 || s.Owner() != timeline.WriterNone {
		t.Errorf("pause left live=%d owner=%v", sched.live(), s.Owner())
	}
}

func TestDragSuspendsClockAndResumes(t *testing.T) {
	s, sched, capture := newTestSession(t, Options{})
	s.TogglePlay()
	sched.fire(10)

	s.Scrub().GestureStart(500)
	if s.Owner() != timeline.WriterScrub {
		t.Errorf("Owner() = %v during drag, want scrub", s.Owner())
	}
	if sched.live() != 0 {
		t.Errorf("clock still armed during drag")
	}
	sched.fire(5)
	capture.active.Move(750)
	if s.Model().Position() != 75 {
		t.Errorf("Position() = %v during drag, want 75", s.Model().Position())
	}

	capture.active.End()
	if s.Snapshot().PlayState != timeline.Playing {
		t.Errorf("resume policy left state %v", s.Snapshot().PlayState)
	}
	if s.Owner() != timeline.WriterClock || sched.live() != 1 {
		t.Errorf("after drag owner=%v live=%d, want clock/1", s.Owner(), sched.live())
	}
	sched.fire(1)
	if !near(s.Model().Position(), 75.1) {
		t.Errorf("Position() = %v after one tick, want 75.1", s.Model().Position())
	}
}

func TestDragPausePolicy(t *testing.T) {
	s, sched, capture := newTestSession(t, Options{DragPolicy: DragPause})
	s.TogglePlay()
	s.Scrub().GestureStart(200)
	capture.active.End()

	if s.Snapshot().PlayState != timeline.Paused {
		t.Errorf("pause policy state = %v, want paused", s.Snapshot().PlayState)
	}
	if sched.live() != 0 {
		t.Errorf("pause policy armed %d ticks", sched.live())
	}
	if s.Owner() != timeline.WriterNone {
		t.Errorf("Owner() = %v, want none", s.Owner())
	}
}

func TestTogglePlayDuringDrag(t *testing.T) {
	s, sched, capture := newTestSession(t, Options{})
	s.Scrub().GestureStart(100)
	s.TogglePlay()
	if sched.live() != 0 {
		t.Errorf("play during drag armed a tick")
	}
	if s.Owner() != timeline.WriterScrub {
		t.Errorf("Owner() = %v, want scrub", s.Owner())
	}
	capture.active.End()
	if sched.live() != 1 {
		t.Errorf("live = %d after drag end, want 1", sched.live())
	}
}

func TestCommandsAfterWrap(t *testing.T) {
	s, sched, _ := newTestSession(t, Options{})
	wraps := 0
	s.AddListener(func(e Event) {
		if e.Kind == EventWrap {
			wraps++
		}
	})

	s.Model().SetPosition(99.95)
	s.TogglePlay()
	sched.fire(1)
	if wraps != 1 {
		t.Errorf("wraps = %d, want 1", wraps)
	}
	s.JumpToEnd()
	if s.Model().Position() != 100 || s.Snapshot().Time.String() != "24:00:00" {
		t.Errorf("JumpToEnd while playing = %v", s.Model().Position())
	}
	s.StepForward()
	if s.Model().Position() != 100 {
		t.Errorf("StepForward at end = %v, want 100", s.Model().Position())
	}
}

func TestSetClockText(t *testing.T) {
	s, _, _ := newTestSession(t, Options{})
	if err := s.SetClockText("06:00"); err != nil {
		t.Fatalf("SetClockText() error = %v", err)
	}
	if s.Model().Position() != 25 {
		t.Errorf("Position() = %v, want 25", s.Model().Position())
	}
	if err := s.SetClockText("25:00"); !errors.Is(err, scruberrors.ErrInvalidTime) {
		t.Errorf("SetClockText(25:00) error = %v, want ErrInvalidTime", err)
	}
	if s.Model().Position() != 25 {
		t.Errorf("invalid text moved the playhead to %v", s.Model().Position())
	}
}

func TestSelectDatePolicies(t *testing.T) {
	tests := []struct {
		policy DatePolicy
		want   float64
	}{
		{DateKeep, 40},
		{DateStart, 0},
		{DateEnd, 100},
	}

	for _, tt := range tests {
		s, _, _ := newTestSession(t, Options{DatePolicy: tt.policy})
		s.Model().SetPosition(40)
		next := testDate.AddDays(1)
		if err := s.SelectDate(next); err != nil {
			t.Fatalf("SelectDate() error = %v", err)
		}
		if s.Date() != next {
			t.Errorf("%s: Date() = %v, want %v", tt.policy, s.Date(), next)
		}
		if s.Model().Position() != tt.want {
			t.Errorf("%s: Position() = %v, want %v", tt.policy, s.Model().Position(), tt.want)
		}
	}

	s, _, _ := newTestSession(t, Options{})
	if err := s.SelectDate(timeline.Date{}); !errors.Is(err, scruberrors.ErrInvalidDate) {
		t.Errorf("SelectDate(zero) error = %v, want ErrInvalidDate", err)
	}
	if err := s.ShiftDate(-9); err != nil {
		t.Fatalf("ShiftDate() error = %v", err)
	}
	if got := s.Date().String(); got != "2024/02/29" {
		t.Errorf("ShiftDate(-9) = %s, want 2024/02/29", got)
	}
}

func TestClipMarks(t *testing.T) {
	s, _, _ := newTestSession(t, Options{})
	if s.Clip().Complete() {
		t.Error("empty clip reported complete")
	}

	s.Model().SetPosition(25)
	s.MarkIn()
	s.Model().SetPosition(50)
	clip := s.MarkOut()

	if got := clip.String(); got != "2024/03/09 06:00:00 - 2024/03/09 12:00:00" {
		t.Errorf("clip = %q", got)
	}
	if clip.Duration() != 6*time.Hour {
		t.Errorf("Duration() = %v, want 6h", clip.Duration())
	}

	if err := s.SetClip("2024/03/09 01:00:00", "bogus"); !errors.Is(err, scruberrors.ErrInvalidTime) {
		t.Errorf("SetClip(bogus) error = %v, want ErrInvalidTime", err)
	}
	if s.Clip() != clip {
		t.Error("invalid SetClip changed the clip")
	}
	if err := s.SetClip(" 2024/03/09 01:00:00 ", ""); err != nil {
		t.Fatalf("SetClip() error = %v", err)
	}
	if s.Clip().Complete() || s.Clip().In.Hour() != 1 {
		t.Errorf("SetClip with open end = %v", s.Clip())
	}
}

func TestToggleZoom(t *testing.T) {
	s, _, _ := newTestSession(t, Options{})
	s.Model().SetPosition(50)

	if z := s.ToggleZoom(); z != ZoomHour || z.String() != "1H" {
		t.Fatalf("ToggleZoom() = %v", z)
	}
	w := s.Window()
	if !near(w.Span(), ruler.HourSpan) || !w.Contains(50) {
		t.Errorf("zoomed window = %+v", w)
	}

	s.Scrub().GestureStart(0)
	if !near(s.Model().Position(), w.From) {
		t.Errorf("drag at left edge = %v, want %v", s.Model().Position(), w.From)
	}
	s.Scrub().GestureEnd()

	s.JumpToEnd()
	if !s.Window().Contains(100) {
		t.Errorf("window %+v did not follow the playhead", s.Window())
	}

	if z := s.ToggleZoom(); z != ZoomDay || !s.Window().IsFullDay() {
		t.Errorf("ToggleZoom() back = %v window %+v", z, s.Window())
	}
}

func TestListeners(t *testing.T) {
	s, _, _ := newTestSession(t, Options{})
	var kinds []EventKind
	unsubscribe := s.AddListener(func(e Event) { kinds = append(kinds, e.Kind) })

	s.StepForward()
	s.CycleSpeed()
	s.TogglePlay()
	unsubscribe()
	s.StepForward()

	want := []EventKind{EventPosition, EventSpeed, EventPlayState}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestTeardown(t *testing.T) {
	s, sched, capture := newTestSession(t, Options{})
	s.TogglePlay()
	s.Scrub().GestureStart(300)
	pos := s.Model().Position()

	events := 0
	s.AddListener(func(Event) { events++ })

	s.Teardown()
	s.Teardown()

	if capture.released != 1 {
		t.Errorf("capture released %d times, want 1", capture.released)
	}
	if sched.live() != 0 {
		t.Errorf("%d ticks live after teardown", sched.live())
	}
	sched.fire(10)
	if s.Model().Position() != pos {
		t.Errorf("Position() moved after teardown: %v", s.Model().Position())
	}
	if err := s.Execute(transport.StepForward); !errors.Is(err, scruberrors.ErrClosed) {
		t.Errorf("Execute after teardown error = %v, want ErrClosed", err)
	}
	if err := s.SetClockText("01:00"); !errors.Is(err, scruberrors.ErrClosed) {
		t.Errorf("SetClockText after teardown error = %v, want ErrClosed", err)
	}
	if events != 0 {
		t.Errorf("listeners saw %d events after teardown", events)
	}
	if !s.Closed() {
		t.Error("Closed() = false after teardown")
	}

	s.Scrub().GestureStart(800)
	if s.Model().Position() != pos || s.Owner() != timeline.WriterNone {
		t.Errorf("drag after teardown: position %v owner %v, want %v none", s.Model().Position(), s.Owner(), pos)
	}
}

func TestListenersRunInRegistrationOrder(t *testing.T) {
	s, _, _ := newTestSession(t, Options{})

	var order []int
	var unsubscribes []func()
	for i := range 5 {
		unsubscribes = append(unsubscribes, s.AddListener(func(e Event) {
			if e.Kind == EventPosition {
				order = append(order, i)
			}
		}))
	}

	s.StepForward()
	unsubscribes[2]()
	s.StepForward()

	want := []int{0, 1, 2, 3, 4, 0, 1, 3, 4}
	if !slices.Equal(order, want) {
		t.Errorf("notification order = %v, want %v", order, want)
	}
}

func TestJumpsDuringDrag(t *testing.T) {
	s, _, _ := newTestSession(t, Options{})
	s.Scrub().GestureStart(300)

	var positions []float64
	s.AddListener(func(e Event) {
		if e.Kind == EventPosition {
			positions = append(positions, e.Snapshot.Position)
		}
	})

	s.JumpToEnd()
	s.JumpToStart()

	if !slices.Equal(positions, []float64{100, 0}) {
		t.Errorf("positions = %v, want [100 0]", positions)
	}
	if got := s.Snapshot().DragState; got != timeline.Dragging {
		t.Errorf("DragState = %v after jumps, want dragging", got)
	}
}
