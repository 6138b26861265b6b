// Package session assembles the playback view: one position model with
// the scrub controller, autoplay clock and transport commands writing it.
//
// A Session is not safe for concurrent use. Drive it from a single event
// loop (the bubbletea program or loop.Loop).
package session

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/tessro/scrub/internal/autoplay"
	scruberrors "github.com/tessro/scrub/internal/errors"
	"github.com/tessro/scrub/internal/ruler"
	"github.com/tessro/scrub/internal/scrub"
	"github.com/tessro/scrub/internal/timeline"
	"github.com/tessro/scrub/internal/transport"
)

// DragPolicy decides what a drag does to autoplay.
type DragPolicy string

const (
	// DragResume keeps the play state; ticking picks up from the dragged-to
	// position when the drag ends.
	DragResume DragPolicy = "resume"
	// DragPause pauses autoplay when a drag starts; playing again needs an
	// explicit toggle.
	DragPause DragPolicy = "pause"
)

// DatePolicy decides what selecting a new date does to the position.
type DatePolicy string

const (
	DateKeep  DatePolicy = "keep"
	DateStart DatePolicy = "start"
	DateEnd   DatePolicy = "end"
)

// Zoom is the ruler scale.
type Zoom int

const (
	ZoomDay Zoom = iota
	ZoomHour
)

// String returns the button label for the zoom level.
func (z Zoom) String() string {
	if z == ZoomHour {
		return "1H"
	}
	return "24H"
}

// Options configures a Session.
type Options struct {
	Scheduler    autoplay.Scheduler
	Capturer     scrub.Capturer
	Period       time.Duration
	LoopDuration time.Duration
	Step         float64
	Speed        timeline.Speed
	DragPolicy   DragPolicy
	DatePolicy   DatePolicy
	Date         timeline.Date
	Logger       *slog.Logger
}

// Session is one mounted playback view.
type Session struct {
	model    *timeline.Model
	clock    *autoplay.Clock
	scrub    *scrub.Controller
	commands *transport.Commands
	owner    timeline.Ownership
	logger   *slog.Logger

	dragPolicy DragPolicy
	datePolicy DatePolicy
	date       timeline.Date
	zoom       Zoom
	clip       Clip

	listeners      []listener
	nextListenerID int
	unsubscribe    func()
	closed         bool
}

// New mounts a paused session at 00:00:00 on opts.Date (today if unset).
func New(opts Options) *Session {
	s := &Session{
		model:      timeline.NewModel(),
		logger:     opts.Logger,
		dragPolicy: opts.DragPolicy,
		datePolicy: opts.DatePolicy,
		date:       opts.Date,
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.dragPolicy == "" {
		s.dragPolicy = DragResume
	}
	if s.datePolicy == "" {
		s.datePolicy = DateKeep
	}
	if s.date.IsZero() {
		s.date = timeline.Today()
	}

	s.clock = autoplay.New(s.model, opts.Scheduler,
		autoplay.WithPeriod(opts.Period),
		autoplay.WithLoopDuration(opts.LoopDuration),
		autoplay.WithSpeed(opts.Speed),
		autoplay.WithGate(func() bool { return s.owner.Allows(timeline.WriterClock) }),
		autoplay.WithWrapHandler(func() { s.emit(EventWrap) }),
		autoplay.WithLogger(s.logger),
	)

	scrubOpts := []scrub.Option{
		scrub.WithHooks(s.onDragStart, s.onDragEnd),
		scrub.WithLogger(s.logger),
	}
	if opts.Capturer != nil {
		scrubOpts = append(scrubOpts, scrub.WithCapturer(opts.Capturer))
	}
	s.scrub = scrub.New(s.model, scrubOpts...)
	s.commands = transport.New(s.model, player{s}, opts.Step)
	s.unsubscribe = s.model.AddListener(s.onPosition)

	s.logger.Debug("session mounted", "date", s.date.String(), "drag_policy", string(s.dragPolicy), "date_policy", string(s.datePolicy))
	return s
}

// player adapts the clock for transport commands so state changes keep
// the ownership token and listeners in sync.
type player struct{ s *Session }

func (p player) Toggle() timeline.PlayState {
	state := p.s.clock.Toggle()
	p.s.syncClockOwnership()
	p.s.emit(EventPlayState)
	return state
}

func (p player) CycleSpeed() timeline.Speed {
	speed := p.s.clock.CycleSpeed()
	p.s.emit(EventSpeed)
	return speed
}

func (s *Session) syncClockOwnership() {
	if s.clock.State() == timeline.Playing {
		s.owner.Claim(timeline.WriterClock)
	} else {
		s.owner.Yield(timeline.WriterClock)
	}
}

func (s *Session) onDragStart() {
	s.owner.Claim(timeline.WriterScrub)
	if s.dragPolicy == DragPause && s.clock.State() == timeline.Playing {
		s.clock.Pause()
		s.emit(EventPlayState)
	}
	s.clock.Suspend()
	s.emit(EventDrag)
}

func (s *Session) onDragEnd() {
	s.owner.Yield(timeline.WriterScrub)
	s.clock.Resume()
	s.syncClockOwnership()
	s.emit(EventDrag)
}

func (s *Session) onPosition(p float64) {
	if s.zoom == ZoomHour && s.scrub.State() == timeline.Idle {
		if w := s.scrub.Geometry().Window; !w.Contains(p) {
			s.scrub.SetWindow(ruler.Around(p, ruler.HourSpan))
		}
	}
	s.emit(EventPosition)
}

// Model returns the position model for read-only observers.
func (s *Session) Model() *timeline.Model {
	return s.model
}

// Scrub returns the drag controller for input routing.
func (s *Session) Scrub() *scrub.Controller {
	return s.scrub
}

// Clock returns the autoplay clock.
func (s *Session) Clock() *autoplay.Clock {
	return s.clock
}

// Owner returns the writer currently holding the ownership token.
func (s *Session) Owner() timeline.Writer {
	return s.owner.Holder()
}

// Closed reports whether Teardown ran.
func (s *Session) Closed() bool {
	return s.closed
}

// Resize updates the ruler extent, keeping the zoom window.
func (s *Session) Resize(originX, width float64) error {
	if s.closed {
		return scruberrors.ErrClosed
	}
	return s.scrub.SetGeometry(scrub.Geometry{
		OriginX: originX,
		Width:   width,
		Window:  s.scrub.Geometry().Window,
	})
}

// Execute runs a named transport command.
func (s *Session) Execute(cmd transport.Command) error {
	if s.closed {
		return scruberrors.ErrClosed
	}
	return s.commands.Execute(cmd)
}

// JumpToStart moves to 00:00:00.
func (s *Session) JumpToStart() { _ = s.Execute(transport.JumpStart) }

// JumpToEnd moves to 24:00:00.
func (s *Session) JumpToEnd() { _ = s.Execute(transport.JumpEnd) }

// StepBackward moves back one step.
func (s *Session) StepBackward() { _ = s.Execute(transport.StepBack) }

// StepForward moves ahead one step.
func (s *Session) StepForward() { _ = s.Execute(transport.StepForward) }

// TogglePlay flips the play state.
func (s *Session) TogglePlay() { _ = s.Execute(transport.TogglePlay) }

// CycleSpeed advances the speed multiplier.
func (s *Session) CycleSpeed() { _ = s.Execute(transport.CycleSpeed) }

// SetClockText parses a typed HH:MM[:SS] time and moves the playhead
// there. Invalid text leaves the position untouched.
func (s *Session) SetClockText(text string) error {
	if s.closed {
		return scruberrors.ErrClosed
	}
	tod, err := timeline.ParseTimeOfDay(text)
	if err != nil {
		return err
	}
	s.model.SetPosition(tod.Position())
	return nil
}

// SelectDate changes the selected date and applies the date policy.
func (s *Session) SelectDate(d timeline.Date) error {
	if s.closed {
		return scruberrors.ErrClosed
	}
	if d.IsZero() {
		return fmt.Errorf("%w: empty date", scruberrors.ErrInvalidDate)
	}
	s.date = d
	switch s.datePolicy {
	case DateStart:
		s.model.SetPosition(timeline.MinPosition)
	case DateEnd:
		s.model.SetPosition(timeline.MaxPosition)
	}
	s.logger.Debug("date selected", "date", d.String(), "policy", string(s.datePolicy))
	s.emit(EventDate)
	return nil
}

// ShiftDate selects the date n days away from the current one.
func (s *Session) ShiftDate(n int) error {
	return s.SelectDate(s.date.AddDays(n))
}

// Date returns the selected date.
func (s *Session) Date() timeline.Date {
	return s.date
}

// Zoom returns the ruler scale.
func (s *Session) Zoom() Zoom {
	return s.zoom
}

// Window returns the slice of the day the ruler shows.
func (s *Session) Window() ruler.Window {
	return s.scrub.Geometry().Window
}

// ToggleZoom switches between the 24-hour ruler and a 1-hour ruler around
// the playhead.
func (s *Session) ToggleZoom() Zoom {
	if s.closed {
		return s.zoom
	}
	if s.zoom == ZoomDay {
		s.zoom = ZoomHour
		s.scrub.SetWindow(ruler.Around(s.model.Position(), ruler.HourSpan))
	} else {
		s.zoom = ZoomDay
		s.scrub.SetWindow(ruler.FullDay)
	}
	s.emit(EventZoom)
	return s.zoom
}

type listener struct {
	id int
	fn func(Event)
}

// AddListener registers a callback for session events. Listeners run in
// registration order. Returns an unsubscribe function.
func (s *Session) AddListener(fn func(Event)) func() {
	id := s.nextListenerID
	s.nextListenerID++
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		s.listeners = slices.DeleteFunc(s.listeners, func(l listener) bool { return l.id == id })
	}
}

// Snapshot returns the observable state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Position:  s.model.Position(),
		Time:      s.model.TimeOfDay(),
		Speed:     s.clock.Speed(),
		PlayState: s.clock.State(),
		DragState: s.scrub.State(),
		Date:      s.date,
		Zoom:      s.zoom,
		Clip:      s.clip,
	}
}

// Teardown unmounts the view: the clock stops, any drag capture is
// released and listeners are dropped. Safe to call more than once.
func (s *Session) Teardown() {
	if s.closed {
		return
	}
	s.closed = true
	s.listeners = nil
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.clock.Stop()
	s.scrub.Dispose()
	s.owner.Yield(timeline.WriterScrub)
	s.owner.Yield(timeline.WriterClock)
	s.logger.Debug("session torn down")
}

func (s *Session) emit(kind EventKind) {
	if len(s.listeners) == 0 {
		return
	}
	e := Event{Kind: kind, Snapshot: s.Snapshot()}
	for _, l := range slices.Clone(s.listeners) {
		l.fn(e)
	}
}
