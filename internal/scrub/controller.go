// Package scrub turns drag gestures over the ruler into position writes.
package scrub

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	scruberrors "github.com/tessro/scrub/internal/errors"
	"github.com/tessro/scrub/internal/ruler"
	"github.com/tessro/scrub/internal/timeline"
)

// Writer is the part of the model the controller writes.
type Writer interface {
	SetPosition(p float64)
}

// Geometry is the ruler's screen extent and the slice of the day it shows.
type Geometry struct {
	OriginX float64
	Width   float64
	Window  ruler.Window
}

// PositionAt maps an absolute X coordinate onto the visible window,
// clamping at the window edges. With the full-day window this is
// clamp((x-OriginX)/Width*100, 0, 100).
func (g Geometry) PositionAt(x float64) float64 {
	if g.Width <= 0 || math.IsNaN(x) {
		return timeline.MinPosition
	}
	w := g.Window.Normalize()
	f := math.Max(0, math.Min(1, (x-g.OriginX)/g.Width))
	return timeline.Clamp(w.From + f*w.Span())
}

// Source is the input device that produced an event.
type Source int

const (
	SourcePointer Source = iota
	SourceTouch
)

// Phase is the stage of a gesture.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
	PhaseCancel
)

// Event is one pointer or touch sample.
type Event struct {
	Source    Source
	Phase     Phase
	PointerID int64
	X         float64
}

// Handlers are the hooks a capture routes to while a drag is active.
type Handlers struct {
	Move   func(x float64)
	End    func()
	Cancel func()
}

// Release ends a capture. The controller calls it exactly once per drag.
type Release func()

// Capturer registers window-level move/end hooks for the duration of a
// drag, so the gesture keeps tracking when the pointer leaves the ruler.
type Capturer interface {
	BeginDragCapture(h Handlers) Release
}

// Controller owns the drag state.
type Controller struct {
	model    Writer
	capturer Capturer
	geometry Geometry
	logger   *slog.Logger

	state   timeline.DragState
	source  Source
	pointer int64
	release Release
	done    bool

	onStart func()
	onEnd   func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithCapturer sets the global capture scope. Without one the controller
// only sees events delivered to Handle or the Gesture methods.
func WithCapturer(c Capturer) Option {
	return func(ctrl *Controller) {
		ctrl.capturer = c
	}
}

// WithHooks sets callbacks run when a drag starts (before the first
// write) and after it ends.
func WithHooks(onStart, onEnd func()) Option {
	return func(ctrl *Controller) {
		ctrl.onStart = onStart
		ctrl.onEnd = onEnd
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(ctrl *Controller) {
		if l != nil {
			ctrl.logger = l
		}
	}
}

// New creates an idle controller with a full-day window and no width.
func New(model Writer, opts ...Option) *Controller {
	c := &Controller{
		model:    model,
		geometry: Geometry{Window: ruler.FullDay},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetGeometry updates the ruler extent. A non-positive width is rejected
// and the previous geometry kept.
func (c *Controller) SetGeometry(g Geometry) error {
	if g.Width <= 0 || math.IsNaN(g.Width) || math.IsInf(g.Width, 0) {
		return fmt.Errorf("%w: width %v", scruberrors.ErrInvalidGeometry, g.Width)
	}
	g.Window = g.Window.Normalize()
	c.geometry = g
	return nil
}

// SetWindow changes the visible slice of the day, keeping the extent.
func (c *Controller) SetWindow(w ruler.Window) {
	c.geometry.Window = w.Normalize()
}

// Geometry returns the current geometry.
func (c *Controller) Geometry() Geometry {
	return c.geometry
}

// State returns the drag state.
func (c *Controller) State() timeline.DragState {
	return c.state
}

// PositionFromPixel maps x through the current geometry.
func (c *Controller) PositionFromPixel(x float64) float64 {
	return c.geometry.PositionAt(x)
}

// GestureStart begins a pointer drag at x.
func (c *Controller) GestureStart(x float64) {
	c.start(SourcePointer, 0, x)
}

// GestureMove updates the drag; ignored unless dragging.
func (c *Controller) GestureMove(x float64) {
	if c.state != timeline.Dragging {
		return
	}
	c.model.SetPosition(c.PositionFromPixel(x))
}

// GestureEnd finishes the drag; ignored unless dragging.
func (c *Controller) GestureEnd() {
	c.finish("end")
}

// GestureCancel aborts the drag, keeping the last written position.
func (c *Controller) GestureCancel() {
	c.finish("cancel")
}

// Dispose releases any active capture. Call it on view teardown; later
// drags are ignored.
func (c *Controller) Dispose() {
	c.finish("dispose")
	c.done = true
}

// Handle routes a pointer or touch event through the gesture protocol.
// It returns true when the platform default (scroll, navigation) must be
// suppressed, which is the case for touch events that belong to a drag.
func (c *Controller) Handle(e Event) bool {
	if e.Phase == PhaseDown {
		if c.state == timeline.Dragging {
			// A second finger or button while dragging is not a new drag.
			return e.Source == SourceTouch && c.source == SourceTouch
		}
		c.start(e.Source, e.PointerID, e.X)
		return e.Source == SourceTouch
	}

	if c.state != timeline.Dragging || e.Source != c.source || e.PointerID != c.pointer {
		return false
	}

	switch e.Phase {
	case PhaseMove:
		c.GestureMove(e.X)
	case PhaseUp:
		c.GestureEnd()
	case PhaseCancel:
		c.GestureCancel()
	}
	return e.Source == SourceTouch
}

func (c *Controller) start(source Source, pointer int64, x float64) {
	if c.done {
		return
	}
	if c.state == timeline.Dragging {
		c.finish("restart")
	}

	c.state = timeline.Dragging
	c.source = source
	c.pointer = pointer
	if c.onStart != nil {
		c.onStart()
	}
	if c.capturer != nil {
		c.release = c.capturer.BeginDragCapture(Handlers{
			Move:   c.GestureMove,
			End:    c.GestureEnd,
			Cancel: c.GestureCancel,
		})
	}
	c.logger.Debug("drag started", "x", x)
	c.model.SetPosition(c.PositionFromPixel(x))
}

func (c *Controller) finish(reason string) {
	if c.state != timeline.Dragging {
		return
	}
	c.state = timeline.Idle
	if c.release != nil {
		release := c.release
		c.release = nil
		release()
	}
	c.logger.Debug("drag finished", "reason", reason)
	if c.onEnd != nil {
		c.onEnd()
	}
}
