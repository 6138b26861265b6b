// Package autoplay advances the playback position on a fixed tick while
// playing.
package autoplay

import (
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/tessro/scrub/internal/timeline"
)

const (
	// DefaultPeriod is the tick interval.
	DefaultPeriod = 100 * time.Millisecond
	// DefaultLoopDuration is the wall-clock time speed 1 takes to cross
	// the whole window.
	DefaultLoopDuration = 100 * time.Second
)

// Scheduler registers a one-shot callback and returns a cancel function.
// Callbacks must run on the same event loop that owns the model.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// Position is the part of the model the clock reads and writes.
type Position interface {
	Position() float64
	SetPosition(p float64)
}

// Task is the handle of one playing session. At most one uncanceled task
// exists per clock.
type Task struct {
	id       uint64
	cancel   func()
	canceled bool
}

// ID returns the task sequence number, starting at 1.
func (t *Task) ID() uint64 {
	return t.id
}

// Cancel stops the pending tick. Safe to call more than once.
func (t *Task) Cancel() {
	if t.canceled {
		return
	}
	t.canceled = true
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// Canceled reports whether Cancel was called.
func (t *Task) Canceled() bool {
	return t.canceled
}

// Clock drives the position while PlayState is Playing.
type Clock struct {
	model     Position
	scheduler Scheduler
	period    time.Duration
	loop      time.Duration
	gate      func() bool
	onWrap    func()
	logger    *slog.Logger

	state     timeline.PlayState
	speed     timeline.Speed
	suspended bool
	task      *Task
	nextID    uint64
	ticks     uint64
	wraps     uint64
}

// Option configures a Clock.
type Option func(*Clock)

// WithPeriod sets the tick interval.
func WithPeriod(d time.Duration) Option {
	return func(c *Clock) {
		if d > 0 {
			c.period = d
		}
	}
}

// WithLoopDuration sets how long speed 1 takes to cross the window.
func WithLoopDuration(d time.Duration) Option {
	return func(c *Clock) {
		if d > 0 {
			c.loop = d
		}
	}
}

// WithSpeed sets the initial multiplier.
func WithSpeed(s timeline.Speed) Option {
	return func(c *Clock) {
		if s.Valid() {
			c.speed = s
		}
	}
}

// WithGate installs a check consulted before every write. A tick that
// finds the gate closed skips its write but stays armed.
func WithGate(gate func() bool) Option {
	return func(c *Clock) {
		c.gate = gate
	}
}

// WithWrapHandler installs a callback fired when playback loops to the
// start of the window.
func WithWrapHandler(fn func()) Option {
	return func(c *Clock) {
		c.onWrap = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Clock) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a paused clock at 1X.
func New(model Position, scheduler Scheduler, opts ...Option) *Clock {
	c := &Clock{
		model:     model,
		scheduler: scheduler,
		period:    DefaultPeriod,
		loop:      DefaultLoopDuration,
		speed:     timeline.Speed1X,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Step returns the position advance per tick at 1X.
func (c *Clock) Step() float64 {
	return timeline.MaxPosition * float64(c.period) / float64(c.loop)
}

// Period returns the tick interval.
func (c *Clock) Period() time.Duration {
	return c.period
}

// State returns the play state.
func (c *Clock) State() timeline.PlayState {
	return c.state
}

// Speed returns the multiplier.
func (c *Clock) Speed() timeline.Speed {
	return c.speed
}

// SetSpeed changes the multiplier. The pending tick is not re-armed; the
// new value applies from the next tick.
func (c *Clock) SetSpeed(s timeline.Speed) {
	if s.Valid() {
		c.speed = s
	}
}

// CycleSpeed advances to the next multiplier and returns it.
func (c *Clock) CycleSpeed() timeline.Speed {
	c.speed = c.speed.Next()
	return c.speed
}

// Active reports whether a tick registration is pending.
func (c *Clock) Active() bool {
	return c.task != nil && !c.task.canceled
}

// Suspended reports whether ticking is held back by Suspend.
func (c *Clock) Suspended() bool {
	return c.suspended
}

// Ticks returns the number of ticks that wrote the position.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Wraps returns how many times playback looped.
func (c *Clock) Wraps() uint64 {
	return c.wraps
}

// Play enters Playing without touching the position. Calling Play while
// already playing returns the active task instead of registering a second
// one. While suspended the state changes but no tick is armed.
func (c *Clock) Play() *Task {
	c.state = timeline.Playing
	if c.suspended {
		return c.task
	}
	if c.Active() {
		return c.task
	}
	c.nextID++
	c.task = &Task{id: c.nextID}
	c.logger.Debug("autoplay started", "task", c.task.id, "speed", c.speed.String())
	c.arm(c.task)
	return c.task
}

// Pause enters Paused and cancels the pending tick.
func (c *Clock) Pause() {
	c.state = timeline.Paused
	c.cancelTask()
}

// Toggle flips the play state and returns the new one.
func (c *Clock) Toggle() timeline.PlayState {
	if c.state == timeline.Playing {
		c.Pause()
	} else {
		c.Play()
	}
	return c.state
}

// Suspend cancels the pending tick but keeps the play state, so another
// writer can own the position for a while.
func (c *Clock) Suspend() {
	c.suspended = true
	c.cancelTask()
}

// Resume lifts a suspension and re-arms if still playing.
func (c *Clock) Resume() {
	if !c.suspended {
		return
	}
	c.suspended = false
	if c.state == timeline.Playing {
		c.Play()
	}
}

// Stop pauses and releases the registration for teardown.
func (c *Clock) Stop() {
	c.suspended = false
	c.Pause()
}

func (c *Clock) cancelTask() {
	if c.task == nil {
		return
	}
	if !c.task.canceled {
		c.logger.Debug("autoplay canceled", "task", c.task.id, "ticks", c.ticks)
	}
	c.task.Cancel()
	c.task = nil
}

func (c *Clock) arm(task *Task) {
	task.cancel = c.scheduler.Schedule(c.period, func() {
		c.tick(task)
	})
}

func (c *Clock) tick(task *Task) {
	if task.canceled || task != c.task {
		return
	}
	task.cancel = nil

	if c.gate == nil || c.gate() {
		c.advance()
	}

	// Advancing can run listeners that pause the clock.
	if task.canceled || task != c.task {
		return
	}
	c.arm(task)
}

func (c *Clock) advance() {
	next := c.model.Position() + float64(c.speed)*c.Step()
	wrapped := false
	if next >= timeline.MaxPosition {
		next = math.Mod(next, timeline.MaxPosition)
		wrapped = true
		c.wraps++
	}
	c.ticks++
	c.model.SetPosition(next)
	if wrapped && c.onWrap != nil {
		c.onWrap()
	}
}
