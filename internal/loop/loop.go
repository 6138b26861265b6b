// Package loop runs callbacks one at a time on a single goroutine, in the
// order they were posted. Timers only post; they never run user code on
// their own goroutine.
package loop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrStopped is returned by Post after Run has returned.
var ErrStopped = errors.New("event loop stopped")

// Loop is a cooperative event loop.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

// New creates a loop with room for buffer queued callbacks.
func New(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 64
	}
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Run executes callbacks until ctx is done. Each callback runs to
// completion before the next one starts.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.done) })

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Post queues fn. It blocks while the queue is full and fails once the
// loop has stopped.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.done:
		return ErrStopped
	default:
	}

	select {
	case l.tasks <- fn:
		return nil
	case <-l.done:
		return ErrStopped
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(fn func()) error {
	finished := make(chan struct{})
	if err := l.Post(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrStopped
	}
}

// Schedule posts fn to the loop after d. The returned cancel function
// guarantees fn will not run once it returns, even if the timer already
// fired and the callback is queued.
func (l *Loop) Schedule(d time.Duration, fn func()) func() {
	var canceled atomic.Bool
	timer := time.AfterFunc(d, func() {
		_ = l.Post(func() {
			if !canceled.Load() {
				fn()
			}
		})
	})
	return func() {
		canceled.Store(true)
		timer.Stop()
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
