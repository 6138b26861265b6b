package tui

import (
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// dispatchMsg carries a timer callback into the bubbletea event loop.
type dispatchMsg struct {
	fn       func()
	canceled *atomic.Bool
}

// programScheduler runs autoplay ticks on the program's goroutine: the
// timer only sends a message, and Update runs the callback.
type programScheduler struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (s *programScheduler) bind(send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = send
}

// Schedule implements autoplay.Scheduler.
func (s *programScheduler) Schedule(d time.Duration, fn func()) func() {
	canceled := &atomic.Bool{}
	timer := time.AfterFunc(d, func() {
		if canceled.Load() {
			return
		}
		s.mu.Lock()
		send := s.send
		s.mu.Unlock()
		if send != nil {
			send(dispatchMsg{fn: fn, canceled: canceled})
		}
	})
	return func() {
		canceled.Store(true)
		timer.Stop()
	}
}

func (msg dispatchMsg) run() {
	if msg.canceled != nil && msg.canceled.Load() {
		return
	}
	msg.fn()
}
