package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// Scheduler is a serialized execution context: scheduled work runs in FIFO
// order, one task at a time, never reentrantly. Whichever goroutine finds
// the queue idle becomes the drainer; work scheduled mid-drain runs after
// the current task finishes.
type Scheduler struct {
	mu       sync.Mutex
	queue    []func()
	draining bool

	// goroutine currently draining, for IsCurrent
	gid int64
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule enqueues fn. If no task is running, the calling goroutine drains
// the queue before returning; otherwise fn runs later on the draining
// goroutine and Schedule returns immediately.
func (s *Scheduler) Schedule(fn func()) {
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	if s.draining {
		s.mu.Unlock()
		return
	}

	s.draining = true
	s.gid = goid.Get()
	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]

		s.mu.Unlock()
		next()
		s.mu.Lock()
	}
	s.draining = false
	s.gid = 0
	s.mu.Unlock()
}

// IsCurrent reports whether the calling goroutine is currently running a
// scheduled task.
func (s *Scheduler) IsCurrent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.draining && s.gid == goid.Get()
}

var mainScheduler = NewScheduler()

// Main returns the process-wide default context.
func Main() *Scheduler {
	return mainScheduler
}
