package internal

import "sync"

type observer struct {
	id int
	fn func(any)
}

// Stream is a broadcast cell: it always holds a current snapshot and pushes
// every update to its observers in subscription order.
type Stream struct {
	mu        sync.Mutex
	value     any
	observers []observer
	nextID    int
}

func NewStream(initial any) *Stream {
	return &Stream{value: initial}
}

// Value returns the current snapshot.
func (s *Stream) Value() any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.value
}

// Send updates the snapshot then notifies observers, oldest subscription
// first. Notification happens outside the lock so observers are free to
// subscribe or send in turn.
func (s *Stream) Send(v any) {
	s.mu.Lock()
	s.value = v
	observers := make([]observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o.fn(v)
	}
}

// Subscribe delivers the current snapshot immediately, then every update.
// The returned function stops the subscription.
func (s *Stream) Subscribe(fn func(any)) (stop func()) {
	s.mu.Lock()
	current := s.value
	stop = s.register(fn)
	s.mu.Unlock()

	fn(current)

	return stop
}

// watch is Subscribe without the initial replay. Operators use it to react
// to updates only.
func (s *Stream) watch(fn func(any)) (stop func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.register(fn)
}

// register must be called with s.mu held.
func (s *Stream) register(fn func(any)) (stop func()) {
	id := s.nextID
	s.nextID++
	s.observers = append(s.observers, observer{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}
