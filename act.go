package act

import "github.com/AnatoleLucet/act/internal"

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// ErrNotEnabled is delivered by Execute when the action is disabled,
// including while another execution is in flight.
var ErrNotEnabled = internal.ErrNotEnabled

// Stream is a read-only view over a broadcast value: it always has a
// current snapshot and pushes every update to its subscribers.
type Stream[T any] struct {
	stream *internal.Stream
	decode func(any) T
}

func newStream[T any](s *internal.Stream, decode func(any) T) *Stream[T] {
	return &Stream[T]{stream: s, decode: decode}
}

// Read the current value of the stream.
func (s *Stream[T]) Read() T {
	return s.decode(s.stream.Value())
}

// Subscribe delivers the current value immediately, then every update.
// The returned function stops the subscription.
func (s *Stream[T]) Subscribe(fn func(T)) (stop func()) {
	return s.stream.Subscribe(func(v any) { fn(s.decode(v)) })
}

// Map derives a stream whose value follows fn applied to s.
func Map[T, U any](s *Stream[T], fn func(T) U) *Stream[U] {
	derived := internal.Map(s.stream, func(v any) any {
		return fn(s.decode(v))
	})

	return newStream(derived, as[U])
}

// CombineLatest recombines two streams whenever either changes.
func CombineLatest[A, B, T any](a *Stream[A], b *Stream[B], fn func(A, B) T) *Stream[T] {
	derived := internal.CombineLatest2(a.stream, b.stream, func(av, bv any) any {
		return fn(a.decode(av), b.decode(bv))
	})

	return newStream(derived, as[T])
}

// Signal is your typical writable stream: read the current value, write a
// new one, everyone subscribed hears about it.
type Signal[T any] struct {
	stream *internal.Stream
}

func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{internal.NewStream(initial)}
}

// Read the current value of the signal.
func (s *Signal[T]) Read() T {
	return as[T](s.stream.Value())
}

// Write a new value to the signal, notifying subscribers.
func (s *Signal[T]) Write(v T) {
	s.stream.Send(v)
}

// Subscribe delivers the current value immediately, then every update.
func (s *Signal[T]) Subscribe(fn func(T)) (stop func()) {
	return s.stream.Subscribe(func(v any) { fn(as[T](v)) })
}

// Stream returns a read-only view of the signal.
func (s *Signal[T]) Stream() *Stream[T] {
	return newStream(s.stream, as[T])
}

// Scheduler is a serialized execution context: scheduled work runs in FIFO
// order, one task at a time, never reentrantly.
type Scheduler struct {
	scheduler *internal.Scheduler
}

func NewScheduler() *Scheduler {
	return &Scheduler{internal.NewScheduler()}
}

// Schedule enqueues work for ordered execution. It never runs fn reentrantly:
// scheduling from inside a task defers fn until the current task finishes.
func (s *Scheduler) Schedule(fn func()) {
	s.scheduler.Schedule(fn)
}

// Main returns the process-wide default scheduler.
func Main() *Scheduler {
	return &Scheduler{internal.Main()}
}
