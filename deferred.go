package act

import "github.com/AnatoleLucet/act/internal"

// Deferred is a cold computation: nothing runs until Start, and it resolves
// exactly once. The result lands in an always-current stream, so
// subscribers attached before Start cannot miss it.
type Deferred[T any] struct {
	deferred *internal.Deferred
}

// NewDeferred wraps a producer that eventually calls resolve. The producer
// runs when Start is called, at most once; any resolve call after the first
// is dropped.
func NewDeferred[T any](producer func(resolve func(T, error))) *Deferred[T] {
	return &Deferred[T]{internal.NewDeferred(func(resolve func(internal.Result)) {
		producer(func(v T, err error) {
			if err != nil {
				resolve(internal.Result{Err: err})
				return
			}

			resolve(internal.Result{Value: v})
		})
	})}
}

// Async builds a deferred that runs fn in its own goroutine on Start.
func Async[T any](fn func() (T, error)) *Deferred[T] {
	return NewDeferred(func(resolve func(T, error)) {
		go func() { resolve(fn()) }()
	})
}

// Start triggers the computation. Further calls are no-ops.
func (d *Deferred[T]) Start() {
	d.deferred.Start()
}

// Results holds the eventual outcome: absent until the producer resolves,
// then the terminal result forever.
func (d *Deferred[T]) Results() *Stream[Option[Result[T]]] {
	return newStream(d.deferred.Results(), asOptionResult[T])
}
