package act

import "github.com/AnatoleLucet/act/internal"

// Option distinguishes "no value yet" from a present value, even a zero
// one. Streams always hold a current snapshot, so absence is explicit.
type Option[T any] struct {
	value T
	ok    bool
}

func Some[T any](v T) Option[T] { return Option[T]{value: v, ok: true} }
func None[T any]() Option[T]    { return Option[T]{} }

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.value, o.ok }

// Ok reports whether a value is present.
func (o Option[T]) Ok() bool { return o.ok }

// MustGet returns the value, panicking when absent.
func (o Option[T]) MustGet() T {
	if !o.ok {
		panic("act: Option is absent")
	}

	return o.value
}

// Result is the outcome of one computation: a value or an error.
type Result[T any] struct {
	Value T
	Err   error
}

func Ok[T any](v T) Result[T]         { return Result[T]{Value: v} }
func Fail[T any](err error) Result[T] { return Result[T]{Err: err} }

// Failed reports whether the result carries an error.
func (r Result[T]) Failed() bool { return r.Err != nil }

func asOption[T any](v any) Option[T] {
	opt := v.(internal.Option)
	value, ok := opt.Get()
	if !ok {
		return None[T]()
	}

	return Some(as[T](value))
}

func asOptionResult[T any](v any) Option[Result[T]] {
	opt := v.(internal.Option)
	r, ok := opt.Get()
	if !ok {
		return None[Result[T]]()
	}

	res := r.(internal.Result)
	return Some(Result[T]{Value: as[T](res.Value), Err: res.Err})
}
