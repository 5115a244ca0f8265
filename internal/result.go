package internal

// Option marks a stream slot as holding a value or not. Streams always carry
// a current snapshot, so "no value yet" and "resolved to a zero value" have
// to stay distinguishable.
type Option struct {
	value any
	ok    bool
}

func Some(v any) Option { return Option{value: v, ok: true} }
func None() Option      { return Option{} }

// Get returns the value and whether it is present.
func (o Option) Get() (any, bool) { return o.value, o.ok }

// Ok reports whether a value is present.
func (o Option) Ok() bool { return o.ok }

// Result is the outcome of one computation: a value or an error.
type Result struct {
	Value any
	Err   error
}
