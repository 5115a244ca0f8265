package internal

// Map derives a stream whose value follows fn applied to the source's.
func Map(s *Stream, fn func(any) any) *Stream {
	d := NewStream(fn(s.Value()))
	s.watch(func(v any) { d.Send(fn(v)) })

	return d
}

// CombineLatest2 recombines two streams whenever either changes.
func CombineLatest2(a, b *Stream, fn func(any, any) any) *Stream {
	d := NewStream(fn(a.Value(), b.Value()))
	a.watch(func(v any) { d.Send(fn(v, b.Value())) })
	b.watch(func(v any) { d.Send(fn(a.Value(), v)) })

	return d
}

// SkipRepeats drops updates equal to the previous value. Values must be
// comparable.
func SkipRepeats(s *Stream) *Stream {
	last := s.Value()
	d := NewStream(last)
	s.watch(func(v any) {
		if v == last {
			return
		}

		last = v
		d.Send(v)
	})

	return d
}

// Filter forwards only the updates that pass pred. The derived stream's
// snapshot starts at the source's current value if it passes, else at def.
func Filter(s *Stream, pred func(any) bool, def any) *Stream {
	initial := def
	if v := s.Value(); pred(v) {
		initial = v
	}

	d := NewStream(initial)
	s.watch(func(v any) {
		if pred(v) {
			d.Send(v)
		}
	})

	return d
}

// Switch flattens a stream whose values are Option-valued inner streams (or
// nil), always observing only the most recent inner stream. On attach the
// inner's current value is forwarded only if present, so a fresh inner does
// not re-emit absent over a previously forwarded value. A nil outer value
// tears the current subscription down and retains the last forwarded value.
func Switch(outer *Stream) *Stream {
	d := NewStream(None())

	var stop func()
	attach := func(v any) {
		if stop != nil {
			stop()
			stop = nil
		}

		inner, ok := v.(*Stream)
		if !ok || inner == nil {
			return
		}

		if current, ok := inner.Value().(Option); ok && current.Ok() {
			d.Send(current)
		}
		stop = inner.watch(d.Send)
	}

	attach(outer.Value())
	outer.watch(attach)

	return d
}

// RedeliverOn forwards every update through the scheduler so observers see
// it on the scheduler's serialized context. The derived stream is seeded
// with the source's snapshot synchronously, and updates arriving while
// already on the scheduler are forwarded on the same tick, so redelivery
// never introduces a transient stale gap.
func RedeliverOn(s *Stream, sched *Scheduler) *Stream {
	d := NewStream(s.Value())
	s.watch(func(v any) {
		if sched.IsCurrent() {
			d.Send(v)
			return
		}

		sched.Schedule(func() { d.Send(v) })
	})

	return d
}
