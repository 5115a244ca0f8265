package internal

import "errors"

// ErrNotEnabled is delivered when Execute is called while the action is
// disabled, including while another execution is in flight.
var ErrNotEnabled = errors.New("act: not enabled")

// Action coordinates repeated invocations of an async factory: it tracks
// whether a run is in flight, derives enabled-ness from a user condition,
// and broadcasts the latest outcome. Every state transition happens on the
// action's scheduler, so observers never see partial updates.
type Action struct {
	scheduler *Scheduler
	factory   func(any) *Deferred

	// current-execution cell: holds the in-flight execution's result stream,
	// or nil when idle. Written only inside scheduled callbacks.
	executions *Stream

	executing *Stream
	enabled   *Stream
	results   *Stream
	values    *Stream
	errs      *Stream
}

// NewAction derives the action's observable state from the condition stream
// and the execution cell. The condition is redelivered through the
// scheduler so enabled only ever changes on the action's context.
func NewAction(sched *Scheduler, condition *Stream, factory func(any) *Deferred) *Action {
	a := &Action{
		scheduler:  sched,
		factory:    factory,
		executions: NewStream(nil),
	}

	a.executing = SkipRepeats(Map(a.executions, func(v any) any {
		return v != nil
	}))

	cond := RedeliverOn(condition, sched)
	a.enabled = SkipRepeats(CombineLatest2(cond, a.executing, func(c, e any) any {
		return c.(bool) && !e.(bool)
	}))

	a.results = Switch(a.executions)
	a.values = project(a.results, func(r Result) (any, bool) { return r.Value, r.Err == nil })
	a.errs = project(a.results, func(r Result) (any, bool) { return r.Err, r.Err != nil })

	return a
}

func (a *Action) Enabled() *Stream    { return a.enabled }
func (a *Action) Executing() *Stream  { return a.executing }
func (a *Action) Results() *Stream    { return a.results }
func (a *Action) Values() *Stream     { return a.values }
func (a *Action) Errors() *Stream     { return a.errs }
func (a *Action) Executions() *Stream { return a.executions }

// Execute schedules one invocation and returns a stream carrying this
// call's eventual outcome. It never blocks. The enabled check, the publish
// into the execution cell and the retraction after delivery all run as
// scheduled tasks, so concurrent calls cannot race: whoever is scheduled
// first wins and the rest resolve to ErrNotEnabled.
func (a *Action) Execute(input any) *Stream {
	call := NewStream(None())

	a.scheduler.Schedule(func() {
		if !a.enabled.Value().(bool) {
			call.Send(Some(Result{Err: ErrNotEnabled}))
			return
		}

		deferred := a.factory(input)
		execution := RedeliverOn(deferred.Results(), a.scheduler)

		a.executions.Send(execution)

		execution.watch(func(v any) {
			opt := v.(Option)

			// per-call delivery first, retraction second, same tick
			call.Send(opt)
			if opt.Ok() {
				a.executions.Send(nil)
			}
		})

		deferred.Start()
	})

	return call
}

// project narrows the results stream to one side of the outcome. Absent
// values never re-emit, so a fresh execution doesn't disturb the latest
// delivered payload.
func project(results *Stream, side func(Result) (any, bool)) *Stream {
	keep := Filter(results, func(v any) bool {
		opt := v.(Option)
		r, ok := opt.Get()
		if !ok {
			return false
		}

		_, ok = side(r.(Result))
		return ok
	}, None())

	return Map(keep, func(v any) any {
		opt := v.(Option)
		r, ok := opt.Get()
		if !ok {
			return None()
		}

		payload, _ := side(r.(Result))
		return Some(payload)
	})
}
