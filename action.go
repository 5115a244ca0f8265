package act

import "github.com/AnatoleLucet/act/internal"

// Factory turns an input into the cold computation for one invocation.
type Factory[In, Out any] func(In) *Deferred[Out]

// ExecutionHandle is the result stream of a single invocation: absent until
// the computation resolves, then its terminal result forever.
type ExecutionHandle[T any] = *Stream[Option[Result[T]]]

// Action is a reusable command: executing it runs the factory, and its
// enabled/executing/latest-result state is observable as live streams. At
// most one execution is in flight at a time; executing while disabled is
// rejected with ErrNotEnabled, never queued.
type Action[In, Out any] struct {
	action *internal.Action
}

// NewAction creates an always-enabled action on the main scheduler.
func NewAction[In, Out any](factory Factory[In, Out]) *Action[In, Out] {
	return NewActionOn(Main(), nil, factory)
}

// NewActionWhen creates an action on the main scheduler that is enabled
// only while condition holds true and no execution is in flight.
func NewActionWhen[In, Out any](condition *Stream[bool], factory Factory[In, Out]) *Action[In, Out] {
	return NewActionOn(Main(), condition, factory)
}

// NewActionOn creates an action bound to the given scheduler. A nil
// condition means always enabled.
func NewActionOn[In, Out any](scheduler *Scheduler, condition *Stream[bool], factory Factory[In, Out]) *Action[In, Out] {
	cond := internal.NewStream(true)
	if condition != nil {
		cond = condition.stream
	}

	return &Action[In, Out]{internal.NewAction(scheduler.scheduler, cond, func(input any) *internal.Deferred {
		return factory(as[In](input)).deferred
	})}
}

// Enabled holds whether Execute would currently be accepted.
func (a *Action[In, Out]) Enabled() *Stream[bool] {
	return newStream(a.action.Enabled(), as[bool])
}

// Executing holds whether an execution is currently in flight.
func (a *Action[In, Out]) Executing() *Stream[bool] {
	return newStream(a.action.Executing(), as[bool])
}

// Results follows the current execution: absent until it resolves, then its
// terminal result. The latest result stays readable after the execution
// ends.
func (a *Action[In, Out]) Results() *Stream[Option[Result[Out]]] {
	return newStream(a.action.Results(), asOptionResult[Out])
}

// Values carries the success payloads of Results.
func (a *Action[In, Out]) Values() *Stream[Option[Out]] {
	return newStream(a.action.Values(), asOption[Out])
}

// Errors carries the error payloads of Results.
func (a *Action[In, Out]) Errors() *Stream[Option[error]] {
	return newStream(a.action.Errors(), asOption[error])
}

// Executions holds the in-flight execution's handle, absent when idle.
func (a *Action[In, Out]) Executions() *Stream[Option[ExecutionHandle[Out]]] {
	return newStream(a.action.Executions(), func(v any) Option[ExecutionHandle[Out]] {
		s, ok := v.(*internal.Stream)
		if !ok || s == nil {
			return None[ExecutionHandle[Out]]()
		}

		return Some[ExecutionHandle[Out]](newStream(s, asOptionResult[Out]))
	})
}

// Execute schedules one invocation and returns this call's own result
// stream. It never blocks. While the enabled condition is false, or another
// execution is in flight, the returned stream resolves immediately to
// ErrNotEnabled and the shared state is untouched.
func (a *Action[In, Out]) Execute(input In) ExecutionHandle[Out] {
	return newStream(a.action.Execute(input), asOptionResult[Out])
}

// Then chains two actions: the composed action runs first, and on success
// feeds the value to next. Errors short-circuit without ever invoking next.
// The composed action is enabled only while both actions are.
func Then[In, Mid, Out any](first *Action[In, Mid], next *Action[Mid, Out]) *Action[In, Out] {
	return &Action[In, Out]{internal.Then(first.action, next.action)}
}
