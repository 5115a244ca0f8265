package internal

// Then builds an action chaining two actions sequentially: the second runs
// only on the first's success, and errors short-circuit without ever
// invoking the second. The composed action is enabled only while both
// actions are, and runs on the first action's scheduler.
func Then(first, next *Action) *Action {
	condition := CombineLatest2(first.enabled, next.enabled, func(a, b any) any {
		return a.(bool) && b.(bool)
	})

	factory := func(input any) *Deferred {
		return NewDeferred(func(resolve func(Result)) {
			s1 := first.Execute(input)

			// absent → no inner stream yet; success → switch into the next
			// action's execution; error → an already-terminal stream, next
			// untouched
			inners := Map(s1, func(v any) any {
				opt := v.(Option)
				r, ok := opt.Get()
				if !ok {
					return (*Stream)(nil)
				}

				res := r.(Result)
				if res.Err != nil {
					return NewStream(Some(res))
				}

				return next.Execute(res.Value)
			})

			// first concrete value out of the flattened stream settles the
			// composed computation; Deferred drops any later resolve
			flattened := Switch(inners)
			flattened.Subscribe(func(v any) {
				if opt := v.(Option); opt.Ok() {
					r, _ := opt.Get()
					resolve(r.(Result))
				}
			})
		})
	}

	return NewAction(first.scheduler, condition, factory)
}
