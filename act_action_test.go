package act

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionExecute(t *testing.T) {
	t.Run("runs the factory and delivers the result", func(t *testing.T) {
		execLog := []bool{}
		valueLog := []string{}

		action := NewAction(func(in int) *Deferred[int] {
			return NewDeferred(func(resolve func(int, error)) {
				resolve(in*2, nil)
			})
		})
		action.Executing().Subscribe(func(v bool) {
			execLog = append(execLog, v)
		})
		action.Values().Subscribe(func(opt Option[int]) {
			if v, ok := opt.Get(); ok {
				valueLog = append(valueLog, fmt.Sprintf("%d", v))
			} else {
				valueLog = append(valueLog, "absent")
			}
		})

		call := action.Execute(21)

		r, ok := call.Read().Get()
		assert.True(t, ok)
		assert.Equal(t, 42, r.Value)
		assert.NoError(t, r.Err)

		assert.Equal(t, []bool{false, true, false}, execLog)
		assert.Equal(t, []string{"absent", "42"}, valueLog)
	})

	t.Run("delivers the result before retracting executing", func(t *testing.T) {
		log := []string{}

		action := NewAction(func(in int) *Deferred[int] {
			return NewDeferred(func(resolve func(int, error)) {
				resolve(in*2, nil)
			})
		})
		action.Results().Subscribe(func(opt Option[Result[int]]) {
			if r, ok := opt.Get(); ok {
				log = append(log, fmt.Sprintf("result %d", r.Value))
			}
		})
		action.Executing().Subscribe(func(v bool) {
			log = append(log, fmt.Sprintf("executing %v", v))
		})

		action.Execute(1)

		assert.Equal(t, []string{
			"executing false",
			"executing true",
			"result 2",
			"executing false",
		}, log)
	})

	t.Run("rejects when disabled", func(t *testing.T) {
		ran := false

		cond := NewSignal(false)
		action := NewActionWhen(cond.Stream(), func(in int) *Deferred[int] {
			return NewDeferred(func(resolve func(int, error)) {
				ran = true
				resolve(in, nil)
			})
		})

		call := action.Execute(1)

		r, ok := call.Read().Get()
		assert.True(t, ok)
		assert.ErrorIs(t, r.Err, ErrNotEnabled)

		assert.False(t, ran)
		assert.False(t, action.Executing().Read())
		assert.False(t, action.Executions().Read().Ok())
		assert.False(t, action.Results().Read().Ok())
	})

	t.Run("rejects while another execution is in flight", func(t *testing.T) {
		release := make(chan struct{})

		action := NewAction(func(in int) *Deferred[int] {
			return NewDeferred(func(resolve func(int, error)) {
				go func() {
					<-release
					resolve(in, nil)
				}()
			})
		})

		first := action.Execute(1)
		assert.True(t, action.Executing().Read())
		assert.False(t, action.Enabled().Read())
		assert.False(t, first.Read().Ok())

		second := action.Execute(2)
		r, ok := second.Read().Get()
		assert.True(t, ok)
		assert.ErrorIs(t, r.Err, ErrNotEnabled)

		var wg sync.WaitGroup
		wg.Add(1)
		action.Executing().Subscribe(func(v bool) {
			if !v {
				wg.Done()
			}
		})

		close(release)
		wg.Wait()

		assert.Equal(t, 1, first.Read().MustGet().Value)
		assert.True(t, action.Enabled().Read())
	})

	t.Run("resolves asynchronously", func(t *testing.T) {
		release := make(chan struct{})
		execLog := []bool{}
		valueLog := []string{}

		action := NewAction(func(in int) *Deferred[int] {
			return NewDeferred(func(resolve func(int, error)) {
				go func() {
					<-release
					resolve(42, nil)
				}()
			})
		})
		action.Executing().Subscribe(func(v bool) {
			execLog = append(execLog, v)
		})
		action.Values().Subscribe(func(opt Option[int]) {
			if v, ok := opt.Get(); ok {
				valueLog = append(valueLog, fmt.Sprintf("%d", v))
			} else {
				valueLog = append(valueLog, "absent")
			}
		})

		call := action.Execute(0)
		assert.False(t, call.Read().Ok())

		var wg sync.WaitGroup
		wg.Add(1)
		action.Executing().Subscribe(func(v bool) {
			if !v {
				wg.Done()
			}
		})

		close(release)
		wg.Wait()

		assert.Equal(t, 42, call.Read().MustGet().Value)
		assert.Equal(t, []bool{false, true, false}, execLog)
		assert.Equal(t, []string{"absent", "42"}, valueLog)
	})

	t.Run("surfaces factory errors as values", func(t *testing.T) {
		boom := errors.New("boom")

		action := NewAction(func(in int) *Deferred[int] {
			return NewDeferred(func(resolve func(int, error)) {
				resolve(0, boom)
			})
		})

		call := action.Execute(1)

		r := call.Read().MustGet()
		assert.ErrorIs(t, r.Err, boom)

		assert.False(t, action.Executing().Read())

		e, ok := action.Errors().Read().Get()
		assert.True(t, ok)
		assert.ErrorIs(t, e, boom)

		assert.False(t, action.Values().Read().Ok())
	})

	t.Run("keeps the latest result readable after completion", func(t *testing.T) {
		action := NewAction(func(in int) *Deferred[int] {
			return NewDeferred(func(resolve func(int, error)) {
				resolve(in, nil)
			})
		})

		action.Execute(5)

		assert.False(t, action.Executions().Read().Ok())
		assert.Equal(t, 5, action.Results().Read().MustGet().Value)
		assert.Equal(t, 5, action.Values().Read().MustGet())
	})

	t.Run("exposes the in-flight execution handle", func(t *testing.T) {
		release := make(chan struct{})

		action := NewAction(func(in int) *Deferred[int] {
			return NewDeferred(func(resolve func(int, error)) {
				go func() {
					<-release
					resolve(in, nil)
				}()
			})
		})

		action.Execute(3)

		handle, ok := action.Executions().Read().Get()
		assert.True(t, ok)
		assert.False(t, handle.Read().Ok())

		var wg sync.WaitGroup
		wg.Add(1)
		action.Executing().Subscribe(func(v bool) {
			if !v {
				wg.Done()
			}
		})

		close(release)
		wg.Wait()

		assert.Equal(t, 3, handle.Read().MustGet().Value)
		assert.False(t, action.Executions().Read().Ok())
	})
}

func TestActionEnabled(t *testing.T) {
	t.Run("mirrors the condition", func(t *testing.T) {
		log := []bool{}

		cond := NewSignal(true)
		action := NewActionWhen(cond.Stream(), func(in int) *Deferred[int] {
			return NewDeferred(func(resolve func(int, error)) {
				resolve(in, nil)
			})
		})
		action.Enabled().Subscribe(func(v bool) {
			log = append(log, v)
		})

		assert.True(t, action.Enabled().Read())

		cond.Write(false)
		assert.False(t, action.Enabled().Read())

		cond.Write(true)
		assert.True(t, action.Enabled().Read())

		assert.Equal(t, []bool{true, false, true}, log)
	})

	t.Run("is false while executing regardless of the condition", func(t *testing.T) {
		release := make(chan struct{})

		cond := NewSignal(true)
		action := NewActionWhen(cond.Stream(), func(in int) *Deferred[int] {
			return NewDeferred(func(resolve func(int, error)) {
				go func() {
					<-release
					resolve(in, nil)
				}()
			})
		})

		action.Execute(1)

		assert.True(t, cond.Read())
		assert.False(t, action.Enabled().Read())

		var wg sync.WaitGroup
		wg.Add(1)
		action.Executing().Subscribe(func(v bool) {
			if !v {
				wg.Done()
			}
		})

		close(release)
		wg.Wait()

		assert.True(t, action.Enabled().Read())
	})

	t.Run("is true at construction when the condition holds", func(t *testing.T) {
		action := NewAction(func(in int) *Deferred[int] {
			return NewDeferred(func(resolve func(int, error)) {
				resolve(in, nil)
			})
		})

		assert.True(t, action.Enabled().Read())
		assert.False(t, action.Executing().Read())
	})
}

func TestActionConcurrency(t *testing.T) {
	t.Run("concurrent executes have a single winner", func(t *testing.T) {
		const n = 8

		release := make(chan struct{})
		var invocations atomic.Int32

		action := NewAction(func(in int) *Deferred[int] {
			invocations.Add(1)
			return NewDeferred(func(resolve func(int, error)) {
				go func() {
					<-release
					resolve(in, nil)
				}()
			})
		})

		results := make(chan error, n)
		for i := 0; i < n; i++ {
			go func(i int) {
				action.Execute(i).Subscribe(func(opt Option[Result[int]]) {
					if r, ok := opt.Get(); ok {
						results <- r.Err
					}
				})
			}(i)
		}

		// the winner stays blocked on release, so the other calls must all
		// come back rejected first
		for i := 0; i < n-1; i++ {
			assert.ErrorIs(t, <-results, ErrNotEnabled)
		}

		close(release)
		assert.NoError(t, <-results)
		assert.Equal(t, int32(1), invocations.Load())
	})
}
