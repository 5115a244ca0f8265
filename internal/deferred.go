package internal

import "sync"

// Deferred is a cold computation: nothing runs until Start, the producer
// runs at most once, and the first resolve wins. The result lands in an
// Option-valued stream, so subscribers attached before Start cannot miss it
// and late subscribers still see it as the current snapshot.
type Deferred struct {
	once     sync.Once
	producer func(resolve func(Result))
	results  *Stream

	mu   sync.Mutex
	done bool
}

func NewDeferred(producer func(resolve func(Result))) *Deferred {
	return &Deferred{
		producer: producer,
		results:  NewStream(None()),
	}
}

// Results holds the eventual outcome: absent until the producer resolves,
// then the terminal result forever.
func (d *Deferred) Results() *Stream {
	return d.results
}

// Start triggers the producer. Further calls are no-ops.
func (d *Deferred) Start() {
	d.once.Do(func() {
		d.producer(d.resolve)
	})
}

func (d *Deferred) resolve(r Result) {
	d.mu.Lock()
	if d.done {
		d.mu.Unlock()
		return
	}
	d.done = true
	d.mu.Unlock()

	d.results.Send(Some(r))
}
