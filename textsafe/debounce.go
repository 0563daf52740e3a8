package textsafe

import (
	"sync"
	"time"
)

// Debouncer delays calls to fn until delay has passed without another Call.
// Only the arguments of the most recent Call are delivered.
type Debouncer[T any] struct {
	fn    func(T)
	delay time.Duration

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	running    sync.WaitGroup
}

func NewDebouncer[T any](fn func(T), delay time.Duration) *Debouncer[T] {
	return &Debouncer[T]{fn: fn, delay: delay}
}

// Debounce returns a function that forwards its argument to fn once delay has
// elapsed since its last invocation.
func Debounce[T any](fn func(T), delay time.Duration) func(T) {
	return NewDebouncer(fn, delay).Call
}

// Call cancels any pending invocation and schedules fn(arg). fn never runs on
// the caller's goroutine.
func (d *Debouncer[T]) Call(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.generation++
	generation := d.generation

	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// a newer Call won the race against this timer
		if generation != d.generation {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.running.Add(1)
		d.mu.Unlock()

		defer d.running.Done()
		d.fn(arg)
	})
}

// Stop drops the pending invocation, if any, and waits for one that is
// already running to return. fn must not call Stop.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.generation++
	d.mu.Unlock()

	d.running.Wait()
}
