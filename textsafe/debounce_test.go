package textsafe

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type callRecorder struct {
	mu    sync.Mutex
	args  []string
	times []time.Time
}

func (r *callRecorder) record(arg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.args = append(r.args, arg)
	r.times = append(r.times, time.Now())
}

func (r *callRecorder) snapshot() ([]string, []time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.args...), append([]time.Time(nil), r.times...)
}

func TestDebounceCoalescesToLastCall(t *testing.T) {
	assert := require.New(t)
	recorder := &callRecorder{}
	debounced := Debounce(recorder.record, 100*time.Millisecond)

	debounced("a")
	time.Sleep(20 * time.Millisecond)
	debounced("ab")
	time.Sleep(20 * time.Millisecond)
	debounced("abc")
	lastCall := time.Now()

	args, _ := recorder.snapshot()
	assert.Empty(args, "nothing should run before the delay elapses")

	assert.Eventually(func() bool {
		args, _ := recorder.snapshot()
		return len(args) == 1
	}, time.Second, 10*time.Millisecond)

	// give any stray timers a chance to fire
	time.Sleep(150 * time.Millisecond)

	args, times := recorder.snapshot()
	assert.Equal([]string{"abc"}, args)
	assert.GreaterOrEqual(times[0].Sub(lastCall), 100*time.Millisecond)
}

func TestDebounceIsNeverSynchronous(t *testing.T) {
	assert := require.New(t)
	recorder := &callRecorder{}
	debounced := Debounce(recorder.record, 0)

	debounced("now")
	args, _ := recorder.snapshot()
	assert.Empty(args)

	assert.Eventually(func() bool {
		args, _ := recorder.snapshot()
		return len(args) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestDebouncerSeparateBursts(t *testing.T) {
	assert := require.New(t)
	recorder := &callRecorder{}
	debouncer := NewDebouncer(recorder.record, 30*time.Millisecond)

	debouncer.Call("first")
	assert.Eventually(func() bool {
		args, _ := recorder.snapshot()
		return len(args) == 1
	}, time.Second, 5*time.Millisecond)

	debouncer.Call("second")
	assert.Eventually(func() bool {
		args, _ := recorder.snapshot()
		return len(args) == 2
	}, time.Second, 5*time.Millisecond)

	args, _ := recorder.snapshot()
	assert.Equal([]string{"first", "second"}, args)
}

func TestDebouncerStop(t *testing.T) {
	assert := require.New(t)
	recorder := &callRecorder{}
	debouncer := NewDebouncer(recorder.record, 30*time.Millisecond)

	debouncer.Call("dropped")
	debouncer.Stop()

	time.Sleep(100 * time.Millisecond)
	args, _ := recorder.snapshot()
	assert.Empty(args)
}

func TestDebouncerStopWaitsForRunningCall(t *testing.T) {
	assert := require.New(t)
	recorder := &callRecorder{}
	started := make(chan struct{})
	debouncer := NewDebouncer(func(arg string) {
		close(started)
		time.Sleep(100 * time.Millisecond)
		recorder.record(arg)
	}, 10*time.Millisecond)

	debouncer.Call("slow")
	select {
	case <-started:
	case <-time.After(time.Second):
		assert.Fail("debounced call never started")
	}

	debouncer.Stop()
	args, _ := recorder.snapshot()
	assert.Equal([]string{"slow"}, args, "Stop should return only after the running call finished")
}
