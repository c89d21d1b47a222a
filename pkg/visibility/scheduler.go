package visibility

import (
	"sync"
	"time"
)

// Scheduler defers work to a later tick.
//
// Schedule must not run fn before returning. The returned cancel function
// prevents fn from running if it has not started; calling it late or twice
// is harmless.
type Scheduler interface {
	Schedule(fn func()) (cancel func())
}

// TimerScheduler runs deferred work on a timer goroutine after Delay.
// The zero value defers by zero time, which still lets a pending
// enter/leave pair from the same burst of events be superseded.
type TimerScheduler struct {
	Delay time.Duration
}

// Schedule arms a timer for fn.
func (s TimerScheduler) Schedule(fn func()) func() {
	t := time.AfterFunc(s.Delay, fn)
	return func() { t.Stop() }
}

// Loop is a manually driven scheduler. Work scheduled on it runs only when
// Flush is called, which makes a tick explicit. Event-loop hosts (terminal
// UIs, tests) flush once per processed batch of events.
type Loop struct {
	mu    sync.Mutex
	queue []*loopTask
}

type loopTask struct {
	fn        func()
	cancelled bool
}

// NewLoop creates an empty loop.
func NewLoop() *Loop { return &Loop{} }

// Schedule queues fn for the next Flush.
func (l *Loop) Schedule(fn func()) func() {
	t := &loopTask{fn: fn}
	l.mu.Lock()
	l.queue = append(l.queue, t)
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		t.cancelled = true
		l.mu.Unlock()
	}
}

// Pending returns the number of queued, non-cancelled tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, t := range l.queue {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Flush runs every task queued before the call, in order, and returns how
// many ran. Tasks scheduled while flushing wait for the next Flush.
func (l *Loop) Flush() int {
	l.mu.Lock()
	batch := l.queue
	l.queue = nil
	l.mu.Unlock()

	ran := 0
	for _, t := range batch {
		l.mu.Lock()
		skip := t.cancelled
		l.mu.Unlock()
		if skip {
			continue
		}
		t.fn()
		ran++
	}
	return ran
}
