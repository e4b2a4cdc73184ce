// Package sched provides keyed, cancelable deferred tasks for the editor's
// debounce timers.
//
// Each key ("history", "company", "totals") has at most one pending task:
// scheduling a key that already has a pending task cancels the old one and
// restarts the delay, which is exactly the coalescing behavior the editor's
// debounce windows require.
package sched

import (
	"sync"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the callback if it has not fired yet and reports whether
	// it was still pending.
	Stop() bool
}

// Clock abstracts time for the queue so tests can drive timers manually.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// SystemClock returns a Clock backed by the time package.
func SystemClock() Clock { return systemClock{} }

// Queue schedules at most one pending task per key.
type Queue struct {
	mu     sync.Mutex
	clock  Clock
	timers map[string]Timer
}

// New creates a Queue driven by clock. A nil clock uses the system clock.
func New(clock Clock) *Queue {
	if clock == nil {
		clock = SystemClock()
	}
	return &Queue{clock: clock, timers: make(map[string]Timer)}
}

// Schedule runs fn after delay. If key already has a pending task it is
// canceled first, so the delay restarts on every call.
func (q *Queue) Schedule(key string, delay time.Duration, fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if t, ok := q.timers[key]; ok {
		t.Stop()
	}
	q.timers[key] = q.clock.AfterFunc(delay, func() {
		q.mu.Lock()
		delete(q.timers, key)
		q.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending task for key, if any.
func (q *Queue) Cancel(key string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if t, ok := q.timers[key]; ok {
		t.Stop()
		delete(q.timers, key)
	}
}

// CancelAll drops every pending task.
func (q *Queue) CancelAll() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for key, t := range q.timers {
		t.Stop()
		delete(q.timers, key)
	}
}

// Pending reports whether key has a task waiting to fire.
func (q *Queue) Pending(key string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.timers[key]
	return ok
}
