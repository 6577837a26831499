package practice

import (
	"sync"
	"time"
)

// Scheduler runs a callback after the current update has been applied.
// No ordering is promised between deferred callbacks.
type Scheduler interface {
	Defer(fn func())
}

// timerScheduler fires each callback on a zero-delay timer.
type timerScheduler struct{}

func (timerScheduler) Defer(fn func()) {
	time.AfterFunc(0, fn)
}

// Queue is a Scheduler drained explicitly by the owning event loop.
type Queue struct {
	mu    sync.Mutex
	tasks []func()
}

func (q *Queue) Defer(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, fn)
}

// Drain runs queued callbacks until the queue is empty, including any
// queued while draining, and returns how many ran.
func (q *Queue) Drain() int {
	n := 0
	for {
		q.mu.Lock()
		tasks := q.tasks
		q.tasks = nil
		q.mu.Unlock()
		if len(tasks) == 0 {
			return n
		}
		for _, fn := range tasks {
			fn()
			n++
		}
	}
}

// Len returns the number of pending callbacks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}
