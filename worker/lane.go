package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Lane is a concurrency-1 execution lane.
//
// Contract:
// - Concurrency: safe for concurrent use; at most one task executes at a
//   time, admitted in semaphore FIFO order.
// - Execution: Run always executes its task, even if the submitting caller
//   has since lost interest. Discarding a stale result is the caller's job.
type Lane struct {
	sem *semaphore.Weighted

	mu         sync.Mutex
	waiting    int
	maxWaiting int
	executed   int64
}

// NewLane creates an idle lane.
func NewLane() *Lane {
	return &Lane{sem: semaphore.NewWeighted(1)}
}

// Run blocks until the slot is free, executes fn, and releases the slot.
func (l *Lane) Run(fn func()) {
	l.mu.Lock()
	l.waiting++
	if l.waiting > l.maxWaiting {
		l.maxWaiting = l.waiting
	}
	l.mu.Unlock()

	// Background context: admission must not be interruptible, the task has
	// been accepted and will run.
	_ = l.sem.Acquire(context.Background(), 1)

	l.mu.Lock()
	l.waiting--
	l.mu.Unlock()

	defer func() {
		atomic.AddInt64(&l.executed, 1)
		l.sem.Release(1)
	}()
	fn()
}

// TryRun executes fn only if the slot is immediately free. It reports
// whether fn ran.
func (l *Lane) TryRun(fn func()) bool {
	if !l.sem.TryAcquire(1) {
		return false
	}
	defer func() {
		atomic.AddInt64(&l.executed, 1)
		l.sem.Release(1)
	}()
	fn()
	return true
}

// Stats contains lane occupancy counters.
type Stats struct {
	// Waiting is the number of callers currently queued for the slot,
	// including the one holding it.
	Waiting int

	// MaxWaiting is the high-water mark of Waiting.
	MaxWaiting int

	// Executed is the total number of completed tasks.
	Executed int64
}

// Stats returns a snapshot of the lane's counters.
func (l *Lane) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Stats{
		Waiting:    l.waiting,
		MaxWaiting: l.maxWaiting,
		Executed:   atomic.LoadInt64(&l.executed),
	}
}
