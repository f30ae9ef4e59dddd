// Package worker provides the single-slot execution lane that serializes
// CPU-heavy rating computations.
//
// Exactly one task runs at a time regardless of how many goroutines submit
// work, so recomputation storms triggered by ambient changes cannot create
// contention. Cancellation never aborts a task that has started: the lane
// always finishes what it begins, and callers gate delivery instead.
package worker
