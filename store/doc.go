// Package store provides the thread-safe rating store backing the cache.
//
// The store is the single source of truth for completed computations. It is
// unbounded for the lifetime of the component: entries are never evicted by
// normal operation, only Clear on teardown empties it.
package store
