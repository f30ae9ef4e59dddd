package store

import (
	"sync"
	"sync/atomic"

	"github.com/jonwraymond/starcache/rating"
)

// Store is a concurrent last-writer-wins map from rating.Key to
// rating.Rating.
//
// Contract:
// - Concurrency: safe for concurrent Get/Put from any goroutine with no
//   external locking.
// - Deduplication: none. Two racing computations for the same key may both
//   commit; the last write wins. Serialization is enforced upstream by the
//   worker lane, not here.
type Store struct {
	mu      sync.RWMutex
	entries map[rating.Key]rating.Rating

	hits   int64
	misses int64
}

// New creates an empty Store.
func New() *Store {
	return &Store{entries: make(map[rating.Key]rating.Rating)}
}

// Get retrieves the rating for key. The boolean reports presence.
func (s *Store) Get(key rating.Key) (rating.Rating, bool) {
	s.mu.RLock()
	r, ok := s.entries[key]
	s.mu.RUnlock()

	if ok {
		atomic.AddInt64(&s.hits, 1)
	} else {
		atomic.AddInt64(&s.misses, 1)
	}
	return r, ok
}

// Put stores the rating under key, replacing any previous entry, and returns
// the stored value for chaining.
func (s *Store) Put(key rating.Key, r rating.Rating) rating.Rating {
	s.mu.Lock()
	s.entries[key] = r
	s.mu.Unlock()
	return r
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear empties the store. Intended for component teardown only.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = make(map[rating.Key]rating.Rating)
	s.mu.Unlock()
}

// Stats contains lookup counters since creation.
type Stats struct {
	Entries int
	Hits    int64
	Misses  int64
}

// Stats returns a snapshot of the store's counters.
func (s *Store) Stats() Stats {
	return Stats{
		Entries: s.Len(),
		Hits:    atomic.LoadInt64(&s.hits),
		Misses:  atomic.LoadInt64(&s.misses),
	}
}
