package ambient

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jonwraymond/starcache/rating"
)

// Selection is the ambient ruleset/mod combination in effect at one moment.
type Selection struct {
	Ruleset rating.RulesetID
	Mods    []rating.Mod
}

// Clone returns a copy with its own mod slice.
func (s Selection) Clone() Selection {
	out := Selection{Ruleset: s.Ruleset}
	if len(s.Mods) > 0 {
		out.Mods = make([]rating.Mod, len(s.Mods))
		copy(out.Mods, s.Mods)
	}
	return out
}

// Source exposes the ambient selection and change notifications.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Notification: watchers are invoked with the new selection after every
//   change; invocation order across watchers follows registration order.
type Source interface {
	// Current returns the selection in effect right now.
	Current() Selection

	// Watch registers fn for change notifications and returns a cancel
	// function that unregisters it. Cancel is idempotent.
	Watch(fn func(Selection)) (cancel func())
}

// Watchable is an in-memory Source mutated through Set.
type Watchable struct {
	mu       sync.RWMutex
	current  Selection
	watchers map[uuid.UUID]func(Selection)
	order    []uuid.UUID
}

// NewWatchable creates a Watchable holding the given initial selection.
func NewWatchable(initial Selection) *Watchable {
	return &Watchable{
		current:  initial.Clone(),
		watchers: make(map[uuid.UUID]func(Selection)),
	}
}

// Current returns a copy of the selection in effect.
func (w *Watchable) Current() Selection {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current.Clone()
}

// Set replaces the selection and notifies every watcher synchronously, in
// registration order.
func (w *Watchable) Set(sel Selection) {
	w.mu.Lock()
	w.current = sel.Clone()
	notify := make([]func(Selection), 0, len(w.order))
	for _, id := range w.order {
		if fn, ok := w.watchers[id]; ok {
			notify = append(notify, fn)
		}
	}
	snapshot := w.current.Clone()
	w.mu.Unlock()

	for _, fn := range notify {
		fn(snapshot)
	}
}

// SetRuleset changes only the ambient ruleset.
func (w *Watchable) SetRuleset(r rating.RulesetID) {
	cur := w.Current()
	cur.Ruleset = r
	w.Set(cur)
}

// SetMods changes only the ambient mod selection.
func (w *Watchable) SetMods(mods ...rating.Mod) {
	cur := w.Current()
	cur.Mods = mods
	w.Set(cur)
}

// Watch registers fn and returns its cancel function.
func (w *Watchable) Watch(fn func(Selection)) func() {
	id := uuid.New()

	w.mu.Lock()
	w.watchers[id] = fn
	w.order = append(w.order, id)
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.watchers, id)
			for i, other := range w.order {
				if other == id {
					w.order = append(w.order[:i], w.order[i+1:]...)
					break
				}
			}
			w.mu.Unlock()
		})
	}
}

// Ensure Watchable implements Source.
var _ Source = (*Watchable)(nil)
