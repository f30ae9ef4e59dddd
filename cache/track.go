package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/jonwraymond/starcache/ambient"
	"github.com/jonwraymond/starcache/rating"
)

// Tracked is a live rating for one chart. Its value is refreshed whenever
// the ambient selection changes (unless pinned) and mutated only on the
// cache's loop, so observers scheduled there never see concurrent updates.
type Tracked struct {
	id    uuid.UUID
	cache *Cache
	chart rating.Chart

	pinned bool

	ctx    context.Context
	cancel context.CancelFunc
	closed atomic.Bool

	// current is read and written only on the cache's loop.
	current  rating.Rating
	onChange func(rating.Rating)
}

// Current returns the latest delivered rating. It synchronizes through the
// loop, so a value observed here was never written concurrently.
//
// Current must not be called from inside an onChange callback: callbacks
// run on the loop, and Current waits on that same loop. Callbacks receive
// the delivered rating as their argument instead.
func (t *Tracked) Current() rating.Rating {
	var r rating.Rating
	t.cache.loop.Sync(func() { r = t.current })
	return r
}

// Close stops all future deliveries. In-flight refreshes are cancelled and
// their results discarded. Idempotent.
func (t *Tracked) Close() {
	if t.closed.CompareAndSwap(false, true) {
		t.cancel()
	}
}

// Track creates a tracked rating that follows the ambient selection. The
// first computation is scheduled immediately under the ambient values in
// effect at call time. onChange, which may be nil, runs on the cache's loop
// after every delivered update.
//
// Cancelling ctx closes the tracked rating.
func (c *Cache) Track(ctx context.Context, chart rating.Chart, onChange func(rating.Rating)) *Tracked {
	t := c.register(ctx, chart, false, onChange)

	var sel ambient.Selection
	if c.ambient != nil {
		sel = c.ambient.Current()
	}
	linked, done := linkedContext(c.reg.batch(), t.ctx)
	t.refresh(linked, done, sel)
	return t
}

// TrackFixed creates a tracked rating pinned to an explicit ruleset and mod
// set. It computes once and never follows ambient changes.
func (c *Cache) TrackFixed(ctx context.Context, chart rating.Chart, ruleset rating.RulesetID, mods []rating.Mod, onChange func(rating.Rating)) *Tracked {
	t := c.register(ctx, chart, true, onChange)

	linked, done := context.WithCancel(t.ctx)
	t.refresh(linked, done, ambient.Selection{Ruleset: ruleset, Mods: mods})
	return t
}

// register builds a fully initialized slot and only then publishes it: a
// broadcast iterating the registry must never observe a half-built Tracked.
func (c *Cache) register(ctx context.Context, chart rating.Chart, pinned bool, onChange func(rating.Rating)) *Tracked {
	if ctx == nil {
		ctx = context.Background()
	}
	tctx, cancel := context.WithCancel(ctx)
	t := &Tracked{
		id:       uuid.New(),
		cache:    c,
		chart:    chart,
		pinned:   pinned,
		ctx:      tctx,
		cancel:   cancel,
		onChange: onChange,
	}
	// A cancelled parent context closes the slot the same way Close does.
	context.AfterFunc(tctx, func() { t.closed.Store(true) })
	c.reg.add(t)
	return t
}

// refresh issues one async lookup-or-compute under ctx and posts the result
// to the loop. Delivery is skipped when ctx was cancelled or the slot
// closed in the meantime; the computation itself is never aborted.
func (t *Tracked) refresh(ctx context.Context, done context.CancelFunc, sel ambient.Selection) {
	p := t.cache.RatingAsync(ctx, t.chart, WithRuleset(sel.Ruleset), WithMods(sel.Mods...))
	go func() {
		defer done()
		r, ok := p.Wait(ctx)
		if !ok {
			return
		}
		t.cache.loop.Sync(func() {
			if t.closed.Load() || ctx.Err() != nil {
				return
			}
			t.current = r
			if t.onChange != nil {
				t.onChange(r)
			}
		})
	}()
}

// ambientChanged supersedes the previous refresh batch and fans out a new
// one. The fan-out itself is bounded and non-blocking: each tracked rating
// gets a fire-and-forget refresh under a context linked to both the new
// batch and its own cancellation.
func (c *Cache) ambientChanged(sel ambient.Selection) {
	batchCtx, live := c.reg.rotate()
	if batchCtx == nil || len(live) == 0 {
		return
	}

	start := time.Now()
	p := pool.New().WithMaxGoroutines(c.broadcastWorkers)
	for _, t := range live {
		t := t
		p.Go(func() {
			linked, done := linkedContext(batchCtx, t.ctx)
			t.refresh(linked, done, sel)
		})
	}
	p.Wait()
	c.metrics.RecordBroadcast(context.Background(), len(live), time.Since(start))
}

// linkedContext derives a context cancelled by either the batch or the
// tracked rating's own cancellation. The returned stop function must be
// called once the context is no longer needed.
func linkedContext(batch, tracked context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(batch)
	stop := context.AfterFunc(tracked, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// registry holds the live tracked-rating slots and the current refresh
// batch. Slots are held strongly but carry a closed flag; closed slots are
// swept out lazily on the next broadcast rather than eagerly on Close, so
// broadcast iteration never races slot disposal.
type registry struct {
	mu          sync.Mutex
	slots       map[uuid.UUID]*Tracked
	batchCtx    context.Context
	batchCancel context.CancelFunc
	closed      bool
}

func (r *registry) init() {
	r.slots = make(map[uuid.UUID]*Tracked)
	r.batchCtx, r.batchCancel = context.WithCancel(context.Background())
}

func (r *registry) add(t *Tracked) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		t.closed.Store(true)
		t.cancel()
		return
	}
	r.slots[t.id] = t
}

// batch returns the refresh batch context currently in effect.
func (r *registry) batch() context.Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.batchCtx
}

// rotate cancels the previous batch, installs a fresh one, sweeps closed
// slots, and returns the new batch context with the live non-pinned slots.
// A nil context means the registry has shut down.
func (r *registry) rotate() (context.Context, []*Tracked) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, nil
	}

	r.batchCancel()
	r.batchCtx, r.batchCancel = context.WithCancel(context.Background())

	live := make([]*Tracked, 0, len(r.slots))
	for id, t := range r.slots {
		if t.closed.Load() {
			delete(r.slots, id)
			continue
		}
		if t.pinned {
			continue
		}
		live = append(live, t)
	}
	return r.batchCtx, live
}

// live returns the number of open slots.
func (r *registry) live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.slots {
		if !t.closed.Load() {
			n++
		}
	}
	return n
}

// shutdown closes every slot and reports whether this call performed the
// shutdown.
func (r *registry) shutdown() bool {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return false
	}
	r.closed = true
	r.batchCancel()
	slots := r.slots
	r.slots = make(map[uuid.UUID]*Tracked)
	r.mu.Unlock()

	for _, t := range slots {
		t.Close()
	}
	return true
}
