package cache

import (
	"context"
	"fmt"

	"github.com/jonwraymond/starcache/ambient"
	"github.com/jonwraymond/starcache/health"
	"github.com/jonwraymond/starcache/observe"
	"github.com/jonwraymond/starcache/rating"
	"github.com/jonwraymond/starcache/runloop"
	"github.com/jonwraymond/starcache/store"
	"github.com/jonwraymond/starcache/worker"
)

// ChartSource resolves a chart's heavy content for computation.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: return rating.ErrChartUnavailable when the content is not
//   locally available; the cache then answers with a degraded estimate.
type ChartSource interface {
	// Load returns the chart's loaded content.
	Load(ctx context.Context, chart rating.Chart) (rating.ChartData, error)
}

// ChartSourceFunc is an adapter to allow ordinary functions to be used as
// ChartSources.
type ChartSourceFunc func(ctx context.Context, chart rating.Chart) (rating.ChartData, error)

// Load calls f.
func (f ChartSourceFunc) Load(ctx context.Context, chart rating.Chart) (rating.ChartData, error) {
	return f(ctx, chart)
}

// Calculator is the black-box difficulty computation.
//
// Contract:
// - Purity: must be referentially transparent for a fixed input triple;
//   results are cached indefinitely.
// - Errors: return rating.ErrRulesetIncompatible when the ruleset cannot
//   represent the chart's content; any other error is absorbed into a
//   terminal degraded rating.
// - Reentrancy: must not call back into the cache.
type Calculator interface {
	// Calculate produces the rating attributes for the given content,
	// ruleset, and mods.
	Calculate(ctx context.Context, data rating.ChartData, ruleset rating.RulesetID, mods []rating.Mod) (*rating.Attributes, error)
}

// CalculatorFunc is an adapter to allow ordinary functions to be used as
// Calculators.
type CalculatorFunc func(ctx context.Context, data rating.ChartData, ruleset rating.RulesetID, mods []rating.Mod) (*rating.Attributes, error)

// Calculate calls f.
func (f CalculatorFunc) Calculate(ctx context.Context, data rating.ChartData, ruleset rating.RulesetID, mods []rating.Mod) (*rating.Attributes, error) {
	return f(ctx, data, ruleset, mods)
}

// Cache memoizes chart difficulty ratings keyed by (chart, ruleset, mods)
// and pushes recomputed values to tracked ratings when the ambient
// selection changes.
//
// Contract:
// - Concurrency: safe for concurrent use. Calculator runs are serialized on
//   a single worker lane; tracked-value mutation is confined to the loop.
// - Errors: public operations never return errors for well-formed inputs;
//   failures surface as degraded ratings.
type Cache struct {
	charts  ChartSource
	calc    Calculator
	ambient ambient.Source
	loop    *runloop.Loop
	ownLoop bool
	lane    *worker.Lane
	store   *store.Store

	obs     observe.Observer
	log     observe.Logger
	metrics observe.Metrics

	broadcastWorkers int

	reg     registry
	unwatch func()
}

// Option configures a Cache.
type Option func(*Cache)

// WithCharts sets the chart data source. Required.
func WithCharts(src ChartSource) Option {
	return func(c *Cache) { c.charts = src }
}

// WithCalculator sets the difficulty calculator. Required.
func WithCalculator(calc Calculator) Option {
	return func(c *Cache) { c.calc = calc }
}

// WithAmbient sets the ambient selection source the cache follows. Without
// one, tracked ratings never refresh on their own.
func WithAmbient(src ambient.Source) Option {
	return func(c *Cache) { c.ambient = src }
}

// WithLoop sets the delivery loop tracked-value mutation runs on. Without
// one, the cache owns a private loop and closes it on Close.
func WithLoop(loop *runloop.Loop) Option {
	return func(c *Cache) { c.loop = loop }
}

// WithObserver sets the telemetry bundle. Defaults to a noop observer.
func WithObserver(obs observe.Observer) Option {
	return func(c *Cache) { c.obs = obs }
}

// WithBroadcastWorkers bounds the ambient-change fan-out concurrency.
// Default: 4.
func WithBroadcastWorkers(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.broadcastWorkers = n
		}
	}
}

// New creates a Cache. A ChartSource and a Calculator are required; every
// other collaborator has a working default.
func New(opts ...Option) (*Cache, error) {
	c := &Cache{
		store:            store.New(),
		lane:             worker.NewLane(),
		obs:              observe.Noop(),
		broadcastWorkers: 4,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.charts == nil {
		return nil, ErrNoChartSource
	}
	if c.calc == nil {
		return nil, ErrNoCalculator
	}
	if c.loop == nil {
		c.loop = runloop.New()
		c.ownLoop = true
	}

	c.log = c.obs.Logger().WithComponent("cache")
	c.metrics = c.obs.Metrics()
	c.reg.init()

	if c.ambient != nil {
		c.unwatch = c.ambient.Watch(c.ambientChanged)
	}
	return c, nil
}

// request holds the resolved per-call parameters.
type request struct {
	ruleset rating.RulesetID
	mods    []rating.Mod
}

// RequestOption adjusts a single lookup-or-compute call.
type RequestOption func(*request)

// WithRuleset pins the ruleset for one call. Unset rulesets resolve to the
// chart's default.
func WithRuleset(r rating.RulesetID) RequestOption {
	return func(req *request) { req.ruleset = r }
}

// WithMods sets the mods for one call.
func WithMods(mods ...rating.Mod) RequestOption {
	return func(req *request) { req.mods = mods }
}

// resolve applies options and falls back to the chart's default ruleset.
func resolve(chart rating.Chart, opts []RequestOption) request {
	var req request
	for _, opt := range opts {
		opt(&req)
	}
	if req.ruleset.Unset() {
		req.ruleset = chart.DefaultRuleset
	}
	return req
}

// Rating returns the rating for the chart under the requested (or default)
// ruleset and mods, computing it on the calling goroutine on a miss.
//
// Unresolvable charts and unresolved rulesets yield a degraded estimate
// that is never stored.
func (c *Cache) Rating(ctx context.Context, chart rating.Chart, opts ...RequestOption) rating.Rating {
	req := resolve(chart, opts)

	if !chart.Resolvable() || req.ruleset.Unset() {
		c.metrics.RecordLookup(ctx, observe.LookupDegraded)
		return rating.FromEstimate(chart.EstimatedStars, chart.EstimatedMaxCombo)
	}

	key := rating.NewKey(chart.ID, req.ruleset, req.mods...)
	if r, ok := c.store.Get(key); ok {
		c.metrics.RecordLookup(ctx, observe.LookupHit)
		return r
	}
	c.metrics.RecordLookup(ctx, observe.LookupMiss)

	return c.compute(ctx, key, chart, req.ruleset, req.mods)
}

// RatingAsync is Rating with the miss-path computation dispatched to the
// worker lane. Hits and degraded estimates resolve immediately without
// touching the lane.
//
// Cancelling ctx abandons the caller's wait only; a computation already
// admitted to the lane always runs to completion and commits its result.
func (c *Cache) RatingAsync(ctx context.Context, chart rating.Chart, opts ...RequestOption) *Pending {
	p := newPending()
	req := resolve(chart, opts)

	if !chart.Resolvable() || req.ruleset.Unset() {
		c.metrics.RecordLookup(ctx, observe.LookupDegraded)
		p.resolve(rating.FromEstimate(chart.EstimatedStars, chart.EstimatedMaxCombo))
		return p
	}

	key := rating.NewKey(chart.ID, req.ruleset, req.mods...)
	if r, ok := c.store.Get(key); ok {
		c.metrics.RecordLookup(ctx, observe.LookupHit)
		p.resolve(r)
		return p
	}
	c.metrics.RecordLookup(ctx, observe.LookupMiss)

	// Execution is detached from the caller's cancellation: ctx only gates
	// waiting on the Pending.
	execCtx := context.WithoutCancel(ctx)
	go func() {
		c.lane.Run(func() {
			// A miss can become a hit while queued for the lane.
			if r, ok := c.store.Get(key); ok {
				p.resolve(r)
				return
			}
			p.resolve(c.compute(execCtx, key, chart, req.ruleset, req.mods))
		})
	}()
	return p
}

// Pending is the handle for an asynchronous lookup-or-compute.
type Pending struct {
	done   chan struct{}
	result rating.Rating
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) resolve(r rating.Rating) {
	p.result = r
	close(p.done)
}

// Done returns a channel closed once the result is available.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until the result is available or ctx is done. It reports
// whether a result was delivered; false means the wait was abandoned, not
// that the computation stopped.
func (p *Pending) Wait(ctx context.Context) (rating.Rating, bool) {
	if ctx == nil {
		<-p.done
		return p.result, true
	}
	select {
	case <-p.done:
		return p.result, true
	case <-ctx.Done():
		return rating.Rating{}, false
	}
}

// Stats is a snapshot of the cache's internal counters.
type Stats struct {
	Store   store.Stats
	Lane    worker.Stats
	Tracked int
}

// Stats returns a snapshot of the cache's counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Store:   c.store.Stats(),
		Lane:    c.lane.Stats(),
		Tracked: c.reg.live(),
	}
}

// Checker returns a health checker reporting store growth and lane
// occupancy. The store never evicts, so entry count is the number hosts
// should watch.
func (c *Cache) Checker() health.Checker {
	return health.NewCheckerFunc("starcache", func(ctx context.Context) health.Result {
		st := c.store.Stats()
		ls := c.lane.Stats()
		return health.Healthy(fmt.Sprintf("%d cached ratings", st.Entries)).WithDetails(map[string]any{
			"entries":      st.Entries,
			"hits":         st.Hits,
			"misses":       st.Misses,
			"lane_waiting": ls.Waiting,
			"lane_peak":    ls.MaxWaiting,
			"executed":     ls.Executed,
			"tracked":      c.reg.live(),
		})
	})
}

// Close stops ambient watching, cancels in-flight tracked refreshes, closes
// every tracked rating, and shuts down the cache-owned loop. Idempotent.
func (c *Cache) Close() {
	if !c.reg.shutdown() {
		return
	}
	if c.unwatch != nil {
		c.unwatch()
	}
	if c.ownLoop {
		c.loop.Close()
	}
}

// Compile-time adapter checks.
var (
	_ ChartSource = ChartSourceFunc(nil)
	_ Calculator  = CalculatorFunc(nil)
)
