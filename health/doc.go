// Package health provides health checking primitives for the rating cache.
//
// The cache's store is unbounded by contract, so the operational guardrail is
// watching heap pressure and component occupancy rather than evicting. A
// Checker reports one component's state; an Aggregator combines several into
// a composite result a host process can expose however it likes.
//
//	agg := health.NewAggregator()
//	agg.Register("memory", health.NewMemoryChecker(health.MemoryCheckerConfig{}))
//	agg.Register("cache", c.Checker())
//
//	results := agg.CheckAll(ctx)
//	overall := agg.OverallStatus(results)
package health
