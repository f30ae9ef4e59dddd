package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Lookup outcomes recorded by the cache façade.
const (
	LookupHit      = "hit"
	LookupMiss     = "miss"
	LookupDegraded = "degraded"
)

// Compute outcomes recorded by the fallback chain.
const (
	ComputeOK           = "ok"
	ComputeFallback     = "fallback"
	ComputeContradicted = "contradicted"
	ComputeFailed       = "failed"
)

// Metrics records rating-cache events.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic; recording is best-effort.
type Metrics interface {
	// RecordLookup records a store lookup with its outcome (hit, miss,
	// degraded).
	RecordLookup(ctx context.Context, outcome string)

	// RecordCompute records one calculator invocation with its outcome and
	// duration.
	RecordCompute(ctx context.Context, outcome string, duration time.Duration)

	// RecordBroadcast records one ambient-change broadcast with the number
	// of live subscriptions refreshed and the total fan-out duration.
	RecordBroadcast(ctx context.Context, subscriptions int, duration time.Duration)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	lookupCount    metric.Int64Counter
	computeCount   metric.Int64Counter
	computeHist    metric.Float64Histogram
	broadcastCount metric.Int64Counter
	broadcastSize  metric.Int64Histogram
	broadcastHist  metric.Float64Histogram
}

// newMetrics creates a Metrics instance with the given meter.
func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	lookupCount, err := meter.Int64Counter(
		"rating.lookup.total",
		metric.WithDescription("Total number of rating lookups by outcome"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	computeCount, err := meter.Int64Counter(
		"rating.compute.total",
		metric.WithDescription("Total number of calculator invocations by outcome"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	computeHist, err := meter.Float64Histogram(
		"rating.compute.duration_ms",
		metric.WithDescription("Calculator invocation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	broadcastCount, err := meter.Int64Counter(
		"rating.broadcast.total",
		metric.WithDescription("Total number of ambient-change broadcasts"),
		metric.WithUnit("{broadcast}"),
	)
	if err != nil {
		return nil, err
	}

	broadcastSize, err := meter.Int64Histogram(
		"rating.broadcast.subscriptions",
		metric.WithDescription("Live subscriptions refreshed per broadcast"),
		metric.WithUnit("{subscription}"),
	)
	if err != nil {
		return nil, err
	}

	broadcastHist, err := meter.Float64Histogram(
		"rating.broadcast.duration_ms",
		metric.WithDescription("Broadcast fan-out duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		lookupCount:    lookupCount,
		computeCount:   computeCount,
		computeHist:    computeHist,
		broadcastCount: broadcastCount,
		broadcastSize:  broadcastSize,
		broadcastHist:  broadcastHist,
	}, nil
}

func (m *metricsImpl) RecordLookup(ctx context.Context, outcome string) {
	m.lookupCount.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *metricsImpl) RecordCompute(ctx context.Context, outcome string, duration time.Duration) {
	opt := metric.WithAttributes(attribute.String("outcome", outcome))
	m.computeCount.Add(ctx, 1, opt)
	m.computeHist.Record(ctx, float64(duration.Microseconds())/1000.0, opt)
}

func (m *metricsImpl) RecordBroadcast(ctx context.Context, subscriptions int, duration time.Duration) {
	m.broadcastCount.Add(ctx, 1)
	m.broadcastSize.Record(ctx, int64(subscriptions))
	m.broadcastHist.Record(ctx, float64(duration.Microseconds())/1000.0)
}

// noopMetrics is a Metrics implementation that does nothing.
type noopMetrics struct{}

func (noopMetrics) RecordLookup(context.Context, string)                 {}
func (noopMetrics) RecordCompute(context.Context, string, time.Duration) {}
func (noopMetrics) RecordBroadcast(context.Context, int, time.Duration)  {}

// NoopMetrics returns a Metrics recorder that discards everything.
func NoopMetrics() Metrics { return noopMetrics{} }

// Ensure implementations satisfy Metrics.
var (
	_ Metrics = (*metricsImpl)(nil)
	_ Metrics = noopMetrics{}
)
