package observe

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*metricsImpl, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := newMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	return m, reader
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestMetrics_RecordLookup(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordLookup(context.Background(), LookupHit)
	m.RecordLookup(context.Background(), LookupHit)
	m.RecordLookup(context.Background(), LookupMiss)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	found := findMetric(rm, "rating.lookup.total")
	if found == nil {
		t.Fatal("rating.lookup.total metric not found")
	}

	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", found.Data)
	}

	// One data point per outcome attribute.
	if len(sum.DataPoints) != 2 {
		t.Fatalf("got %d data points, want 2", len(sum.DataPoints))
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 3 {
		t.Errorf("total lookups = %d, want 3", total)
	}
}

func TestMetrics_RecordCompute(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordCompute(context.Background(), ComputeOK, 12*time.Millisecond)
	m.RecordCompute(context.Background(), ComputeFailed, 3*time.Millisecond)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	count := findMetric(rm, "rating.compute.total")
	if count == nil {
		t.Fatal("rating.compute.total metric not found")
	}
	hist := findMetric(rm, "rating.compute.duration_ms")
	if hist == nil {
		t.Fatal("rating.compute.duration_ms metric not found")
	}

	h, ok := hist.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected Histogram[float64], got %T", hist.Data)
	}
	var samples uint64
	for _, dp := range h.DataPoints {
		samples += dp.Count
	}
	if samples != 2 {
		t.Errorf("histogram samples = %d, want 2", samples)
	}
}

func TestMetrics_RecordBroadcast(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordBroadcast(context.Background(), 5, 40*time.Millisecond)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	found := findMetric(rm, "rating.broadcast.subscriptions")
	if found == nil {
		t.Fatal("rating.broadcast.subscriptions metric not found")
	}
	h, ok := found.Data.(metricdata.Histogram[int64])
	if !ok {
		t.Fatalf("expected Histogram[int64], got %T", found.Data)
	}
	if len(h.DataPoints) == 0 || h.DataPoints[0].Count != 1 {
		t.Error("broadcast size not recorded")
	}
}

func TestNoopMetrics(t *testing.T) {
	m := NoopMetrics()
	// Must not panic.
	m.RecordLookup(context.Background(), LookupHit)
	m.RecordCompute(context.Background(), ComputeOK, time.Millisecond)
	m.RecordBroadcast(context.Background(), 0, 0)
}
