package exporters

import (
	"context"
	"testing"
)

func TestNewTracingExporter_None(t *testing.T) {
	exp, err := NewTracingExporter(context.Background(), "none")
	if err != nil {
		t.Fatalf("NewTracingExporter(none): %v", err)
	}
	if exp == nil {
		t.Fatal("expected a discard exporter, got nil")
	}
}

func TestNewTracingExporter_Unknown(t *testing.T) {
	if _, err := NewTracingExporter(context.Background(), "smoke-signals"); err == nil {
		t.Error("expected error for unknown exporter")
	}
}

func TestNewTracingExporter_OTLPWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	if _, err := NewTracingExporter(context.Background(), "otlp"); err == nil {
		t.Error("expected error when OTLP endpoint is not configured")
	}
}

func TestNewMetricsReader_None(t *testing.T) {
	reader, err := NewMetricsReader(context.Background(), "none")
	if err != nil {
		t.Fatalf("NewMetricsReader(none): %v", err)
	}
	if reader == nil {
		t.Fatal("expected a discard reader, got nil")
	}
}

func TestNewMetricsReader_Prometheus(t *testing.T) {
	reader, err := NewMetricsReader(context.Background(), "prometheus")
	if err != nil {
		t.Fatalf("NewMetricsReader(prometheus): %v", err)
	}
	if reader == nil {
		t.Fatal("expected a prometheus reader, got nil")
	}
}

func TestNewMetricsReader_Unknown(t *testing.T) {
	if _, err := NewMetricsReader(context.Background(), "punch-cards"); err == nil {
		t.Error("expected error for unknown metrics exporter")
	}
}
