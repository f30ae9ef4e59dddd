package observe

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func parseEntry(t *testing.T, line string) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v\nOutput: %s", err, line)
	}
	return entry
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.WithComponent("cache").Info(context.Background(), "computed rating")

	entry := parseEntry(t, buf.String())
	if v, ok := entry["component"].(string); !ok || v != "cache" {
		t.Errorf("component = %v, want \"cache\"", entry["component"])
	}
	if v, ok := entry["msg"].(string); !ok || v != "computed rating" {
		t.Errorf("msg = %v, want \"computed rating\"", entry["msg"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("timestamp missing")
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Warn(context.Background(), "fallback taken",
		Field{Key: "chart_id", Value: int64(42)},
		Field{Key: "stars", Value: 5.5},
	)

	entry := parseEntry(t, buf.String())
	if entry["level"] != "warn" {
		t.Errorf("level = %v, want warn", entry["level"])
	}
	if v, ok := entry["chart_id"].(float64); !ok || v != 42 {
		t.Errorf("chart_id = %v, want 42", entry["chart_id"])
	}
	if v, ok := entry["stars"].(float64); !ok || v != 5.5 {
		t.Errorf("stars = %v, want 5.5", entry["stars"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)

	logger.Debug(context.Background(), "dropped")
	logger.Info(context.Background(), "dropped")
	logger.Warn(context.Background(), "kept")
	logger.Error(context.Background(), "kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2:\n%s", len(lines), buf.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"nonsense", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogLevel_String(t *testing.T) {
	for _, level := range []LogLevel{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		if ParseLogLevel(level.String()) != level {
			t.Errorf("level %d does not round-trip through String()", level)
		}
	}
}
