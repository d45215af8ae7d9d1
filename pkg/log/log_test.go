package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func parseLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestZerologProviderFields(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProvider(&buf, LevelDebug)

	logger := provider.GetLoggerWithName("linear").With(
		ModelNameKey, "LinearRegression",
	)
	logger.Info("Training started",
		OperationKey, OperationFit,
		SamplesKey, 100,
		FeaturesKey, 3,
	)

	entries := parseLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]

	if entry["logger"] != "linear" {
		t.Errorf("expected logger 'linear', got %v", entry["logger"])
	}
	if entry[ModelNameKey] != "LinearRegression" {
		t.Errorf("expected model name field, got %v", entry[ModelNameKey])
	}
	if entry[OperationKey] != OperationFit {
		t.Errorf("expected operation %q, got %v", OperationFit, entry[OperationKey])
	}
	if entry[SamplesKey] != float64(100) {
		t.Errorf("expected samples 100, got %v", entry[SamplesKey])
	}
	if entry["message"] != "Training started" {
		t.Errorf("expected message, got %v", entry["message"])
	}
}

func TestZerologProviderLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProvider(&buf, LevelWarn)

	logger := provider.GetLogger()
	logger.Debug("suppressed")
	logger.Info("suppressed too")
	logger.Warn("visible")

	entries := parseLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0]["message"] != "visible" {
		t.Errorf("expected warn record, got %v", entries[0]["message"])
	}

	if logger.Enabled(context.Background(), LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !logger.Enabled(context.Background(), LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.name); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if LevelDebug.String() != "DEBUG" || LevelError.String() != "ERROR" {
		t.Error("unexpected level names")
	}
	if Level(42).String() != "UNKNOWN" {
		t.Error("expected UNKNOWN for out-of-range level")
	}
}

func TestTestLoggerCapture(t *testing.T) {
	logger, _ := NewTestLogger(LevelDebug)

	contextual := logger.With(ModelNameKey, "StandardScaler")
	contextual.Info("Transform completed", SamplesKey, 42)

	if !logger.ContainsMessage("Transform completed") {
		t.Error("expected captured message")
	}
	if !logger.ContainsField(ModelNameKey, "StandardScaler") {
		t.Error("expected contextual field in record")
	}
	if !logger.ContainsField(SamplesKey, float64(42)) {
		t.Error("expected samples field in record")
	}

	entries, err := logger.GetLogEntries()
	if err != nil {
		t.Fatalf("GetLogEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	logger.Clear()
	if logger.ContainsMessage("Transform completed") {
		t.Error("expected buffer cleared")
	}
}

func TestTestLoggerLevelGate(t *testing.T) {
	logger, buf := NewTestLogger(LevelInfo)
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Error("debug record should be suppressed at info level")
	}
}
