package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tempo-kit/tempo-go/pkg/duration"
)

func captureLine(t *testing.T, emit func(l Logger)) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	logger := NewZerologAdapterWithLogger(zerolog.New(&buf))
	emit(logger)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}
	return entry
}

func TestZerologAdapterLevels(t *testing.T) {
	tests := []struct {
		level string
		emit  func(l Logger)
	}{
		{"debug", func(l Logger) { l.Debug("msg") }},
		{"info", func(l Logger) { l.Info("msg") }},
		{"warn", func(l Logger) { l.Warn("msg") }},
		{"error", func(l Logger) { l.Error("msg") }},
	}
	for _, tt := range tests {
		entry := captureLine(t, tt.emit)
		if entry["level"] != tt.level {
			t.Errorf("level = %v, want %q", entry["level"], tt.level)
		}
		if entry["message"] != "msg" {
			t.Errorf("message = %v, want %q", entry["message"], "msg")
		}
	}
}

func TestZerologAdapterFields(t *testing.T) {
	entry := captureLine(t, func(l Logger) {
		l.Info("computed",
			String("op", "pow"),
			Int("base", 3),
			Uint("exp", 4),
			Int64("result", 81),
			Float64("ratio", 0.5),
			Bool("checked", true),
			Span("elapsed", duration.Milliseconds(1500)),
			Err(errors.New("boom")),
		)
	})

	if entry["op"] != "pow" {
		t.Errorf("op = %v, want pow", entry["op"])
	}
	if entry["base"] != float64(3) {
		t.Errorf("base = %v, want 3", entry["base"])
	}
	if entry["exp"] != float64(4) {
		t.Errorf("exp = %v, want 4", entry["exp"])
	}
	if entry["result"] != float64(81) {
		t.Errorf("result = %v, want 81", entry["result"])
	}
	if entry["checked"] != true {
		t.Errorf("checked = %v, want true", entry["checked"])
	}
	if entry["elapsed"] != "1s500ms" {
		t.Errorf("elapsed = %v, want 1s500ms", entry["elapsed"])
	}
	if entry["error"] != "boom" {
		t.Errorf("error = %v, want boom", entry["error"])
	}
}

func TestNoopLoggerDiscards(t *testing.T) {
	var l Logger = NewNoopLogger()

	// Must not panic, even with nil field values.
	l.Debug("msg", Any("x", nil))
	l.Info("msg")
	l.Warn("msg", Err(nil))
	l.Error("msg")
}
