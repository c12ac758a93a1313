package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSetLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{"debug", "debug", false},
		{"info", "info", false},
		{"warn", "warn", false},
		{"warning alias", "Warning", false},
		{"error", "ERROR", false},
		{"empty keeps info", "", false},
		{"unknown", "loud", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := SetLevel(tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetLevel(%q) error = %v, wantErr %t", tt.level, err, tt.wantErr)
			}
		})
	}

	if err := SetLevel("info"); err != nil {
		t.Fatalf("restore level: %v", err)
	}
}

func TestLoggerEmitsRenamedKeys(t *testing.T) {
	var buf bytes.Buffer
	previous := Logger()
	ReplaceLogger(slog.New(newHandler(&buf)))
	defer ReplaceLogger(previous)

	Info(context.Background(), "backend ready", "collection", "products")

	line := buf.String()
	for _, fragment := range []string{"ts=", "level=info", `msg="backend ready"`, "collection=products"} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("log line %q missing %q", line, fragment)
		}
	}
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	var buf bytes.Buffer
	previous := Logger()
	ReplaceLogger(slog.New(newHandler(&buf)))
	defer ReplaceLogger(previous)

	if err := SetLevel("info"); err != nil {
		t.Fatalf("set level: %v", err)
	}

	Debug(context.Background(), "should be dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	if err := SetLevel("debug"); err != nil {
		t.Fatalf("set level: %v", err)
	}
	defer func() {
		if err := SetLevel("info"); err != nil {
			t.Fatalf("restore level: %v", err)
		}
	}()

	Debug(context.Background(), "should be kept")
	if !strings.Contains(buf.String(), `msg="should be kept"`) {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}

func TestReplaceLoggerRejectsNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on nil logger")
		}
	}()
	ReplaceLogger(nil)
}
