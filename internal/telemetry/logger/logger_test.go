package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// newJSON returns a JSON logger at level writing to the returned buffer.
func newJSON(t *testing.T, level string) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := New(Config{Level: level, Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { SetLevel("info") })
	return l, &buf
}

// entry decodes the single JSON record in buf.
func entry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	return m
}

func TestNew_Formats(t *testing.T) {
	for _, format := range []string{"json", "text", "console", ""} {
		var buf bytes.Buffer
		l, err := New(Config{Level: "info", Format: format, Output: &buf})
		if err != nil {
			t.Fatalf("New(%q) error = %v", format, err)
		}
		l.Info("run finished", "suite", "core")

		isJSON := strings.HasPrefix(buf.String(), "{")
		if wantJSON := format == "json" || format == ""; isJSON != wantJSON {
			t.Errorf("format %q produced %q", format, buf.String())
		}
	}
}

func TestLogger_LevelsAndAttrs(t *testing.T) {
	l, buf := newJSON(t, "debug")
	tests := []struct {
		level string
		log   func(string, ...any)
	}{
		{"DEBUG", l.Debug},
		{"INFO", l.Info},
		{"WARN", l.Warn},
		{"ERROR", l.Error},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.log("kernel finished", "kernel", "rayTrace")
			m := entry(t, buf)
			if m["level"] != tt.level || m["msg"] != "kernel finished" || m["kernel"] != "rayTrace" {
				t.Errorf("entry = %v", m)
			}
		})
	}
}

func TestLogger_With(t *testing.T) {
	l, buf := newJSON(t, "info")
	l.With("component", "runner").WithContext(context.Background()).Info("run started")

	if got := entry(t, buf)["component"]; got != "runner" {
		t.Errorf("component = %v, want runner", got)
	}
}

func TestSetLevel(t *testing.T) {
	l, buf := newJSON(t, "error")

	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info logged at error level: %s", buf.String())
	}

	SetLevel("debug")
	l.Debug("shown")
	if buf.Len() == 0 {
		t.Error("debug not logged after SetLevel(debug)")
	}

	tests := map[string]string{
		"DEBUG":   "debug",
		"warning": "warn",
		"error":   "error",
		"bogus":   "info",
		"":        "info",
	}
	for in, want := range tests {
		SetLevel(in)
		if got := GetLevel(); got != want {
			t.Errorf("SetLevel(%q); GetLevel() = %q, want %q", in, got, want)
		}
	}
}

func TestDefault(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	l, buf := newJSON(t, "debug")
	SetDefault(l)
	if Default() != l {
		t.Fatal("Default() did not return the logger passed to SetDefault")
	}

	for name, log := range map[string]func(string, ...any){
		"Debug": Debug, "Info": Info, "Warn": Warn, "Error": Error,
	} {
		buf.Reset()
		log("package level")
		if buf.Len() == 0 {
			t.Errorf("%s() produced no output", name)
		}
	}

	// Loggers of another implementation are ignored.
	SetDefault(nil)
	if Default() != l {
		t.Error("SetDefault(nil) replaced the default logger")
	}
}

func TestLogger_DurationAttr(t *testing.T) {
	l, buf := newJSON(t, "info")
	l.Info("kernel finished", "kernel", "fibonacci", "elapsed", 1500*time.Microsecond+300*time.Nanosecond)

	if got := entry(t, buf)["elapsed"]; got != "1.5ms" {
		t.Errorf("elapsed = %v, want 1.5ms", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != "info" || cfg.Format != "json" || cfg.Output == nil {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("dropped", "k", "v")
	l.With("a", 1).WithContext(context.Background()).Info("dropped")
}
