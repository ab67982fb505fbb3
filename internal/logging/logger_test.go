package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func newTestLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New(Config{Level: level, Output: &buf, Prefix: "test"})
	l.sink.now = func() time.Time {
		return time.Date(2026, 1, 2, 3, 4, 5, 6e6, time.UTC)
	}
	return l, &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{"INFO", LevelInfo, true},
		{"", LevelInfo, true},
		{"warning", LevelWarn, true},
		{" error ", LevelError, true},
		{"verbose", LevelInfo, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLevelString(t *testing.T) {
	if LevelWarn.String() != "WARN" || Level(42).String() != "UNKNOWN" {
		t.Error("unexpected level names")
	}
}

func TestLoggerFormat(t *testing.T) {
	l, buf := newTestLogger(LevelDebug)

	l.WithComponent("drag").WithField("buttons", 3).Info("started at %d,%d", 10, 12)

	want := "2026-01-02T03:04:05.006 [INFO] test: started at 10,12 buttons=3 component=drag\n"
	if got := buf.String(); got != want {
		t.Errorf("line = %q, want %q", got, want)
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	l, buf := newTestLogger(LevelWarn)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("filtered message written: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "[WARN] test: shown") {
		t.Errorf("warn message missing: %q", buf.String())
	}
	if l.Enabled(LevelInfo) || !l.Enabled(LevelError) {
		t.Error("Enabled() disagrees with level")
	}
}

func TestLoggerSharedLevel(t *testing.T) {
	root, buf := newTestLogger(LevelError)
	child := root.WithComponent("child")

	root.SetLevel(LevelDebug)
	child.Debug("now visible")

	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("child did not pick up root level: %q", buf.String())
	}
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	parent, buf := newTestLogger(LevelInfo)
	parent = parent.WithField("a", 1)
	_ = parent.WithField("b", 2)

	parent.Info("msg")
	if strings.Contains(buf.String(), "b=2") {
		t.Errorf("parent picked up child field: %q", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	l := Null()
	l.Info("ignored")
	l.WithComponent("x").Error("ignored")
	l.SetLevel(LevelDebug)
	if l.Enabled(LevelError) {
		t.Error("null logger reports enabled")
	}
}
