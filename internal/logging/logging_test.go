package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn)
	l.SetOutput(&buf)

	l.Info("hidden %d", 1)
	l.Warn("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown 2") {
		t.Errorf("warn line missing, got %q", out)
	}
}

func TestLogger_WithAddsContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug)
	l.SetOutput(&buf)

	l.With("frame", 3).Debug("composited")

	out := buf.String()
	if !strings.Contains(out, "frame=3") || !strings.Contains(out, "composited") {
		t.Errorf("expected frame context in %q", out)
	}
}

func TestLogger_SetLevelAffectsChildren(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelError)
	l.SetOutput(&buf)
	child := l.With("k", "v")

	l.SetLevel(LevelDebug)
	child.Debug("now visible")

	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("child should follow parent level, got %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	if l.Enabled(LevelError) {
		t.Error("Discard logger should not be enabled for any level")
	}
	l.Error("nothing %s", "happens")
}
