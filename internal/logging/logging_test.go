package logging

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_FiltersBelowLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := New(&buf, "warn")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	l.Info("hidden")
	l.Warn("shown", "k", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "k=1") {
		t.Fatalf("expected warn line with key, got %q", out)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	t.Parallel()

	if _, err := New(&bytes.Buffer{}, "loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestOpen_Destinations(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	l, c, err := Open("-", "info", &stderr)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	l.Info("to stderr")
	_ = c.Close()
	if !strings.Contains(stderr.String(), "to stderr") {
		t.Fatalf("expected stderr output, got %q", stderr.String())
	}

	path := filepath.Join(t.TempDir(), "pong.log")
	l, c, err = Open(path, "debug", &stderr)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	l.Debug("to file")
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, _, err := Open(filepath.Join(t.TempDir(), "missing", "x.log"), "info", &stderr); err == nil {
		t.Fatalf("expected error for unwritable path")
	}
}
