package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/addielponce/anki-progress-circle/internal/platform/logging"
)

func TestNewRespectsLevel(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	logger := logging.New(logging.Options{Name: "test", Level: "warn", Output: buf})
	logger.Info("hidden")
	logger.Warn("shown", "deck", "A")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "deck=A") {
		t.Fatalf("warn line missing: %s", out)
	}
}

func TestNewFallsBackToInfoOnUnknownLevel(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	logger := logging.New(logging.Options{Level: "loud", Output: buf})
	logger.Debug("debug line")
	logger.Info("info line")
	if strings.Contains(buf.String(), "debug line") || !strings.Contains(buf.String(), "info line") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}
