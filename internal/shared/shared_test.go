package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	t.Run("writes to the provided writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)

		logger.Info("hello", "key", "value")

		out := buf.String()
		if !strings.Contains(out, "hello") {
			t.Errorf("expected log output to contain message, got %q", out)
		}
		if !strings.Contains(out, "key") {
			t.Errorf("expected log output to contain key, got %q", out)
		}
	})

	t.Run("nil writer defaults to stderr", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected logger to be created")
		}
	})
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	child := WithLogger(logger, "component", "test")
	child.Info("message")

	if !strings.Contains(buf.String(), "component") {
		t.Errorf("expected child logger to carry key-value pairs, got %q", buf.String())
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	SetLogLevel(logger, log.ErrorLevel)
	logger.Info("suppressed")
	logger.Error("visible")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("info message should be suppressed at error level, got %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("error message should be visible, got %q", out)
	}
}

func TestGenerateState(t *testing.T) {
	t.Run("non-empty", func(t *testing.T) {
		if GenerateState() == "" {
			t.Error("expected non-empty state")
		}
	})

	t.Run("unique per call", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 10; i++ {
			state := GenerateState()
			if seen[state] {
				t.Fatalf("duplicate state generated: %s", state)
			}
			seen[state] = true
		}
	})
}
