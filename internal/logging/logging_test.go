package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"", "json", "console"} {
		logger, err := New("debug", format)
		if err != nil {
			t.Fatalf("unexpected error for format %q: %v", format, err)
		}
		if logger == nil {
			t.Fatalf("expected logger instance")
		}
		if !logger.Core().Enabled(zapcore.DebugLevel) {
			t.Fatalf("expected debug level to be enabled")
		}
		_ = logger.Sync()
	}
}

func TestNewRejectsInvalidInput(t *testing.T) {
	if _, err := New("loud", "json"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if _, err := New("info", "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
