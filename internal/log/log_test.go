package log

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_Levels(t *testing.T) {
	buf := new(bytes.Buffer)
	logger, err := New("warn", buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", zap.String("path", "/tmp/report.csv"))
	logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line written at warn level: %s", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "shown") || !strings.Contains(out, "/tmp/report.csv") {
		t.Errorf("expected warn line with field, got: %s", out)
	}
}

func TestNew_DefaultsToInfo(t *testing.T) {
	buf := new(bytes.Buffer)
	logger, err := New("", buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New("loud", nil); err == nil {
		t.Error("expected error for invalid level")
	}
}
