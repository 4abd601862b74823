package app

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTabHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	handler := &tabHandler{w: &buf, runID: "run-123"}
	logger := slog.New(handler)

	logger.Info("generating events", "files", 100, "days", 30)

	line := strings.TrimRight(buf.String(), "\n")
	fields := strings.Split(line, "\t")
	if len(fields) != 6 {
		t.Fatalf("got %d tab-separated fields, want 6: %q", len(fields), line)
	}
	if fields[1] != "INFO" {
		t.Errorf("level = %q, want INFO", fields[1])
	}
	if fields[2] != "run-123" {
		t.Errorf("run id = %q, want run-123", fields[2])
	}
	if fields[3] != "generating events" {
		t.Errorf("message = %q, want %q", fields[3], "generating events")
	}
	if fields[4] != "files=100" || fields[5] != "days=30" {
		t.Errorf("attrs = %q %q, want files=100 days=30", fields[4], fields[5])
	}
}

func TestTabHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := &tabHandler{w: &buf, runID: "run-123"}
	logger := slog.New(handler).With("component", "live")

	logger.Warn("pool empty")

	if !strings.Contains(buf.String(), "component=live") {
		t.Errorf("output missing pre-set attr: %q", buf.String())
	}
}

func TestTabHandler_Enabled(t *testing.T) {
	handler := &tabHandler{w: &bytes.Buffer{}, runID: "x"}
	if !handler.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Enabled(debug) = false, want true")
	}
}

func TestNewLogger(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	logger, f, err := newLogger(logDir, "run-abc")
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	defer f.Close()

	logger.Info("hello")

	data, err := os.ReadFile(filepath.Join(logDir, "cctop-gen.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "run-abc\thello") {
		t.Errorf("log file missing entry: %q", data)
	}
}
