package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(Config{Level: "loud"}); err == nil || !strings.Contains(err.Error(), "invalid log level") {
		t.Fatalf("expected invalid level error, got %v", err)
	}
	if _, err := New(Config{Format: "xml"}); err == nil || !strings.Contains(err.Error(), "invalid log format") {
		t.Fatalf("expected invalid format error, got %v", err)
	}
	if _, err := New(Config{OutputPath: filepath.Join(t.TempDir(), "missing", "log.txt")}); err == nil {
		t.Fatalf("expected open error for missing directory")
	}
}

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codesim.log")
	log, err := New(Config{Level: "warn", Format: "json", OutputPath: path})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Info("dropped")
	log.Named("grading").Warn("kept")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one entry, got %d: %q", len(lines), data)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("entry is not json: %v", err)
	}
	if entry["msg"] != "kept" || entry["level"] != "warn" || entry["logger"] != "grading" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if _, ok := entry["time"].(string); !ok {
		t.Fatalf("expected time string, got %v", entry["time"])
	}
}
