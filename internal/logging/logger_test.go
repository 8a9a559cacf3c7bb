package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"INFO", slog.LevelInfo, false},
		{"verbose", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSetup_CreatesLogFile(t *testing.T) {
	logDir := t.TempDir()

	closer, err := Setup("info", logDir)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	defer closer.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 log file, got %d", len(entries))
	}
}

func TestCleanOldLogs(t *testing.T) {
	logDir := t.TempDir()

	oldFile := filepath.Join(logDir, "neucler-2020-01-01.log")
	if err := os.WriteFile(oldFile, []byte("old"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	past := time.Now().AddDate(0, 0, -60)
	if err := os.Chtimes(oldFile, past, past); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}

	freshFile := filepath.Join(logDir, "neucler-2099-01-01.log")
	if err := os.WriteFile(freshFile, []byte("fresh"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	// A non-log file older than the cutoff must be left alone.
	otherFile := filepath.Join(logDir, "notes.txt")
	if err := os.WriteFile(otherFile, []byte("keep"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := os.Chtimes(otherFile, past, past); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}

	removed := CleanOldLogs(logDir, 30)
	if removed != 1 {
		t.Errorf("CleanOldLogs() removed = %d, want 1", removed)
	}

	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Error("old log file should have been removed")
	}
	if _, err := os.Stat(freshFile); err != nil {
		t.Error("fresh log file should remain")
	}
	if _, err := os.Stat(otherFile); err != nil {
		t.Error("non-log file should remain")
	}
}
