package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyFileWriterDefaults(t *testing.T) {
	got := applyFileWriterDefaults(FileWriterConfig{MaxBackups: 2})

	if got.MaxSizeMB != DefaultMaxSizeMB {
		t.Errorf("MaxSizeMB = %d, want %d", got.MaxSizeMB, DefaultMaxSizeMB)
	}
	if got.MaxBackups != 2 {
		t.Errorf("MaxBackups = %d, want 2 (explicit value kept)", got.MaxBackups)
	}
	if got.MaxAgeDays != DefaultMaxAgeDays {
		t.Errorf("MaxAgeDays = %d, want %d", got.MaxAgeDays, DefaultMaxAgeDays)
	}
}

func TestNewFileWriterWithConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rotating.log")

	w, err := NewFileWriterWithConfig(path, DefaultFileWriterConfig())
	if err != nil {
		t.Fatalf("NewFileWriterWithConfig() error: %v", err)
	}
	if _, err := w.Write([]byte("line\n")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(content) != "line\n" {
		t.Errorf("content = %q, want %q", content, "line\n")
	}
}

func TestNewFileWriterWithConfig_Errors(t *testing.T) {
	if _, err := NewFileWriterWithConfig("", DefaultFileWriterConfig()); err == nil {
		t.Error("expected error for empty path")
	}
	if _, err := NewFileWriterWithConfig("/nonexistent/dir/x.log", DefaultFileWriterConfig()); err == nil {
		t.Error("expected error for missing directory")
	}
}
