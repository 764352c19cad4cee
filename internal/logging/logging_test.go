package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesToOverriddenPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	t.Setenv(envLogFile, path)

	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	slog.Info("hello from the board")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello from the board") {
		t.Fatalf("log file does not contain the record: %q", data)
	}
}

func TestInitAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("earlier run\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(envLogFile, path)

	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	slog.Info("later run")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "earlier run") || !strings.Contains(out, "later run") {
		t.Fatalf("expected both runs in the file, got %q", out)
	}
}
