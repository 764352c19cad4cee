// Package logging routes all diagnostics to a file. Stdout belongs to the
// terminal UI, so nothing may ever print there.
package logging

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

// envLogFile overrides the log destination, mainly for development runs
// against a scratch directory.
const envLogFile = "QUADRO_LOG_FILE"

// Init points slog and the standard log package at the log file. The default
// destination is ~/.quadro/logs/quadro.log, created on first use.
func Init() error {
	path := os.Getenv(envLogFile)
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".quadro", "logs", "quadro.log")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	// Third-party code using the standard log package lands in the same file.
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags)

	return nil
}
