// Package logging builds the slog logger used across modals. Records are
// formatted by a charmbracelet/log handler.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/marcus/modals/internal/config"
)

// New returns a logger writing to w at the named level.
func New(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	h := log.NewWithOptions(w, log.Options{
		Prefix:          "modals",
		Level:           lvl,
		ReportTimestamp: true,
	})
	return slog.New(h), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(log.New(io.Discard))
}

// Open builds the logger described by cfg. The TUI owns the terminal, so
// without a file logs are discarded. The returned func closes the file.
func Open(cfg config.LogConfig) (*slog.Logger, func() error, error) {
	if cfg.File == "" {
		return Discard(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l, err := New(f, cfg.Level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return l, f.Close, nil
}
