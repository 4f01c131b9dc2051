// Package logging provides line-oriented activity logging for the planner.
// Entries go to <dataDir>/logs/planner.log or to any io.Writer.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/runoshun/planner/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger writes formatted entries to a file or writer.
// Fields are ordered to minimize memory padding.
type Logger struct {
	out     io.Writer
	file    *os.File
	now     func() time.Time
	dataDir string
	mu      sync.Mutex
	level   slog.Level
}

// New creates a Logger that appends to the log file inside dataDir.
// The file is opened lazily on the first entry. If dataDir is empty,
// logging is disabled.
func New(dataDir string, level slog.Level) *Logger {
	return &Logger{
		dataDir: dataDir,
		level:   level,
		now:     time.Now,
	}
}

// NewWriter creates a Logger that writes to w.
func NewWriter(w io.Writer, level slog.Level) *Logger {
	return &Logger{
		out:   w,
		level: level,
		now:   time.Now,
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// writer returns the destination, opening the log file on first use.
// Must be called with l.mu held.
func (l *Logger) writer() (io.Writer, error) {
	if l.out != nil {
		return l.out, nil
	}
	if l.dataDir == "" {
		return nil, nil
	}

	path := domain.LogPath(l.dataDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.file = f
	l.out = f
	return f, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.out = nil
	return err
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [task-1f2e] [schedule] message
func formatLog(t time.Time, level slog.Level, entityID, category, msg string) string {
	entity := "global"
	if entityID != "" {
		entity = entityID
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		entity,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (l *Logger) log(level slog.Level, entityID, category, msg string) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	w, err := l.writer()
	if err != nil || w == nil {
		return
	}
	_, _ = io.WriteString(w, formatLog(l.now(), level, entityID, category, msg))
}

// Info logs an info message.
func (l *Logger) Info(entityID, category, msg string) {
	l.log(slog.LevelInfo, entityID, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(entityID, category, msg string) {
	l.log(slog.LevelDebug, entityID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(entityID, category, msg string) {
	l.log(slog.LevelWarn, entityID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(entityID, category, msg string) {
	l.log(slog.LevelError, entityID, category, msg)
}
