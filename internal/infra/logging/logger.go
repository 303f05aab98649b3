// Package logging provides file-based logging for the queue.
// It outputs logs to both a global log file (<queue>/logs/queue.log)
// and task-specific log files (<queue>/logs/<task-id>.log).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger writes leveled entries to the queue log files.
// Fields are ordered to minimize memory padding.
type Logger struct {
	clock      domain.Clock
	globalFile *os.File
	taskFiles  map[string]*os.File
	queueDir   string
	mu         sync.Mutex
	level      slog.Level
}

// New creates a new Logger that writes to the queue log directory.
// If queueDir is empty, logging is disabled (returns a no-op logger).
func New(queueDir string, level slog.Level) *Logger {
	return NewWithClock(queueDir, level, domain.RealClock{})
}

// NewWithClock creates a Logger stamping entries with clock.
func NewWithClock(queueDir string, level slog.Level, clock domain.Clock) *Logger {
	return &Logger{
		queueDir:  queueDir,
		level:     level,
		clock:     clock,
		taskFiles: make(map[string]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) openFile(path string) (*os.File, error) {
	if err := os.MkdirAll(domain.LogsDir(l.queueDir), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	//nolint:gosec // Log file readable by owner and group
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// ensureGlobalFile opens or returns the global log file.
// Caller must hold l.mu.
func (l *Logger) ensureGlobalFile() (*os.File, error) {
	if l.globalFile != nil {
		return l.globalFile, nil
	}
	f, err := l.openFile(domain.GlobalLogPath(l.queueDir))
	if err != nil {
		return nil, err
	}
	l.globalFile = f
	return f, nil
}

// ensureTaskFile opens or returns the task log file.
// Caller must hold l.mu.
func (l *Logger) ensureTaskFile(taskID string) (*os.File, error) {
	if f, ok := l.taskFiles[taskID]; ok {
		return f, nil
	}
	f, err := l.openFile(domain.TaskLogPath(l.queueDir, taskID))
	if err != nil {
		return nil, err
	}
	l.taskFiles[taskID] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for id, f := range l.taskFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.taskFiles, id)
	}
	return lastErr
}

// formatLog formats a log entry.
// Format: [2026-01-30 09:32:51] [INFO] [task-1a2b3c4d] [category] message
func formatLog(t time.Time, level slog.Level, taskID, category, msg string) string {
	taskStr := taskID
	if taskStr == "" {
		taskStr = "global"
	}
	// Keep one entry per line
	msg = strings.ReplaceAll(msg, "\n", `\n`)
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		taskStr,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes an entry to the global log and, when taskID is set, to the task log.
func (l *Logger) log(level slog.Level, taskID, category, msg string) {
	if l.queueDir == "" {
		return // Logging disabled
	}
	if level < l.level {
		return
	}

	entry := formatLog(l.clock.Now(), level, taskID, category, msg)

	l.mu.Lock()
	defer l.mu.Unlock()

	if gf, err := l.ensureGlobalFile(); err == nil {
		_, _ = io.WriteString(gf, entry)
	}
	if taskID != "" {
		if tf, err := l.ensureTaskFile(taskID); err == nil {
			_, _ = io.WriteString(tf, entry)
		}
	}
}

// Info logs an info message.
func (l *Logger) Info(taskID, category, msg string) {
	l.log(slog.LevelInfo, taskID, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(taskID, category, msg string) {
	l.log(slog.LevelDebug, taskID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(taskID, category, msg string) {
	l.log(slog.LevelWarn, taskID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(taskID, category, msg string) {
	l.log(slog.LevelError, taskID, category, msg)
}
