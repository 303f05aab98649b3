package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClock struct{ t time.Time }

func (c stubClock) Now() time.Time { return c.t }

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLogger_TaskAndGlobal(t *testing.T) {
	// Setup
	queueDir := t.TempDir()
	logger := New(queueDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Info("task-1a2b3c4d", "start", "started")

	// Verify global log
	content, err := os.ReadFile(domain.GlobalLogPath(queueDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO] [task-1a2b3c4d] [start] started")

	// Verify task log
	taskContent, err := os.ReadFile(domain.TaskLogPath(queueDir, "task-1a2b3c4d"))
	require.NoError(t, err)
	assert.Equal(t, string(content), string(taskContent))
}

func TestLogger_GlobalLogOnly(t *testing.T) {
	// Setup
	queueDir := t.TempDir()
	logger := New(queueDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Execute with empty taskID (global only)
	logger.Info("", "clear", "queue cleared")

	// Verify
	content, err := os.ReadFile(domain.GlobalLogPath(queueDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[global] [clear] queue cleared")

	entries, err := os.ReadDir(domain.LogsDir(queueDir))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLogger_LevelFiltering(t *testing.T) {
	// Setup
	queueDir := t.TempDir()
	logger := New(queueDir, slog.LevelWarn) // Only warn and above
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Debug("task-1", "x", "debug message")
	logger.Info("task-1", "x", "info message")
	logger.Warn("task-1", "x", "warn message")
	logger.Error("task-1", "x", "error message")

	// Verify
	content, err := os.ReadFile(domain.GlobalLogPath(queueDir))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "debug message")
	assert.NotContains(t, string(content), "info message")
	assert.Contains(t, string(content), "[WARN] [task-1] [x] warn message")
	assert.Contains(t, string(content), "[ERROR] [task-1] [x] error message")
}

func TestLogger_DisabledWhenEmptyDir(t *testing.T) {
	logger := New("", slog.LevelDebug)
	defer func() { _ = logger.Close() }()

	// Should not panic or create files
	logger.Info("task-1", "x", "message")
	logger.Error("", "x", "message")
}

func TestLogger_LogFormat(t *testing.T) {
	// Setup
	queueDir := t.TempDir()
	at := time.Date(2026, 1, 30, 9, 32, 51, 0, time.Local)
	logger := NewWithClock(queueDir, slog.LevelInfo, stubClock{t: at})
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Info("task-42", "complete", "failed:\nexit status 1")

	// Verify
	content, err := os.ReadFile(domain.GlobalLogPath(queueDir))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, `[2026-01-30 09:32:51] [INFO] [task-42] [complete] failed:\nexit status 1`, lines[0])
}

func TestLogger_MultipleTaskFiles(t *testing.T) {
	// Setup
	queueDir := t.TempDir()
	logger := New(queueDir, slog.LevelInfo)

	// Log to multiple tasks
	logger.Info("task-a", "x", "message for a")
	logger.Info("task-b", "x", "message for b")
	logger.Info("task-a", "x", "another message for a")
	require.NoError(t, logger.Close())

	// Verify task a log
	aContent, err := os.ReadFile(domain.TaskLogPath(queueDir, "task-a"))
	require.NoError(t, err)
	assert.Contains(t, string(aContent), "another message for a")
	assert.NotContains(t, string(aContent), "message for b")

	// Verify task b log
	bContent, err := os.ReadFile(domain.TaskLogPath(queueDir, "task-b"))
	require.NoError(t, err)
	assert.NotContains(t, string(bContent), "message for a")
}

func TestLogger_CreateLogsDir(t *testing.T) {
	// Setup: queue dir exists but logs subdir doesn't
	queueDir := t.TempDir()
	logsDir := filepath.Join(queueDir, "logs")
	_, err := os.Stat(logsDir)
	require.True(t, os.IsNotExist(err))

	// Execute
	logger := New(queueDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()
	logger.Info("task-1", "x", "test message")

	// Verify
	stat, err := os.Stat(logsDir)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}
