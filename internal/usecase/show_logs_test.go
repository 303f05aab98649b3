package usecase

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/Vlab-Corporation/claude-config-installer/internal/testutil"
)

func TestShowLogs_Execute_TaskLog(t *testing.T) {
	// Setup
	queueDir := t.TempDir()
	require.NoError(t, os.MkdirAll(domain.LogsDir(queueDir), 0o750))
	logPath := domain.TaskLogPath(queueDir, "task-1")
	require.NoError(t, os.WriteFile(logPath, []byte("line1\nline2\n"), 0o600))

	repo := testutil.NewMockQueueRepository(queuedTask("task-1", domain.PriorityNormal, 0))
	uc := NewShowLogs(repo, queueDir)

	// Execute
	out, err := uc.Execute(context.Background(), ShowLogsInput{TaskID: "task-1"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, logPath, out.LogPath)
	assert.Equal(t, "line1\nline2\n", out.Content)
}

func TestShowLogs_Execute_LastLines(t *testing.T) {
	// Setup
	queueDir := t.TempDir()
	require.NoError(t, os.MkdirAll(domain.LogsDir(queueDir), 0o750))
	require.NoError(t, os.WriteFile(domain.GlobalLogPath(queueDir), []byte("line1\nline2\nline3\nline4\nline5\n"), 0o600))

	uc := NewShowLogs(testutil.NewMockQueueRepository(), queueDir)

	// Execute
	out, err := uc.Execute(context.Background(), ShowLogsInput{Lines: 2})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "line4\nline5\n", out.Content)
}

func TestShowLogs_Execute_HistoricalTaskWithoutLog(t *testing.T) {
	// Setup
	repo := testutil.NewMockQueueRepository()
	repo.Queue.History = []*domain.HistoryEntry{historyEntry("task-1", domain.StatusCompleted, testNow)}
	uc := NewShowLogs(repo, t.TempDir())

	// Execute
	out, err := uc.Execute(context.Background(), ShowLogsInput{TaskID: "task-1"})

	// Assert
	require.NoError(t, err)
	assert.Empty(t, out.Content)
}

func TestShowLogs_Execute_UnknownTask(t *testing.T) {
	uc := NewShowLogs(testutil.NewMockQueueRepository(), t.TempDir())

	_, err := uc.Execute(context.Background(), ShowLogsInput{TaskID: "task-404"})

	assert.ErrorIs(t, err, domain.ErrUnknownTask)
}
