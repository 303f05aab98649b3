package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/Vlab-Corporation/claude-config-installer/internal/testutil"
)

func TestCancelTask_Execute_ReportsBlockedDependents(t *testing.T) {
	// Setup
	repo := testutil.NewMockQueueRepository(
		queuedTask("task-1", domain.PriorityNormal, 0),
		queuedTask("task-2", domain.PriorityNormal, 1, "task-1"),
		queuedTask("task-3", domain.PriorityNormal, 2),
	)
	logger := &testutil.MockLogger{}
	uc := NewCancelTask(repo, newTestClock(), logger)

	// Execute
	out, err := uc.Execute(context.Background(), CancelTaskInput{TaskID: "task-1"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"task-1"}, out.Cancelled)
	assert.Equal(t, []string{"task-2"}, out.Blocked)
	assert.Equal(t, 2, out.Remaining)

	// Dependent stays queued but blocked
	q := repo.Queue
	require.NotNil(t, q.Find("task-2"))
	assert.True(t, q.IsBlocked(q.Find("task-2")))
	h := q.FindHistory("task-1")
	require.NotNil(t, h)
	assert.Equal(t, domain.StatusCancelled, h.Outcome)
	assert.Equal(t, testNow, h.CompletedAt)
	assert.Len(t, logger.Entries, 2)
}

func TestCancelTask_Execute_RunningRefused(t *testing.T) {
	// Setup
	repo := testutil.NewMockQueueRepository(runningTask("task-1"))
	uc := NewCancelTask(repo, newTestClock(), &testutil.MockLogger{})

	// Execute
	_, err := uc.Execute(context.Background(), CancelTaskInput{TaskID: "task-1"})

	// Assert
	require.ErrorIs(t, err, domain.ErrCancelRunning)
	assert.Equal(t, domain.StatusRunning, repo.Queue.Find("task-1").Status)
	assert.Empty(t, repo.Queue.History)
}

func TestCancelTask_Execute_Unknown(t *testing.T) {
	uc := NewCancelTask(testutil.NewMockQueueRepository(), newTestClock(), &testutil.MockLogger{})

	_, err := uc.Execute(context.Background(), CancelTaskInput{TaskID: "task-404"})

	assert.ErrorIs(t, err, domain.ErrUnknownTask)
}

func TestCancelTask_Execute_All(t *testing.T) {
	// Setup
	repo := testutil.NewMockQueueRepository(
		runningTask("task-run"),
		queuedTask("task-1", domain.PriorityNormal, 0),
		queuedTask("task-2", domain.PriorityNormal, 1),
	)
	uc := NewCancelTask(repo, newTestClock(), &testutil.MockLogger{})

	// Execute
	out, err := uc.Execute(context.Background(), CancelTaskInput{All: true})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"task-1", "task-2"}, out.Cancelled)
	assert.Equal(t, 0, out.Remaining)
	require.Len(t, repo.Queue.Tasks, 1)
	assert.Equal(t, "task-run", repo.Queue.Tasks[0].ID)
}

func TestCancelTask_Execute_AllOnEmptyQueue(t *testing.T) {
	// Setup
	repo := testutil.NewMockQueueRepository()
	uc := NewCancelTask(repo, newTestClock(), &testutil.MockLogger{})

	// Execute
	out, err := uc.Execute(context.Background(), CancelTaskInput{All: true})

	// Assert
	require.NoError(t, err)
	assert.Empty(t, out.Cancelled)
	assert.Equal(t, 0, repo.Updates)
}
