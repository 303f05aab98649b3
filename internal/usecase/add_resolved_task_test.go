package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/Vlab-Corporation/claude-config-installer/internal/testutil"
)

func newAddResolvedTask(repo *testutil.MockQueueRepository) *AddResolvedTask {
	return NewAddResolvedTask(repo, testutil.NewMockConfigLoader(), &testutil.MockIDGenerator{IDs: []string{"task-new"}},
		newTestClock(), &testutil.MockLogger{})
}

func conflictingQueue() *testutil.MockQueueRepository {
	return testutil.NewMockQueueRepository(
		withScope(queuedTask("task-1", domain.PriorityNormal, 0), []string{"config.ts"}, nil, nil),
		withScope(queuedTask("task-2", domain.PriorityNormal, 1), []string{"config.ts"}, nil, nil),
		queuedTask("task-3", domain.PriorityNormal, 2),
	)
}

func TestAddResolvedTask_Execute_Depend(t *testing.T) {
	// Setup
	repo := conflictingQueue()
	uc := newAddResolvedTask(repo)

	// Execute
	out, err := uc.Execute(context.Background(), AddResolvedTaskInput{
		Command:    "fix config.ts",
		Resolution: "depend",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, MessageTaskAdded, out.Message)
	assert.Equal(t, domain.ResolutionDepend, out.Resolution)
	assert.Len(t, out.Conflicts, 2)
	assert.Equal(t, []string{"task-1", "task-2"}, out.Task.DependsOn)
	require.Len(t, repo.Queue.Tasks, 4)
	assert.Equal(t, "task-new", repo.Queue.Tasks[3].ID)
}

func TestAddResolvedTask_Execute_DependOnGivenIDs(t *testing.T) {
	// Setup
	repo := conflictingQueue()
	uc := newAddResolvedTask(repo)

	// Execute
	out, err := uc.Execute(context.Background(), AddResolvedTaskInput{
		Command:    "fix config.ts",
		Resolution: "depend",
		DependOn:   []string{"task-2"},
		DependsOn:  []string{"task-3"},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"task-3", "task-2"}, out.Task.DependsOn)
}

func TestAddResolvedTask_Execute_ParallelWarnsOnHardConflict(t *testing.T) {
	// Setup
	repo := conflictingQueue()
	uc := newAddResolvedTask(repo)

	// Execute
	out, err := uc.Execute(context.Background(), AddResolvedTaskInput{
		Command:    "fix config.ts",
		Resolution: "parallel",
	})

	// Assert
	require.NoError(t, err)
	assert.Empty(t, out.Task.DependsOn)
	require.Len(t, out.Warnings, 2)
	assert.Contains(t, out.Warnings[0], "task-1")
	assert.Contains(t, out.Warnings[0], "config.ts")
	assert.Len(t, repo.Queue.Tasks, 4)
}

func TestAddResolvedTask_Execute_CancelLeavesQueue(t *testing.T) {
	// Setup
	repo := conflictingQueue()
	uc := newAddResolvedTask(repo)

	// Execute
	out, err := uc.Execute(context.Background(), AddResolvedTaskInput{
		Command:    "fix config.ts",
		Resolution: "cancel",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, MessageTaskCancelled, out.Message)
	assert.Nil(t, out.Task)
	assert.Equal(t, 0, repo.Updates)
	assert.Len(t, repo.Queue.Tasks, 3)
}

func TestAddResolvedTask_Execute_InvalidResolution(t *testing.T) {
	// Setup
	repo := conflictingQueue()
	uc := newAddResolvedTask(repo)

	// Execute
	_, err := uc.Execute(context.Background(), AddResolvedTaskInput{
		Command:    "fix config.ts",
		Resolution: "merge",
	})

	// Assert
	require.ErrorIs(t, err, domain.ErrInvalidResolution)
	assert.Equal(t, 0, repo.Updates)
}

func TestAddResolvedTask_Execute_DependRejectsUnknownID(t *testing.T) {
	// Setup
	repo := conflictingQueue()
	uc := newAddResolvedTask(repo)

	// Execute
	_, err := uc.Execute(context.Background(), AddResolvedTaskInput{
		Command:    "fix config.ts",
		Resolution: "depend",
		DependOn:   []string{"task-404"},
	})

	// Assert
	require.ErrorIs(t, err, domain.ErrUnknownTask)
	assert.Len(t, repo.Queue.Tasks, 3)
}
