package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/Vlab-Corporation/claude-config-installer/internal/testutil"
)

func newAddTask(repo *testutil.MockQueueRepository, loader *testutil.MockConfigLoader, ids ...string) (*AddTask, *testutil.MockLogger) {
	logger := &testutil.MockLogger{}
	return NewAddTask(repo, loader, &testutil.MockIDGenerator{IDs: ids}, newTestClock(), logger), logger
}

func TestAddTask_Execute_Success(t *testing.T) {
	// Setup
	repo := testutil.NewMockQueueRepository()
	uc, logger := newAddTask(repo, testutil.NewMockConfigLoader(), "task-0000000a")

	// Execute
	out, err := uc.Execute(context.Background(), AddTaskInput{
		Command:   "  edit config.ts  ",
		Priority:  "high",
		OnSuccess: "run tests",
		Note:      "before release",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, MessageTaskAdded, out.Message)
	assert.False(t, out.ActionRequired)
	assert.Empty(t, out.Conflicts)
	assert.Equal(t, 1, out.Position)
	assert.Equal(t, []string{"config.ts"}, out.Scope.Files)

	require.Len(t, repo.Queue.Tasks, 1)
	task := repo.Queue.Tasks[0]
	assert.Equal(t, "task-0000000a", task.ID)
	assert.Equal(t, "edit config.ts", task.Command)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.Equal(t, domain.StatusQueued, task.Status)
	assert.Equal(t, "run tests", task.OnSuccess)
	assert.Equal(t, "before release", task.Note)
	assert.Equal(t, testNow, task.CreatedAt)
	assert.Equal(t, []string{"config.ts"}, task.Scope.Files)

	require.Len(t, logger.Entries, 1)
	assert.Equal(t, "task-0000000a", logger.Entries[0].TaskID)
}

func TestAddTask_Execute_ConflictDoesNotMutate(t *testing.T) {
	// Setup
	existing := withScope(queuedTask("task-1", domain.PriorityNormal, 0), []string{"config.ts"}, nil, nil)
	repo := testutil.NewMockQueueRepository(existing)
	uc, _ := newAddTask(repo, testutil.NewMockConfigLoader())

	// Execute
	out, err := uc.Execute(context.Background(), AddTaskInput{Command: "fix config.ts"})

	// Assert
	require.NoError(t, err)
	assert.True(t, out.ActionRequired)
	assert.Equal(t, MessageConflictDetected, out.Message)
	assert.Equal(t, domain.ResolutionOptions(), out.Options)
	require.Len(t, out.Conflicts, 1)
	assert.Equal(t, "task-1", out.Conflicts[0].TaskID)
	assert.Equal(t, domain.ConflictHard, out.Conflicts[0].Kind)
	assert.Equal(t, []string{"config.ts"}, out.Conflicts[0].Files)

	assert.Equal(t, 0, repo.Updates)
	assert.Len(t, repo.Queue.Tasks, 1)
}

func TestAddTask_Execute_SoftConflict(t *testing.T) {
	// Setup
	existing := withScope(queuedTask("task-1", domain.PriorityNormal, 0), nil, []string{"auth"}, nil)
	repo := testutil.NewMockQueueRepository(existing)
	uc, _ := newAddTask(repo, testutil.NewMockConfigLoader())

	// Execute
	out, err := uc.Execute(context.Background(), AddTaskInput{Command: "fix the login bug"})

	// Assert
	require.NoError(t, err)
	require.Len(t, out.Conflicts, 1)
	assert.Equal(t, domain.ConflictSoft, out.Conflicts[0].Kind)
	assert.Equal(t, []string{"auth"}, out.Conflicts[0].Modules)
	assert.Len(t, repo.Queue.Tasks, 1)
}

func TestAddTask_Execute_DefaultPriorityFromConfig(t *testing.T) {
	// Setup
	loader := testutil.NewMockConfigLoader()
	loader.Config.Queue.DefaultPriority = "low"
	repo := testutil.NewMockQueueRepository()
	uc, _ := newAddTask(repo, loader)

	// Execute
	out, err := uc.Execute(context.Background(), AddTaskInput{Command: "hello there"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityLow, out.Task.Priority)
}

func TestAddTask_Execute_DependsOn(t *testing.T) {
	// Setup
	repo := testutil.NewMockQueueRepository(queuedTask("task-1", domain.PriorityNormal, 0))
	uc, _ := newAddTask(repo, testutil.NewMockConfigLoader(), "task-2")

	// Execute
	out, err := uc.Execute(context.Background(), AddTaskInput{
		Command:   "hello there",
		DependsOn: []string{"task-1", "", "task-1"},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"task-1"}, out.Task.DependsOn)
	assert.Equal(t, 2, out.Position)
}

func TestAddTask_Execute_SkipsUsedID(t *testing.T) {
	// Setup
	repo := testutil.NewMockQueueRepository(queuedTask("task-1", domain.PriorityNormal, 0))
	uc, _ := newAddTask(repo, testutil.NewMockConfigLoader(), "task-1", "task-2")

	// Execute
	out, err := uc.Execute(context.Background(), AddTaskInput{Command: "hello there"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "task-2", out.Task.ID)
}

func TestAddTask_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      AddTaskInput
		wantErr error
	}{
		{"empty command", AddTaskInput{Command: "   "}, domain.ErrEmptyCommand},
		{"invalid priority", AddTaskInput{Command: "x", Priority: "urgent"}, domain.ErrInvalidPriority},
		{"unknown dependency", AddTaskInput{Command: "x", DependsOn: []string{"task-404"}}, domain.ErrUnknownTask},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			repo := testutil.NewMockQueueRepository()
			uc, _ := newAddTask(repo, testutil.NewMockConfigLoader())

			// Execute
			_, err := uc.Execute(context.Background(), tt.in)

			// Assert
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.Queue.Tasks)
		})
	}
}

func TestAddTask_Execute_StoreCorrupted(t *testing.T) {
	// Setup
	repo := testutil.NewMockQueueRepository()
	repo.UpdateErr = domain.ErrStoreCorrupted
	uc, _ := newAddTask(repo, testutil.NewMockConfigLoader())

	// Execute
	_, err := uc.Execute(context.Background(), AddTaskInput{Command: "x"})

	// Assert
	assert.ErrorIs(t, err, domain.ErrStoreCorrupted)
}
