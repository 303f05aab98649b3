package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/Vlab-Corporation/claude-config-installer/internal/testutil"
)

func plannableQueue() *testutil.MockQueueRepository {
	repo := testutil.NewMockQueueRepository(
		runningTask("task-run"),
		withScope(queuedTask("task-1", domain.PriorityNormal, 0), []string{"config.ts"}, nil, nil),
		withScope(queuedTask("task-2", domain.PriorityNormal, 1), []string{"config.ts"}, nil, nil),
		withScope(queuedTask("task-3", domain.PriorityNormal, 2), nil, []string{"auth"}, nil),
		queuedTask("task-blocked", domain.PriorityNormal, 3, "task-failed"),
	)
	repo.Queue.History = []*domain.HistoryEntry{historyEntry("task-failed", domain.StatusFailed, testNow)}
	return repo
}

func TestPlanQueue_Execute(t *testing.T) {
	// Setup
	uc := NewPlanQueue(plannableQueue())

	// Execute
	out, err := uc.Execute(context.Background(), PlanQueueInput{})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, out.Plan)
	require.Len(t, out.Plan.Items, 3)
	require.Len(t, out.Plan.Groups, 2)
	assert.Equal(t, []string{"task-1", "task-3"}, out.Plan.Groups[0].Tasks)
	assert.Equal(t, []string{"task-2"}, out.Plan.Groups[1].Tasks)
	assert.True(t, out.Plan.Groups[0].Split)
}

func TestPlanQueue_Execute_Group(t *testing.T) {
	// Setup
	uc := NewPlanQueue(plannableQueue())

	// Execute
	out, err := uc.Execute(context.Background(), PlanQueueInput{Group: 2})

	// Assert
	require.NoError(t, err)
	assert.Nil(t, out.Plan)
	require.NotNil(t, out.Group)
	assert.Equal(t, 2, out.Group.Index)
	require.Len(t, out.Tasks, 1)
	assert.Equal(t, "task-2", out.Tasks[0].ID)
}

func TestPlanQueue_Execute_Errors(t *testing.T) {
	uc := NewPlanQueue(plannableQueue())

	_, err := uc.Execute(context.Background(), PlanQueueInput{Group: 3})
	require.ErrorIs(t, err, domain.ErrInvalidGroup)

	_, err = uc.Execute(context.Background(), PlanQueueInput{Group: -1})
	require.ErrorIs(t, err, domain.ErrInvalidGroup)

	empty := NewPlanQueue(testutil.NewMockQueueRepository(runningTask("task-run")))
	_, err = empty.Execute(context.Background(), PlanQueueInput{})
	require.ErrorIs(t, err, domain.ErrNoTasks)
}
