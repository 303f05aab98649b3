package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/Vlab-Corporation/claude-config-installer/internal/testutil"
)

func TestAnalyzeConflict_Execute(t *testing.T) {
	repo := testutil.NewMockQueueRepository(
		withScope(queuedTask("task-a", domain.PriorityNormal, 0), []string{"config.ts"}, []string{"auth"}, nil),
		withScope(queuedTask("task-b", domain.PriorityNormal, 1), []string{"config.ts"}, nil, nil),
		withScope(queuedTask("task-c", domain.PriorityNormal, 2), nil, []string{"auth"}, nil),
		withScope(queuedTask("task-d", domain.PriorityNormal, 3), nil, []string{"payment"}, nil),
		queuedTask("task-e", domain.PriorityNormal, 4, "task-d"),
	)
	uc := NewAnalyzeConflict(repo)

	tests := []struct {
		a, b        string
		kind        domain.ConflictKind
		items       []string
		canParallel bool
	}{
		{"task-a", "task-b", domain.ConflictHard, []string{"config.ts"}, false},
		{"task-a", "task-c", domain.ConflictSoft, []string{"auth"}, true},
		{"task-b", "task-d", domain.ConflictNone, []string{}, true},
		{"task-d", "task-e", domain.ConflictHard, []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			// Execute
			out, err := uc.Execute(context.Background(), AnalyzeConflictInput{TaskA: tt.a, TaskB: tt.b})

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.kind, out.Kind)
			assert.Equal(t, tt.items, out.Items)
			assert.Equal(t, tt.canParallel, out.CanParallel)
			assert.NotEmpty(t, out.Description)
		})
	}
}

func TestAnalyzeConflict_Execute_UnknownTask(t *testing.T) {
	repo := testutil.NewMockQueueRepository(queuedTask("task-a", domain.PriorityNormal, 0))
	uc := NewAnalyzeConflict(repo)

	_, err := uc.Execute(context.Background(), AnalyzeConflictInput{TaskA: "task-a", TaskB: "task-z"})

	assert.ErrorIs(t, err, domain.ErrUnknownTask)
}
