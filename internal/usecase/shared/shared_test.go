package shared

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/Vlab-Corporation/claude-config-installer/internal/testutil"
)

var now = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

func queuedTask(id string, deps ...string) *domain.Task {
	return &domain.Task{
		ID:        id,
		Command:   "run " + id,
		Priority:  domain.PriorityNormal,
		Status:    domain.StatusQueued,
		CreatedAt: now,
		DependsOn: deps,
	}
}

func TestLoadExtractor_ReportsInvalidRules(t *testing.T) {
	// Setup
	loader := testutil.NewMockConfigLoader()
	loader.Config.Scope.Extensions = append(loader.Config.Scope.Extensions, "not an ext")
	logger := &testutil.MockLogger{}

	// Execute
	extractor, cfg, err := LoadExtractor(loader, logger)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, extractor)
	assert.Same(t, loader.Config, cfg)
	require.NotEmpty(t, logger.Entries)
	assert.Equal(t, "WARN", logger.Entries[0].Level)
}

func TestLoadExtractor_LoadError(t *testing.T) {
	loader := testutil.NewMockConfigLoader()
	loader.LoadErr = errors.New("boom")

	_, _, err := LoadExtractor(loader, nil)

	assert.ErrorContains(t, err, "load config")
}

func TestNewTaskID_SkipsKnownIDs(t *testing.T) {
	q := &domain.Queue{Tasks: []*domain.Task{queuedTask("task-a")}}
	ids := &testutil.MockIDGenerator{IDs: []string{"task-a", "task-b"}}

	id, err := NewTaskID(q, ids)

	require.NoError(t, err)
	assert.Equal(t, "task-b", id)
}

func TestNewTaskID_GivesUp(t *testing.T) {
	q := &domain.Queue{Tasks: []*domain.Task{queuedTask("task-a")}}
	ids := &testutil.MockIDGenerator{IDs: []string{"task-a", "task-a", "task-a", "task-a", "task-a", "task-a", "task-a", "task-a"}}

	_, err := NewTaskID(q, ids)

	assert.ErrorIs(t, err, domain.ErrDuplicateTask)
}

func TestNewTaskView(t *testing.T) {
	q := &domain.Queue{
		Tasks: []*domain.Task{queuedTask("a"), queuedTask("b", "x")},
		History: []*domain.HistoryEntry{
			{Task: *queuedTask("x"), Outcome: domain.StatusFailed, CompletedAt: now},
		},
	}

	views := NewTaskViews(q, q.Tasks)

	require.Len(t, views, 2)
	assert.True(t, views[0].Executable)
	assert.False(t, views[0].Blocked)
	assert.False(t, views[1].Executable)
	assert.True(t, views[1].Blocked)
	assert.Equal(t, []string{"x"}, views[1].BlockedBy)
}

func TestSignalNext(t *testing.T) {
	t.Run("writes next executable", func(t *testing.T) {
		q := &domain.Queue{Tasks: []*domain.Task{queuedTask("a"), queuedTask("b", "a")}}
		box := &testutil.MockMailbox{}

		c, err := SignalNext(q, box, now)

		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "a", c.TaskID)
		assert.Equal(t, 1, c.Remaining)
		assert.Equal(t, c, box.Record)
	})

	t.Run("nothing executable", func(t *testing.T) {
		q := &domain.Queue{Tasks: []*domain.Task{queuedTask("b", "missing")}}
		box := &testutil.MockMailbox{}

		c, err := SignalNext(q, box, now)

		require.NoError(t, err)
		assert.Nil(t, c)
		assert.Zero(t, box.Writes)
	})

	t.Run("write error", func(t *testing.T) {
		q := &domain.Queue{Tasks: []*domain.Task{queuedTask("a")}}
		box := &testutil.MockMailbox{WriteErr: errors.New("disk full")}

		_, err := SignalNext(q, box, now)

		assert.ErrorContains(t, err, "write continuation")
	})
}
