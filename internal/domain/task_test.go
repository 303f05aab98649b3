package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_JSONRoundTrip(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 30, 15, 123456000, time.UTC)
	started := created.Add(time.Minute)
	task := &Task{
		ID:        "task-0a1b2c3d",
		Command:   "/sc:implement auth",
		Priority:  PriorityHigh,
		Status:    StatusRunning,
		DependsOn: []string{"task-00000001"},
		Scope:     NewScope([]string{"auth.go"}, []string{"auth"}, []string{"internal/"}),
		CreatedAt: created,
		StartedAt: &started,
		OnSuccess: "/sc:test auth",
		OnFail:    "/sc:troubleshoot auth",
		Note:      "from backlog",
	}

	data, err := json.Marshal(task)
	require.NoError(t, err)

	var got Task
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, task, &got)
}

func TestTask_JSONFieldNames(t *testing.T) {
	task := &Task{ID: "task-1", Command: "x", DependsOn: []string{}, Scope: NewScope(nil, nil, nil)}

	data, err := json.Marshal(task)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"id", "command", "priority", "status", "depends_on", "scope", "created_at"} {
		assert.Contains(t, raw, key)
	}
	assert.NotContains(t, raw, "on_success")
}

func TestHistoryEntry_FlattensTask(t *testing.T) {
	h := HistoryEntry{
		Task:        Task{ID: "task-1", Command: "build", Status: StatusCompleted},
		CompletedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Outcome:     StatusCompleted,
	}

	data, err := json.Marshal(h)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "task-1", raw["id"])
	assert.Equal(t, "completed", raw["outcome"])
	assert.Contains(t, raw, "completed_at")
}

func TestTask_Clone(t *testing.T) {
	orig := &Task{ID: "a", DependsOn: []string{"b"}, Scope: NewScope(nil, []string{"auth"}, nil)}
	c := orig.Clone()
	c.DependsOn[0] = "z"
	c.Scope.Modules[0] = "z"

	assert.Equal(t, "b", orig.DependsOn[0])
	assert.Equal(t, "auth", orig.Scope.Modules[0])
}
