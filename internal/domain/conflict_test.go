package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectConflicts(t *testing.T) {
	active := []*Task{
		{ID: "task-a", Command: "edit config.ts", Status: StatusQueued, Scope: NewScope([]string{"config.ts"}, []string{"config"}, nil)},
		{ID: "task-b", Command: "auth 구현", Status: StatusRunning, Scope: NewScope(nil, []string{"auth"}, nil)},
		{ID: "task-c", Command: "refactor in src/", Status: StatusQueued, Scope: NewScope(nil, nil, []string{"src/"})},
		{ID: "task-d", Command: "payment 구현", Status: StatusQueued, Scope: NewScope(nil, []string{"payment"}, nil)},
		{ID: "task-e", Command: "auth 빌드", Status: StatusCompleted, Scope: NewScope(nil, []string{"auth"}, nil)},
	}

	t.Run("shared file is hard", func(t *testing.T) {
		got := DetectConflicts(NewScope([]string{"config.ts"}, nil, nil), active)
		require.Len(t, got, 1)
		assert.Equal(t, "task-a", got[0].TaskID)
		assert.Equal(t, ConflictHard, got[0].Kind)
		assert.Equal(t, []string{"config.ts"}, got[0].Files)
	})

	t.Run("shared module is soft", func(t *testing.T) {
		got := DetectConflicts(NewScope([]string{"auth.go"}, []string{"auth"}, nil), active)
		require.Len(t, got, 1)
		assert.Equal(t, "task-b", got[0].TaskID)
		assert.Equal(t, ConflictSoft, got[0].Kind)
		assert.Equal(t, []string{"auth"}, got[0].Items())
	})

	t.Run("shared directory is soft", func(t *testing.T) {
		got := DetectConflicts(NewScope(nil, nil, []string{"src/"}), active)
		require.Len(t, got, 1)
		assert.Equal(t, ConflictSoft, got[0].Kind)
		assert.Equal(t, []string{"src/"}, got[0].Directories)
	})

	t.Run("disjoint scopes do not conflict", func(t *testing.T) {
		assert.Empty(t, DetectConflicts(NewScope(nil, []string{"search"}, nil), active))
	})

	t.Run("empty scope never conflicts", func(t *testing.T) {
		assert.Empty(t, DetectConflicts(Scope{}, active))
	})

	t.Run("terminal tasks are ignored", func(t *testing.T) {
		got := DetectConflicts(NewScope(nil, []string{"auth"}, nil), active)
		assert.Equal(t, []string{"task-b"}, ConflictIDs(got))
	})
}

func TestOverlap_HardWinsOverSoft(t *testing.T) {
	a := NewScope([]string{"x.go"}, []string{"auth"}, nil)
	b := NewScope([]string{"x.go"}, []string{"auth"}, nil)

	c := Overlap(a, b)

	assert.Equal(t, ConflictHard, c.Kind)
	assert.Equal(t, []string{"x.go", "auth"}, c.Items())
}

func TestParseResolution(t *testing.T) {
	for _, r := range ResolutionOptions() {
		got, err := ParseResolution(string(r))
		assert.NoError(t, err)
		assert.Equal(t, r, got)
	}
	_, err := ParseResolution("merge")
	assert.ErrorIs(t, err, ErrInvalidResolution)
}
