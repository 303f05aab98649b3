package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   Status
		to     Status
		expect bool
	}{
		// From queued
		{"queued -> running", StatusQueued, StatusRunning, true},
		{"queued -> cancelled", StatusQueued, StatusCancelled, true},
		{"queued -> completed", StatusQueued, StatusCompleted, false},
		{"queued -> failed", StatusQueued, StatusFailed, false},

		// From running
		{"running -> completed", StatusRunning, StatusCompleted, true},
		{"running -> failed", StatusRunning, StatusFailed, true},
		{"running -> cancelled", StatusRunning, StatusCancelled, false},
		{"running -> queued", StatusRunning, StatusQueued, false},

		// Terminal
		{"completed -> running", StatusCompleted, StatusRunning, false},
		{"failed -> queued", StatusFailed, StatusQueued, false},
		{"cancelled -> queued", StatusCancelled, StatusQueued, false},

		// Unknown
		{"unknown -> running", Status("paused"), StatusRunning, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusQueued.IsTerminal())
	assert.False(t, StatusRunning.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	for _, s := range AllStatuses() {
		got, err := ParseStatus(string(s))
		assert.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStatus("done")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("")
	assert.NoError(t, err)
	assert.Equal(t, PriorityNormal, p)

	p, err = ParsePriority("critical")
	assert.NoError(t, err)
	assert.Equal(t, PriorityCritical, p)

	_, err = ParsePriority("urgent")
	assert.ErrorIs(t, err, ErrInvalidPriority)

	assert.Less(t, PriorityCritical.Rank(), PriorityHigh.Rank())
	assert.Less(t, PriorityHigh.Rank(), PriorityNormal.Rank())
	assert.Less(t, PriorityNormal.Rank(), PriorityLow.Rank())
}
