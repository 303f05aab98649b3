package usecase

import (
	"time"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/Vlab-Corporation/claude-config-installer/internal/testutil"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestClock() *testutil.MockClock {
	return &testutil.MockClock{NowTime: testNow}
}

// queuedTask builds a queued task created offset minutes after testNow.
func queuedTask(id string, p domain.Priority, offset int, deps ...string) *domain.Task {
	return &domain.Task{
		ID:        id,
		Command:   "run " + id,
		Priority:  p,
		Status:    domain.StatusQueued,
		CreatedAt: testNow.Add(time.Duration(offset) * time.Minute),
		DependsOn: deps,
	}
}

func withScope(t *domain.Task, files, modules, dirs []string) *domain.Task {
	t.Scope = domain.NewScope(files, modules, dirs)
	return t
}

func runningTask(id string) *domain.Task {
	t := queuedTask(id, domain.PriorityNormal, 0)
	t.Status = domain.StatusRunning
	started := testNow
	t.StartedAt = &started
	return t
}

func historyEntry(id string, outcome domain.Status, at time.Time) *domain.HistoryEntry {
	t := queuedTask(id, domain.PriorityNormal, 0)
	t.Status = outcome
	return &domain.HistoryEntry{Task: *t, CompletedAt: at, Outcome: outcome}
}
