// Package domain contains the core business logic and entities.
package domain

import (
	"slices"
	"time"
)

// Task represents a queued command.
// Fields are ordered to minimize memory padding.
type Task struct {
	CreatedAt time.Time  `json:"created_at"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	ID        string     `json:"id"`
	Command   string     `json:"command"`
	Priority  Priority   `json:"priority"`
	Status    Status     `json:"status"`
	OnSuccess string     `json:"on_success,omitempty"`
	OnFail    string     `json:"on_fail,omitempty"`
	Result    string     `json:"result,omitempty"`
	Note      string     `json:"note,omitempty"`
	DependsOn []string   `json:"depends_on"`
	Scope     Scope      `json:"scope"`
}

// HistoryEntry is a terminal task snapshot with completion metadata.
type HistoryEntry struct {
	CompletedAt time.Time `json:"completed_at"`
	Outcome     Status    `json:"outcome"`
	Task
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.DependsOn = slices.Clone(t.DependsOn)
	c.Scope = Scope{
		Files:       slices.Clone(t.Scope.Files),
		Modules:     slices.Clone(t.Scope.Modules),
		Directories: slices.Clone(t.Scope.Directories),
	}
	if t.StartedAt != nil {
		s := *t.StartedAt
		c.StartedAt = &s
	}
	return &c
}

// DependsOnID reports whether id is a direct dependency.
func (t *Task) DependsOnID(id string) bool {
	return slices.Contains(t.DependsOn, id)
}

// ChainCommand returns the command to synthesize after the task finishes.
func (t *Task) ChainCommand(success bool) string {
	if success {
		return t.OnSuccess
	}
	return t.OnFail
}

// FinishedToday reports whether the entry completed on the same calendar day as now.
func (h *HistoryEntry) FinishedToday(now time.Time) bool {
	y1, m1, d1 := h.CompletedAt.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
