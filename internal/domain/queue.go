package domain

import (
	"fmt"
	"slices"
	"time"
)

// Queue is the persisted queue state: active tasks and the append-only history.
// Every operation validates before it mutates, so a failed call leaves the queue unchanged.
type Queue struct {
	Tasks   []*Task
	History []*HistoryEntry
}

// Counts summarizes the queue.
type Counts struct {
	Queued         int `json:"queued"`
	Running        int `json:"running"`
	Executable     int `json:"executable"`
	Blocked        int `json:"blocked"`
	CompletedToday int `json:"completed_today"`
	FailedToday    int `json:"failed_today"`
	CancelledToday int `json:"cancelled_today"`
	HistoryTotal   int `json:"history_total"`
}

// Find returns the active task with the given id, or nil.
func (q *Queue) Find(id string) *Task {
	for _, t := range q.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// FindHistory returns the latest history entry for id, or nil.
func (q *Queue) FindHistory(id string) *HistoryEntry {
	for i := len(q.History) - 1; i >= 0; i-- {
		if q.History[i].ID == id {
			return q.History[i]
		}
	}
	return nil
}

// Known reports whether id is an active or historical task.
func (q *Queue) Known(id string) bool {
	return q.Find(id) != nil || q.FindHistory(id) != nil
}

// Running returns the running task, or nil.
func (q *Queue) Running() *Task {
	for _, t := range q.Tasks {
		if t.Status == StatusRunning {
			return t
		}
	}
	return nil
}

// Queued returns the queued tasks in stored order.
func (q *Queue) Queued() []*Task {
	var out []*Task
	for _, t := range q.Tasks {
		if t.Status == StatusQueued {
			out = append(out, t)
		}
	}
	return out
}

// Graph builds the dependency graph of the active tasks.
func (q *Queue) Graph() *Graph {
	g := NewGraph()
	for _, t := range q.Tasks {
		g.AddNode(t.ID, t.DependsOn)
	}
	return g
}

// Add inserts a new queued task.
// Unknown dependencies and dependencies that would close a cycle reject the whole add.
func (q *Queue) Add(t *Task) error {
	if t.Command == "" {
		return ErrEmptyCommand
	}
	if q.Known(t.ID) {
		return fmt.Errorf("%w: %s", ErrDuplicateTask, t.ID)
	}
	if err := q.checkDeps(t.ID, t.DependsOn); err != nil {
		return err
	}
	if t.Priority == "" {
		t.Priority = PriorityNormal
	}
	t.Status = StatusQueued
	q.Tasks = append(q.Tasks, t)
	return nil
}

func (q *Queue) checkDeps(id string, deps []string) error {
	for _, d := range deps {
		if !q.Known(d) {
			return fmt.Errorf("%w: dependency %s", ErrUnknownTask, d)
		}
	}
	if q.Graph().WouldCycle(id, deps) {
		return fmt.Errorf("%w: %s -> %v", ErrCycle, id, deps)
	}
	return nil
}

// statusOf returns the status of an active or historical task.
func (q *Queue) statusOf(id string) (Status, bool) {
	if t := q.Find(id); t != nil {
		return t.Status, true
	}
	if h := q.FindHistory(id); h != nil {
		return h.Outcome, true
	}
	return "", false
}

// IsExecutable reports whether t is queued and every dependency has completed.
func (q *Queue) IsExecutable(t *Task) bool {
	if t.Status != StatusQueued {
		return false
	}
	for _, d := range t.DependsOn {
		if st, ok := q.statusOf(d); !ok || st != StatusCompleted {
			return false
		}
	}
	return true
}

// Executable returns the executable tasks in stored order.
func (q *Queue) Executable() []*Task {
	var out []*Task
	for _, t := range q.Tasks {
		if q.IsExecutable(t) {
			out = append(out, t)
		}
	}
	return out
}

// BlockedBy returns the ids of failed, cancelled or missing tasks that t
// transitively depends on. A non-empty result means t can never run until
// the offending edges are removed.
func (q *Queue) BlockedBy(t *Task) []string {
	seen := make(map[string]bool)
	var out []string
	var walk func(deps []string)
	walk = func(deps []string) {
		for _, d := range deps {
			if seen[d] {
				continue
			}
			seen[d] = true
			st, ok := q.statusOf(d)
			switch {
			case !ok, st == StatusFailed, st == StatusCancelled:
				out = append(out, d)
			case st == StatusQueued:
				walk(q.Find(d).DependsOn)
			}
		}
	}
	walk(t.DependsOn)
	slices.Sort(out)
	return out
}

// IsBlocked reports whether a queued task can never become executable as things stand.
func (q *Queue) IsBlocked(t *Task) bool {
	return t.Status == StatusQueued && len(q.BlockedBy(t)) > 0
}

// Blocked returns the blocked tasks in stored order.
func (q *Queue) Blocked() []*Task {
	var out []*Task
	for _, t := range q.Tasks {
		if q.IsBlocked(t) {
			out = append(out, t)
		}
	}
	return out
}

// runsBefore orders tasks by priority, then creation time, then id.
func runsBefore(a, b *Task) bool {
	if a.Priority.Rank() != b.Priority.Rank() {
		return a.Priority.Rank() < b.Priority.Rank()
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// Next returns the executable task to run next, or nil when nothing is executable.
func (q *Queue) Next() *Task {
	var best *Task
	for _, t := range q.Executable() {
		if best == nil || runsBefore(t, best) {
			best = t
		}
	}
	return best
}

// Ordered returns the active tasks in execution order: dependencies first,
// then priority and creation time.
func (q *Queue) Ordered() []*Task {
	byID := make(map[string]*Task, len(q.Tasks))
	for _, t := range q.Tasks {
		byID[t.ID] = t
	}
	ids := q.Graph().TopoOrder(func(a, b string) bool {
		return runsBefore(byID[a], byID[b])
	})
	out := make([]*Task, 0, len(ids))
	for _, id := range ids {
		out = append(out, byID[id])
	}
	return out
}

// lookup returns the active task or the error explaining why it cannot be acted on.
func (q *Queue) lookup(id string) (*Task, error) {
	if t := q.Find(id); t != nil {
		return t, nil
	}
	if h := q.FindHistory(id); h != nil {
		return nil, fmt.Errorf("%w: task %s is already %s", ErrInvalidTransition, id, h.Outcome)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTask, id)
}

// Start marks an executable task as running.
func (q *Queue) Start(id string, now time.Time) (*Task, error) {
	t, err := q.lookup(id)
	if err != nil {
		return nil, err
	}
	if !t.Status.CanTransitionTo(StatusRunning) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.Status, StatusRunning)
	}
	if r := q.Running(); r != nil {
		return nil, fmt.Errorf("%w: %s", ErrTaskRunning, r.ID)
	}
	if !q.IsExecutable(t) {
		return nil, fmt.Errorf("%w: %s", ErrNotExecutable, id)
	}
	t.Status = StatusRunning
	started := now
	t.StartedAt = &started
	return t, nil
}

// Complete finishes the running task and archives it.
func (q *Queue) Complete(id string, success bool, result string, now time.Time) (*HistoryEntry, error) {
	t, err := q.lookup(id)
	if err != nil {
		return nil, err
	}
	target := StatusCompleted
	if !success {
		target = StatusFailed
	}
	if !t.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.Status, target)
	}
	t.Status = target
	if !success {
		t.Result = result
	}
	return q.archive(t, now), nil
}

// Cancel archives a queued task as cancelled and reports the active tasks
// that now depend on a cancelled task. Dependents are never removed.
func (q *Queue) Cancel(id string, now time.Time) (*HistoryEntry, []string, error) {
	t, err := q.lookup(id)
	if err != nil {
		return nil, nil, err
	}
	if t.Status == StatusRunning {
		return nil, nil, fmt.Errorf("%w: %s", ErrCancelRunning, id)
	}
	if !t.Status.CanTransitionTo(StatusCancelled) {
		return nil, nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.Status, StatusCancelled)
	}
	dependents := q.Graph().Dependents(id)
	t.Status = StatusCancelled
	return q.archive(t, now), dependents, nil
}

// CancelAll cancels every queued task. The running task is left alone.
func (q *Queue) CancelAll(now time.Time) []*HistoryEntry {
	var out []*HistoryEntry
	for _, t := range q.Queued() {
		t.Status = StatusCancelled
		out = append(out, q.archive(t, now))
	}
	return out
}

// Move reassigns the priority of an active task.
// Target is "first" (critical), "last" (low) or an explicit priority.
func (q *Queue) Move(id, target string) (*Task, error) {
	var p Priority
	switch target {
	case "first":
		p = PriorityCritical
	case "last":
		p = PriorityLow
	default:
		p = Priority(target)
		if !p.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMoveTarget, target)
		}
	}
	t, err := q.lookup(id)
	if err != nil {
		return nil, err
	}
	t.Priority = p
	return t, nil
}

// AddDependencies adds edges from a queued task to deps.
func (q *Queue) AddDependencies(id string, deps []string) (*Task, error) {
	t, err := q.lookup(id)
	if err != nil {
		return nil, err
	}
	if t.Status != StatusQueued {
		return nil, fmt.Errorf("%w: task %s is %s", ErrInvalidTransition, id, t.Status)
	}
	var added []string
	for _, d := range deps {
		if !t.DependsOnID(d) && !slices.Contains(added, d) {
			added = append(added, d)
		}
	}
	if err := q.checkDeps(id, added); err != nil {
		return nil, err
	}
	t.DependsOn = append(t.DependsOn, added...)
	return t, nil
}

// RemoveDependencies drops edges from a queued task. With no deps given it
// drops the direct edges that block the task. It returns the removed ids.
func (q *Queue) RemoveDependencies(id string, deps []string) ([]string, error) {
	t, err := q.lookup(id)
	if err != nil {
		return nil, err
	}
	if t.Status != StatusQueued {
		return nil, fmt.Errorf("%w: task %s is %s", ErrInvalidTransition, id, t.Status)
	}
	if len(deps) == 0 {
		for _, d := range t.DependsOn {
			if st, ok := q.statusOf(d); !ok || st == StatusFailed || st == StatusCancelled {
				deps = append(deps, d)
			}
		}
	}
	for _, d := range deps {
		if !t.DependsOnID(d) {
			return nil, fmt.Errorf("%w: %s does not depend on %s", ErrUnknownTask, id, d)
		}
	}
	t.DependsOn = slices.DeleteFunc(t.DependsOn, func(d string) bool {
		return slices.Contains(deps, d)
	})
	return deps, nil
}

// Counts summarizes the queue relative to now.
func (q *Queue) Counts(now time.Time) Counts {
	var c Counts
	for _, t := range q.Tasks {
		switch {
		case t.Status == StatusRunning:
			c.Running++
		case t.Status == StatusQueued:
			c.Queued++
			if q.IsExecutable(t) {
				c.Executable++
			} else if q.IsBlocked(t) {
				c.Blocked++
			}
		}
	}
	for _, h := range q.History {
		if !h.FinishedToday(now) {
			continue
		}
		switch h.Outcome {
		case StatusCompleted:
			c.CompletedToday++
		case StatusFailed:
			c.FailedToday++
		case StatusCancelled:
			c.CancelledToday++
		}
	}
	c.HistoryTotal = len(q.History)
	return c
}

func (q *Queue) archive(t *Task, now time.Time) *HistoryEntry {
	q.Tasks = slices.DeleteFunc(q.Tasks, func(x *Task) bool { return x.ID == t.ID })
	h := &HistoryEntry{Task: *t, CompletedAt: now, Outcome: t.Status}
	q.History = append(q.History, h)
	return h
}
