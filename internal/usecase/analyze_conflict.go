package usecase

import (
	"context"
	"fmt"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// AnalyzeConflictInput contains the parameters for comparing two tasks.
type AnalyzeConflictInput struct {
	TaskA string
	TaskB string
}

// AnalyzeConflictOutput contains the conflict level of two tasks.
// Fields are ordered to minimize memory padding.
type AnalyzeConflictOutput struct {
	TaskA       string              `json:"task_a"`
	TaskB       string              `json:"task_b"`
	Kind        domain.ConflictKind `json:"kind"`
	Description string              `json:"description"`
	Items       []string            `json:"items"`
	CanParallel bool                `json:"can_parallel"`
}

// AnalyzeConflict is the use case for comparing two active tasks.
type AnalyzeConflict struct {
	tasks domain.QueueRepository
}

// NewAnalyzeConflict creates a new AnalyzeConflict use case.
func NewAnalyzeConflict(tasks domain.QueueRepository) *AnalyzeConflict {
	return &AnalyzeConflict{tasks: tasks}
}

// Execute compares the frozen scopes. A direct dependency counts as a hard conflict.
func (uc *AnalyzeConflict) Execute(_ context.Context, in AnalyzeConflictInput) (*AnalyzeConflictOutput, error) {
	q, err := uc.tasks.Load()
	if err != nil {
		return nil, err
	}
	a, b := q.Find(in.TaskA), q.Find(in.TaskB)
	if a == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTask, in.TaskA)
	}
	if b == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTask, in.TaskB)
	}

	c := domain.Overlap(a.Scope, b.Scope)
	out := &AnalyzeConflictOutput{
		TaskA: a.ID,
		TaskB: b.ID,
		Kind:  c.Kind,
		Items: c.Items(),
	}
	switch {
	case a.DependsOnID(b.ID) || b.DependsOnID(a.ID):
		out.Kind = domain.ConflictHard
		out.Description = "explicit dependency: the tasks must run in order"
	case c.Kind == domain.ConflictHard:
		out.Description = "both tasks modify the same files"
	case c.Kind == domain.ConflictSoft:
		out.Description = "both tasks touch the same module or directory; parallel execution needs care"
	default:
		out.Description = "no overlap detected"
	}
	out.CanParallel = out.Kind != domain.ConflictHard
	return out, nil
}
