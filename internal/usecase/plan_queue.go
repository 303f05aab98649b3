package usecase

import (
	"context"
	"fmt"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// PlanQueueInput contains the parameters for planning the queue.
type PlanQueueInput struct {
	Group int // 1-based group to show (0 = whole plan)
}

// PlanQueueOutput contains the execution plan of the queued tasks.
// Fields are ordered to minimize memory padding.
type PlanQueueOutput struct {
	Plan  *domain.Plan      `json:"plan,omitempty"`
	Group *domain.PlanGroup `json:"group,omitempty"`
	Tasks []*domain.Task    `json:"tasks,omitempty"`
}

// PlanQueue is the use case for grouping the queued tasks into stages.
// It uses the frozen scopes and explicit dependencies only.
type PlanQueue struct {
	tasks domain.QueueRepository
}

// NewPlanQueue creates a new PlanQueue use case.
func NewPlanQueue(tasks domain.QueueRepository) *PlanQueue {
	return &PlanQueue{tasks: tasks}
}

// Execute plans the queued, non-blocked tasks.
func (uc *PlanQueue) Execute(_ context.Context, in PlanQueueInput) (*PlanQueueOutput, error) {
	if in.Group < 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidGroup, in.Group)
	}

	q, err := uc.tasks.Load()
	if err != nil {
		return nil, err
	}

	var items []domain.PlanItem
	for _, t := range q.Ordered() {
		if t.Status != domain.StatusQueued || q.IsBlocked(t) {
			continue
		}
		items = append(items, domain.PlanItem{
			ID:          t.ID,
			Description: t.Command,
			DependsOn:   t.DependsOn,
			Scope:       t.Scope,
		})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no plannable tasks in the queue", domain.ErrNoTasks)
	}

	plan := domain.BuildPlan(items, nil)
	if in.Group == 0 {
		return &PlanQueueOutput{Plan: plan}, nil
	}
	if in.Group > len(plan.Groups) {
		return nil, fmt.Errorf("%w: %d (plan has %d groups)", domain.ErrInvalidGroup, in.Group, len(plan.Groups))
	}
	grp := plan.Groups[in.Group-1]
	out := &PlanQueueOutput{Group: &grp}
	for _, id := range grp.Tasks {
		out.Tasks = append(out.Tasks, q.Find(id))
	}
	return out, nil
}
