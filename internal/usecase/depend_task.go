package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// DependTaskInput contains the parameters for adding dependencies.
type DependTaskInput struct {
	TaskID    string   // Queued task gaining edges
	DependsOn []string // Prerequisites
}

// DependTaskOutput contains the result of adding dependencies.
type DependTaskOutput struct {
	TaskID    string   `json:"task_id"`
	DependsOn []string `json:"depends_on"`
}

// DependTask is the use case for adding dependency edges to a queued task.
type DependTask struct {
	tasks  domain.QueueRepository
	logger domain.Logger
}

// NewDependTask creates a new DependTask use case.
func NewDependTask(tasks domain.QueueRepository, logger domain.Logger) *DependTask {
	return &DependTask{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute adds the edges, refusing unknown ids and cycles.
func (uc *DependTask) Execute(_ context.Context, in DependTaskInput) (*DependTaskOutput, error) {
	deps := uniqueIDs(in.DependsOn)
	if len(deps) == 0 {
		return nil, fmt.Errorf("%w: no dependency given", domain.ErrUnknownTask)
	}

	out := &DependTaskOutput{TaskID: in.TaskID}
	err := uc.tasks.Update(func(q *domain.Queue) error {
		t, err := q.AddDependencies(in.TaskID, deps)
		if err != nil {
			return err
		}
		out.DependsOn = t.DependsOn
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info(in.TaskID, "depend", "depends on "+strings.Join(out.DependsOn, ", "))
	return out, nil
}
