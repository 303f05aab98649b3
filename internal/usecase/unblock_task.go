package usecase

import (
	"context"
	"strings"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// UnblockTaskInput contains the parameters for removing dependencies.
type UnblockTaskInput struct {
	TaskID string   // Queued task losing edges
	Deps   []string // Edges to remove (empty = every failed, cancelled or missing one)
}

// UnblockTaskOutput contains the result of removing dependencies.
// Fields are ordered to minimize memory padding.
type UnblockTaskOutput struct {
	TaskID     string   `json:"task_id"`
	Removed    []string `json:"removed"`
	DependsOn  []string `json:"depends_on"`
	Executable bool     `json:"executable"`
}

// UnblockTask is the use case for overriding dependencies of a blocked task.
type UnblockTask struct {
	tasks  domain.QueueRepository
	logger domain.Logger
}

// NewUnblockTask creates a new UnblockTask use case.
func NewUnblockTask(tasks domain.QueueRepository, logger domain.Logger) *UnblockTask {
	return &UnblockTask{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute removes the edges.
func (uc *UnblockTask) Execute(_ context.Context, in UnblockTaskInput) (*UnblockTaskOutput, error) {
	out := &UnblockTaskOutput{TaskID: in.TaskID, Removed: []string{}}
	err := update(uc.tasks, func(q *domain.Queue) error {
		removed, err := q.RemoveDependencies(in.TaskID, uniqueIDs(in.Deps))
		if err != nil {
			return err
		}
		t := q.Find(in.TaskID)
		out.DependsOn = t.DependsOn
		out.Executable = q.IsExecutable(t)
		if len(removed) == 0 {
			return errNoChange
		}
		out.Removed = removed
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(out.Removed) > 0 {
		uc.logger.Info(in.TaskID, "unblock", "removed dependencies: "+strings.Join(out.Removed, ", "))
	}
	return out, nil
}
