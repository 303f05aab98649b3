package usecase

import (
	"context"
	"fmt"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// MoveTaskInput contains the parameters for moving a task.
type MoveTaskInput struct {
	TaskID string // Task to move
	Target string // first, last or a priority name
}

// MoveTaskOutput contains the result of moving a task.
type MoveTaskOutput struct {
	Moved       string          `json:"moved"`
	OldPriority domain.Priority `json:"old_priority"`
	NewPriority domain.Priority `json:"new_priority"`
}

// MoveTask is the use case for changing the priority of a task.
// Dependencies are left alone, so a task never runs ahead of them.
type MoveTask struct {
	tasks  domain.QueueRepository
	logger domain.Logger
}

// NewMoveTask creates a new MoveTask use case.
func NewMoveTask(tasks domain.QueueRepository, logger domain.Logger) *MoveTask {
	return &MoveTask{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute reassigns the task priority.
func (uc *MoveTask) Execute(_ context.Context, in MoveTaskInput) (*MoveTaskOutput, error) {
	out := &MoveTaskOutput{Moved: in.TaskID}
	err := uc.tasks.Update(func(q *domain.Queue) error {
		if t := q.Find(in.TaskID); t != nil {
			out.OldPriority = t.Priority
		}
		t, err := q.Move(in.TaskID, in.Target)
		if err != nil {
			return err
		}
		out.NewPriority = t.Priority
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info(in.TaskID, "move", fmt.Sprintf("priority %s -> %s", out.OldPriority, out.NewPriority))
	return out, nil
}
