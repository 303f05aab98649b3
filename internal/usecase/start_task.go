package usecase

import (
	"context"
	"fmt"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// StartTaskInput contains the parameters for starting a task.
type StartTaskInput struct {
	TaskID string // Task to start
}

// StartTaskOutput contains the result of starting a task.
type StartTaskOutput struct {
	Task    *domain.Task `json:"task"`
	Started string       `json:"started"`
}

// StartTask is the use case for marking a task as running.
type StartTask struct {
	tasks  domain.QueueRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewStartTask creates a new StartTask use case.
func NewStartTask(tasks domain.QueueRepository, clock domain.Clock, logger domain.Logger) *StartTask {
	return &StartTask{
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

// Execute moves an executable queued task to running.
// Preconditions:
//   - Task is queued and all its dependencies completed
//   - No other task is running
func (uc *StartTask) Execute(_ context.Context, in StartTaskInput) (*StartTaskOutput, error) {
	var started *domain.Task
	err := uc.tasks.Update(func(q *domain.Queue) error {
		t, err := q.Start(in.TaskID, uc.clock.Now().UTC())
		if err != nil {
			return err
		}
		started = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info(started.ID, "start", fmt.Sprintf("started %q", started.Command))
	return &StartTaskOutput{Started: started.ID, Task: started}, nil
}
