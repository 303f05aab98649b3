package usecase

import (
	"context"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// NextTaskInput contains the parameters for picking the next task.
type NextTaskInput struct{}

// NextTaskOutput contains the result of picking the next task.
// Fields are ordered to minimize memory padding.
type NextTaskOutput struct {
	Task      *domain.Task `json:"task,omitempty"`
	Message   string       `json:"message,omitempty"`
	Remaining int          `json:"remaining"`
	HasNext   bool         `json:"has_next"`
}

// Messages returned when nothing can run.
const (
	MessageQueueEmpty   = "Queue is empty"
	MessageQueueBlocked = "No executable tasks (dependencies not met)"
)

// NextTask is the use case for picking the next executable task.
// It never mutates the queue.
type NextTask struct {
	tasks domain.QueueRepository
}

// NewNextTask creates a new NextTask use case.
func NewNextTask(tasks domain.QueueRepository) *NextTask {
	return &NextTask{tasks: tasks}
}

// Execute returns the highest-priority executable task, if any.
func (uc *NextTask) Execute(_ context.Context, _ NextTaskInput) (*NextTaskOutput, error) {
	q, err := uc.tasks.Load()
	if err != nil {
		return nil, err
	}

	queued := len(q.Queued())
	next := q.Next()
	if next == nil {
		msg := MessageQueueBlocked
		if queued == 0 {
			msg = MessageQueueEmpty
		}
		return &NextTaskOutput{Remaining: queued, Message: msg}, nil
	}
	return &NextTaskOutput{
		HasNext:   true,
		Task:      next,
		Remaining: queued - 1,
	}, nil
}
