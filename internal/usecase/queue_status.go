package usecase

import (
	"context"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// QueueStatusInput contains the parameters for the queue summary.
type QueueStatusInput struct{}

// QueueStatusOutput contains the queue summary.
// Fields are ordered to minimize memory padding.
type QueueStatusOutput struct {
	Running *domain.Task `json:"running_task,omitempty"`
	Next    *domain.Task `json:"next_task,omitempty"`
	domain.Counts
}

// QueueStatus is the use case for summarizing the queue.
type QueueStatus struct {
	tasks domain.QueueRepository
	clock domain.Clock
}

// NewQueueStatus creates a new QueueStatus use case.
func NewQueueStatus(tasks domain.QueueRepository, clock domain.Clock) *QueueStatus {
	return &QueueStatus{
		tasks: tasks,
		clock: clock,
	}
}

// Execute counts tasks by state. "Today" is the calendar day of the clock's location.
func (uc *QueueStatus) Execute(_ context.Context, _ QueueStatusInput) (*QueueStatusOutput, error) {
	q, err := uc.tasks.Load()
	if err != nil {
		return nil, err
	}
	return &QueueStatusOutput{
		Counts:  q.Counts(uc.clock.Now()),
		Running: q.Running(),
		Next:    q.Next(),
	}, nil
}
