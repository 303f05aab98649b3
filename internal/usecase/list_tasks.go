package usecase

import (
	"context"
	"slices"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/Vlab-Corporation/claude-config-installer/internal/usecase/shared"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Status string // Filter by status (empty = active tasks)
}

// ListTasksOutput contains the result of listing tasks.
// Fields are ordered to minimize memory padding.
type ListTasksOutput struct {
	Tasks          []shared.TaskView      `json:"tasks"`
	History        []*domain.HistoryEntry `json:"history,omitempty"`
	ExecutionOrder []string               `json:"execution_order"`
	Total          int                    `json:"total"`
	Queued         int                    `json:"queued"`
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	tasks domain.QueueRepository
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks domain.QueueRepository) *ListTasks {
	return &ListTasks{tasks: tasks}
}

// Execute lists the active tasks in execution order, or the history entries
// when a terminal status is requested.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	var filter domain.Status
	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter = st
	}

	q, err := uc.tasks.Load()
	if err != nil {
		return nil, err
	}

	out := &ListTasksOutput{
		Tasks:          []shared.TaskView{},
		ExecutionOrder: []string{},
		Queued:         len(q.Queued()),
	}

	if filter.IsTerminal() {
		out.History = []*domain.HistoryEntry{}
		for _, h := range slices.Backward(q.History) {
			if h.Outcome == filter {
				out.History = append(out.History, h)
			}
		}
		out.Total = len(out.History)
		return out, nil
	}

	for _, t := range q.Ordered() {
		if t.Status == domain.StatusQueued {
			out.ExecutionOrder = append(out.ExecutionOrder, t.ID)
		}
	}

	// Running task first, then queued tasks in execution order
	var tasks []*domain.Task
	if r := q.Running(); r != nil && (filter == "" || filter == domain.StatusRunning) {
		tasks = append(tasks, r)
	}
	if filter == "" || filter == domain.StatusQueued {
		for _, id := range out.ExecutionOrder {
			tasks = append(tasks, q.Find(id))
		}
	}
	out.Tasks = shared.NewTaskViews(q, tasks)
	out.Total = len(out.Tasks)
	return out, nil
}
