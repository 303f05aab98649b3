package usecase

import (
	"context"
	"fmt"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/Vlab-Corporation/claude-config-installer/internal/usecase/shared"
)

// CompleteTaskInput contains the parameters for completing a task.
type CompleteTaskInput struct {
	TaskID  string // Running task to finish
	Error   string // Failure text, kept on the history entry when Success is false
	Success bool   // Outcome
}

// CompleteTaskOutput contains the result of completing a task.
// Fields are ordered to minimize memory padding.
type CompleteTaskOutput struct {
	ChainTask    *domain.Task         `json:"chain_task,omitempty"`
	NextTask     *domain.Task         `json:"next_task,omitempty"`
	Continuation *domain.Continuation `json:"continuation,omitempty"`
	TaskID       string               `json:"task_id"`
	Status       domain.Status        `json:"status"`
	Warnings     []string             `json:"warnings,omitempty"`
	BlockedCount int                  `json:"blocked_count"`
	AutoExecute  bool                 `json:"auto_execute"`
	QueueEmpty   bool                 `json:"queue_empty"`
}

// CompleteTask is the use case for finishing the running task.
// It archives the task, enqueues the chained command if any, and writes a
// continuation pointing at the task that should run next.
type CompleteTask struct {
	tasks   domain.QueueRepository
	mailbox domain.Mailbox
	config  domain.ConfigLoader
	ids     domain.IDGenerator
	clock   domain.Clock
	logger  domain.Logger
}

// NewCompleteTask creates a new CompleteTask use case.
func NewCompleteTask(
	tasks domain.QueueRepository,
	mailbox domain.Mailbox,
	config domain.ConfigLoader,
	ids domain.IDGenerator,
	clock domain.Clock,
	logger domain.Logger,
) *CompleteTask {
	return &CompleteTask{
		tasks:   tasks,
		mailbox: mailbox,
		config:  config,
		ids:     ids,
		clock:   clock,
		logger:  logger,
	}
}

// Execute archives the task as completed or failed.
// A chained task is dependency-free, inherits the parent priority and is
// returned as the next task ahead of priority order.
func (uc *CompleteTask) Execute(_ context.Context, in CompleteTaskInput) (*CompleteTaskOutput, error) {
	now := uc.clock.Now().UTC()
	out := &CompleteTaskOutput{TaskID: in.TaskID}
	var remaining int

	err := uc.tasks.Update(func(q *domain.Queue) error {
		var chain *domain.Task
		if t := q.Find(in.TaskID); t != nil {
			if cmd := t.ChainCommand(in.Success); cmd != "" {
				c, err := newTask(uc.config, uc.logger, uc.clock, cmd, string(t.Priority))
				if err != nil {
					return fmt.Errorf("chain task: %w", err)
				}
				chain = c
			}
		}

		h, err := q.Complete(in.TaskID, in.Success, in.Error, now)
		if err != nil {
			return err
		}
		out.Status = h.Outcome

		if chain != nil {
			id, err := shared.NewTaskID(q, uc.ids)
			if err != nil {
				return err
			}
			chain.ID = id
			if err := q.Add(chain); err != nil {
				return err
			}
			out.ChainTask = chain
			out.NextTask = chain
		} else {
			out.NextTask = q.Next()
		}

		out.BlockedCount = len(q.Blocked())
		out.QueueEmpty = len(q.Queued()) == 0
		remaining = len(q.Queued()) - 1
		return nil
	})
	if err != nil {
		return nil, err
	}

	if in.Success {
		uc.logger.Info(in.TaskID, "complete", "completed")
	} else {
		uc.logger.Warn(in.TaskID, "complete", "failed: "+in.Error)
	}
	if out.ChainTask != nil {
		uc.logger.Info(out.ChainTask.ID, "chain", fmt.Sprintf("chained from %s: %q", in.TaskID, out.ChainTask.Command))
	}

	if out.NextTask == nil {
		return out, nil
	}
	out.AutoExecute = true
	c := domain.NewContinuation(out.NextTask, remaining, now)
	if err := uc.mailbox.Write(c); err != nil {
		// The queue is already committed; report instead of failing
		msg := fmt.Sprintf("write continuation: %v", err)
		uc.logger.Error(in.TaskID, "continuation", msg)
		out.Warnings = append(out.Warnings, msg)
		return out, nil
	}
	out.Continuation = &c
	uc.logger.Debug(out.NextTask.ID, "continuation", "signalled")
	return out, nil
}
