package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// CancelTaskInput contains the parameters for cancelling tasks.
type CancelTaskInput struct {
	TaskID string // Task to cancel (ignored when All is set)
	All    bool   // Cancel every queued task
}

// CancelTaskOutput contains the result of cancelling tasks.
// Fields are ordered to minimize memory padding.
type CancelTaskOutput struct {
	Cancelled []string `json:"cancelled"`
	Blocked   []string `json:"blocked_dependents,omitempty"`
	Remaining int      `json:"remaining"`
}

// CancelTask is the use case for cancelling queued tasks.
// Dependents of a cancelled task stay in the queue and are reported as blocked.
type CancelTask struct {
	tasks  domain.QueueRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewCancelTask creates a new CancelTask use case.
func NewCancelTask(tasks domain.QueueRepository, clock domain.Clock, logger domain.Logger) *CancelTask {
	return &CancelTask{
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

// Execute cancels one queued task, or every queued task.
func (uc *CancelTask) Execute(_ context.Context, in CancelTaskInput) (*CancelTaskOutput, error) {
	if !in.All && in.TaskID == "" {
		return nil, fmt.Errorf("%w: no task id given", domain.ErrUnknownTask)
	}

	now := uc.clock.Now().UTC()
	out := &CancelTaskOutput{Cancelled: []string{}}
	err := update(uc.tasks, func(q *domain.Queue) error {
		if in.All {
			entries := q.CancelAll(now)
			out.Remaining = len(q.Queued())
			if len(entries) == 0 {
				return errNoChange
			}
			for _, h := range entries {
				out.Cancelled = append(out.Cancelled, h.ID)
			}
			return nil
		}
		h, dependents, err := q.Cancel(in.TaskID, now)
		if err != nil {
			return err
		}
		out.Cancelled = append(out.Cancelled, h.ID)
		out.Blocked = dependents
		out.Remaining = len(q.Queued())
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrCancelRunning) {
			uc.logger.Warn(in.TaskID, "cancel", "refused: task is running")
		}
		return nil, err
	}

	if in.All {
		if len(out.Cancelled) > 0 {
			uc.logger.Info("", "cancel", fmt.Sprintf("cancelled %d task(s): %s", len(out.Cancelled), strings.Join(out.Cancelled, ", ")))
		}
		return out, nil
	}
	uc.logger.Info(in.TaskID, "cancel", "cancelled")
	if len(out.Blocked) > 0 {
		uc.logger.Warn(in.TaskID, "cancel", "dependents now blocked: "+strings.Join(out.Blocked, ", "))
	}
	return out, nil
}
