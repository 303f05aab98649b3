// Package usecase contains application use cases.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/Vlab-Corporation/claude-config-installer/internal/usecase/shared"
)

// Result messages.
const (
	MessageTaskAdded        = "TASK_ADDED"
	MessageConflictDetected = "CONFLICT_DETECTED"
	MessageTaskCancelled    = "TASK_CANCELLED"
)

// errNoChange aborts a store update that turned out to need no write.
var errNoChange = errors.New("no change")

// update runs fn through the repository, treating errNoChange as success.
func update(repo domain.QueueRepository, fn func(*domain.Queue) error) error {
	if err := repo.Update(fn); err != nil && !errors.Is(err, errNoChange) {
		return err
	}
	return nil
}

// AddTaskInput contains the parameters for adding a task.
type AddTaskInput struct {
	Command   string   // Command text (required)
	Priority  string   // Priority name (empty = configured default)
	OnSuccess string   // Command to enqueue when the task succeeds
	OnFail    string   // Command to enqueue when the task fails
	Note      string   // Free text note
	DependsOn []string // Explicit dependencies
}

// AddTaskOutput contains the result of adding a task.
// Fields are ordered to minimize memory padding.
type AddTaskOutput struct {
	Task           *domain.Task        `json:"task"`
	Message        string              `json:"message"`
	Scope          domain.Scope        `json:"scope_analysis"`
	Conflicts      []domain.Conflict   `json:"conflicts"`
	Options        []domain.Resolution `json:"options,omitempty"`
	Position       int                 `json:"position,omitempty"`
	ActionRequired bool                `json:"action_required"`
}

// AddTask is the use case for adding a task after checking it for conflicts.
// A conflicting task is not added; the operator resolves it with AddResolvedTask.
type AddTask struct {
	tasks  domain.QueueRepository
	config domain.ConfigLoader
	ids    domain.IDGenerator
	clock  domain.Clock
	logger domain.Logger
}

// NewAddTask creates a new AddTask use case.
func NewAddTask(
	tasks domain.QueueRepository,
	config domain.ConfigLoader,
	ids domain.IDGenerator,
	clock domain.Clock,
	logger domain.Logger,
) *AddTask {
	return &AddTask{
		tasks:  tasks,
		config: config,
		ids:    ids,
		clock:  clock,
		logger: logger,
	}
}

// Execute extracts the scope, detects conflicts and adds the task when there are none.
func (uc *AddTask) Execute(_ context.Context, in AddTaskInput) (*AddTaskOutput, error) {
	task, err := newTask(uc.config, uc.logger, uc.clock, in.Command, in.Priority)
	if err != nil {
		return nil, err
	}
	task.DependsOn = uniqueIDs(in.DependsOn)
	task.OnSuccess = in.OnSuccess
	task.OnFail = in.OnFail
	task.Note = in.Note

	out := &AddTaskOutput{Scope: task.Scope, Conflicts: []domain.Conflict{}}
	err = update(uc.tasks, func(q *domain.Queue) error {
		conflicts := domain.DetectConflicts(task.Scope, q.Tasks)
		if len(conflicts) > 0 {
			out.Task = task
			out.Conflicts = conflicts
			out.ActionRequired = true
			out.Options = domain.ResolutionOptions()
			out.Message = MessageConflictDetected
			return errNoChange
		}

		id, err := shared.NewTaskID(q, uc.ids)
		if err != nil {
			return err
		}
		task.ID = id
		if err := q.Add(task); err != nil {
			return err
		}
		out.Task = task
		out.Message = MessageTaskAdded
		out.Position = len(q.Queued())
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.Message == MessageTaskAdded {
		uc.logger.Info(task.ID, "add", fmt.Sprintf("added [%s] %q", task.Priority, task.Command))
	} else {
		uc.logger.Info("", "add", fmt.Sprintf("conflict for %q with %v", task.Command, domain.ConflictIDs(out.Conflicts)))
	}
	return out, nil
}

// uniqueIDs returns ids without duplicates or blanks, keeping first occurrences.
func uniqueIDs(ids ...[]string) []string {
	out := []string{}
	for _, list := range ids {
		for _, id := range list {
			if id != "" && !slices.Contains(out, id) {
				out = append(out, id)
			}
		}
	}
	return out
}

// newTask builds an unsaved task with its scope frozen at creation.
func newTask(loader domain.ConfigLoader, logger domain.Logger, clock domain.Clock, command, priority string) (*domain.Task, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, domain.ErrEmptyCommand
	}
	extractor, cfg, err := shared.LoadExtractor(loader, logger)
	if err != nil {
		return nil, err
	}
	if priority == "" {
		priority = cfg.Queue.DefaultPriority
	}
	p, err := domain.ParsePriority(priority)
	if err != nil {
		return nil, err
	}
	return &domain.Task{
		Command:   command,
		Priority:  p,
		Status:    domain.StatusQueued,
		CreatedAt: clock.Now().UTC(),
		DependsOn: []string{},
		Scope:     extractor.Extract(command),
	}, nil
}
