package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/Vlab-Corporation/claude-config-installer/internal/usecase/shared"
)

// AddResolvedTaskInput contains the parameters for adding a task with a
// conflict resolution chosen by the operator.
type AddResolvedTaskInput struct {
	Command    string   // Command text (required)
	Resolution string   // parallel, depend or cancel
	Priority   string   // Priority name (empty = configured default)
	OnSuccess  string   // Command to enqueue when the task succeeds
	OnFail     string   // Command to enqueue when the task fails
	Note       string   // Free text note
	DependOn   []string // Ids to depend on with "depend" (empty = every conflicting task)
	DependsOn  []string // Explicit dependencies added regardless of resolution
}

// AddResolvedTaskOutput contains the result of adding a resolved task.
// Fields are ordered to minimize memory padding.
type AddResolvedTaskOutput struct {
	Task       *domain.Task      `json:"task,omitempty"`
	Message    string            `json:"message"`
	Resolution domain.Resolution `json:"resolution_applied"`
	Conflicts  []domain.Conflict `json:"conflicts"`
	Warnings   []string          `json:"warnings,omitempty"`
}

// AddResolvedTask is the use case for adding a task after conflict resolution.
type AddResolvedTask struct {
	tasks  domain.QueueRepository
	config domain.ConfigLoader
	ids    domain.IDGenerator
	clock  domain.Clock
	logger domain.Logger
}

// NewAddResolvedTask creates a new AddResolvedTask use case.
func NewAddResolvedTask(
	tasks domain.QueueRepository,
	config domain.ConfigLoader,
	ids domain.IDGenerator,
	clock domain.Clock,
	logger domain.Logger,
) *AddResolvedTask {
	return &AddResolvedTask{
		tasks:  tasks,
		config: config,
		ids:    ids,
		clock:  clock,
		logger: logger,
	}
}

// Execute applies the resolution:
//   - parallel: add as is (a hard conflict is allowed but reported as a warning)
//   - depend: add with edges to the given ids, or to every conflicting task
//   - cancel: add nothing
func (uc *AddResolvedTask) Execute(_ context.Context, in AddResolvedTaskInput) (*AddResolvedTaskOutput, error) {
	resolution, err := domain.ParseResolution(in.Resolution)
	if err != nil {
		return nil, fmt.Errorf("%w: %q (expected parallel, depend or cancel)", err, in.Resolution)
	}

	task, err := newTask(uc.config, uc.logger, uc.clock, in.Command, in.Priority)
	if err != nil {
		return nil, err
	}
	task.OnSuccess = in.OnSuccess
	task.OnFail = in.OnFail
	task.Note = in.Note

	out := &AddResolvedTaskOutput{Resolution: resolution, Conflicts: []domain.Conflict{}}
	if resolution == domain.ResolutionCancel {
		out.Message = MessageTaskCancelled
		uc.logger.Info("", "add", fmt.Sprintf("cancelled %q", task.Command))
		return out, nil
	}

	err = update(uc.tasks, func(q *domain.Queue) error {
		conflicts := domain.DetectConflicts(task.Scope, q.Tasks)
		out.Conflicts = append(out.Conflicts, conflicts...)

		switch resolution {
		case domain.ResolutionDepend:
			deps := in.DependOn
			if len(deps) == 0 {
				deps = domain.ConflictIDs(conflicts)
			}
			task.DependsOn = uniqueIDs(in.DependsOn, deps)
		default:
			task.DependsOn = uniqueIDs(in.DependsOn)
			for _, c := range conflicts {
				if c.Kind == domain.ConflictHard {
					out.Warnings = append(out.Warnings, fmt.Sprintf(
						"running in parallel with %s despite shared files: %s", c.TaskID, strings.Join(c.Files, ", ")))
				}
			}
		}

		id, err := shared.NewTaskID(q, uc.ids)
		if err != nil {
			return err
		}
		task.ID = id
		return q.Add(task)
	})
	if err != nil {
		return nil, err
	}

	out.Task = task
	out.Message = MessageTaskAdded
	uc.logger.Info(task.ID, "add", fmt.Sprintf("added [%s] %q with %s resolution", task.Priority, task.Command, resolution))
	for _, w := range out.Warnings {
		uc.logger.Warn(task.ID, "add", w)
	}
	return out, nil
}
