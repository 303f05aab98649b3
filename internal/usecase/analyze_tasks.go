package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/Vlab-Corporation/claude-config-installer/internal/usecase/shared"
)

// AnalyzeTasksInput contains the parameters for analyzing a batch of tasks.
// Fields are ordered to minimize memory padding.
type AnalyzeTasksInput struct {
	Descriptions []string // Positional descriptions; a single one is split on commas or lines
	File         string   // Task list file (.json, .yaml, .md or plain text)
	Resolution   string   // Resolution applied to conflicts with active tasks when enqueueing
	Priority     string   // Priority of enqueued tasks (empty = configured default)
	Enqueue      bool     // Add the analyzed tasks to the queue
}

// EnqueuedTask maps a plan item to the queued task created for it.
type EnqueuedTask struct {
	PlanID    string   `json:"plan_id"`
	TaskID    string   `json:"task_id"`
	DependsOn []string `json:"depends_on"`
}

// AnalyzeTasksOutput contains the execution plan and, with Enqueue, the queued tasks.
// Fields are ordered to minimize memory padding.
type AnalyzeTasksOutput struct {
	Plan           *domain.Plan        `json:"plan"`
	Message        string              `json:"message,omitempty"`
	Enqueued       []EnqueuedTask      `json:"enqueued,omitempty"`
	Conflicts      []domain.Conflict   `json:"active_conflicts,omitempty"`
	Options        []domain.Resolution `json:"options,omitempty"`
	Warnings       []string            `json:"warnings,omitempty"`
	ActionRequired bool                `json:"action_required"`
}

// AnalyzeTasks is the use case for planning a batch of task descriptions.
type AnalyzeTasks struct {
	tasks  domain.QueueRepository
	config domain.ConfigLoader
	reader domain.TaskListReader
	ids    domain.IDGenerator
	clock  domain.Clock
	logger domain.Logger
}

// NewAnalyzeTasks creates a new AnalyzeTasks use case.
func NewAnalyzeTasks(
	tasks domain.QueueRepository,
	config domain.ConfigLoader,
	reader domain.TaskListReader,
	ids domain.IDGenerator,
	clock domain.Clock,
	logger domain.Logger,
) *AnalyzeTasks {
	return &AnalyzeTasks{
		tasks:  tasks,
		config: config,
		reader: reader,
		ids:    ids,
		clock:  clock,
		logger: logger,
	}
}

// Execute builds the plan, and enqueues it when asked.
func (uc *AnalyzeTasks) Execute(_ context.Context, in AnalyzeTasksInput) (*AnalyzeTasksOutput, error) {
	specs, err := uc.collect(in)
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: nothing to analyze", domain.ErrNoTasks)
	}

	extractor, cfg, err := shared.LoadExtractor(uc.config, uc.logger)
	if err != nil {
		return nil, err
	}
	items := make([]domain.PlanItem, 0, len(specs))
	for i, s := range specs {
		items = append(items, domain.PlanItem{
			ID:          fmt.Sprintf("t%d", i+1),
			Description: s.Description,
			Scope:       extractor.Extract(s.Description),
			Cost:        s.Cost,
		})
	}
	plan := domain.BuildPlan(items, cfg.Rules)
	for _, w := range plan.Warnings {
		uc.logger.Warn("", "analyze", w)
	}

	out := &AnalyzeTasksOutput{Plan: plan}
	if !in.Enqueue {
		return out, nil
	}

	priority := in.Priority
	if priority == "" {
		priority = cfg.Queue.DefaultPriority
	}
	p, err := domain.ParsePriority(priority)
	if err != nil {
		return nil, err
	}
	var resolution domain.Resolution
	if in.Resolution != "" {
		if resolution, err = domain.ParseResolution(in.Resolution); err != nil {
			return nil, fmt.Errorf("%w: %q (expected parallel, depend or cancel)", err, in.Resolution)
		}
	}

	if err := uc.enqueue(plan, p, resolution, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *AnalyzeTasks) collect(in AnalyzeTasksInput) ([]domain.TaskSpec, error) {
	var specs []domain.TaskSpec
	switch len(in.Descriptions) {
	case 0:
	case 1:
		specs = uc.reader.Parse(in.Descriptions[0])
	default:
		for _, d := range in.Descriptions {
			if d = strings.TrimSpace(d); d != "" {
				specs = append(specs, domain.TaskSpec{Description: d})
			}
		}
	}
	if in.File != "" {
		fromFile, err := uc.reader.Read(in.File)
		if err != nil {
			return nil, err
		}
		specs = append(specs, fromFile...)
	}
	return specs, nil
}

// enqueue adds the plan items in group order. Each item keeps its inferred
// dependencies, and every group split off by a conflict waits for the group
// before it in the same layer.
func (uc *AnalyzeTasks) enqueue(plan *domain.Plan, priority domain.Priority, resolution domain.Resolution, out *AnalyzeTasksOutput) error {
	now := uc.clock.Now().UTC()
	err := update(uc.tasks, func(q *domain.Queue) error {
		active := map[string][]string{}
		for _, it := range plan.Items {
			conflicts := domain.DetectConflicts(it.Scope, q.Tasks)
			out.Conflicts = append(out.Conflicts, conflicts...)
			active[it.ID] = domain.ConflictIDs(conflicts)
		}
		if len(out.Conflicts) > 0 {
			switch resolution {
			case "":
				out.ActionRequired = true
				out.Options = domain.ResolutionOptions()
				out.Message = MessageConflictDetected
				return errNoChange
			case domain.ResolutionCancel:
				out.Message = MessageTaskCancelled
				return errNoChange
			case domain.ResolutionParallel:
				for _, c := range out.Conflicts {
					if c.Kind == domain.ConflictHard {
						out.Warnings = append(out.Warnings, fmt.Sprintf(
							"running in parallel with %s despite shared files: %s", c.TaskID, strings.Join(c.Files, ", ")))
					}
				}
			}
		}

		taskIDs := map[string]string{}
		for gi, grp := range plan.Groups {
			var serial []string
			if gi > 0 && plan.Groups[gi-1].Layer == grp.Layer {
				serial = plan.Groups[gi-1].Tasks
			}
			for _, planID := range grp.Tasks {
				it, _ := plan.Item(planID)
				var deps []string
				for _, d := range plan.Dependencies[planID] {
					deps = append(deps, taskIDs[d])
				}
				for _, d := range serial {
					deps = append(deps, taskIDs[d])
				}
				if resolution == domain.ResolutionDepend {
					deps = append(deps, active[planID]...)
				}

				id, err := shared.NewTaskID(q, uc.ids)
				if err != nil {
					return err
				}
				t := &domain.Task{
					ID:        id,
					Command:   it.Description,
					Priority:  priority,
					Status:    domain.StatusQueued,
					CreatedAt: now.Add(time.Duration(len(out.Enqueued)) * time.Microsecond), // keeps input order among equal priorities
					DependsOn: uniqueIDs(deps),
					Scope:     it.Scope,
				}
				if err := q.Add(t); err != nil {
					return fmt.Errorf("enqueue %s: %w", planID, err)
				}
				taskIDs[planID] = id
				out.Enqueued = append(out.Enqueued, EnqueuedTask{PlanID: planID, TaskID: id, DependsOn: t.DependsOn})
			}
		}
		out.Message = MessageTaskAdded
		return nil
	})
	if err != nil {
		return err
	}

	for _, e := range out.Enqueued {
		uc.logger.Info(e.TaskID, "analyze", fmt.Sprintf("enqueued from plan item %s", e.PlanID))
	}
	for _, w := range out.Warnings {
		uc.logger.Warn("", "analyze", w)
	}
	return nil
}
