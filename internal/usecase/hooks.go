package usecase

import (
	"context"
	"fmt"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/Vlab-Corporation/claude-config-installer/internal/usecase/shared"
)

// HookStopInput contains the parameters for the end-of-turn hook.
type HookStopInput struct{}

// HookStopOutput contains the result of the end-of-turn hook.
// Fields are ordered to minimize memory padding.
type HookStopOutput struct {
	Continuation   *domain.Continuation  `json:"continuation,omitempty"`
	Reason         string                `json:"reason,omitempty"`
	ContextMatches []domain.ContextMatch `json:"context_matches,omitempty"`
	Signalled      bool                  `json:"signalled"`
}

// Reasons for not signalling at the end of a turn.
const (
	ReasonPending      = "continuation already pending"
	ReasonRunning      = "a task is running"
	ReasonNoExecutable = "no executable task"
)

// HookStop is the end-of-turn handler. It signals the next executable task
// when nothing is pending or running.
type HookStop struct {
	tasks     domain.QueueRepository
	mailbox   domain.Mailbox
	config    domain.ConfigLoader
	workspace domain.WorkspaceInspector
	clock     domain.Clock
	logger    domain.Logger
}

// NewHookStop creates a new HookStop use case.
func NewHookStop(
	tasks domain.QueueRepository,
	mailbox domain.Mailbox,
	config domain.ConfigLoader,
	workspace domain.WorkspaceInspector,
	clock domain.Clock,
	logger domain.Logger,
) *HookStop {
	return &HookStop{
		tasks:     tasks,
		mailbox:   mailbox,
		config:    config,
		workspace: workspace,
		clock:     clock,
		logger:    logger,
	}
}

// Execute writes a continuation if one is due and reports queued tasks
// matching the files changed in the worktree.
func (uc *HookStop) Execute(_ context.Context, _ HookStopInput) (*HookStopOutput, error) {
	q, err := uc.tasks.Load()
	if err != nil {
		return nil, err
	}
	out := &HookStopOutput{ContextMatches: uc.contextMatches(q)}

	pending, err := uc.mailbox.Peek()
	if err != nil {
		return nil, err
	}
	switch {
	case pending != nil:
		out.Reason = ReasonPending
	case q.Running() != nil:
		out.Reason = ReasonRunning
	default:
		c, err := shared.SignalNext(q, uc.mailbox, uc.clock.Now())
		if err != nil {
			return nil, err
		}
		if c == nil {
			out.Reason = ReasonNoExecutable
			break
		}
		out.Signalled = true
		out.Continuation = c
		uc.logger.Info(c.TaskID, "hook", "signalled at end of turn")
	}
	return out, nil
}

// contextMatches is best effort: outside a git worktree it reports nothing.
func (uc *HookStop) contextMatches(q *domain.Queue) []domain.ContextMatch {
	if uc.workspace == nil {
		return nil
	}
	files, err := uc.workspace.ChangedFiles()
	if err != nil || len(files) == 0 {
		if err != nil {
			uc.logger.Debug("", "hook", "skip context matching: "+err.Error())
		}
		return nil
	}
	threshold := domain.DefaultMatchThreshold
	if cfg, err := uc.config.Load(); err == nil && cfg.Context.Threshold > 0 {
		threshold = cfg.Context.Threshold
	}
	return domain.MatchTasks(q.Queued(), domain.NewWorkContext(files), threshold)
}

// HookSessionStartInput contains the parameters for the session start hook.
type HookSessionStartInput struct{}

// HookSessionStartOutput summarizes the queue for a new session.
// Fields are ordered to minimize memory padding.
type HookSessionStartOutput struct {
	Pending *domain.Continuation `json:"pending,omitempty"`
	Running *domain.Task         `json:"running_task,omitempty"`
	Next    *domain.Task         `json:"next_task,omitempty"`
	Message string               `json:"message"`
	domain.Counts
}

// HookSessionStart is the session start handler. It never consumes the mailbox.
type HookSessionStart struct {
	tasks   domain.QueueRepository
	mailbox domain.Mailbox
	clock   domain.Clock
}

// NewHookSessionStart creates a new HookSessionStart use case.
func NewHookSessionStart(tasks domain.QueueRepository, mailbox domain.Mailbox, clock domain.Clock) *HookSessionStart {
	return &HookSessionStart{
		tasks:   tasks,
		mailbox: mailbox,
		clock:   clock,
	}
}

// Execute peeks the mailbox and summarizes the queue.
func (uc *HookSessionStart) Execute(_ context.Context, _ HookSessionStartInput) (*HookSessionStartOutput, error) {
	q, err := uc.tasks.Load()
	if err != nil {
		return nil, err
	}
	pending, err := uc.mailbox.Peek()
	if err != nil {
		return nil, err
	}

	counts := q.Counts(uc.clock.Now())
	out := &HookSessionStartOutput{
		Pending: pending,
		Running: q.Running(),
		Next:    q.Next(),
		Counts:  counts,
	}
	switch {
	case counts.Queued == 0 && counts.Running == 0:
		out.Message = "Queue is empty"
	default:
		out.Message = fmt.Sprintf("Queue: %d queued (%d executable, %d blocked), %d running",
			counts.Queued, counts.Executable, counts.Blocked, counts.Running)
	}
	if pending != nil {
		out.Message += fmt.Sprintf("; pending continuation for %s", pending.TaskID)
	}
	return out, nil
}

// HookPromptSubmitInput contains the parameters for the prompt submit hook.
type HookPromptSubmitInput struct{}

// HookPromptSubmitOutput carries the reminder injected into the next turn.
// Fields are ordered to minimize memory padding.
type HookPromptSubmitOutput struct {
	Continuation *domain.Continuation `json:"continuation,omitempty"`
	Reminder     string               `json:"reminder"`
	Stale        bool                 `json:"stale"`
}

// HookPromptSubmit is the prompt submit handler. It consumes the mailbox at most once.
type HookPromptSubmit struct {
	tasks   domain.QueueRepository
	mailbox domain.Mailbox
	logger  domain.Logger
}

// NewHookPromptSubmit creates a new HookPromptSubmit use case.
func NewHookPromptSubmit(tasks domain.QueueRepository, mailbox domain.Mailbox, logger domain.Logger) *HookPromptSubmit {
	return &HookPromptSubmit{
		tasks:   tasks,
		mailbox: mailbox,
		logger:  logger,
	}
}

// Execute consumes the pending record and renders it. A record whose task is
// gone or no longer executable is reported as stale with no reminder.
func (uc *HookPromptSubmit) Execute(_ context.Context, _ HookPromptSubmitInput) (*HookPromptSubmitOutput, error) {
	c, err := uc.mailbox.Consume()
	if err != nil {
		return nil, err
	}
	out := &HookPromptSubmitOutput{Continuation: c}
	if c == nil {
		return out, nil
	}

	q, err := uc.tasks.Load()
	if err != nil {
		return nil, err
	}
	if t := q.Find(c.TaskID); t == nil || !q.IsExecutable(t) {
		out.Stale = true
		uc.logger.Info(c.TaskID, "hook", "dropped stale continuation")
		return out, nil
	}
	out.Reminder = c.Reminder()
	uc.logger.Info(c.TaskID, "hook", "continuation consumed")
	return out, nil
}
