package usecase

import (
	"context"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// MatchContextInput contains the parameters for context matching.
type MatchContextInput struct {
	Threshold float64 // Minimum score (0 = configured threshold)
}

// MatchContextOutput contains the queued tasks related to the work in progress.
// Fields are ordered to minimize memory padding.
type MatchContextOutput struct {
	Context   domain.WorkContext    `json:"context"`
	Matches   []domain.ContextMatch `json:"matches"`
	Threshold float64               `json:"threshold"`
}

// MatchContext is the use case for scoring queued tasks against changed files.
type MatchContext struct {
	tasks     domain.QueueRepository
	config    domain.ConfigLoader
	workspace domain.WorkspaceInspector
}

// NewMatchContext creates a new MatchContext use case.
func NewMatchContext(tasks domain.QueueRepository, config domain.ConfigLoader, workspace domain.WorkspaceInspector) *MatchContext {
	return &MatchContext{
		tasks:     tasks,
		config:    config,
		workspace: workspace,
	}
}

// Execute reads the changed files and scores every queued task.
func (uc *MatchContext) Execute(_ context.Context, in MatchContextInput) (*MatchContextOutput, error) {
	threshold := in.Threshold
	if threshold <= 0 {
		cfg, err := uc.config.Load()
		if err != nil {
			return nil, err
		}
		threshold = cfg.Context.Threshold
	}
	if threshold <= 0 {
		threshold = domain.DefaultMatchThreshold
	}

	files, err := uc.workspace.ChangedFiles()
	if err != nil {
		return nil, err
	}
	q, err := uc.tasks.Load()
	if err != nil {
		return nil, err
	}

	wc := domain.NewWorkContext(files)
	matches := domain.MatchTasks(q.Queued(), wc, threshold)
	if matches == nil {
		matches = []domain.ContextMatch{}
	}
	return &MatchContextOutput{
		Context:   wc,
		Matches:   matches,
		Threshold: threshold,
	}, nil
}
