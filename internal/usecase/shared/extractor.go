// Package shared provides shared utilities for use cases.
package shared

import (
	"fmt"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// LoadExtractor loads the config and builds the scope extractor from its
// keyword tables. Invalid table entries are skipped and reported to logger.
func LoadExtractor(loader domain.ConfigLoader, logger domain.Logger) (*domain.ScopeExtractor, *domain.Config, error) {
	cfg := domain.NewDefaultConfig()
	if loader != nil {
		loaded, err := loader.Load()
		if err != nil {
			return nil, nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	extractor, warnings := domain.NewScopeExtractor(cfg.Scope)
	if logger != nil {
		for _, w := range warnings {
			logger.Warn("", "scope", w.Error())
		}
	}
	return extractor, cfg, nil
}

// NewTaskID returns an id not used by any active or historical task.
func NewTaskID(q *domain.Queue, ids domain.IDGenerator) (string, error) {
	const attempts = 8
	for range attempts {
		id := ids.NewID()
		if !q.Known(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: could not generate a free id", domain.ErrDuplicateTask)
}
