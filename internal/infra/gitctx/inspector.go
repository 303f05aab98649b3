// Package gitctx reads the working copy state of a git repository.
package gitctx

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// Ensure Inspector implements domain.WorkspaceInspector.
var _ domain.WorkspaceInspector = (*Inspector)(nil)

// Inspector reports changed files of the repository containing dir.
// The repository is opened on each call so a queue used outside a
// repository only fails the operations that need one.
type Inspector struct {
	dir string
}

// New creates an Inspector for the repository containing dir.
func New(dir string) *Inspector {
	return &Inspector{dir: dir}
}

// ChangedFiles returns the repository-relative paths of modified, staged
// and untracked files, sorted.
func (i *Inspector) ChangedFiles() ([]string, error) {
	repo, err := git.PlainOpenWithOptions(i.dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, domain.ErrNotGitRepository
		}
		return nil, fmt.Errorf("open git repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return nil, domain.ErrNotGitRepository
		}
		return nil, fmt.Errorf("open worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("worktree status: %w", err)
	}

	files := make([]string, 0, len(status))
	for path, st := range status {
		if st.Staging == git.Unmodified && st.Worktree == git.Unmodified {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}
