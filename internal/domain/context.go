package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

// Weights used to score a task against the work in progress.
const (
	fileWeight      = 0.5
	moduleWeight    = 0.35
	directoryWeight = 0.15
	singleBoost     = 0.8

	// DefaultMatchThreshold is the minimum score for a task to be suggested.
	DefaultMatchThreshold = 0.3
)

// WorkContext is the set of paths currently being worked on.
type WorkContext struct {
	Files       []string `json:"files"`
	Modules     []string `json:"modules"`
	Directories []string `json:"directories"`
}

// NewWorkContext derives modules and directories from changed file paths.
// A file contributes its stem and its parent directory name as modules, and
// its parent directory as a directory.
func NewWorkContext(files []string) WorkContext {
	var modules, dirs []string
	for _, f := range files {
		f = filepath.ToSlash(f)
		base := filepath.Base(f)
		modules = append(modules, strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base))))
		if parent := filepath.Dir(f); parent != "." && parent != "/" {
			modules = append(modules, strings.ToLower(filepath.Base(parent)))
			dirs = append(dirs, filepath.ToSlash(parent)+"/")
		}
	}
	return WorkContext{
		Files:       normalizeSet(files),
		Modules:     normalizeSet(modules),
		Directories: normalizeSet(dirs),
	}
}

// IsEmpty reports whether nothing is being worked on.
func (w WorkContext) IsEmpty() bool {
	return len(w.Files) == 0 && len(w.Modules) == 0 && len(w.Directories) == 0
}

// ContextMatch is a task scored against a WorkContext.
type ContextMatch struct {
	Task  *Task   `json:"task"`
	Score float64 `json:"score"`
}

// MatchScore returns how closely a scope matches the work context, in [0, 1].
func MatchScore(s Scope, w WorkContext) float64 {
	if w.IsEmpty() || s.IsEmpty() {
		return 0
	}
	f := fileOverlap(s.Files, w.Files)
	m := moduleOverlap(s.Modules, w.Modules)
	d := directoryOverlap(s.Directories, w.Directories)

	weighted := f*fileWeight + m*moduleWeight + d*directoryWeight
	boosted := max(weighted, max(f, m, d)*singleBoost)
	return min(1, boosted)
}

// MatchTasks returns the tasks scoring at least threshold, best first.
func MatchTasks(tasks []*Task, w WorkContext, threshold float64) []ContextMatch {
	var out []ContextMatch
	for _, t := range tasks {
		if score := MatchScore(t.Scope, w); score >= threshold && score > 0 {
			out = append(out, ContextMatch{Task: t, Score: score})
		}
	}
	slices.SortStableFunc(out, func(a, b ContextMatch) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	return out
}

func fileOverlap(task, ctx []string) float64 {
	if len(task) == 0 {
		return 0
	}
	if n := len(intersect(task, ctx)); n > 0 {
		return float64(n) / float64(len(task))
	}
	base := func(in []string) []string {
		out := make([]string, 0, len(in))
		for _, f := range in {
			out = append(out, filepath.Base(f))
		}
		return out
	}
	if n := len(intersect(base(task), base(ctx))); n > 0 {
		return float64(n) / float64(len(task)) * 0.8
	}
	return 0
}

func moduleOverlap(task, ctx []string) float64 {
	if len(task) == 0 {
		return 0
	}
	if n := len(intersect(task, ctx)); n > 0 {
		return float64(n) / float64(len(task))
	}
	partial := 0.0
	for _, tm := range task {
		for _, cm := range ctx {
			if strings.Contains(cm, tm) || strings.Contains(tm, cm) {
				partial += 0.5 / float64(len(task))
			}
		}
	}
	return min(1, partial)
}

func directoryOverlap(task, ctx []string) float64 {
	if len(task) == 0 {
		return 0
	}
	n := 0
	for _, td := range task {
		td = strings.TrimSuffix(td, "/") + "/"
		for _, cd := range ctx {
			if strings.HasPrefix(td, cd) || strings.HasPrefix(cd, td) {
				n++
				break
			}
		}
	}
	return float64(n) / float64(len(task))
}
