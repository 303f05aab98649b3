package domain

import "slices"

// ConflictKind classifies the overlap between two scopes.
type ConflictKind string

const (
	ConflictNone ConflictKind = "none"
	ConflictSoft ConflictKind = "soft" // shared module or directory
	ConflictHard ConflictKind = "hard" // shared file
)

// Conflict describes the overlap of a candidate with one active task.
// Fields are ordered to minimize memory padding.
type Conflict struct {
	TaskID      string       `json:"task_id"`
	Command     string       `json:"task_command"`
	Kind        ConflictKind `json:"kind"`
	Files       []string     `json:"files,omitempty"`
	Modules     []string     `json:"modules,omitempty"`
	Directories []string     `json:"directories,omitempty"`
}

// Items returns every overlapping item regardless of category.
func (c Conflict) Items() []string {
	out := make([]string, 0, len(c.Files)+len(c.Modules)+len(c.Directories))
	out = append(out, c.Files...)
	out = append(out, c.Modules...)
	return append(out, c.Directories...)
}

// Overlap compares two scopes.
// Files decide hard conflicts; modules and directories decide soft ones.
func Overlap(a, b Scope) Conflict {
	c := Conflict{
		Kind:        ConflictNone,
		Files:       intersect(a.Files, b.Files),
		Modules:     intersect(a.Modules, b.Modules),
		Directories: intersect(a.Directories, b.Directories),
	}
	switch {
	case len(c.Files) > 0:
		c.Kind = ConflictHard
	case len(c.Modules) > 0 || len(c.Directories) > 0:
		c.Kind = ConflictSoft
	}
	return c
}

// DetectConflicts returns the conflicts of a candidate scope against the active tasks,
// in the order the tasks are given. Terminal tasks are ignored.
func DetectConflicts(candidate Scope, active []*Task) []Conflict {
	var out []Conflict
	for _, t := range active {
		if t.Status.IsTerminal() {
			continue
		}
		c := Overlap(candidate, t.Scope)
		if c.Kind == ConflictNone {
			continue
		}
		c.TaskID = t.ID
		c.Command = t.Command
		out = append(out, c)
	}
	return out
}

// ConflictIDs returns the task ids of the given conflicts.
func ConflictIDs(conflicts []Conflict) []string {
	ids := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		ids = append(ids, c.TaskID)
	}
	return slices.Compact(ids)
}

// HasHard reports whether any conflict is hard.
func HasHard(conflicts []Conflict) bool {
	for _, c := range conflicts {
		if c.Kind == ConflictHard {
			return true
		}
	}
	return false
}

// Resolution is the operator's answer to a conflicting add.
type Resolution string

const (
	ResolutionParallel Resolution = "parallel"
	ResolutionDepend   Resolution = "depend"
	ResolutionCancel   Resolution = "cancel"
)

// ResolutionOptions lists the answers offered for a conflicting add.
func ResolutionOptions() []Resolution {
	return []Resolution{ResolutionParallel, ResolutionDepend, ResolutionCancel}
}

// ParseResolution converts a string into a Resolution.
func ParseResolution(s string) (Resolution, error) {
	r := Resolution(s)
	if !slices.Contains(ResolutionOptions(), r) {
		return "", ErrInvalidResolution
	}
	return r, nil
}
