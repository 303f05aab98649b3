package domain

import (
	"slices"
	"strings"
)

// Scope is the set of files, modules and directories a command is inferred to touch.
// Each list is sorted and free of duplicates.
type Scope struct {
	Files       []string `json:"files"`
	Modules     []string `json:"modules"`
	Directories []string `json:"directories"`
}

// NewScope builds a normalized Scope from raw items.
func NewScope(files, modules, directories []string) Scope {
	return Scope{
		Files:       normalizeSet(files),
		Modules:     normalizeSet(modules),
		Directories: normalizeSet(directories),
	}
}

// IsEmpty returns true if nothing was detected.
func (s Scope) IsEmpty() bool {
	return len(s.Files) == 0 && len(s.Modules) == 0 && len(s.Directories) == 0
}

// Tokens returns the module and directory names used to relate two descriptions.
func (s Scope) Tokens() []string {
	out := make([]string, 0, len(s.Modules)+len(s.Directories))
	out = append(out, s.Modules...)
	for _, d := range s.Directories {
		out = append(out, strings.TrimSuffix(d, "/"))
	}
	return normalizeSet(out)
}

// SharesToken reports whether the two scopes have a module or directory in common.
func (s Scope) SharesToken(other Scope) bool {
	return len(intersect(s.Tokens(), other.Tokens())) > 0
}

// Level describes how specific the scope is.
func (s Scope) Level() string {
	switch {
	case len(s.Files) > 0:
		return "file"
	case len(s.Directories) > 0:
		return "directory"
	case len(s.Modules) > 0:
		return "module"
	default:
		return "unknown"
	}
}

func normalizeSet(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		out = append(out, it)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// intersect returns the sorted items present in both sets.
func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	in := make(map[string]struct{}, len(b))
	for _, x := range b {
		in[x] = struct{}{}
	}
	var out []string
	for _, x := range a {
		if _, ok := in[x]; ok {
			out = append(out, x)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
