// Package tasklist reads task lists for the analyzer from text, Markdown,
// JSON and YAML sources.
package tasklist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// Ensure Reader implements domain.TaskListReader.
var _ domain.TaskListReader = Reader{}

var (
	numberPrefix   = regexp.MustCompile(`^\d+[.)]\s*`)
	checkboxPrefix = regexp.MustCompile(`^[-*]\s*\[.\]\s*`)
	bulletPrefix   = regexp.MustCompile(`^[-*]\s+`)
)

// Reader reads task lists from files, picking the format by extension.
type Reader struct{}

// Read parses the file at path.
// .json and .yaml/.yml hold a list (or {tasks: list}) of strings or
// {task, cost} objects; .md holds a checklist; anything else is plain text.
func (Reader) Read(path string) ([]domain.TaskSpec, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task list: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return parseJSON(content)
	case ".yaml", ".yml":
		return parseYAML(content)
	case ".md", ".markdown":
		return ParseMarkdown(string(content)), nil
	default:
		return ParseString(string(content)), nil
	}
}

// Parse splits inline text the same way as ParseString.
func (Reader) Parse(text string) []domain.TaskSpec {
	return ParseString(text)
}

// ParseString splits a task string on commas, or on newlines when it has no
// commas. Numbering, bullets and checkboxes are stripped from lines.
func ParseString(s string) []domain.TaskSpec {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var specs []domain.TaskSpec
	switch {
	case strings.Contains(s, ","):
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				specs = append(specs, domain.TaskSpec{Description: part})
			}
		}
	case strings.Contains(s, "\n"):
		for _, line := range strings.Split(s, "\n") {
			line = strings.TrimSpace(line)
			line = numberPrefix.ReplaceAllString(line, "")
			line = checkboxPrefix.ReplaceAllString(line, "")
			line = bulletPrefix.ReplaceAllString(line, "")
			if line = strings.TrimSpace(line); line != "" {
				specs = append(specs, domain.TaskSpec{Description: line})
			}
		}
	default:
		specs = append(specs, domain.TaskSpec{Description: s})
	}
	return specs
}

// ParseMarkdown collects checklist and bullet items, skipping headings and prose.
func ParseMarkdown(content string) []domain.TaskSpec {
	var specs []domain.TaskSpec
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var item string
		switch {
		case checkboxPrefix.MatchString(line):
			item = checkboxPrefix.ReplaceAllString(line, "")
		case bulletPrefix.MatchString(line):
			item = bulletPrefix.ReplaceAllString(line, "")
		case numberPrefix.MatchString(line):
			item = numberPrefix.ReplaceAllString(line, "")
		default:
			continue
		}
		if item = strings.TrimSpace(item); item != "" {
			specs = append(specs, domain.TaskSpec{Description: item})
		}
	}
	return specs
}

// entry is a list element given either as a string or as {task, cost}.
type entry domain.TaskSpec

func (e *entry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = entry{Description: s}
		return nil
	}
	var spec domain.TaskSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return err
	}
	*e = entry(spec)
	return nil
}

func (e *entry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*e = entry{Description: value.Value}
		return nil
	}
	var spec domain.TaskSpec
	if err := value.Decode(&spec); err != nil {
		return err
	}
	*e = entry(spec)
	return nil
}

type wrapped struct {
	Tasks []entry `json:"tasks" yaml:"tasks"`
}

func parseJSON(content []byte) ([]domain.TaskSpec, error) {
	var list []entry
	if bytes.HasPrefix(bytes.TrimSpace(content), []byte("{")) {
		var w wrapped
		if err := json.Unmarshal(content, &w); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedTaskSrc, err)
		}
		list = w.Tasks
	} else if err := json.Unmarshal(content, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedTaskSrc, err)
	}
	return toSpecs(list), nil
}

func parseYAML(content []byte) ([]domain.TaskSpec, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(content, &node); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedTaskSrc, err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	doc := node.Content[0]

	var list []entry
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&list); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedTaskSrc, err)
		}
	case yaml.MappingNode:
		var w wrapped
		if err := doc.Decode(&w); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedTaskSrc, err)
		}
		list = w.Tasks
	default:
		return nil, fmt.Errorf("%w: expected a list of tasks", domain.ErrUnsupportedTaskSrc)
	}
	return toSpecs(list), nil
}

func toSpecs(list []entry) []domain.TaskSpec {
	specs := make([]domain.TaskSpec, 0, len(list))
	for _, e := range list {
		e.Description = strings.TrimSpace(e.Description)
		if e.Description == "" {
			continue
		}
		specs = append(specs, domain.TaskSpec(e))
	}
	return specs
}
