// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	queueDir      string // Path to the queue directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/claude-queue)
}

// NewLoader creates a new Loader.
func NewLoader(queueDir string) *Loader {
	return &Loader{
		queueDir:      queueDir,
		globalConfDir: DefaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(queueDir, globalConfDir string) *Loader {
	return &Loader{
		queueDir:      queueDir,
		globalConfDir: globalConfDir,
	}
}

// DefaultGlobalConfigDir returns the default global config directory.
func DefaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// ConfigPaths returns the global and queue dir config file paths.
func (l *Loader) ConfigPaths() (global, local string) {
	if l.globalConfDir != "" {
		global = filepath.Join(l.globalConfDir, domain.ConfigFileName)
	}
	return global, domain.ConfigPath(l.queueDir)
}

// Load returns the merged configuration (queue dir + global).
// Queue dir config takes precedence over global config, and the
// environment takes precedence over both.
func (l *Loader) Load() (*domain.Config, error) {
	// Load global config first
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Load queue dir config
	local, err := l.loadFile(domain.ConfigPath(l.queueDir))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Merge: default <- global <- local (later takes precedence)
	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}

	if level := os.Getenv(domain.EnvQueueLogLevel); level != "" {
		base.Log.Level = level
	}

	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, path, err)
	}

	cfg := convertRawToDomainConfig(raw)
	if cfg.RulesFile != "" {
		rulesPath := cfg.RulesFile
		if !filepath.IsAbs(rulesPath) {
			rulesPath = filepath.Join(filepath.Dir(path), rulesPath)
		}
		extra, err := loadRulesFile(rulesPath)
		if err != nil {
			return nil, err
		}
		cfg.Rules = append(cfg.Rules, extra.Rules...)
		cfg.Scope = cfg.Scope.Merge(extra.Scope)
	}
	return cfg, nil
}

// rulesFile is the YAML document referenced by rules_file.
type rulesFile struct {
	Scope domain.ScopeRules       `yaml:"scope"`
	Rules []domain.DependencyRule `yaml:"rules"`
}

func loadRulesFile(path string) (*rulesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Not wrapped as os.ErrNotExist: Load treats that as an absent config file.
		return nil, fmt.Errorf("%w: rules file %s: %v", domain.ErrInvalidConfig, path, err)
	}
	var rf rulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, path, err)
	}
	return &rf, nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		switch section {
		case "rules_file":
			if s, ok := value.(string); ok {
				res.RulesFile = s
			}
		case "queue":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "dir":
						if s, ok := v.(string); ok {
							res.Queue.Dir = s
						}
					case "default_priority":
						if s, ok := v.(string); ok {
							if p, err := domain.ParsePriority(s); err == nil {
								res.Queue.DefaultPriority = string(p)
							} else {
								warnings = append(warnings, fmt.Sprintf("invalid value in [queue]: default_priority = %q", s))
							}
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [queue]: %s", k))
					}
				}
			}
		case "log":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "level":
						if s, ok := v.(string); ok {
							res.Log.Level = s
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
					}
				}
			}
		case "continuation":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "ttl":
						if d, ok := parseDuration(v); ok {
							res.Continuation.TTL = d
						} else {
							warnings = append(warnings, fmt.Sprintf("invalid value in [continuation]: ttl = %v", v))
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [continuation]: %s", k))
					}
				}
			}
		case "context":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "threshold":
						switch n := v.(type) {
						case float64:
							res.Context.Threshold = n
						case int64:
							res.Context.Threshold = float64(n)
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [context]: %s", k))
					}
				}
			}
		case "scope":
			if m, ok := value.(map[string]any); ok {
				var unknowns []string
				res.Scope, unknowns = parseScopeSection(m)
				for _, k := range unknowns {
					warnings = append(warnings, fmt.Sprintf("unknown key in [scope]: %s", k))
				}
			}
		case "rules":
			if list, ok := value.([]any); ok {
				for i, item := range list {
					m, ok := item.(map[string]any)
					if !ok {
						continue
					}
					rule := domain.DependencyRule{}
					for k, v := range m {
						switch k {
						case "name":
							if s, ok := v.(string); ok {
								rule.Name = s
							}
						case "effect":
							rule.Effect = toStrings(v)
						case "cause":
							rule.Cause = toStrings(v)
						default:
							warnings = append(warnings, fmt.Sprintf("unknown key in [[rules]] #%d: %s", i+1, k))
						}
					}
					if len(rule.Effect) == 0 || len(rule.Cause) == 0 {
						warnings = append(warnings, fmt.Sprintf("ignored rule #%d: effect and cause are required", i+1))
						continue
					}
					res.Rules = append(res.Rules, rule)
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// parseScopeSection parses [scope] and [scope.modules].
func parseScopeSection(raw map[string]any) (domain.ScopeRules, []string) {
	var rules domain.ScopeRules
	var unknowns []string
	for k, v := range raw {
		switch k {
		case "modules":
			if m, ok := v.(map[string]any); ok {
				rules.Modules = make(map[string][]string, len(m))
				for name, syn := range m {
					rules.Modules[name] = toStrings(syn)
				}
			}
		case "extensions":
			rules.Extensions = toStrings(v)
		case "actions":
			rules.Actions = toStrings(v)
		case "module_markers":
			rules.ModuleMarkers = toStrings(v)
		case "dir_markers":
			rules.DirMarkers = toStrings(v)
		case "stopwords":
			rules.Stopwords = toStrings(v)
		default:
			unknowns = append(unknowns, k)
		}
	}
	return rules, unknowns
}

func toStrings(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// parseDuration accepts Go duration strings ("5m") or whole seconds.
func parseDuration(v any) (time.Duration, bool) {
	switch d := v.(type) {
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil || parsed < 0 {
			return 0, false
		}
		return parsed, true
	case int64:
		if d < 0 {
			return 0, false
		}
		return time.Duration(d) * time.Second, true
	}
	return 0, false
}

// mergeConfigs merges two configs, with override taking precedence.
// Keyword tables and rules from override extend the base ones.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Scope:        base.Scope.Merge(override.Scope),
		Rules:        append(append([]domain.DependencyRule{}, base.Rules...), override.Rules...),
		Queue:        base.Queue,
		Log:          base.Log,
		Context:      base.Context,
		Continuation: base.Continuation,
		RulesFile:    base.RulesFile,
		Warnings:     append([]string{}, base.Warnings...),
	}

	// Add override warnings
	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Queue.Dir != "" {
		result.Queue.Dir = override.Queue.Dir
	}
	if override.Queue.DefaultPriority != "" {
		result.Queue.DefaultPriority = override.Queue.DefaultPriority
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Context.Threshold > 0 {
		result.Context.Threshold = override.Context.Threshold
	}
	if override.Continuation.TTL > 0 {
		result.Continuation.TTL = override.Continuation.TTL
	}
	if override.RulesFile != "" {
		result.RulesFile = override.RulesFile
	}

	return result
}
