package domain

import (
	"bytes"
	"path/filepath"
	"text/template"
	"time"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Scope        ScopeRules         `toml:"scope"`
	Rules        []DependencyRule   `toml:"rules"`
	Warnings     []string           `toml:"-"`
	Queue        QueueConfig        `toml:"queue"`
	Log          LogConfig          `toml:"log"`
	RulesFile    string             `toml:"rules_file,omitempty"`
	Context      ContextConfig      `toml:"context"`
	Continuation ContinuationConfig `toml:"continuation"`
}

// QueueConfig holds settings from the [queue] section.
type QueueConfig struct {
	Dir             string `toml:"dir,omitempty"`              // Queue directory (default: ~/.claude/queue)
	DefaultPriority string `toml:"default_priority,omitempty"` // Priority for add without one
}

// LogConfig holds settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// ContinuationConfig holds settings from the [continuation] section.
type ContinuationConfig struct {
	TTL time.Duration `toml:"ttl,omitempty"` // 0 disables expiry
}

// ContextConfig holds settings from the [context] section.
type ContextConfig struct {
	Threshold float64 `toml:"threshold,omitempty"`
}

// Default configuration values.
const (
	DefaultLogLevel = "info"
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Scope: DefaultScopeRules(),
		Rules: DefaultDependencyRules(),
		Queue: QueueConfig{
			DefaultPriority: string(PriorityNormal),
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Context: ContextConfig{
			Threshold: DefaultMatchThreshold,
		},
	}
}

// Directory and file names.
const (
	AppDirName       = "claude-queue"      // Global config directory name
	ConfigFileName   = "config.toml"       // Config file name
	TasksFileName    = "tasks.json"        // Active tasks document
	HistoryFileName  = "history.json"      // Terminal tasks document
	MailboxFileName  = "continuation.json" // Continuation record
	GlobalLogName    = "queue.log"         // Log shared by every task
	TaskIDPrefix     = "task-"             // Prefix of generated task ids
	EnvQueueDir      = "QUEUE_DIR"         // Environment override for the queue directory
	EnvQueueLogLevel = "QUEUE_LOG_LEVEL"   // Environment override for the log level
)

// DefaultQueueDir returns the queue directory under the user's home.
func DefaultQueueDir(home string) string {
	return filepath.Join(home, ".claude", "queue")
}

// GlobalConfigDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

const configTemplate = `# claude-queue configuration
# Place this file at {{.Path}}

[queue]
# Priority used by "add" when none is given: critical, high, normal, low
default_priority = "{{.DefaultPriority}}"

[log]
# debug, info, warn, error
level = "{{.LogLevel}}"

[continuation]
# How long a pending continuation stays valid ("0s" never expires)
ttl = "{{.TTL}}"

[context]
# Minimum score for a queued task to match the files being changed
threshold = {{.Threshold}}

[scope]
# Extra file extensions recognized in commands
# extensions = ["proto", "graphql"]

[scope.modules]
# Extra module synonyms, merged into the built-in table
# billing = ["invoice", "청구"]

# Extra dependency rules, appended to the built-in table
# [[rules]]
# name = "migrate-before-seed"
# effect = ["seed", "시드"]
# cause = ["migrate", "마이그레이션"]

# Rules may also live in a YAML file
# rules_file = "rules.yaml"
`

// RenderConfigTemplate renders a commented config file for path.
func RenderConfigTemplate(cfg *Config, path string) string {
	tmpl := template.Must(template.New("config").Parse(configTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, map[string]any{
		"Path":            path,
		"DefaultPriority": cfg.Queue.DefaultPriority,
		"LogLevel":        cfg.Log.Level,
		"TTL":             cfg.Continuation.TTL.String(),
		"Threshold":       cfg.Context.Threshold,
	})
	return buf.String()
}
