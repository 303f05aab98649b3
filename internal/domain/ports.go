package domain

import "time"

// QueueRepository persists the queue state.
type QueueRepository interface {
	// Load returns a snapshot of the queue.
	Load() (*Queue, error)

	// Update loads the queue, applies fn and persists the result atomically.
	// Nothing is written when fn returns an error.
	Update(fn func(*Queue) error) error
}

// Mailbox is the durable single-slot continuation store.
type Mailbox interface {
	// Write stores c, replacing any unconsumed record.
	Write(c Continuation) error

	// Consume returns the pending record and deletes it. Returns nil when empty.
	Consume() (*Continuation, error)

	// Peek returns the pending record without deleting it. Returns nil when empty.
	Peek() (*Continuation, error)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (queue dir + global).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)

	// ConfigPaths returns the global and queue dir config file paths.
	ConfigPaths() (global, local string)
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigManager reads and initializes config files.
type ConfigManager interface {
	// GetQueueConfigInfo returns information about the queue dir config file.
	GetQueueConfigInfo() ConfigInfo
	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo
	// InitQueueConfig writes a commented template to the queue dir config path.
	InitQueueConfig(cfg *Config) error
	// InitGlobalConfig writes a commented template to the global config path.
	InitGlobalConfig(cfg *Config) error
}

// IDGenerator creates task ids.
type IDGenerator interface {
	NewID() string
}

// WorkspaceInspector reports the files changed in the working copy.
type WorkspaceInspector interface {
	ChangedFiles() ([]string, error)
}

// TaskSpec is one entry of a task list read from a file.
type TaskSpec struct {
	Description string  `json:"task" yaml:"task"`
	Cost        float64 `json:"cost,omitempty" yaml:"cost,omitempty"`
}

// TaskListReader reads task lists from files and inline text.
type TaskListReader interface {
	Read(path string) ([]TaskSpec, error)
	Parse(text string) []TaskSpec
}

// Logger provides logging functionality.
type Logger interface {
	// Info logs an info message. taskID may be empty for global logs.
	Info(taskID, category, msg string)
	// Debug logs a debug message.
	Debug(taskID, category, msg string)
	// Warn logs a warning message.
	Warn(taskID, category, msg string)
	// Error logs an error message.
	Error(taskID, category, msg string)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
