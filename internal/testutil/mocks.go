// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockQueueRepository is a test double for domain.QueueRepository.
// Update works on a copy, so a failed fn leaves Queue untouched like the real store.
// Fields are ordered to minimize memory padding.
type MockQueueRepository struct {
	Queue     *domain.Queue
	LoadErr   error
	UpdateErr error
	Updates   int
}

// NewMockQueueRepository creates a repository holding tasks.
func NewMockQueueRepository(tasks ...*domain.Task) *MockQueueRepository {
	return &MockQueueRepository{Queue: &domain.Queue{Tasks: tasks}}
}

// Load returns a copy of the stored queue.
func (m *MockQueueRepository) Load() (*domain.Queue, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return copyQueue(m.Queue), nil
}

// Update applies fn to a copy and keeps it when fn succeeds.
func (m *MockQueueRepository) Update(fn func(*domain.Queue) error) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	q := copyQueue(m.Queue)
	if err := fn(q); err != nil {
		return err
	}
	m.Queue = q
	m.Updates++
	return nil
}

func copyQueue(q *domain.Queue) *domain.Queue {
	if q == nil {
		return &domain.Queue{}
	}
	data, err := json.Marshal(q)
	if err != nil {
		panic(fmt.Sprintf("copy queue: %v", err))
	}
	var out domain.Queue
	if err := json.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("copy queue: %v", err))
	}
	return &out
}

// MockMailbox is a test double for domain.Mailbox.
// Fields are ordered to minimize memory padding.
type MockMailbox struct {
	Record     *domain.Continuation
	WriteErr   error
	ConsumeErr error
	PeekErr    error
	Writes     int
}

// Write stores c.
func (m *MockMailbox) Write(c domain.Continuation) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Record = &c
	m.Writes++
	return nil
}

// Consume returns and clears the stored record.
func (m *MockMailbox) Consume() (*domain.Continuation, error) {
	if m.ConsumeErr != nil {
		return nil, m.ConsumeErr
	}
	c := m.Record
	m.Record = nil
	return c, nil
}

// Peek returns the stored record.
func (m *MockMailbox) Peek() (*domain.Continuation, error) {
	if m.PeekErr != nil {
		return nil, m.PeekErr
	}
	return m.Record, nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
// Fields are ordered to minimize memory padding.
type MockConfigLoader struct {
	Config       *domain.Config
	GlobalConfig *domain.Config
	LoadErr      error
	GlobalPath   string
	LocalPath    string
}

// NewMockConfigLoader creates a loader returning the default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{Config: domain.NewDefaultConfig()}
}

// Load returns the configured config.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadGlobal returns the configured global config.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.GlobalConfig == nil {
		return nil, fmt.Errorf("global config: %w", os.ErrNotExist)
	}
	return m.GlobalConfig, nil
}

// ConfigPaths returns the configured paths.
func (m *MockConfigLoader) ConfigPaths() (global, local string) {
	return m.GlobalPath, m.LocalPath
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	QueueInfo       domain.ConfigInfo
	GlobalInfo      domain.ConfigInfo
	InitErr         error
	InitQueueCalls  int
	InitGlobalCalls int
}

// GetQueueConfigInfo returns QueueInfo.
func (m *MockConfigManager) GetQueueConfigInfo() domain.ConfigInfo {
	return m.QueueInfo
}

// GetGlobalConfigInfo returns GlobalInfo.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalInfo
}

// InitQueueConfig records the call.
func (m *MockConfigManager) InitQueueConfig(_ *domain.Config) error {
	m.InitQueueCalls++
	return m.InitErr
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig(_ *domain.Config) error {
	m.InitGlobalCalls++
	return m.InitErr
}

// MockIDGenerator returns IDs in order, then task-00000001, task-00000002, ...
type MockIDGenerator struct {
	IDs []string
	n   int
}

// NewID returns the next id.
func (m *MockIDGenerator) NewID() string {
	m.n++
	if m.n <= len(m.IDs) {
		return m.IDs[m.n-1]
	}
	return fmt.Sprintf("%s%08d", domain.TaskIDPrefix, m.n)
}

// MockWorkspaceInspector is a test double for domain.WorkspaceInspector.
type MockWorkspaceInspector struct {
	Err   error
	Files []string
}

// ChangedFiles returns Files.
func (m *MockWorkspaceInspector) ChangedFiles() ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Files, nil
}

// MockTaskListReader is a test double for domain.TaskListReader.
type MockTaskListReader struct {
	Files map[string][]domain.TaskSpec
	Err   error
}

// Read returns the specs registered for path.
func (m *MockTaskListReader) Read(path string) ([]domain.TaskSpec, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	specs, ok := m.Files[path]
	if !ok {
		return nil, fmt.Errorf("read task list: %s: %w", path, os.ErrNotExist)
	}
	return specs, nil
}

// Parse splits text on commas and newlines.
func (m *MockTaskListReader) Parse(text string) []domain.TaskSpec {
	var specs []domain.TaskSpec
	for _, line := range strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == '\n' }) {
		if line = strings.TrimSpace(line); line != "" {
			specs = append(specs, domain.TaskSpec{Description: line})
		}
	}
	return specs
}

// LogEntry is one message captured by MockLogger.
type LogEntry struct {
	Level    string
	TaskID   string
	Category string
	Msg      string
}

// MockLogger records log calls.
type MockLogger struct {
	Entries []LogEntry
}

func (m *MockLogger) add(level, taskID, category, msg string) {
	m.Entries = append(m.Entries, LogEntry{Level: level, TaskID: taskID, Category: category, Msg: msg})
}

// Info records an info message.
func (m *MockLogger) Info(taskID, category, msg string) { m.add("INFO", taskID, category, msg) }

// Debug records a debug message.
func (m *MockLogger) Debug(taskID, category, msg string) { m.add("DEBUG", taskID, category, msg) }

// Warn records a warning message.
func (m *MockLogger) Warn(taskID, category, msg string) { m.add("WARN", taskID, category, msg) }

// Error records an error message.
func (m *MockLogger) Error(taskID, category, msg string) { m.add("ERROR", taskID, category, msg) }
