package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	queueDir      string // Path to the queue directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/claude-queue)
}

// NewManager creates a new Manager.
func NewManager(queueDir string) *Manager {
	return &Manager{
		queueDir:      queueDir,
		globalConfDir: DefaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(queueDir, globalConfDir string) *Manager {
	return &Manager{
		queueDir:      queueDir,
		globalConfDir: globalConfDir,
	}
}

// GetQueueConfigInfo returns information about the queue dir config file.
func (m *Manager) GetQueueConfigInfo() domain.ConfigInfo {
	return m.getConfigInfo(domain.ConfigPath(m.queueDir))
}

// GetGlobalConfigInfo returns information about the global config file.
func (m *Manager) GetGlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{}
	}
	return m.getConfigInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

// getConfigInfo reads a config file and returns its info.
func (m *Manager) getConfigInfo(path string) domain.ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{
			Path:   path,
			Exists: false,
		}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitQueueConfig creates a queue dir config file with the default template.
func (m *Manager) InitQueueConfig(cfg *domain.Config) error {
	if err := os.MkdirAll(m.queueDir, 0o750); err != nil {
		return err
	}
	return m.initConfig(domain.ConfigPath(m.queueDir), cfg)
}

// InitGlobalConfig creates a global config file with the default template.
func (m *Manager) InitGlobalConfig(cfg *domain.Config) error {
	if m.globalConfDir == "" {
		return errors.New("global config directory not available")
	}

	// Create parent directory if it doesn't exist
	if err := os.MkdirAll(m.globalConfDir, 0o700); err != nil {
		return err
	}

	return m.initConfig(filepath.Join(m.globalConfDir, domain.ConfigFileName), cfg)
}

// initConfig creates a config file with default template.
func (m *Manager) initConfig(path string, cfg *domain.Config) error {
	if _, err := os.Stat(path); err == nil {
		return domain.ErrConfigExists
	}
	return os.WriteFile(path, []byte(domain.RenderConfigTemplate(cfg, path)), 0o600)
}
