package app

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/Vlab-Corporation/claude-config-installer/internal/infra/jsonstore"
	"github.com/Vlab-Corporation/claude-config-installer/internal/infra/mailbox"
)

func TestResolveQueueDir(t *testing.T) {
	global := &domain.Config{Queue: domain.QueueConfig{Dir: "/from/config"}}

	tests := []struct {
		name    string
		flagDir string
		envDir  string
		global  *domain.Config
		want    string
	}{
		{"flag wins", "/from/flag", "/from/env", global, "/from/flag"},
		{"env over config", "", "/from/env", global, "/from/env"},
		{"global config", "", "", global, "/from/config"},
		{"default", "", "", nil, filepath.Join("/home/u", ".claude", "queue")},
		{"empty config dir", "", "", &domain.Config{}, filepath.Join("/home/u", ".claude", "queue")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveQueueDir(tt.flagDir, tt.envDir, tt.global, "/home/u"))
		})
	}
}

func TestNew_UsesFlagDir(t *testing.T) {
	// Setup
	dir := t.TempDir()
	t.Setenv(domain.EnvQueueDir, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// Execute
	c, err := New(dir)

	// Assert
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	assert.Equal(t, dir, c.Config.QueueDir)
	assert.IsType(t, &jsonstore.Store{}, c.Tasks)
	assert.IsType(t, &mailbox.File{}, c.Mailbox)
	global, local := c.ConfigLoader.ConfigPaths()
	assert.Contains(t, global, "claude-queue")
	assert.Equal(t, domain.ConfigPath(dir), local)
}

func TestNewWithDeps_Factories(t *testing.T) {
	dir := t.TempDir()
	c := NewWithDeps(Config{QueueDir: dir, WorkDir: dir}, jsonstore.New(dir), mailbox.New(dir, 0, domain.RealClock{}),
		domain.RealClock{}, slog.Default())

	assert.NotNil(t, c.AddTaskUseCase())
	assert.NotNil(t, c.CompleteTaskUseCase())
	assert.NotNil(t, c.HookStopUseCase())
	assert.NotNil(t, c.AnalyzeTasksUseCase())
	assert.NoError(t, c.Close())
}
