package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GetQueueConfigInfo(t *testing.T) {
	// Setup
	queueDir := t.TempDir()
	m := NewManagerWithGlobalDir(queueDir, t.TempDir())

	// Not yet created
	info := m.GetQueueConfigInfo()
	assert.False(t, info.Exists)
	assert.Equal(t, domain.ConfigPath(queueDir), info.Path)

	// Created
	writeConfig(t, queueDir, "[log]\nlevel = \"debug\"\n")
	info = m.GetQueueConfigInfo()
	assert.True(t, info.Exists)
	assert.Contains(t, info.Content, "debug")
}

func TestManager_GetGlobalConfigInfo_NoDir(t *testing.T) {
	m := NewManagerWithGlobalDir(t.TempDir(), "")

	info := m.GetGlobalConfigInfo()

	assert.False(t, info.Exists)
	assert.Empty(t, info.Path)
}

func TestManager_InitQueueConfig(t *testing.T) {
	// Setup
	queueDir := filepath.Join(t.TempDir(), "queue")
	m := NewManagerWithGlobalDir(queueDir, t.TempDir())

	// Execute
	err := m.InitQueueConfig(domain.NewDefaultConfig())

	// Assert
	require.NoError(t, err)
	content, err := os.ReadFile(domain.ConfigPath(queueDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[continuation]")
	assert.Contains(t, string(content), `default_priority = "normal"`)

	// Second init refuses to overwrite
	err = m.InitQueueConfig(domain.NewDefaultConfig())
	assert.ErrorIs(t, err, domain.ErrConfigExists)
}

func TestManager_InitGlobalConfig(t *testing.T) {
	// Setup
	globalDir := filepath.Join(t.TempDir(), "claude-queue")
	m := NewManagerWithGlobalDir(t.TempDir(), globalDir)

	// Execute
	err := m.InitGlobalConfig(domain.NewDefaultConfig())

	// Assert
	require.NoError(t, err)
	info := m.GetGlobalConfigInfo()
	assert.True(t, info.Exists)
	assert.Contains(t, info.Content, filepath.Join(globalDir, domain.ConfigFileName))
}
