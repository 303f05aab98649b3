package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

func TestHookStopCommand_Signals(t *testing.T) {
	// Setup
	env := newTestEnv(t, queued("task-1", domain.PriorityNormal, 0))

	// Execute
	out, err := run(newHookCommand(env.container), "stop")

	// Assert
	require.NoError(t, err)
	got := decode(t, out)
	assert.Equal(t, true, got["signalled"])
	require.NotNil(t, env.mailbox.Record)
	assert.Equal(t, "task-1", env.mailbox.Record.TaskID)
}

func TestHookStopCommand_RunningTask(t *testing.T) {
	env := newTestEnv(t, running("task-run"), queued("task-1", domain.PriorityNormal, 0))

	out, err := run(newHookCommand(env.container), "stop")

	require.NoError(t, err)
	got := decode(t, out)
	assert.Equal(t, false, got["signalled"])
	assert.Nil(t, env.mailbox.Record)
}

func TestHookSessionStartCommand(t *testing.T) {
	env := newTestEnv(t, queued("task-1", domain.PriorityNormal, 0))

	out, err := run(newHookCommand(env.container), "session-start")

	require.NoError(t, err)
	got := decode(t, out)
	assert.Contains(t, got["message"], "Queue: 1 queued")
}

func TestHookPromptSubmitCommand_Text(t *testing.T) {
	// Setup
	task := queued("task-1", domain.PriorityNormal, 0)
	env := newTestEnv(t, task)
	c := domain.NewContinuation(task, 0, testNow)
	env.mailbox.Record = &c

	// Execute
	out, err := run(newHookCommand(env.container), "prompt-submit", "--text")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "QUEUE AUTO-CONTINUATION")
	assert.Contains(t, out, "task-1")
	assert.Nil(t, env.mailbox.Record, "record is consumed")
}

func TestHookPromptSubmitCommand_Stale(t *testing.T) {
	// Setup
	env := newTestEnv(t)
	c := domain.NewContinuation(queued("task-gone", domain.PriorityNormal, 0), 0, testNow)
	env.mailbox.Record = &c

	// Execute
	out, err := run(newHookCommand(env.container), "prompt-submit")

	// Assert
	require.NoError(t, err)
	got := decode(t, out)
	assert.Equal(t, true, got["stale"])
	assert.Equal(t, "", got["reminder"])
}
