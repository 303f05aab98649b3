package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/Vlab-Corporation/claude-config-installer/internal/app"
	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/Vlab-Corporation/claude-config-installer/internal/testutil"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// testEnv bundles a container over mocks with the mocks themselves.
type testEnv struct {
	container *app.Container
	repo      *testutil.MockQueueRepository
	mailbox   *testutil.MockMailbox
}

func newTestEnv(t *testing.T, tasks ...*domain.Task) *testEnv {
	t.Helper()
	repo := testutil.NewMockQueueRepository(tasks...)
	mb := &testutil.MockMailbox{}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	container := app.NewWithDeps(
		app.Config{QueueDir: t.TempDir(), WorkDir: t.TempDir()},
		repo,
		mb,
		&testutil.MockClock{NowTime: testNow},
		logger,
	)
	container.IDs = &testutil.MockIDGenerator{}
	container.Workspace = &testutil.MockWorkspaceInspector{}
	return &testEnv{container: container, repo: repo, mailbox: mb}
}

// run executes cmd with args and returns stdout.
func run(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// decode parses the JSON object printed by a command.
func decode(t *testing.T, out string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m), out)
	return m
}

func queued(id string, p domain.Priority, offsetMin int, deps ...string) *domain.Task {
	if deps == nil {
		deps = []string{}
	}
	return &domain.Task{
		ID:        id,
		Command:   "run " + id,
		Priority:  p,
		Status:    domain.StatusQueued,
		CreatedAt: testNow.Add(time.Duration(offsetMin) * time.Minute),
		DependsOn: deps,
	}
}

func running(id string) *domain.Task {
	t := queued(id, domain.PriorityNormal, 0)
	t.Status = domain.StatusRunning
	started := testNow
	t.StartedAt = &started
	return t
}
