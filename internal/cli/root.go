// Package cli provides the command-line interface for the task queue.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vlab-Corporation/claude-config-installer/internal/app"
)

// Command group IDs.
const (
	groupQueue = "queue"
	groupPlan  = "plan"
	groupHook  = "hook"
	groupSetup = "setup"
)

// DirFlag is the persistent flag selecting the queue directory.
// main reads it before the container exists; the root command declares it so
// cobra accepts it and lists it in help.
const DirFlag = "dir"

// NewRootCommand creates the root command for the queue.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var dir string

	root := &cobra.Command{
		Use:   "queue",
		Short: "Personal task queue and execution planner",
		Long: `queue keeps a persistent queue of commands for an AI coding session.

Each added command is scanned for the files, modules and directories it is
likely to touch. Overlapping work is reported as a conflict before it is
queued, dependencies decide what may run, and finishing a task leaves a
continuation record so the next session turn picks up the next task.

Every command prints one JSON object on stdout.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}

			cfg, err := c.ConfigLoader.Load()
			if err != nil {
				// Reported by the command itself when it needs the config
				return nil
			}

			for _, w := range cfg.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&dir, DirFlag, "", "Queue directory (default: $QUEUE_DIR, [queue] dir or ~/.claude/queue)")

	root.AddGroup(
		&cobra.Group{ID: groupQueue, Title: "Queue Commands:"},
		&cobra.Group{ID: groupPlan, Title: "Planning Commands:"},
		&cobra.Group{ID: groupHook, Title: "Session Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	root.AddCommand(
		newAddCommand(c),
		newAddResolvedCommand(c),
		newListCommand(c),
		newCancelCommand(c),
		newClearCommand(c),
		newNextCommand(c),
		newStartCommand(c),
		newCompleteCommand(c),
		newMoveCommand(c),
		newStatusCommand(c),
		newDependCommand(c),
		newUnblockCommand(c),
		newBoardCommand(c),
	)

	root.AddCommand(
		newAnalyzeCommand(c),
		newPlanCommand(c),
		newConflictCommand(c),
		newContextCommand(c),
	)

	root.AddCommand(newHookCommand(c))

	root.AddCommand(
		newConfigCommand(c),
		newLogsCommand(c),
	)

	return root
}
