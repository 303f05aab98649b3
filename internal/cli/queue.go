package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Vlab-Corporation/claude-config-installer/internal/app"
	"github.com/Vlab-Corporation/claude-config-installer/internal/usecase"
)

// taskFlags holds the optional task fields shared by add and add-resolved.
type taskFlags struct {
	Priority  string
	OnSuccess string
	OnFail    string
	Note      string
	DependsOn []string
}

func (f *taskFlags) register(cmd *cobra.Command, withPriority bool) {
	if withPriority {
		cmd.Flags().StringVarP(&f.Priority, "priority", "p", "", "Priority: critical, high, normal or low")
	}
	cmd.Flags().StringSliceVar(&f.DependsOn, "depends-on", nil, "Task ids that must complete first (comma separated or repeated)")
	cmd.Flags().StringVar(&f.OnSuccess, "on-success", "", "Command to enqueue when the task succeeds")
	cmd.Flags().StringVar(&f.OnFail, "on-fail", "", "Command to enqueue when the task fails")
	cmd.Flags().StringVar(&f.Note, "note", "", "Free text note")
}

// splitIDs splits comma separated ids, dropping blanks.
func splitIDs(args ...string) []string {
	var ids []string
	for _, a := range args {
		for _, id := range strings.Split(a, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// newAddCommand creates the add command.
func newAddCommand(c *app.Container) *cobra.Command {
	var opts taskFlags

	cmd := &cobra.Command{
		Use:     "add <command> [priority]",
		Short:   "Add a command to the queue",
		GroupID: groupQueue,
		Long: `Add a command to the queue after checking it against every queued and
running task.

The command text is scanned for the files, modules and directories it is
likely to touch. When that scope overlaps an active task nothing is added;
the response lists the conflicts with action_required set and the caller
re-invokes with add-resolved.

Examples:
  # Add with the configured default priority
  queue add "fix the login bug in src/auth/login.ts"

  # Add urgently, after task-1a2b3c4d completes
  queue add "deploy hotfix" critical --depends-on task-1a2b3c4d

  # Chain a follow-up command on success
  queue add "run migrations" --on-success "restart the api server"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				opts.Priority = args[1]
			}
			out, err := c.AddTaskUseCase().Execute(cmd.Context(), usecase.AddTaskInput{
				Command:   args[0],
				Priority:  opts.Priority,
				OnSuccess: opts.OnSuccess,
				OnFail:    opts.OnFail,
				Note:      opts.Note,
				DependsOn: opts.DependsOn,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	opts.register(cmd, false)
	return cmd
}

// newAddResolvedCommand creates the add-resolved command.
func newAddResolvedCommand(c *app.Container) *cobra.Command {
	var opts taskFlags

	cmd := &cobra.Command{
		Use:     "add-resolved <command> <parallel|depend|cancel> [dep-ids]",
		Short:   "Add a conflicting command with a resolution",
		GroupID: groupQueue,
		Long: `Add a command that add reported as conflicting.

Resolutions:
  parallel  Add the task without dependencies (warns on hard conflicts)
  depend    Add the task depending on the conflicting tasks, or on the
            comma separated dep-ids when given
  cancel    Add nothing

Examples:
  queue add-resolved "refactor auth module" depend
  queue add-resolved "update docs" depend task-1a2b3c4d,task-5e6f7a8b
  queue add-resolved "lint the repo" parallel --priority low`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.AddResolvedTaskInput{
				Command:    args[0],
				Resolution: args[1],
				Priority:   opts.Priority,
				OnSuccess:  opts.OnSuccess,
				OnFail:     opts.OnFail,
				Note:       opts.Note,
				DependsOn:  opts.DependsOn,
			}
			if len(args) == 3 {
				in.DependOn = splitIDs(args[2])
			}
			out, err := c.AddResolvedTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	opts.register(cmd, true)
	return cmd
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "list [status]",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		GroupID: groupQueue,
		Long: `List tasks with their scheduling state.

Without a status the running task and every queued task are listed in
execution order. With queued or running only that status is listed; with
completed, failed or cancelled the matching history entries are listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in usecase.ListTasksInput
			if len(args) == 1 {
				in.Status = args[0]
			}
			out, err := c.ListTasksUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

// newCancelCommand creates the cancel command.
func newCancelCommand(c *app.Container) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "cancel <id> | --all",
		Short:   "Cancel queued tasks",
		GroupID: groupQueue,
		Long: `Cancel a queued task, or every queued task with --all.

The running task cannot be cancelled. Tasks depending on a cancelled task
stay queued and are reported as blocked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.CancelTaskInput{All: all}
			switch {
			case all && len(args) > 0:
				return fmt.Errorf("%w: give a task id or --all, not both", errInvalidArgument)
			case !all && len(args) == 0:
				return fmt.Errorf("%w: task id or --all required", errInvalidArgument)
			case !all:
				in.TaskID = args[0]
			}
			out, err := c.CancelTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Cancel every queued task")
	return cmd
}

// newClearCommand creates the clear command.
func newClearCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "clear",
		Short:   "Cancel every queued task",
		GroupID: groupQueue,
		Long:    `Cancel every queued task. Same as cancel --all.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.CancelTaskUseCase().Execute(cmd.Context(), usecase.CancelTaskInput{All: true})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

// newNextCommand creates the next command.
func newNextCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "next",
		Short:   "Show the next executable task",
		GroupID: groupQueue,
		Long: `Show the highest priority executable task, oldest first among equals.

Nothing is started. The response is immediate; when nothing is executable the
message says whether the queue is empty or blocked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.NextTaskUseCase().Execute(cmd.Context(), usecase.NextTaskInput{})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

// newStartCommand creates the start command.
func newStartCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "start <id>",
		Short:   "Mark a queued task as running",
		GroupID: groupQueue,
		Long: `Mark an executable queued task as running.

Only one task runs at a time and every dependency must have completed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.StartTaskUseCase().Execute(cmd.Context(), usecase.StartTaskInput{TaskID: args[0]})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

// newCompleteCommand creates the complete command.
func newCompleteCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "complete <id> <true|false> [error]",
		Short:   "Finish the running task",
		GroupID: groupQueue,
		Long: `Record the outcome of the running task and move it to history.

A chained on-success or on-fail command is enqueued with the task's priority
and becomes the next task. Otherwise the next executable task is chosen and
a continuation record is left for the next session turn.

Examples:
  queue complete task-1a2b3c4d true
  queue complete task-1a2b3c4d false "tests failed in pkg/auth"`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			success, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("%w: outcome %q is not true or false", errInvalidArgument, args[1])
			}
			in := usecase.CompleteTaskInput{TaskID: args[0], Success: success}
			if len(args) == 3 {
				in.Error = args[2]
			}
			out, err := c.CompleteTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

// newMoveCommand creates the move command.
func newMoveCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "move <id> <first|last|priority>",
		Short:   "Change the priority of a queued task",
		GroupID: groupQueue,
		Long: `Change the priority of a queued task.

first and last are shorthands for critical and low.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.MoveTaskUseCase().Execute(cmd.Context(), usecase.MoveTaskInput{TaskID: args[0], Target: args[1]})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

// newStatusCommand creates the status command.
func newStatusCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   "Summarize the queue",
		GroupID: groupQueue,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.QueueStatusUseCase().Execute(cmd.Context(), usecase.QueueStatusInput{})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

// newDependCommand creates the depend command.
func newDependCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "depend <id> <dep-id>...",
		Short:   "Add dependencies to a queued task",
		GroupID: groupQueue,
		Long: `Make a queued task wait for other tasks.

Edges that would close a cycle are refused and leave the queue unchanged.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.DependTaskUseCase().Execute(cmd.Context(), usecase.DependTaskInput{
				TaskID:    args[0],
				DependsOn: splitIDs(args[1:]...),
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

// newUnblockCommand creates the unblock command.
func newUnblockCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "unblock <id> [dep-id]...",
		Short:   "Remove dependencies from a queued task",
		GroupID: groupQueue,
		Long: `Remove dependencies from a queued task.

Without dep-ids every dependency that failed, was cancelled or no longer
exists is removed, which is how a task blocked by a failure is released.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.UnblockTaskUseCase().Execute(cmd.Context(), usecase.UnblockTaskInput{
				TaskID: args[0],
				Deps:   splitIDs(args[1:]...),
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}
