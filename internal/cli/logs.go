package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vlab-Corporation/claude-config-installer/internal/app"
	"github.com/Vlab-Corporation/claude-config-installer/internal/usecase"
)

// newLogsCommand creates the logs command.
func newLogsCommand(c *app.Container) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:     "logs [id]",
		Short:   "Show queue logs",
		GroupID: groupSetup,
		Long: `Show the queue log, or the log of one task.

Examples:
  # Show the whole queue log
  queue logs

  # Show the last 20 lines logged for a task
  queue logs task-1a2b3c4d -n 20`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.ShowLogsInput{Lines: lines}
			if len(args) == 1 {
				in.TaskID = args[0]
			}
			out, err := c.ShowLogsUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			if out.Content == "" {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "No log entries in %s\n", out.LogPath)
				return nil
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Content)
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "Number of lines from the end (0 = all)")
	return cmd
}
