package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Vlab-Corporation/claude-config-installer/internal/app"
	"github.com/Vlab-Corporation/claude-config-installer/internal/tui"
)

// launchBoardFunc is a function variable for launching the board, allowing it to be mocked in tests.
var launchBoardFunc = launchBoard

// newBoardCommand creates the board command.
func newBoardCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "board",
		Short:   "Browse the queue interactively",
		GroupID: groupQueue,
		Long: `Open a read-only terminal view of the queue: the running task, queued tasks
in execution order with their blocked state, and optionally the finished
tasks. The selected task's scope and dependencies are shown below the list.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchBoardFunc(c)
		},
	}
}

func launchBoard(c *app.Container) error {
	p := tea.NewProgram(tui.New(c.ListTasksUseCase()), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
