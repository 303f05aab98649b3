package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/Vlab-Corporation/claude-config-installer/internal/app"
	"github.com/Vlab-Corporation/claude-config-installer/internal/usecase"
)

// newHookCommand creates the hook command.
func newHookCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hook",
		Short:   "Session lifecycle hooks",
		GroupID: groupHook,
		Long: `Handlers for the three moments of an AI coding session at which the queue
hands work over: the end of a work turn, the start of a session and the
submission of the next prompt. They only read and write the continuation
mailbox.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newHookStopCommand(c))
	cmd.AddCommand(newHookSessionStartCommand(c))
	cmd.AddCommand(newHookPromptSubmitCommand(c))

	return cmd
}

// newHookStopCommand creates the hook stop subcommand.
func newHookStopCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "End of a work turn",
		Long: `Leave a continuation for the next executable task when none is pending and
no task is running, and report queued tasks related to the uncommitted
changes in the working copy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.HookStopUseCase().Execute(cmd.Context(), usecase.HookStopInput{})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

// newHookSessionStartCommand creates the hook session-start subcommand.
func newHookSessionStartCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "session-start",
		Short: "Start of a session",
		Long:  `Summarize the queue and any pending continuation without consuming it.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.HookSessionStartUseCase().Execute(cmd.Context(), usecase.HookSessionStartInput{})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

// newHookPromptSubmitCommand creates the hook prompt-submit subcommand.
func newHookPromptSubmitCommand(c *app.Container) *cobra.Command {
	var text bool

	cmd := &cobra.Command{
		Use:   "prompt-submit",
		Short: "Start of the next user turn",
		Long: `Consume the pending continuation and render the reminder injected into the
next turn. A continuation whose task is gone or no longer executable is
consumed and reported stale with an empty reminder.

With --text only the reminder is printed, for hooks that inject stdout
verbatim.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.HookPromptSubmitUseCase().Execute(cmd.Context(), usecase.HookPromptSubmitInput{})
			if err != nil {
				return err
			}
			if text {
				_, _ = io.WriteString(cmd.OutOrStdout(), out.Reminder)
				return nil
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().BoolVar(&text, "text", false, "Print only the reminder text")
	return cmd
}
