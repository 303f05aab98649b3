package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Vlab-Corporation/claude-config-installer/internal/app"
	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/Vlab-Corporation/claude-config-installer/internal/usecase"
)

// newAnalyzeCommand creates the analyze command.
func newAnalyzeCommand(c *app.Container) *cobra.Command {
	var opts struct {
		File       string
		Resolution string
		Priority   string
		Enqueue    bool
		Pretty     bool
	}

	cmd := &cobra.Command{
		Use:     "analyze [description...]",
		Short:   "Plan a batch of task descriptions",
		GroupID: groupPlan,
		Long: `Break a batch of task descriptions into an execution plan.

Dependencies are inferred from the configured rules, each dependency layer
is split into groups free of hard conflicts, and the estimated savings of
running groups side by side are reported. A single description is split on
commas or newlines.

With --enqueue the tasks are added to the queue in group order, each group
depending on the previous group of its layer. When the batch conflicts with
active tasks nothing is added unless --resolution is given.

Task list files (--file): .json, .yaml/.yml, .md (checkbox or bullet items)
or plain text with one task per line.

Examples:
  queue analyze "write the API, add tests for the API, update the docs"
  queue analyze --file tasks.yaml --pretty
  queue analyze --file tasks.md --enqueue --resolution depend`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.File == "" && len(args) == 0 {
				return fmt.Errorf("%w: descriptions or --file required", errInvalidArgument)
			}
			out, err := c.AnalyzeTasksUseCase().Execute(cmd.Context(), usecase.AnalyzeTasksInput{
				Descriptions: args,
				File:         opts.File,
				Resolution:   opts.Resolution,
				Priority:     opts.Priority,
				Enqueue:      opts.Enqueue,
			})
			if err != nil {
				return err
			}
			if opts.Pretty {
				renderPlan(cmd.OutOrStdout(), out.Plan)
				return nil
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Read task descriptions from a file")
	cmd.Flags().BoolVar(&opts.Enqueue, "enqueue", false, "Add the planned tasks to the queue")
	cmd.Flags().StringVar(&opts.Resolution, "resolution", "", "Resolution for conflicts with active tasks: parallel, depend or cancel")
	cmd.Flags().StringVarP(&opts.Priority, "priority", "p", "", "Priority of enqueued tasks")
	cmd.Flags().BoolVar(&opts.Pretty, "pretty", false, "Print a styled plan instead of JSON")

	return cmd
}

// newPlanCommand creates the plan command.
func newPlanCommand(c *app.Container) *cobra.Command {
	var group int
	var pretty bool

	cmd := &cobra.Command{
		Use:     "plan",
		Short:   "Plan the queued tasks",
		GroupID: groupPlan,
		Long: `Build an execution plan for the executable and waiting queued tasks,
using the scopes recorded when they were added and their explicit
dependencies. Blocked tasks are left out.

With --group only that 1-based group is returned with its tasks.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.PlanQueueUseCase().Execute(cmd.Context(), usecase.PlanQueueInput{Group: group})
			if err != nil {
				return err
			}
			if pretty && out.Plan != nil {
				renderPlan(cmd.OutOrStdout(), out.Plan)
				return nil
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().IntVarP(&group, "group", "g", 0, "Show only this group (1-based)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Print a styled plan instead of JSON")
	return cmd
}

// newConflictCommand creates the conflict command.
func newConflictCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "conflict <id> <id>",
		Short:   "Explain the conflict between two tasks",
		GroupID: groupPlan,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.AnalyzeConflictUseCase().Execute(cmd.Context(), usecase.AnalyzeConflictInput{TaskA: args[0], TaskB: args[1]})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

// newContextCommand creates the context command.
func newContextCommand(c *app.Container) *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:     "context",
		Short:   "Match queued tasks against uncommitted changes",
		GroupID: groupPlan,
		Long: `Score queued tasks against the files changed in the current git working
copy. Tasks touching the same files, modules or directories rank highest.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.MatchContextUseCase().Execute(cmd.Context(), usecase.MatchContextInput{Threshold: threshold})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Minimum score between 0 and 1 (default: [context] threshold)")
	return cmd
}

// Plan rendering styles.
var (
	planTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6C5CE7"))
	planGroupStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#74B9FF"))
	planMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#636E72"))
	planWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FDCB6E"))
	planHardStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#D63031"))
	planBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#636E72")).
			Padding(0, 1)
)

// renderPlan prints p as styled text.
func renderPlan(w io.Writer, p *domain.Plan) {
	var b strings.Builder
	b.WriteString(planTitleStyle.Render("Execution plan"))
	b.WriteString(planMutedStyle.Render(fmt.Sprintf("  %d tasks, %d groups, %d sessions",
		len(p.Items), len(p.Groups), p.SessionsNeeded)))
	b.WriteString("\n")

	for _, g := range p.Groups {
		header := fmt.Sprintf("Group %d  %s", g.Index, g.Mode)
		if g.Split {
			header += "  (split by conflict)"
		}
		var lines []string
		lines = append(lines, planGroupStyle.Render(header)+planMutedStyle.Render(fmt.Sprintf("  layer %d, cost %s", g.Layer, formatCost(g.Cost))))
		for _, id := range g.Tasks {
			it, _ := p.Item(id)
			line := fmt.Sprintf("%-4s %s", id, it.Description)
			if deps := p.Dependencies[id]; len(deps) > 0 {
				line += planMutedStyle.Render("  after " + strings.Join(deps, ", "))
			}
			lines = append(lines, line)
		}
		for _, pair := range g.SoftConflicts {
			lines = append(lines, planWarnStyle.Render(fmt.Sprintf("soft conflict %s/%s", pair[0], pair[1])))
		}
		b.WriteString(planBoxStyle.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}

	for _, c := range p.Conflicts {
		if c.Kind == domain.ConflictHard {
			b.WriteString(planHardStyle.Render(fmt.Sprintf("hard conflict %s/%s: %s", c.A, c.B, strings.Join(c.Items, ", "))))
			b.WriteString("\n")
		}
	}
	for _, warning := range p.Warnings {
		b.WriteString(planWarnStyle.Render("warning: " + warning))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("Sequential %s, parallel %s, saves %d%%\n",
		formatCost(p.SequentialCost), formatCost(p.ParallelCost), p.SavingsPercent))
	_, _ = io.WriteString(w, b.String())
}

func formatCost(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}
