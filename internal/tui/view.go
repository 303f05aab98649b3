package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// Column widths.
const (
	statusWidth   = 10
	priorityWidth = 9
	idWidth       = 14
	minCmdWidth   = 20
)

// View renders the board.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	rows := m.rows()
	if len(rows) == 0 {
		b.WriteString(m.styles.Muted.Render("Queue is empty"))
		b.WriteString("\n")
	}
	for i, r := range rows {
		b.WriteString(m.rowView(r, i == m.cursor))
		b.WriteString("\n")
	}

	if m.showDetail && len(rows) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.DetailBox.Render(m.detail.View()))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *Model) headerView() string {
	var queued, running, blocked int
	for _, v := range m.active {
		switch {
		case v.Status == domain.StatusRunning:
			running++
		case v.Blocked:
			blocked++
			queued++
		default:
			queued++
		}
	}
	counts := fmt.Sprintf("  %d queued, %d running, %d blocked", queued, running, blocked)
	if m.showDone {
		counts += fmt.Sprintf(", %d finished", len(m.finished))
	}
	return m.styles.Header.Render("Queue") + m.styles.HeaderCount.Render(counts)
}

func (m *Model) rowView(r row, selected bool) string {
	cursor := "  "
	style := m.styles.Row
	if selected {
		cursor = m.styles.Cursor.Render("> ")
		style = m.styles.RowSelected
	}

	label := r.task.Status.Display()
	if r.blocked {
		label = "Blocked"
	}
	status := StatusStyle(r.task.Status, r.blocked).Render(fmt.Sprintf("%-*s", statusWidth, label))
	priority := PriorityStyle(r.task.Priority).Render(fmt.Sprintf("%-*s", priorityWidth, r.task.Priority))
	id := m.styles.Muted.Render(fmt.Sprintf("%-*s", idWidth, r.task.ID))

	cmdWidth := minCmdWidth
	if m.width > 0 {
		cmdWidth = max(m.width-2-statusWidth-priorityWidth-idWidth-3, minCmdWidth)
	}
	command := truncate.StringWithTail(oneLine(r.task.Command), uint(cmdWidth), "…")

	return cursor + status + " " + priority + " " + id + " " + style.Render(command)
}

// detailContent renders the fields of one row.
func (m *Model) detailContent(r row) string {
	t := r.task
	var lines []string
	field := func(label, value string) {
		if value != "" {
			lines = append(lines, m.styles.DetailLabel.Render(label+":")+" "+value)
		}
	}

	field("ID", t.ID)
	field("Command", t.Command)
	field("Status", t.Status.Display())
	field("Priority", string(t.Priority))
	field("Created", t.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	if t.StartedAt != nil {
		field("Started", t.StartedAt.Local().Format("2006-01-02 15:04:05"))
	}
	if r.finishedAt != nil {
		field("Finished", r.finishedAt.Local().Format("2006-01-02 15:04:05"))
	}
	field("Depends on", strings.Join(t.DependsOn, ", "))
	field("Blocked by", strings.Join(r.blockedBy, ", "))
	if t.Status == domain.StatusQueued && !r.blocked {
		if r.executable {
			field("Ready", "yes")
		} else {
			field("Ready", "waiting for dependencies")
		}
	}
	field("Files", strings.Join(t.Scope.Files, ", "))
	field("Modules", strings.Join(t.Scope.Modules, ", "))
	field("Directories", strings.Join(t.Scope.Directories, ", "))
	field("On success", t.OnSuccess)
	field("On fail", t.OnFail)
	field("Note", t.Note)
	field("Result", t.Result)
	return strings.Join(lines, "\n")
}

// oneLine collapses newlines so a command fits on one row.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
