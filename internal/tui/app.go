// Package tui provides the interactive queue board.
package tui

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/Vlab-Corporation/claude-config-installer/internal/usecase"
	"github.com/Vlab-Corporation/claude-config-installer/internal/usecase/shared"
)

// TaskLister reads the queue. *usecase.ListTasks satisfies it.
type TaskLister interface {
	Execute(ctx context.Context, in usecase.ListTasksInput) (*usecase.ListTasksOutput, error)
}

// row is one line of the board.
// Fields are ordered to minimize memory padding.
type row struct {
	finishedAt *time.Time
	task       *domain.Task
	blockedBy  []string
	executable bool
	blocked    bool
}

// Model is the bubbletea model for the board.
type Model struct {
	// Dependencies
	lister TaskLister
	err    error

	// State
	active   []shared.TaskView
	finished []*domain.HistoryEntry

	// Components
	keys   KeyMap
	styles Styles
	help   help.Model
	detail viewport.Model

	// Numeric state (smaller types last)
	width      int
	height     int
	cursor     int
	showDetail bool
	showDone   bool
}

// New creates a board reading the queue through lister.
func New(lister TaskLister) *Model {
	return &Model{
		lister:     lister,
		keys:       DefaultKeyMap(),
		styles:     DefaultStyles(),
		help:       help.New(),
		detail:     viewport.New(0, 0),
		showDetail: true,
	}
}

// Init loads the queue.
func (m *Model) Init() tea.Cmd {
	return m.loadQueue()
}

// loadQueue reads active tasks and every finished task.
func (m *Model) loadQueue() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		active, err := m.lister.Execute(ctx, usecase.ListTasksInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		var finished []*domain.HistoryEntry
		for _, st := range []domain.Status{domain.StatusCompleted, domain.StatusFailed, domain.StatusCancelled} {
			out, err := m.lister.Execute(ctx, usecase.ListTasksInput{Status: string(st)})
			if err != nil {
				return MsgError{Err: err}
			}
			finished = append(finished, out.History...)
		}
		slices.SortStableFunc(finished, func(a, b *domain.HistoryEntry) int {
			return b.CompletedAt.Compare(a.CompletedAt)
		})
		return MsgQueueLoaded{Active: active.Tasks, Finished: finished}
	}
}

// rows returns the visible board lines.
func (m *Model) rows() []row {
	rows := make([]row, 0, len(m.active)+len(m.finished))
	for _, v := range m.active {
		rows = append(rows, row{
			task:       v.Task,
			blockedBy:  v.BlockedBy,
			executable: v.Executable,
			blocked:    v.Blocked,
		})
	}
	if m.showDone {
		for _, h := range m.finished {
			t := h.Task
			t.Status = h.Outcome
			rows = append(rows, row{task: &t, finishedAt: &h.CompletedAt})
		}
	}
	return rows
}

// SelectedTask returns the task under the cursor, or nil.
func (m *Model) SelectedTask() *domain.Task {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return nil
	}
	return rows[m.cursor].task
}

// clampCursor keeps the cursor on a visible row.
func (m *Model) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
