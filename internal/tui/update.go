package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// detailHeight is the number of lines given to the detail pane.
const detailHeight = 10

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.detail.Width = max(msg.Width-4, 0)
		m.detail.Height = detailHeight
		m.refreshDetail()
		return m, nil

	case MsgQueueLoaded:
		m.err = nil
		m.active = msg.Active
		m.finished = msg.Finished
		m.clampCursor()
		m.refreshDetail()
		return m, nil

	case MsgError:
		m.err = msg.Err
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.refreshDetail()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows())-1 {
			m.cursor++
			m.refreshDetail()
		}

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.refreshDetail()

	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.rows()) - 1
		m.clampCursor()
		m.refreshDetail()

	case key.Matches(msg, m.keys.Detail):
		m.showDetail = !m.showDetail

	case key.Matches(msg, m.keys.ScrollDown):
		m.detail.SetYOffset(m.detail.YOffset + max(m.detail.Height/2, 1))

	case key.Matches(msg, m.keys.ScrollUp):
		m.detail.SetYOffset(m.detail.YOffset - max(m.detail.Height/2, 1))

	case key.Matches(msg, m.keys.ToggleDone):
		m.showDone = !m.showDone
		m.clampCursor()
		m.refreshDetail()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadQueue()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// refreshDetail renders the selected row into the detail pane.
func (m *Model) refreshDetail() {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		m.detail.SetContent("")
		return
	}
	m.detail.SetContent(m.detailContent(rows[m.cursor]))
	m.detail.GotoTop()
}
