package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// Colors defines the color palette for the board.
var Colors = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Error   lipgloss.Color

	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color

	// Status colors
	Queued    lipgloss.Color
	Running   lipgloss.Color
	Completed lipgloss.Color
	Failed    lipgloss.Color
	Cancelled lipgloss.Color
	Blocked   lipgloss.Color

	// Priority colors
	Critical lipgloss.Color
	High     lipgloss.Color
	Normal   lipgloss.Color
	Low      lipgloss.Color
}{
	Primary: lipgloss.Color("#6C5CE7"), // Purple
	Muted:   lipgloss.Color("#636E72"), // Gray
	Error:   lipgloss.Color("#D63031"), // Red

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow (selected)

	Queued:    lipgloss.Color("#74B9FF"), // Light blue
	Running:   lipgloss.Color("#FDCB6E"), // Yellow
	Completed: lipgloss.Color("#00B894"), // Green
	Failed:    lipgloss.Color("#D63031"), // Red
	Cancelled: lipgloss.Color("#636E72"), // Gray
	Blocked:   lipgloss.Color("#E17055"), // Orange

	Critical: lipgloss.Color("#D63031"),
	High:     lipgloss.Color("#E17055"),
	Normal:   lipgloss.Color("#74B9FF"),
	Low:      lipgloss.Color("#636E72"),
}

// Styles holds the lipgloss styles used by the board.
type Styles struct {
	Header      lipgloss.Style
	HeaderCount lipgloss.Style
	Row         lipgloss.Style
	RowSelected lipgloss.Style
	Cursor      lipgloss.Style
	Muted       lipgloss.Style
	Error       lipgloss.Style
	DetailBox   lipgloss.Style
	DetailLabel lipgloss.Style
	Footer      lipgloss.Style
}

// DefaultStyles returns the default board styles.
func DefaultStyles() Styles {
	return Styles{
		Header:      lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary),
		HeaderCount: lipgloss.NewStyle().Foreground(Colors.Muted),
		Row:         lipgloss.NewStyle().Foreground(Colors.TitleNormal),
		RowSelected: lipgloss.NewStyle().Bold(true).Foreground(Colors.TitleSelected),
		Cursor:      lipgloss.NewStyle().Foreground(Colors.Primary).Bold(true),
		Muted:       lipgloss.NewStyle().Foreground(Colors.Muted),
		Error:       lipgloss.NewStyle().Foreground(Colors.Error).Bold(true),
		DetailBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted).
			Padding(0, 1),
		DetailLabel: lipgloss.NewStyle().Foreground(Colors.Primary).Bold(true),
		Footer:      lipgloss.NewStyle().MarginTop(1),
	}
}

// StatusStyle returns the badge style for a task status.
// Blocked queued tasks get their own color.
func StatusStyle(s domain.Status, blocked bool) lipgloss.Style {
	st := lipgloss.NewStyle().Bold(true)
	if blocked {
		return st.Foreground(Colors.Blocked)
	}
	switch s {
	case domain.StatusRunning:
		return st.Foreground(Colors.Running)
	case domain.StatusCompleted:
		return st.Foreground(Colors.Completed)
	case domain.StatusFailed:
		return st.Foreground(Colors.Failed)
	case domain.StatusCancelled:
		return st.Foreground(Colors.Cancelled)
	default:
		return st.Foreground(Colors.Queued)
	}
}

// PriorityStyle returns the style for a priority label.
func PriorityStyle(p domain.Priority) lipgloss.Style {
	st := lipgloss.NewStyle()
	switch p {
	case domain.PriorityCritical:
		return st.Foreground(Colors.Critical).Bold(true)
	case domain.PriorityHigh:
		return st.Foreground(Colors.High)
	case domain.PriorityLow:
		return st.Foreground(Colors.Low)
	default:
		return st.Foreground(Colors.Normal)
	}
}
