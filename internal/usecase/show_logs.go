package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// ShowLogsInput contains the parameters for showing logs.
type ShowLogsInput struct {
	TaskID string // Task whose log to show (empty = global log)
	Lines  int    // Number of lines to display from the end (0 = all)
}

// ShowLogsOutput contains the result of showing logs.
type ShowLogsOutput struct {
	LogPath string `json:"log_path"` // Path to the log file
	Content string `json:"content"`  // Log file content
}

// ShowLogs is the use case for viewing the queue logs.
type ShowLogs struct {
	tasks    domain.QueueRepository
	queueDir string
}

// NewShowLogs creates a new ShowLogs use case.
func NewShowLogs(tasks domain.QueueRepository, queueDir string) *ShowLogs {
	return &ShowLogs{
		tasks:    tasks,
		queueDir: queueDir,
	}
}

// Execute reads and returns the log content.
func (uc *ShowLogs) Execute(_ context.Context, in ShowLogsInput) (*ShowLogsOutput, error) {
	logPath := domain.GlobalLogPath(uc.queueDir)
	if in.TaskID != "" {
		q, err := uc.tasks.Load()
		if err != nil {
			return nil, err
		}
		if !q.Known(in.TaskID) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTask, in.TaskID)
		}
		logPath = domain.TaskLogPath(uc.queueDir, in.TaskID)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &ShowLogsOutput{LogPath: logPath}, nil
		}
		return nil, fmt.Errorf("read log file: %w", err)
	}

	// If lines is specified, get only the last N lines
	result := string(content)
	if in.Lines > 0 {
		lines := strings.Split(strings.TrimSuffix(result, "\n"), "\n")
		if len(lines) > in.Lines {
			lines = lines[len(lines)-in.Lines:]
		}
		result = strings.Join(lines, "\n") + "\n"
	}

	return &ShowLogsOutput{
		LogPath: logPath,
		Content: result,
	}, nil
}
