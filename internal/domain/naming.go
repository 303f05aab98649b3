package domain

import "path/filepath"

// TasksPath returns the path to the active tasks document.
func TasksPath(queueDir string) string {
	return filepath.Join(queueDir, TasksFileName)
}

// HistoryPath returns the path to the history document.
func HistoryPath(queueDir string) string {
	return filepath.Join(queueDir, HistoryFileName)
}

// MailboxPath returns the path to the continuation record.
func MailboxPath(queueDir string) string {
	return filepath.Join(queueDir, MailboxFileName)
}

// ConfigPath returns the path to the queue directory config file.
func ConfigPath(queueDir string) string {
	return filepath.Join(queueDir, ConfigFileName)
}

// LogsDir returns the log directory.
func LogsDir(queueDir string) string {
	return filepath.Join(queueDir, "logs")
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(queueDir string) string {
	return filepath.Join(LogsDir(queueDir), GlobalLogName)
}

// TaskLogPath returns the path to the log file of a task.
func TaskLogPath(queueDir, taskID string) string {
	return filepath.Join(LogsDir(queueDir), taskID+".log")
}
