package domain

import "errors"

// Domain errors.
var (
	ErrUnknownTask        = errors.New("unknown task")
	ErrDuplicateTask      = errors.New("task id already exists")
	ErrCycle              = errors.New("dependency cycle detected")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrCancelRunning      = errors.New("cannot cancel a running task")
	ErrTaskRunning        = errors.New("another task is already running")
	ErrNotExecutable      = errors.New("task dependencies are not completed")
	ErrStoreCorrupted     = errors.New("queue store is corrupted (repair it manually)")
	ErrMailboxCorrupted   = errors.New("continuation mailbox is corrupted")
	ErrScopeExtraction    = errors.New("scope extraction")
	ErrEmptyCommand       = errors.New("command cannot be empty")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidResolution  = errors.New("invalid resolution")
	ErrInvalidMoveTarget  = errors.New("invalid move target")
	ErrInvalidGroup       = errors.New("invalid group number")
	ErrNoTasks            = errors.New("no tasks")
	ErrNotGitRepository   = errors.New("not a git repository (or any of the parent directories)")
	ErrUnsupportedTaskSrc = errors.New("unsupported task list format")
	ErrConfigExists       = errors.New("config file already exists")
	ErrInvalidConfig      = errors.New("invalid config")
)
