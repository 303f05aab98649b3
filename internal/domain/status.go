package domain

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusQueued    Status = "queued"    // Waiting for dependencies or a free slot
	StatusRunning   Status = "running"   // Handed to the caller for execution
	StatusCompleted Status = "completed" // Finished successfully
	StatusFailed    Status = "failed"    // Finished with an error
	StatusCancelled Status = "cancelled" // Removed before it ever ran
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{
		StatusQueued,
		StatusRunning,
		StatusCompleted,
		StatusFailed,
		StatusCancelled,
	}
}

// transitions defines the allowed status transitions.
// Flow: queued → running → completed | failed
//
//	└──→ cancelled
var transitions = map[Status][]Status{
	StatusQueued:    {StatusRunning, StatusCancelled},
	StatusRunning:   {StatusCompleted, StatusFailed},
	StatusCompleted: {},
	StatusFailed:    {},
	StatusCancelled: {},
}

// ParseStatus converts a string into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// CanTransitionTo returns true if the status can transition to the target status.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, ok := transitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the task has left the active queue.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// IsActive returns true for queued and running tasks.
func (s Status) IsActive() bool {
	return s == StatusQueued || s == StatusRunning
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusQueued:
		return "Queued"
	case StatusRunning:
		return "Running"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}
