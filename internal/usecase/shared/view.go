package shared

import "github.com/Vlab-Corporation/claude-config-installer/internal/domain"

// TaskView is a task with its scheduling state relative to the queue.
type TaskView struct {
	*domain.Task
	BlockedBy  []string `json:"blocked_by,omitempty"`
	Executable bool     `json:"executable"`
	Blocked    bool     `json:"blocked"`
}

// NewTaskView computes the scheduling state of t within q.
func NewTaskView(q *domain.Queue, t *domain.Task) TaskView {
	v := TaskView{
		Task:       t,
		Executable: q.IsExecutable(t),
	}
	if t.Status == domain.StatusQueued {
		v.BlockedBy = q.BlockedBy(t)
		v.Blocked = len(v.BlockedBy) > 0
	}
	return v
}

// NewTaskViews maps NewTaskView over tasks.
func NewTaskViews(q *domain.Queue, tasks []*domain.Task) []TaskView {
	out := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskView(q, t))
	}
	return out
}
