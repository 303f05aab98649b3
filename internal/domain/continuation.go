package domain

import (
	"fmt"
	"strings"
	"time"
)

// Continuation is the single pending hand-off record between invocations.
// Fields are ordered to minimize memory padding.
type Continuation struct {
	CreatedAt time.Time `json:"created_at"`
	TaskID    string    `json:"task_id"`
	Command   string    `json:"command"`
	Priority  Priority  `json:"priority"`
	Remaining int       `json:"remaining"`
}

// NewContinuation builds the record pointing at task.
func NewContinuation(task *Task, remaining int, now time.Time) Continuation {
	return Continuation{
		TaskID:    task.ID,
		Command:   task.Command,
		Priority:  task.Priority,
		Remaining: remaining,
		CreatedAt: now.UTC(),
	}
}

// Expired reports whether the record is older than ttl. A zero ttl never expires.
func (c Continuation) Expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(c.CreatedAt) > ttl
}

// Reminder renders the text injected at the start of the next turn.
func (c Continuation) Reminder() string {
	var b strings.Builder
	b.WriteString("<system-reminder>\n")
	b.WriteString("QUEUE AUTO-CONTINUATION: A queued task is ready for execution.\n\n")
	b.WriteString("Next Task:\n")
	fmt.Fprintf(&b, "  ID: %s\n", c.TaskID)
	fmt.Fprintf(&b, "  Command: %s\n", c.Command)
	fmt.Fprintf(&b, "  Priority: %s\n", c.Priority)
	fmt.Fprintf(&b, "  Remaining: %d more task(s) in queue\n\n", c.Remaining)
	b.WriteString("ACTION REQUIRED: Run `queue start ")
	b.WriteString(c.TaskID)
	b.WriteString("` and execute the command to continue the queue.\n")
	b.WriteString("</system-reminder>")
	return b.String()
}
