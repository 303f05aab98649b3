package shared

import (
	"fmt"
	"time"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// SignalNext writes a continuation pointing at the next executable task.
// It returns nil without writing when nothing is executable.
func SignalNext(q *domain.Queue, mailbox domain.Mailbox, now time.Time) (*domain.Continuation, error) {
	next := q.Next()
	if next == nil {
		return nil, nil
	}
	c := domain.NewContinuation(next, len(q.Queued())-1, now)
	if err := mailbox.Write(c); err != nil {
		return nil, fmt.Errorf("write continuation: %w", err)
	}
	return &c, nil
}
