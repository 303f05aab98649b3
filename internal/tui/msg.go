package tui

import (
	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/Vlab-Corporation/claude-config-installer/internal/usecase/shared"
)

// Msg is the sealed interface for all board messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgQueueLoaded is sent when the queue has been read.
type MsgQueueLoaded struct {
	Active   []shared.TaskView      // Running task, then queued tasks in execution order
	Finished []*domain.HistoryEntry // Newest first
}

func (MsgQueueLoaded) sealed() {}

// MsgError is sent when reading the queue fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}
