package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// errInvalidArgument reports a positional argument that could not be parsed.
var errInvalidArgument = errors.New("invalid argument")

// errorKinds maps sentinel errors to the stable kind reported to callers.
// Order matters only for errors wrapping more than one sentinel.
var errorKinds = []struct {
	err  error
	kind string
}{
	{domain.ErrStoreCorrupted, "store_corrupted"},
	{domain.ErrMailboxCorrupted, "mailbox_corrupted"},
	{domain.ErrCycle, "cycle"},
	{domain.ErrUnknownTask, "unknown_task"},
	{domain.ErrDuplicateTask, "duplicate_task"},
	{domain.ErrInvalidTransition, "invalid_transition"},
	{domain.ErrCancelRunning, "cancel_running"},
	{domain.ErrTaskRunning, "task_running"},
	{domain.ErrNotExecutable, "not_executable"},
	{domain.ErrScopeExtraction, "scope_extraction"},
	{domain.ErrEmptyCommand, "empty_command"},
	{domain.ErrInvalidPriority, "invalid_priority"},
	{domain.ErrInvalidStatus, "invalid_status"},
	{domain.ErrInvalidResolution, "invalid_resolution"},
	{domain.ErrInvalidMoveTarget, "invalid_move_target"},
	{domain.ErrInvalidGroup, "invalid_group"},
	{domain.ErrNoTasks, "no_tasks"},
	{domain.ErrNotGitRepository, "not_git_repository"},
	{domain.ErrUnsupportedTaskSrc, "unsupported_task_list"},
	{domain.ErrConfigExists, "config_exists"},
	{domain.ErrInvalidConfig, "invalid_config"},
	{errInvalidArgument, "invalid_argument"},
}

// ErrorKind returns the stable kind string for err.
func ErrorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "error"
}

// errorResponse is the JSON object printed for a failed command.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// WriteError prints err as a JSON error object.
func WriteError(w io.Writer, err error) {
	_ = writeJSON(w, errorResponse{Error: err.Error(), Kind: ErrorKind(err)})
}

// writeJSON prints v as one indented JSON object.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
