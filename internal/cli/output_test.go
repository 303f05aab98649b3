package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		kind string
	}{
		{domain.ErrCycle, "cycle"},
		{fmt.Errorf("add: %w", domain.ErrUnknownTask), "unknown_task"},
		{fmt.Errorf("load: %w", domain.ErrStoreCorrupted), "store_corrupted"},
		{domain.ErrCancelRunning, "cancel_running"},
		{domain.ErrInvalidTransition, "invalid_transition"},
		{errInvalidArgument, "invalid_argument"},
		{errors.New("something else"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			assert.Equal(t, tt.kind, ErrorKind(tt.err))
		})
	}
}

func TestWriteError(t *testing.T) {
	// Setup
	var buf bytes.Buffer
	err := fmt.Errorf("depend task-1: %w", domain.ErrCycle)

	// Execute
	WriteError(&buf, err)

	// Assert
	var got map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "cycle", got["kind"])
	assert.Equal(t, err.Error(), got["error"])
}
