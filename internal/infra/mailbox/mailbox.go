// Package mailbox provides the file-based continuation mailbox.
package mailbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// Ensure File implements domain.Mailbox.
var _ domain.Mailbox = (*File)(nil)

// File stores at most one continuation record in a JSON file.
// Presence of the file is the signal; consuming it deletes it.
type File struct {
	clock domain.Clock
	path  string
	ttl   time.Duration
}

// New creates a mailbox in queueDir. A zero ttl disables expiry.
func New(queueDir string, ttl time.Duration, clock domain.Clock) *File {
	return &File{
		path:  domain.MailboxPath(queueDir),
		ttl:   ttl,
		clock: clock,
	}
}

// Write stores c, replacing any unconsumed record.
func (f *File) Write(c domain.Continuation) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o750); err != nil {
		return fmt.Errorf("create mailbox directory: %w", err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	content, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal continuation: %w", err)
	}
	return writeAtomic(f.path, content)
}

// Consume claims the pending record by renaming it away, so that two
// concurrent consumers never both receive it.
func (f *File) Consume() (*domain.Continuation, error) {
	claim := f.path + ".claim-" + strconv.Itoa(os.Getpid())
	if err := os.Rename(f.path, claim); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("claim continuation: %w", err)
	}
	defer func() { _ = os.Remove(claim) }()

	c, err := decode(claim)
	if err != nil {
		return nil, err
	}
	if c.Expired(f.clock.Now(), f.ttl) {
		return nil, nil
	}
	return c, nil
}

// Peek returns the pending record without consuming it.
// An expired record is deleted and reported as absent.
func (f *File) Peek() (*domain.Continuation, error) {
	c, err := decode(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if c.Expired(f.clock.Now(), f.ttl) {
		_ = os.Remove(f.path)
		return nil, nil
	}
	return c, nil
}

func decode(path string) (*domain.Continuation, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(content)) == "" {
		return nil, fmt.Errorf("%w: empty file", domain.ErrMailboxCorrupted)
	}
	var c domain.Continuation
	if err := json.Unmarshal(content, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMailboxCorrupted, err)
	}
	if c.TaskID == "" {
		return nil, fmt.Errorf("%w: missing task_id", domain.ErrMailboxCorrupted)
	}
	return &c, nil
}

func writeAtomic(path string, content []byte) error {
	file, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := file.Name()
	if _, err := file.Write(content); err != nil {
		_ = file.Close()
		_ = os.Remove(name)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
