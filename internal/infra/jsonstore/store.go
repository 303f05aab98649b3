// Package jsonstore provides a JSON file-based implementation of QueueRepository.
// Active tasks and history live in two documents, each a JSON array.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
)

// Ensure Store implements QueueRepository.
var _ domain.QueueRepository = (*Store)(nil)

// Store implements domain.QueueRepository using two JSON files in a directory.
type Store struct {
	tasksPath   string
	historyPath string
	lockPath    string
}

// New creates a new Store rooted at dir.
// The files do not need to exist; they are created on first write.
func New(dir string) *Store {
	return &Store{
		tasksPath:   domain.TasksPath(dir),
		historyPath: domain.HistoryPath(dir),
		lockPath:    filepath.Join(dir, ".queue.lock"),
	}
}

// Load returns a snapshot of the queue under a shared lock.
func (s *Store) Load() (*domain.Queue, error) {
	var q *domain.Queue
	err := s.withLock(func(data *domain.Queue) error {
		q = data
		return nil
	})
	return q, err
}

// Update applies fn under an exclusive lock and writes both documents.
// Nothing is written when fn fails.
func (s *Store) Update(fn func(*domain.Queue) error) error {
	return s.withLockWrite(fn)
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*domain.Queue) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *Store) withLockWrite(fn func(*domain.Queue) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	// Ensure lock file directory exists
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read() (*domain.Queue, error) {
	q := &domain.Queue{}
	if err := readArray(s.tasksPath, &q.Tasks); err != nil {
		return nil, err
	}
	if err := readArray(s.historyPath, &q.History); err != nil {
		return nil, err
	}
	for _, t := range q.Tasks {
		if t == nil || t.ID == "" {
			return nil, fmt.Errorf("%w: %s: task without id", domain.ErrStoreCorrupted, s.tasksPath)
		}
	}
	return q, nil
}

// readArray decodes a JSON array document. A missing file is an empty array.
func readArray[T any](path string, out *[]T) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(content, out); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrStoreCorrupted, path, err)
	}
	return nil
}

func (s *Store) write(q *domain.Queue) error {
	tasks := q.Tasks
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	history := q.History
	if history == nil {
		history = []*domain.HistoryEntry{}
	}
	// History first: an interrupted write may duplicate an archived task, never drop it.
	if err := writeAtomic(s.historyPath, history); err != nil {
		return err
	}
	return writeAtomic(s.tasksPath, tasks)
}

func writeAtomic(path string, v any) error {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
