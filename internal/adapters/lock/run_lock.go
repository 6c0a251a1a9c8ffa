// Package lock keeps two celeris processes from creating projects at the same time.
package lock

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

const fileName = "run.lock"

// Owner is written into the lock file so a blocked user can see who holds it.
type Owner struct {
	PID       int       `json:"pid"`
	Project   string    `json:"project,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrLocked is returned while another live process holds the lock.
type ErrLocked struct {
	Owner *Owner // nil if the lock file is unreadable
	Path  string
}

func (e *ErrLocked) Error() string {
	if e.Owner != nil {
		return fmt.Sprintf("another celeris run (pid %d, project %q) has been active since %s (lock file: %s)",
			e.Owner.PID, e.Owner.Project, e.Owner.CreatedAt.Format(time.RFC3339), e.Path)
	}
	return fmt.Sprintf("another celeris run is active (lock file: %s)", e.Path)
}

// RunLock is a lock file in the celeris data directory.
type RunLock struct {
	Dir        string
	Now        func() time.Time
	IsPIDAlive func(pid int) bool
}

// NewRunLock returns a lock stored in dir.
func NewRunLock(dir string) RunLock {
	return RunLock{
		Dir:        dir,
		Now:        time.Now,
		IsPIDAlive: isPIDAlive,
	}
}

// Path returns the location of the lock file.
func (l RunLock) Path() string {
	return filepath.Join(l.Dir, fileName)
}

// Acquire takes the lock for project and returns the function that releases it.
// A lock left behind by a dead process is taken over.
func (l RunLock) Acquire(project string) (release func() error, err error) {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := l.Path()

	for attempt := 0; attempt < 3; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			return l.write(f, path, project)
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create lock file: %w", err)
		}

		owner, readErr := readOwner(path)
		if readErr != nil {
			return nil, &ErrLocked{Path: path}
		}
		if l.IsPIDAlive(owner.PID) {
			return nil, &ErrLocked{Owner: owner, Path: path}
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, &ErrLocked{Owner: owner, Path: path}
		}
	}
	return nil, &ErrLocked{Path: path}
}

func (l RunLock) write(f *os.File, path, project string) (func() error, error) {
	data, _ := json.Marshal(Owner{PID: os.Getpid(), Project: project, CreatedAt: l.Now()})
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write lock file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to close lock file: %w", err)
	}

	return func() error {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}, nil
}

func readOwner(path string) (*Owner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var owner Owner
	if err := json.Unmarshal(data, &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}

// isPIDAlive uses signal 0, which only checks that the process exists.
func isPIDAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
