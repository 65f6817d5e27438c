//go:build windows

package store

import (
	"fmt"
	"os"
	"path/filepath"
)

const lockFileName = ".dataset.lock"

// Lock is a best-effort lock on the dataset directory. Windows file locking
// is implicit with exclusive access; this keeps the same shape as the unix
// flock implementation.
type Lock struct {
	path string
	file *os.File
}

// AcquireLock opens the lock file with exclusive create semantics.
func AcquireLock(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating dataset directory: %w", err)
	}

	path := filepath.Join(dir, lockFileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}
	return &Lock{path: path, file: file}, nil
}

// Release closes and removes the lock file.
func (l *Lock) Release() {
	if l == nil || l.file == nil {
		return
	}
	_ = l.file.Close()
	l.file = nil
	_ = os.Remove(l.path)
}
