package flock

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/hupe1980/txwal/internal/hash"
)

// NameFor returns the lock file name for the log at absPath.
func NameFor(absPath string) string {
	key := filepath.Clean(absPath)
	if runtime.GOOS == "windows" {
		key = strings.ToLower(key)
	}
	return fmt.Sprintf("txwal-%08x.lock", hash.Checksum([]byte(key)))
}

// NamedLock is an exclusive lock shared by every process that opens the
// same name in the same directory.
type NamedLock struct {
	mu     sync.Mutex
	path   string
	f      *os.File
	closed bool
}

// OpenNamed opens (creating if needed) the lock file name inside dir.
// The lock is not held until Lock is called.
func OpenNamed(dir, name string) (*NamedLock, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600) //nolint:gosec // G304: derived from a hash
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	return &NamedLock{path: path, f: f}, nil
}

// Path returns the lock file path.
func (l *NamedLock) Path() string {
	return l.path
}

// Lock blocks until the lock is held. It is not cancellable.
func (l *NamedLock) Lock() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return os.ErrClosed
	}
	if err := lockFile(l.f.Fd()); err != nil {
		return fmt.Errorf("lock %s: %w", l.path, err)
	}
	return nil
}

// Unlock releases the lock.
func (l *NamedLock) Unlock() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return os.ErrClosed
	}
	if err := unlockFile(l.f.Fd()); err != nil {
		return fmt.Errorf("unlock %s: %w", l.path, err)
	}
	return nil
}

// Close releases the file handle. The lock file itself is left in place:
// removing it would race with another process that already opened it.
// Close is idempotent.
func (l *NamedLock) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.f.Close()
}

// LockRange blocks until an exclusive lock on [off, off+n) of the file
// behind fd is held. n == 0 locks from off to the end of any future file.
func LockRange(fd uintptr, off, n int64) error {
	if off < 0 || n < 0 {
		return fmt.Errorf("flock: invalid range off=%d n=%d", off, n)
	}
	return lockRange(fd, off, n)
}

// UnlockRange releases a lock taken by LockRange with the same arguments.
func UnlockRange(fd uintptr, off, n int64) error {
	if off < 0 || n < 0 {
		return fmt.Errorf("flock: invalid range off=%d n=%d", off, n)
	}
	return unlockRange(fd, off, n)
}
