package fs

import (
	"io"
	"os"
)

// File represents an open file.
type File interface {
	io.Writer
	io.Closer
	Sync() error
	Stat() (os.FileInfo, error)
	Name() string
	// Fd returns the OS handle used for advisory locking.
	Fd() uintptr
}

// FileSystem abstracts the filesystem operations the writer needs.
type FileSystem interface {
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
	Stat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
}

// LocalFS implements FileSystem using the local os package.
type LocalFS struct{}

func (LocalFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	return os.OpenFile(name, flag, perm) //nolint:gosec // G304: path is caller supplied
}

func (LocalFS) Stat(name string) (os.FileInfo, error)        { return os.Stat(name) }
func (LocalFS) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }

// Default is the default local file system.
var Default FileSystem = LocalFS{}
