//go:build linux || darwin || freebsd || openbsd || netbsd || dragonfly

package flock

import (
	"io"

	"golang.org/x/sys/unix"
)

// Supported reports whether locks are enforced on this platform.
const Supported = true

func lockRange(fd uintptr, off, n int64) error {
	lk := unix.Flock_t{
		Type:   unix.F_WRLCK,
		Whence: io.SeekStart,
		Start:  off,
		Len:    n,
	}
	return retryEINTR(func() error {
		return unix.FcntlFlock(fd, unix.F_SETLKW, &lk)
	})
}

func unlockRange(fd uintptr, off, n int64) error {
	lk := unix.Flock_t{
		Type:   unix.F_UNLCK,
		Whence: io.SeekStart,
		Start:  off,
		Len:    n,
	}
	return retryEINTR(func() error {
		return unix.FcntlFlock(fd, unix.F_SETLK, &lk)
	})
}

func lockFile(fd uintptr) error {
	return retryEINTR(func() error {
		return unix.Flock(int(fd), unix.LOCK_EX)
	})
}

func unlockFile(fd uintptr) error {
	return retryEINTR(func() error {
		return unix.Flock(int(fd), unix.LOCK_UN)
	})
}

func retryEINTR(fn func() error) error {
	for {
		err := fn()
		if err != unix.EINTR {
			return err
		}
	}
}
