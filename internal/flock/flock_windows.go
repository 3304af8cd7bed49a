//go:build windows

package flock

import (
	"golang.org/x/sys/windows"
)

// Supported reports whether locks are enforced on this platform.
const Supported = true

func rangeArgs(off, n int64) (windows.Overlapped, uint32, uint32) {
	var ol windows.Overlapped
	ol.Offset = uint32(off)
	ol.OffsetHigh = uint32(off >> 32)
	if n == 0 {
		return ol, ^uint32(0), ^uint32(0)
	}
	return ol, uint32(n), uint32(n >> 32)
}

func lockRange(fd uintptr, off, n int64) error {
	ol, lo, hi := rangeArgs(off, n)
	return windows.LockFileEx(windows.Handle(fd), windows.LOCKFILE_EXCLUSIVE_LOCK, 0, lo, hi, &ol)
}

func unlockRange(fd uintptr, off, n int64) error {
	ol, lo, hi := rangeArgs(off, n)
	return windows.UnlockFileEx(windows.Handle(fd), 0, lo, hi, &ol)
}

func lockFile(fd uintptr) error {
	return lockRange(fd, 0, 1)
}

func unlockFile(fd uintptr) error {
	return unlockRange(fd, 0, 1)
}
