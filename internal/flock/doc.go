// Package flock provides the two OS-level locks that guard appends to a
// shared log file.
//
// # Range locks
//
// LockRange places an exclusive advisory lock on a byte range of an open
// file. A length of zero extends the range to the end of the file and
// beyond, which is what appenders use: every append locks "from the
// current end onwards", so concurrent appenders always conflict.
//
// On unix this is fcntl(F_SETLKW). POSIX record locks belong to the
// process, so they only exclude other processes; in-process callers must
// serialize themselves first.
//
// # Named locks
//
// NamedLock is a cross-process mutex backed by a lock file, flock(2) on unix
// and LockFileEx on windows. The name is derived from a hash of the
// resolved log path (see NameFor), so writers on different files never
// contend with each other.
//
// # Platform support
//
// Linux, the BSDs, darwin and windows are supported. On other platforms
// both locks are no-ops and Supported is false.
package flock
