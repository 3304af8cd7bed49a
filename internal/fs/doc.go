// Package fs provides the filesystem seam used by the log writer.
//
//   - [File]: an open, append-only capable file handle
//   - [FileSystem]: opening files and preparing directories
//
// [LocalFS] is the production implementation. [FaultyFS] wraps another
// FileSystem and injects write, sync and close failures for tests:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("txn.log", fs.Fault{FailOnSync: true})
//	w, _ := wal.Open(path, wal.WithFileSystem(ffs))
//
// Operations take no context.Context; local file I/O is not interruptible
// at the syscall level.
package fs
