package wal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/hupe1980/txwal/internal/flock"
	"github.com/hupe1980/txwal/internal/fs"
	"github.com/hupe1980/txwal/record"
)

var _ Writer = (*FileWriter)(nil)

// FileWriter appends records to a single file. It is safe for concurrent use.
type FileWriter struct {
	path   string
	opts   Options
	file   fs.File
	logger *slog.Logger

	sem   *semaphore.Weighted // in-process lock, context aware
	named *flock.NamedLock    // cross-process lock, nil when disabled

	closed  atomic.Bool
	entries atomic.Uint64
	bytes   atomic.Uint64

	slowSyncLog rate.Sometimes

	// Background flusher (buffered mode only).
	flushStop chan struct{}
	flushOnce sync.Once
	flushWg   sync.WaitGroup

	// newCheckpoint builds checkpoint markers; replaced in tests.
	newCheckpoint func(uuid.UUID) (record.Record, error)
}

// Open opens or creates the log file at path for appending.
func Open(path string, optFns ...func(o *Options)) (*FileWriter, error) {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.normalize()

	if path == "" {
		return nil, fmt.Errorf("%w: path is required", ErrInvalidArgument)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %q: %w", ErrInvalidArgument, path, err)
	}

	fsys := opts.FileSystem
	if err := fsys.MkdirAll(filepath.Dir(abs), 0o750); err != nil {
		return nil, ioError("mkdir", filepath.Dir(abs), err)
	}

	file, err := fsys.OpenFile(abs, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, ioError("open", abs, err)
	}
	info, err := checkWritable(file)
	if err != nil {
		_ = file.Close()
		return nil, ioError("open", abs, err)
	}

	w := &FileWriter{
		path:          abs,
		opts:          opts,
		file:          file,
		logger:        opts.Logger.With("path", abs),
		sem:           semaphore.NewWeighted(1),
		slowSyncLog:   rate.Sometimes{First: 1, Interval: 10 * time.Second},
		newCheckpoint: record.NewCheckpoint,
	}

	if opts.CrossProcessLock {
		named, err := flock.OpenNamed(opts.LockDir, flock.NameFor(abs))
		if err != nil {
			_ = file.Close()
			return nil, ioError("open lock", abs, err)
		}
		w.named = named
	}

	if opts.Durability == DurabilityBuffered && opts.FlushInterval > 0 {
		w.startFlusher(opts.FlushInterval)
	}

	w.logger.Info("wal opened",
		"durability", opts.Durability.String(),
		"size", humanize.IBytes(uint64(info.Size())),
		"crossProcessLock", opts.CrossProcessLock,
		"rangeLock", opts.RangeLock,
	)
	return w, nil
}

func checkWritable(f fs.File) (os.FileInfo, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", info.Mode())
	}
	if _, err := f.Write(nil); err != nil {
		return nil, fmt.Errorf("not writable: %w", err)
	}
	return info, nil
}

// Path returns the resolved absolute path of the log file.
func (w *FileWriter) Path() string { return w.path }

// Durability returns the configured durability mode.
func (w *FileWriter) Durability() Durability { return w.opts.Durability }

// EntriesWritten implements Writer.
func (w *FileWriter) EntriesWritten() uint64 { return w.entries.Load() }

// BytesWritten implements Writer.
func (w *FileWriter) BytesWritten() uint64 { return w.bytes.Load() }

// Closed implements Writer.
func (w *FileWriter) Closed() bool { return w.closed.Load() }

// Append implements Writer.
func (w *FileWriter) Append(r record.Record) error {
	return w.AppendContext(context.Background(), r)
}

// AppendContext implements Writer.
func (w *FileWriter) AppendContext(ctx context.Context, r record.Record) error {
	if err := checkRecord(r); err != nil {
		return err
	}
	return w.append(ctx, []record.Record{r})
}

// AppendBatch implements Writer.
func (w *FileWriter) AppendBatch(rs []record.Record) error {
	return w.AppendBatchContext(context.Background(), rs)
}

// AppendBatchContext implements Writer.
func (w *FileWriter) AppendBatchContext(ctx context.Context, rs []record.Record) error {
	if len(rs) == 0 {
		return fmt.Errorf("%w: empty batch", ErrInvalidArgument)
	}
	for i, r := range rs {
		if err := checkRecord(r); err != nil {
			return fmt.Errorf("batch member %d: %w", i, err)
		}
	}
	return w.append(ctx, rs)
}

// AppendRaw implements Writer.
func (w *FileWriter) AppendRaw(raw []byte) error {
	return w.AppendRawContext(context.Background(), raw)
}

// AppendRawContext implements Writer.
func (w *FileWriter) AppendRawContext(ctx context.Context, raw []byte) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: empty raw buffer", ErrInvalidArgument)
	}
	r, err := record.Decode(raw)
	if err != nil {
		return err
	}
	return w.AppendContext(ctx, r)
}

// Flush implements Writer.
func (w *FileWriter) Flush() error {
	return w.FlushContext(context.Background())
}

// FlushContext implements Writer.
func (w *FileWriter) FlushContext(ctx context.Context) error {
	return w.exec(ctx, w.syncLocked)
}

// Checkpoint implements Writer.
func (w *FileWriter) Checkpoint() (record.Record, error) {
	return w.CheckpointContext(context.Background())
}

// CheckpointContext implements Writer. The checkpoint is built inside the
// critical section, so checkpoint timestamps follow file order.
func (w *FileWriter) CheckpointContext(ctx context.Context) (record.Record, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return record.Record{}, fmt.Errorf("generate checkpoint id: %w", err)
	}

	start := time.Now()
	var cp record.Record
	err = w.exec(ctx, func() error {
		var err error
		cp, err = w.newCheckpoint(id)
		if err != nil {
			return err
		}
		if !cp.IsCheckpoint() || !cp.Validate() {
			panic(fmt.Errorf("%w: %s", ErrSelfCheck, cp))
		}
		_, err = w.writeLocked([]record.Record{cp})
		return err
	})
	w.opts.Metrics.OnCheckpoint(time.Since(start), err)
	if err != nil {
		return record.Record{}, err
	}

	w.logger.Debug("checkpoint written", "id", cp.EntryID(), "timestamp", cp.Timestamp().String())
	return cp, nil
}

func (w *FileWriter) append(ctx context.Context, rs []record.Record) error {
	start := time.Now()
	var written int64
	err := w.exec(ctx, func() error {
		var err error
		written, err = w.writeLocked(rs)
		return err
	})
	w.opts.Metrics.OnAppend(len(rs), written, time.Since(start), err)
	return err
}

// exec runs fn with the in-process and cross-process locks held.
func (w *FileWriter) exec(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return cancelled(err)
	}
	if w.closed.Load() {
		return ErrClosed
	}
	if err := w.sem.Acquire(ctx, 1); err != nil {
		return cancelled(err)
	}
	defer w.sem.Release(1)

	// Close may have won the race for the semaphore.
	if w.closed.Load() {
		return ErrClosed
	}

	if w.named != nil {
		if err := w.named.Lock(); err != nil {
			return ioError("lock", w.path, err)
		}
		defer func() {
			if err := w.named.Unlock(); err != nil {
				w.logger.Warn("named lock release failed", "error", err)
			}
		}()
	}

	return fn()
}

// writeLocked appends rs as one contiguous run and returns the number of
// bytes written. Counters advance per record as it lands; in sync mode the
// last record is only counted once the fsync succeeded.
func (w *FileWriter) writeLocked(rs []record.Record) (int64, error) {
	if w.opts.RangeLock {
		unlock, err := w.lockTail()
		if err != nil {
			return 0, err
		}
		defer unlock()
	}

	var written int64
	for i, r := range rs {
		n, err := r.WriteTo(w.file)
		written += n
		if err != nil {
			w.logger.Error("wal write failed", "error", err, "record", i, "batch", len(rs))
			return written, ioError("write", w.path, err)
		}
		if i == len(rs)-1 && w.opts.Durability == DurabilitySync {
			if err := w.syncLocked(); err != nil {
				return written, err
			}
		}
		w.count(r)
	}
	return written, nil
}

func (w *FileWriter) count(r record.Record) {
	w.bytes.Add(uint64(r.Len()))
	if !r.IsCheckpoint() {
		w.entries.Add(1)
	}
}

// lockTail takes the advisory lock from the current end of file onwards.
func (w *FileWriter) lockTail() (func(), error) {
	info, err := w.file.Stat()
	if err != nil {
		return nil, ioError("stat", w.path, err)
	}
	off := info.Size()
	fd := w.file.Fd()
	if err := flock.LockRange(fd, off, 0); err != nil {
		return nil, ioError("lock range", w.path, err)
	}
	return func() {
		if err := flock.UnlockRange(fd, off, 0); err != nil {
			w.logger.Warn("range lock release failed", "error", err, "offset", off)
		}
	}, nil
}

func (w *FileWriter) syncLocked() error {
	start := time.Now()
	err := w.file.Sync()
	elapsed := time.Since(start)
	w.opts.Metrics.OnSync(elapsed, err)

	if err != nil {
		w.logger.Error("wal sync failed", "error", err)
		return ioError("sync", w.path, err)
	}
	if t := w.opts.SlowSyncThreshold; t > 0 && elapsed > t {
		w.slowSyncLog.Do(func() {
			w.logger.Warn("slow wal sync", "elapsed", elapsed, "threshold", t)
		})
	}
	return nil
}

// Close flushes, releases the file and the locks. It waits for in-flight
// operations. A second call is a no-op.
func (w *FileWriter) Close() error {
	if w.closed.Load() {
		return nil
	}
	w.stopFlusher()

	// Cannot fail with a background context.
	_ = w.sem.Acquire(context.Background(), 1)
	defer w.sem.Release(1)

	if w.closed.Load() {
		return nil
	}
	w.closed.Store(true)

	var errs []error
	if err := w.file.Sync(); err != nil {
		errs = append(errs, ioError("sync", w.path, err))
	}
	if err := w.file.Close(); err != nil {
		errs = append(errs, ioError("close", w.path, err))
	}
	if w.named != nil {
		if err := w.named.Close(); err != nil {
			errs = append(errs, ioError("close lock", w.path, err))
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		w.logger.Error("wal close failed", "error", err)
		return err
	}
	w.logger.Info("wal closed",
		"entries", w.entries.Load(),
		"bytes", humanize.IBytes(w.bytes.Load()),
	)
	return nil
}
