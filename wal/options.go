package wal

import (
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/txwal/internal/fs"
)

// Durability controls when appended bytes are forced to stable storage.
type Durability int

const (
	// DurabilitySync calls fsync after every append, batch or checkpoint.
	// Slowest but nothing acknowledged can be lost.
	DurabilitySync Durability = iota

	// DurabilityBuffered leaves data in the OS page cache until Flush,
	// Close or the background flusher. A crash may lose acknowledged writes.
	DurabilityBuffered
)

func (d Durability) String() string {
	switch d {
	case DurabilitySync:
		return "sync"
	case DurabilityBuffered:
		return "buffered"
	default:
		return "unknown"
	}
}

// Options contains configuration for a FileWriter.
type Options struct {
	// Durability selects fsync-per-write or buffered mode.
	// Default: DurabilitySync.
	Durability Durability

	// FileSystem is used to open the log file. Default: fs.Default.
	FileSystem fs.FileSystem

	// Logger receives structured events. Default: discards everything.
	Logger *slog.Logger

	// Metrics receives per-operation measurements. Default: NoopMetricsObserver.
	Metrics MetricsObserver

	// CrossProcessLock enables the named lock shared by all processes that
	// open the same resolved path. Default: true.
	CrossProcessLock bool

	// LockDir is where named lock files are created. Default: os.TempDir().
	LockDir string

	// RangeLock enables the advisory byte-range lock around each write.
	// Default: true.
	RangeLock bool

	// FlushInterval starts a background flusher in DurabilityBuffered mode.
	// Zero disables it. Ignored in DurabilitySync mode.
	FlushInterval time.Duration

	// SlowSyncThreshold logs a (rate limited) warning when a single fsync
	// takes longer. Zero disables the warning. Default: 500ms.
	SlowSyncThreshold time.Duration
}

// DefaultOptions returns the default writer options.
func DefaultOptions() Options {
	return Options{
		Durability:        DurabilitySync,
		FileSystem:        fs.Default,
		Logger:            slog.New(slog.DiscardHandler),
		Metrics:           NoopMetricsObserver{},
		CrossProcessLock:  true,
		LockDir:           os.TempDir(),
		RangeLock:         true,
		SlowSyncThreshold: 500 * time.Millisecond,
	}
}

func (o *Options) normalize() {
	if o.FileSystem == nil {
		o.FileSystem = fs.Default
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if o.Metrics == nil {
		o.Metrics = NoopMetricsObserver{}
	}
	if o.LockDir == "" {
		o.LockDir = os.TempDir()
	}
	if o.FlushInterval < 0 {
		o.FlushInterval = 0
	}
}
