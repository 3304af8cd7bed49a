package txwal

import (
	"time"

	"github.com/hupe1980/txwal/payload"
	"github.com/hupe1980/txwal/wal"
)

type options struct {
	logger     *Logger
	metrics    MetricsCollector
	codec      payload.Codec
	framed     bool
	walOptions []func(*wal.Options)
}

// Option configures Open.
type Option func(*options)

// WithLogger sets the logger for the log and its writer.
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &txwal.BasicMetricsCollector{}
//	log, _ := txwal.Open("txn.log", txwal.WithMetricsCollector(metrics))
//	// ... use log ...
//	stats := metrics.GetStats()
//	fmt.Printf("Appends: %d, Avg sync: %dns\n", stats.AppendCount, stats.SyncAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithDurability selects fsync-per-write (default) or buffered mode.
func WithDurability(d wal.Durability) Option {
	return WithWALOptions(func(o *wal.Options) { o.Durability = d })
}

// WithFlushInterval starts a background flusher in buffered mode.
func WithFlushInterval(d time.Duration) Option {
	return WithWALOptions(func(o *wal.Options) { o.FlushInterval = d })
}

// WithLockDir sets the directory holding named lock files.
func WithLockDir(dir string) Option {
	return WithWALOptions(func(o *wal.Options) { o.LockDir = dir })
}

// WithoutCrossProcessLock disables the named lock. The byte-range lock
// remains unless WithoutRangeLock is also given.
func WithoutCrossProcessLock() Option {
	return WithWALOptions(func(o *wal.Options) { o.CrossProcessLock = false })
}

// WithoutRangeLock disables the advisory byte-range lock.
func WithoutRangeLock() Option {
	return WithWALOptions(func(o *wal.Options) { o.RangeLock = false })
}

// WithPayloadCodec frames every payload passed to Log.Append with the given
// codec (see package payload). Readers must then call payload.Decode.
func WithPayloadCodec(c payload.Codec) Option {
	return func(o *options) {
		o.codec = c
		o.framed = true
	}
}

// WithWALOptions passes raw writer options through. They are applied after
// the options derived from this package.
//
// Example:
//
//	txwal.Open("txn.log", txwal.WithWALOptions(func(o *wal.Options) {
//	    o.SlowSyncThreshold = 50 * time.Millisecond
//	}))
func WithWALOptions(optFns ...func(*wal.Options)) Option {
	return func(o *options) {
		o.walOptions = append(o.walOptions, optFns...)
	}
}
