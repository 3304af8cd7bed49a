package txwal

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/txwal/wal"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordAppend is called after each Append, AppendBatch or AppendRaw.
	// records is the number of records submitted, bytes the number that
	// reached the file.
	RecordAppend(records int, bytes int64, duration time.Duration, err error)

	// RecordSync is called after each fsync.
	RecordSync(duration time.Duration, err error)

	// RecordCheckpoint is called after each checkpoint.
	RecordCheckpoint(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAppend(int, int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordSync(time.Duration, error)               {}
func (NoopMetricsCollector) RecordCheckpoint(time.Duration, error)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AppendCount      atomic.Int64
	AppendErrors     atomic.Int64
	AppendRecords    atomic.Int64
	AppendBytes      atomic.Int64
	AppendTotalNanos atomic.Int64
	SyncCount        atomic.Int64
	SyncErrors       atomic.Int64
	SyncTotalNanos   atomic.Int64
	SyncMaxNanos     atomic.Int64
	CheckpointCount  atomic.Int64
	CheckpointErrors atomic.Int64
}

// RecordAppend implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAppend(records int, bytes int64, duration time.Duration, err error) {
	b.AppendCount.Add(1)
	b.AppendRecords.Add(int64(records))
	b.AppendBytes.Add(bytes)
	b.AppendTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AppendErrors.Add(1)
	}
}

// RecordSync implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSync(duration time.Duration, err error) {
	b.SyncCount.Add(1)
	ns := duration.Nanoseconds()
	b.SyncTotalNanos.Add(ns)
	for {
		cur := b.SyncMaxNanos.Load()
		if ns <= cur || b.SyncMaxNanos.CompareAndSwap(cur, ns) {
			break
		}
	}
	if err != nil {
		b.SyncErrors.Add(1)
	}
}

// RecordCheckpoint implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCheckpoint(_ time.Duration, err error) {
	b.CheckpointCount.Add(1)
	if err != nil {
		b.CheckpointErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AppendCount:      b.AppendCount.Load(),
		AppendErrors:     b.AppendErrors.Load(),
		AppendRecords:    b.AppendRecords.Load(),
		AppendBytes:      b.AppendBytes.Load(),
		AppendAvgNanos:   avg(b.AppendTotalNanos.Load(), b.AppendCount.Load()),
		SyncCount:        b.SyncCount.Load(),
		SyncErrors:       b.SyncErrors.Load(),
		SyncAvgNanos:     avg(b.SyncTotalNanos.Load(), b.SyncCount.Load()),
		SyncMaxNanos:     b.SyncMaxNanos.Load(),
		CheckpointCount:  b.CheckpointCount.Load(),
		CheckpointErrors: b.CheckpointErrors.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AppendCount      int64
	AppendErrors     int64
	AppendRecords    int64
	AppendBytes      int64
	AppendAvgNanos   int64
	SyncCount        int64
	SyncErrors       int64
	SyncAvgNanos     int64
	SyncMaxNanos     int64
	CheckpointCount  int64
	CheckpointErrors int64
}

// observer adapts a MetricsCollector to the wal writer's hooks.
type observer struct {
	c MetricsCollector
}

var _ wal.MetricsObserver = observer{}

func (o observer) OnAppend(records int, bytes int64, d time.Duration, err error) {
	o.c.RecordAppend(records, bytes, d, err)
}

func (o observer) OnSync(d time.Duration, err error) { o.c.RecordSync(d, err) }

func (o observer) OnCheckpoint(d time.Duration, err error) { o.c.RecordCheckpoint(d, err) }
