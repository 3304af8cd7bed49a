package wal

import "time"

// MetricsObserver receives writer events.
type MetricsObserver interface {
	// OnAppend is called after each append call, with the number of records
	// and bytes actually written.
	OnAppend(records int, bytes int64, duration time.Duration, err error)

	// OnSync is called after each fsync.
	OnSync(duration time.Duration, err error)

	// OnCheckpoint is called after each checkpoint call.
	OnCheckpoint(duration time.Duration, err error)
}

// NoopMetricsObserver is a no-op implementation of MetricsObserver.
type NoopMetricsObserver struct{}

func (NoopMetricsObserver) OnAppend(int, int64, time.Duration, error) {}
func (NoopMetricsObserver) OnSync(time.Duration, error)               {}
func (NoopMetricsObserver) OnCheckpoint(time.Duration, error)         {}
