package wal

import (
	"context"

	"github.com/hupe1980/txwal/record"
)

// Writer is an append-only log sink.
//
// Each operation comes in a blocking form and a Context form. The Context
// form gives up with ErrCancelled if ctx ends before the operation is
// admitted; once admitted it completes regardless of ctx.
//
// All append forms validate their input before writing any byte. A batch
// must be non-empty and every member must validate, otherwise nothing of
// it is written.
type Writer interface {
	// Append writes one record.
	Append(r record.Record) error
	AppendContext(ctx context.Context, r record.Record) error

	// AppendBatch writes records as one contiguous run under a single lock
	// hold, followed by at most one fsync.
	AppendBatch(rs []record.Record) error
	AppendBatchContext(ctx context.Context, rs []record.Record) error

	// AppendRaw decodes and validates an already encoded record, then
	// writes it unchanged.
	AppendRaw(raw []byte) error
	AppendRawContext(ctx context.Context, raw []byte) error

	// Flush forces written data to stable storage.
	Flush() error
	FlushContext(ctx context.Context) error

	// Checkpoint builds, writes and returns a new checkpoint marker.
	Checkpoint() (record.Record, error)
	CheckpointContext(ctx context.Context) (record.Record, error)

	// EntriesWritten is the number of entries appended; checkpoints are excluded.
	EntriesWritten() uint64
	// BytesWritten is the number of bytes appended, checkpoints included.
	BytesWritten() uint64

	// Closed reports whether Close has been called.
	Closed() bool

	// Close flushes and releases all resources. Subsequent calls are no-ops.
	Close() error
}
