package txwal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hupe1980/txwal/payload"
	"github.com/hupe1980/txwal/record"
	"github.com/hupe1980/txwal/wal"
)

// Log is a transaction write-ahead log backed by a single file.
type Log struct {
	w       *wal.FileWriter
	logger  *Logger
	metrics MetricsCollector
	opts    options
}

// Open opens or creates the log at path.
func Open(path string, opts ...Option) (*Log, error) {
	o := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range opts {
		fn(&o)
	}

	walOpts := append([]func(*wal.Options){func(wo *wal.Options) {
		wo.Logger = o.logger.Logger
		wo.Metrics = observer{c: o.metrics}
	}}, o.walOptions...)

	w, err := wal.Open(path, walOpts...)
	if err != nil {
		return nil, translateError("open", path, err)
	}

	return &Log{
		w:       w,
		logger:  o.logger.WithPath(w.Path()),
		metrics: o.metrics,
		opts:    o,
	}, nil
}

// Path returns the absolute path of the log file.
func (l *Log) Path() string { return l.w.Path() }

// Writer exposes the underlying writer, e.g. for a transaction manager that
// depends on the wal.Writer interface.
func (l *Log) Writer() wal.Writer { return l.w }

// Append builds an entry stamped with the current time and appends it.
// With WithPayloadCodec the payload is framed before it is stored.
func (l *Log) Append(ctx context.Context, entryID, txID uuid.UUID, data []byte) (record.Record, error) {
	if data != nil && l.opts.framed {
		framed, err := payload.Encode(l.opts.codec, data)
		if err != nil {
			return record.Record{}, translateError("append", l.Path(), err)
		}
		data = framed
	}

	r, err := record.NewEntry(entryID, record.NowTicks(), txID, data)
	if err != nil {
		return record.Record{}, translateError("append", l.Path(), err)
	}
	if err := l.AppendRecord(ctx, r); err != nil {
		return record.Record{}, err
	}
	return r, nil
}

// AppendRecord appends a pre-built record.
func (l *Log) AppendRecord(ctx context.Context, r record.Record) error {
	err := l.w.AppendContext(ctx, r)
	l.logger.LogAppend(ctx, 1, err)
	return translateError("append", l.Path(), err)
}

// AppendBatch appends rs contiguously with a single sync.
func (l *Log) AppendBatch(ctx context.Context, rs []record.Record) error {
	err := l.w.AppendBatchContext(ctx, rs)
	l.logger.LogAppend(ctx, len(rs), err)
	return translateError("append batch", l.Path(), err)
}

// AppendRaw decodes, validates and appends an encoded record.
func (l *Log) AppendRaw(ctx context.Context, raw []byte) error {
	err := l.w.AppendRawContext(ctx, raw)
	l.logger.LogAppend(ctx, 1, err)
	return translateError("append raw", l.Path(), err)
}

// Checkpoint writes a checkpoint marker and returns it.
func (l *Log) Checkpoint(ctx context.Context) (record.Record, error) {
	cp, err := l.w.CheckpointContext(ctx)
	l.logger.LogCheckpoint(ctx, cp.EntryID(), cp.Timestamp(), err)
	return cp, translateError("checkpoint", l.Path(), err)
}

// Flush forces buffered bytes to stable storage.
func (l *Log) Flush(ctx context.Context) error {
	return translateError("flush", l.Path(), l.w.FlushContext(ctx))
}

// EntriesWritten returns the number of regular entries durably written.
func (l *Log) EntriesWritten() uint64 { return l.w.EntriesWritten() }

// BytesWritten returns the number of bytes written, checkpoints included.
func (l *Log) BytesWritten() uint64 { return l.w.BytesWritten() }

// Close flushes and closes the log. It is safe to call more than once.
func (l *Log) Close() error {
	return translateError("close", l.Path(), l.w.Close())
}

// DecodePayload returns the caller's bytes from an entry written by Append.
// Without WithPayloadCodec it returns the stored payload as is.
func (l *Log) DecodePayload(r record.Record) ([]byte, error) {
	if r.IsCheckpoint() {
		return nil, fmt.Errorf("%w: checkpoint has no payload", ErrInvalidArgument)
	}
	if !l.opts.framed {
		return r.Payload(), nil
	}
	data, _, err := payload.Decode(r.Payload())
	return data, err
}
