package txwal

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/txwal/payload"
	"github.com/hupe1980/txwal/record"
	"github.com/hupe1980/txwal/wal"
)

func openLog(t *testing.T, opts ...Option) *Log {
	t.Helper()
	opts = append([]Option{WithLockDir(t.TempDir())}, opts...)
	l, err := Open(filepath.Join(t.TempDir(), "txn.log"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestLog_AppendAndCheckpoint(t *testing.T) {
	ctx := context.Background()
	metrics := &BasicMetricsCollector{}
	l := openLog(t, WithMetricsCollector(metrics))

	txID := uuid.New()
	r, err := l.Append(ctx, uuid.New(), txID, []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, txID, r.TransactionID())
	assert.True(t, r.Validate())

	batch := make([]record.Record, 3)
	for i := range batch {
		batch[i], err = record.NewEntry(uuid.New(), record.NowTicks(), txID, []byte{byte(i)})
		require.NoError(t, err)
	}
	require.NoError(t, l.AppendBatch(ctx, batch))
	require.NoError(t, l.AppendRaw(ctx, batch[0].Bytes()))

	cp, err := l.Checkpoint(ctx)
	require.NoError(t, err)
	assert.True(t, cp.IsCheckpoint())

	assert.Equal(t, uint64(5), l.EntriesWritten())
	wantBytes := r.Len() + 4*record.EntrySize(1) + record.CheckpointSize
	assert.Equal(t, uint64(wantBytes), l.BytesWritten())

	stats := metrics.GetStats()
	assert.Equal(t, int64(3), stats.AppendCount)
	assert.Equal(t, int64(5), stats.AppendRecords)
	assert.Equal(t, int64(wantBytes-record.CheckpointSize), stats.AppendBytes)
	assert.Equal(t, int64(4), stats.SyncCount)
	assert.Equal(t, int64(1), stats.CheckpointCount)
	assert.Zero(t, stats.AppendErrors)
	assert.GreaterOrEqual(t, stats.SyncMaxNanos, stats.SyncAvgNanos)
}

func TestLog_Errors(t *testing.T) {
	ctx := context.Background()
	l := openLog(t)

	_, err := l.Append(ctx, uuid.Nil, uuid.New(), []byte("x"))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	var oe *OpError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, "append", oe.Op)
	assert.Equal(t, l.Path(), oe.Path)

	_, err = l.Append(ctx, uuid.New(), uuid.New(), nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.ErrorIs(t, l.AppendRaw(ctx, []byte{1, 2, 3}), ErrMalformed)
	assert.ErrorIs(t, l.AppendBatch(ctx, nil), ErrInvalidArgument)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = l.Checkpoint(cancelled)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)

	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
	assert.ErrorIs(t, l.Flush(ctx), ErrClosed)
	_, err = l.Append(ctx, uuid.New(), uuid.New(), []byte{})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open("")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	var oe *OpError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, "open", oe.Op)
}

func TestLog_PayloadCodec(t *testing.T) {
	ctx := context.Background()
	l := openLog(t, WithPayloadCodec(payload.CodecZstd))

	data := bytes.Repeat([]byte("row:42;"), 200)
	r, err := l.Append(ctx, uuid.New(), uuid.New(), data)
	require.NoError(t, err)
	assert.Less(t, r.PayloadLen(), len(data))

	got, err := l.DecodePayload(r)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	cp, err := l.Checkpoint(ctx)
	require.NoError(t, err)
	_, err = l.DecodePayload(cp)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	bad := openLog(t, WithPayloadCodec(payload.Codec(99)))
	_, err = bad.Append(ctx, uuid.New(), uuid.New(), data)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, err, payload.ErrUnknownCodec)
	assert.Zero(t, bad.EntriesWritten())
}

func TestLog_RawPayloadByDefault(t *testing.T) {
	l := openLog(t)
	r, err := l.Append(context.Background(), uuid.New(), uuid.New(), []byte("plain"))
	require.NoError(t, err)

	got, err := l.DecodePayload(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("plain"), got)
}

func TestLog_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l := openLog(t, WithLogger(logger))

	ctx := context.Background()
	_, err := l.Append(ctx, uuid.New(), uuid.New(), []byte("x"))
	require.NoError(t, err)
	_, err = l.Append(ctx, uuid.Nil, uuid.New(), []byte("x"))
	require.Error(t, err)
	_, err = l.Checkpoint(ctx)
	require.NoError(t, err)
	require.NoError(t, l.Close())

	out := buf.String()
	assert.Contains(t, out, "wal opened")
	assert.Contains(t, out, "append completed")
	assert.Contains(t, out, "checkpoint completed")
	assert.Contains(t, out, "wal closed")
	assert.Contains(t, out, l.Path())
}

func TestLog_Buffered(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	l := openLog(t,
		WithDurability(wal.DurabilityBuffered),
		WithFlushInterval(5*time.Millisecond),
		WithMetricsCollector(metrics),
		WithoutCrossProcessLock(),
		WithoutRangeLock(),
	)
	assert.Equal(t, wal.DurabilityBuffered, l.w.Durability())

	_, err := l.Append(context.Background(), uuid.New(), uuid.New(), []byte("x"))
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return metrics.SyncCount.Load() > 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestLog_WriterInterface(t *testing.T) {
	l := openLog(t)
	var w wal.Writer = l.Writer()

	r, err := record.NewEntry(uuid.New(), record.NowTicks(), uuid.New(), []byte{})
	require.NoError(t, err)
	require.NoError(t, w.Append(r))
	assert.Equal(t, uint64(1), l.EntriesWritten())
}

func TestBasicMetricsCollector(t *testing.T) {
	var m BasicMetricsCollector
	assert.Equal(t, BasicMetricsStats{}, m.GetStats())

	m.RecordAppend(2, 100, 10*time.Nanosecond, nil)
	m.RecordAppend(1, 0, 30*time.Nanosecond, errors.New("boom"))
	m.RecordSync(5*time.Nanosecond, nil)
	m.RecordSync(15*time.Nanosecond, errors.New("boom"))
	m.RecordCheckpoint(time.Nanosecond, nil)

	s := m.GetStats()
	assert.Equal(t, int64(2), s.AppendCount)
	assert.Equal(t, int64(1), s.AppendErrors)
	assert.Equal(t, int64(3), s.AppendRecords)
	assert.Equal(t, int64(100), s.AppendBytes)
	assert.Equal(t, int64(20), s.AppendAvgNanos)
	assert.Equal(t, int64(10), s.SyncAvgNanos)
	assert.Equal(t, int64(15), s.SyncMaxNanos)
	assert.Equal(t, int64(1), s.SyncErrors)
	assert.Equal(t, int64(1), s.CheckpointCount)
}
