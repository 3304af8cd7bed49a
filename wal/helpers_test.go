package wal

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/txwal/record"
)

const testPayloadLen = 32

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "txn.log")
}

// openTest opens a writer whose named lock files live in the test's temp dir.
func openTest(t *testing.T, path string, optFns ...func(o *Options)) *FileWriter {
	t.Helper()
	lockDir := t.TempDir()
	fns := append([]func(o *Options){func(o *Options) { o.LockDir = lockDir }}, optFns...)
	w, err := Open(path, fns...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func newEntry(t testing.TB, fill byte) record.Record {
	t.Helper()
	payload := make([]byte, testPayloadLen)
	for i := range payload {
		payload[i] = fill
	}
	r, err := record.NewEntry(uuid.New(), record.NowTicks(), uuid.New(), payload)
	require.NoError(t, err)
	return r
}

// readLog splits a log written with testPayloadLen entries back into records.
func readLog(t *testing.T, path string) []record.Record {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	entrySize := record.EntrySize(testPayloadLen)
	var out []record.Record
	for off := 0; off < len(data); {
		size := entrySize
		if data[off] == record.CheckpointMarker {
			size = record.CheckpointSize
		}
		require.LessOrEqual(t, off+size, len(data), "truncated record at offset %d", off)

		r, err := record.Decode(data[off : off+size])
		require.NoError(t, err)
		require.True(t, r.Validate(), "corrupt record at offset %d", off)
		out = append(out, r)
		off += size
	}
	return out
}

func corrupt(t *testing.T, r record.Record) record.Record {
	t.Helper()
	raw := r.Bytes()
	raw[len(raw)-1] ^= 0xFF
	bad, err := record.Decode(raw)
	require.NoError(t, err)
	require.False(t, bad.Validate())
	return bad
}

func capturePanic(fn func()) (v any) {
	defer func() { v = recover() }()
	fn()
	return nil
}

// recordingObserver is a MetricsObserver that counts events.
type recordingObserver struct {
	appends     atomic.Int64
	records     atomic.Int64
	bytes       atomic.Int64
	syncs       atomic.Int64
	checkpoints atomic.Int64

	mu       sync.Mutex
	lastErrs []error
}

func (o *recordingObserver) OnAppend(records int, bytes int64, _ time.Duration, err error) {
	o.appends.Add(1)
	o.records.Add(int64(records))
	o.bytes.Add(bytes)
	o.noteErr(err)
}

func (o *recordingObserver) OnSync(_ time.Duration, err error) {
	o.syncs.Add(1)
	o.noteErr(err)
}

func (o *recordingObserver) OnCheckpoint(_ time.Duration, err error) {
	o.checkpoints.Add(1)
	o.noteErr(err)
}

func (o *recordingObserver) noteErr(err error) {
	if err == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastErrs = append(o.lastErrs, err)
}

func (o *recordingObserver) errs() []error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]error(nil), o.lastErrs...)
}
