package wal

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/txwal/internal/fs"
	"github.com/hupe1980/txwal/record"
)

func withFaults(fault fs.Fault) func(o *Options) {
	ffs := fs.NewFaultyFS(nil)
	ffs.AddRule("txn.log", fault)
	return func(o *Options) { o.FileSystem = ffs }
}

func TestFault_OpenFails(t *testing.T) {
	_, err := Open(testPath(t), withFaults(fs.Fault{FailOnOpen: true}), func(o *Options) {
		o.LockDir = t.TempDir()
	})
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, fs.ErrInjected)
}

func TestFault_UnwritableFileRejectedAtOpen(t *testing.T) {
	_, err := Open(testPath(t), withFaults(fs.Fault{FailOnWrite: true}), func(o *Options) {
		o.LockDir = t.TempDir()
	})
	assert.ErrorIs(t, err, ErrIO)
}

func TestFault_WriteFailure(t *testing.T) {
	obs := &recordingObserver{}
	w := openTest(t, testPath(t),
		withFaults(fs.Fault{WriteLimit: 10}),
		func(o *Options) { o.Metrics = obs },
	)

	err := w.Append(newEntry(t, 1))
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, fs.ErrInjected)
	assert.Zero(t, w.EntriesWritten())
	assert.Zero(t, w.BytesWritten())
	assert.Len(t, obs.errs(), 1)

	// The writer remains usable after a failed write.
	assert.False(t, w.Closed())
	require.NoError(t, w.Flush())
}

func TestFault_SyncFailure(t *testing.T) {
	path := testPath(t)
	w := openTest(t, path, withFaults(fs.Fault{FailOnSync: true}))

	err := w.Append(newEntry(t, 1))
	assert.ErrorIs(t, err, ErrIO)
	assert.Zero(t, w.EntriesWritten())
	assert.Zero(t, w.BytesWritten())

	// Members before the last one are counted once written.
	err = w.AppendBatch([]record.Record{newEntry(t, 2), newEntry(t, 3), newEntry(t, 4)})
	assert.ErrorIs(t, err, ErrIO)
	assert.Equal(t, uint64(2), w.EntriesWritten())
	assert.Equal(t, uint64(2*record.EntrySize(testPayloadLen)), w.BytesWritten())

	_, err = w.Checkpoint()
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, w.Flush(), ErrIO)

	// The bytes themselves reached the file.
	assert.Len(t, readLog(t, path), 5)
}

func TestFault_PartialBatch(t *testing.T) {
	path := testPath(t)
	entrySize := int64(record.EntrySize(testPayloadLen))
	w := openTest(t, path,
		withFaults(fs.Fault{WriteLimit: 2 * entrySize}),
		func(o *Options) { o.Durability = DurabilityBuffered },
	)

	err := w.AppendBatch([]record.Record{newEntry(t, 1), newEntry(t, 2), newEntry(t, 3)})
	assert.ErrorIs(t, err, ErrIO)
	assert.Equal(t, uint64(2), w.EntriesWritten())
	assert.Equal(t, uint64(2*entrySize), w.BytesWritten())

	require.NoError(t, w.Flush())
	assert.Len(t, readLog(t, path), 2)
}

func TestFault_CustomError(t *testing.T) {
	diskFull := errors.New("no space left")
	w := openTest(t, testPath(t), withFaults(fs.Fault{WriteLimit: 1, Err: diskFull}))

	err := w.Append(newEntry(t, 1))
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, diskFull)
}

func TestFault_CloseFailure(t *testing.T) {
	path := testPath(t)
	w := openTest(t, path, withFaults(fs.Fault{FailOnClose: true}))
	require.NoError(t, w.Append(newEntry(t, 1)))

	err := w.Close()
	assert.ErrorIs(t, err, ErrIO)
	assert.True(t, w.Closed())
	assert.NoError(t, w.Close())
	assert.ErrorIs(t, w.Append(newEntry(t, 2)), ErrClosed)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(record.EntrySize(testPayloadLen)), info.Size())
}
