package wal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlusher_SyncsInBackground(t *testing.T) {
	obs := &recordingObserver{}
	w := openTest(t, testPath(t), func(o *Options) {
		o.Durability = DurabilityBuffered
		o.FlushInterval = 5 * time.Millisecond
		o.Metrics = obs
	})

	require.NoError(t, w.Append(newEntry(t, 1)))
	assert.Eventually(t, func() bool { return obs.syncs.Load() > 0 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, w.Close())
	stopped := obs.syncs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, obs.syncs.Load())
}

func TestFlusher_NotStartedInSyncMode(t *testing.T) {
	w := openTest(t, testPath(t), func(o *Options) { o.FlushInterval = time.Millisecond })
	assert.Nil(t, w.flushStop)
}
