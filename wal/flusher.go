package wal

import (
	"errors"
	"time"
)

// startFlusher runs Flush every interval until the writer closes.
func (w *FileWriter) startFlusher(interval time.Duration) {
	w.flushStop = make(chan struct{})
	w.flushWg.Add(1)
	go w.runFlusher(interval)
}

func (w *FileWriter) runFlusher(interval time.Duration) {
	defer w.flushWg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.flushStop:
			return
		case <-ticker.C:
			if err := w.Flush(); err != nil && !errors.Is(err, ErrClosed) {
				w.logger.Warn("background flush failed", "error", err)
			}
		}
	}
}

// stopFlusher stops the background flusher and waits for it to exit.
func (w *FileWriter) stopFlusher() {
	if w.flushStop == nil {
		return
	}
	w.flushOnce.Do(func() { close(w.flushStop) })
	w.flushWg.Wait()
}
