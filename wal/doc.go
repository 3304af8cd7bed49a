// Package wal provides the append-only writer of the transaction log.
//
// A [Writer] appends encoded records (see package record) to a single log
// file. [FileWriter] is the file-backed implementation:
//
//	w, err := wal.Open("./data/txn.log", func(o *wal.Options) {
//	    o.Durability = wal.DurabilitySync
//	})
//	if err != nil { ... }
//	defer w.Close()
//
//	rec, _ := record.NewEntry(entryID, record.NowTicks(), txID, payload)
//	if err := w.AppendContext(ctx, rec); err != nil { ... }
//
// # Locking
//
// Every append, flush and checkpoint runs inside three nested locks,
// acquired in this order and released in reverse:
//
//  1. an in-process semaphore; waiting on it honors ctx cancellation
//  2. a named cross-process lock keyed by the resolved log path
//  3. an advisory byte-range lock from the current end of file, held only
//     around the write itself
//
// Operations are admitted to the critical section one at a time and their
// bytes land in the file in admission order. Once admitted, an operation
// runs to completion even if its context is cancelled.
//
// # Durability
//
// With DurabilitySync every append is followed by fsync before it returns.
// With DurabilityBuffered data is left to the OS page cache and made durable
// by Flush, by Close, or by the background flusher when FlushInterval is set.
//
// # Counters
//
// EntriesWritten counts entries only; BytesWritten counts every byte
// appended, checkpoints included. Counters are never rolled back: a failed
// batch keeps the counts of the members written before the failure.
package wal
