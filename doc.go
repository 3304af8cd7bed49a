// Package txwal is an append-only transaction write-ahead log.
//
// Every record is self-validating: a regular entry carries an entry id, a
// timestamp in 100ns ticks, a transaction id and an opaque payload, and a
// checkpoint is a fixed 34-byte marker. Both end in a big-endian CRC-32 over
// all preceding bytes, so a recovery reader can detect torn or corrupted
// writes without any external index.
//
// # Quick Start
//
//	log, err := txwal.Open("./data/txn.log")
//	if err != nil { ... }
//	defer log.Close()
//
//	rec, err := log.Append(ctx, uuid.New(), txID, payload)
//	cp, err := log.Checkpoint(ctx)
//
// # Durability
//
// By default every Append, AppendBatch and Checkpoint returns only after the
// bytes reached stable storage. WithDurability(wal.DurabilityBuffered) leaves
// them in the page cache until Flush, Close or the background flusher
// configured with WithFlushInterval.
//
// # Concurrency
//
// A Log is safe for concurrent use. Writers in other processes that open the
// same file coordinate through a named lock derived from the absolute path and
// an advisory byte-range lock on the end of the file. See package wal.
//
// # Packages
//
//   - record: the record format, encode/decode/validate
//   - wal: the file-backed writer behind Log
//   - payload: optional payload framing with LZ4 or zstd compression
package txwal
