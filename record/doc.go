// Package record implements the binary log record format: a self-describing,
// immutable blob that is either a transactional entry or a checkpoint marker.
//
// # Entry layout
//
// An entry is at least 45 bytes. All integers are big-endian.
//
//	offset  size  field
//	0       1     reserved, always 0x00
//	1       16    entry id (UUID, never all-zero)
//	17      8     timestamp, Ticks (UTC)
//	25      16    transaction id (UUID, never all-zero)
//	41      n     payload (opaque, n = len - 45)
//	41+n    4     CRC-32 of bytes [0, 41+n)
//
// # Checkpoint layout
//
// A checkpoint is exactly 34 bytes.
//
//	offset  size  field
//	0       1     marker, always 0x09
//	1       1     format version, currently 0x01
//	2       16    checkpoint id (UUID, never all-zero)
//	18      8     timestamp, Ticks (UTC)
//	26      4     magic 0x43484543 ("CHEC")
//	30      4     CRC-32 of bytes [0, 30)
//
// # Classification
//
// A record is a checkpoint if and only if it is 34 bytes long and starts with
// the marker byte. The two layouts overlap, so the classification must be
// made before any other field is interpreted. Field accessors do this
// internally: on a checkpoint TransactionID reads as uuid.Nil and Payload
// reads as empty, so identity and timestamp can be handled uniformly.
//
// # Integrity
//
// Validate recomputes the checksum (see internal/hash) and, for checkpoints,
// checks version and magic first. It never returns an error: corruption is a
// property of the data and is reported as false.
//
// The on-disk log is a plain concatenation of records with no separators.
package record
