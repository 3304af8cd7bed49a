package record

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/hupe1980/txwal/internal/hash"
)

// Kind classifies a record.
type Kind uint8

const (
	// KindEntry is a regular transactional entry.
	KindEntry Kind = iota
	// KindCheckpoint is a checkpoint marker.
	KindCheckpoint
)

func (k Kind) String() string {
	switch k {
	case KindEntry:
		return "entry"
	case KindCheckpoint:
		return "checkpoint"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

const (
	idSize   = 16
	tickSize = 8

	// Entry layout.
	entryReserved    byte = 0x00
	entryIDOffset         = 1
	entryTimeOffset       = entryIDOffset + idSize     // 17
	entryTxIDOffset       = entryTimeOffset + tickSize // 25
	entryPayloadStart     = entryTxIDOffset + idSize   // 41

	// EntryHeaderSize is the number of bytes preceding an entry payload.
	EntryHeaderSize = entryPayloadStart
	// MinEntrySize is the size of an entry with an empty payload.
	MinEntrySize = EntryHeaderSize + hash.Size // 45

	// Checkpoint layout.
	checkpointVersionOffset  = 1
	checkpointIDOffset       = 2
	checkpointTimeOffset     = checkpointIDOffset + idSize     // 18
	checkpointMagicOffset    = checkpointTimeOffset + tickSize // 26
	checkpointChecksumOffset = checkpointMagicOffset + 4       // 30

	// CheckpointMarker is the first byte of every checkpoint.
	CheckpointMarker byte = 0x09
	// CheckpointVersion is the only checkpoint format version this package writes and accepts.
	CheckpointVersion byte = 0x01
	// CheckpointMagic is "CHEC" read as a big-endian uint32.
	CheckpointMagic uint32 = 0x43484543
	// CheckpointSize is the fixed size of a checkpoint.
	CheckpointSize = checkpointChecksumOffset + hash.Size // 34
)

// Record is an immutable encoded log record.
//
// The zero value is an empty record that never validates. Records are safe
// for concurrent use; no method mutates or exposes the underlying buffer.
type Record struct {
	data []byte
}

// Key is the comparable identity of a record: its id and timestamp.
// Records that are Equal always have equal keys, so Key is suitable as a map key.
type Key struct {
	ID        uuid.UUID
	Timestamp Ticks
}

// EntrySize returns the encoded size of an entry carrying payloadLen bytes.
func EntrySize(payloadLen int) int {
	return MinEntrySize + payloadLen
}

// Kind reports whether r is an entry or a checkpoint.
func (r Record) Kind() Kind {
	if r.IsCheckpoint() {
		return KindCheckpoint
	}
	return KindEntry
}

// IsCheckpoint reports whether r has the checkpoint shape: exactly
// CheckpointSize bytes starting with CheckpointMarker.
func (r Record) IsCheckpoint() bool {
	return len(r.data) == CheckpointSize && r.data[0] == CheckpointMarker
}

// hasEntryShape reports whether the entry fields can be read safely.
func (r Record) hasEntryShape() bool {
	return !r.IsCheckpoint() && len(r.data) >= MinEntrySize
}

// Len returns the encoded size of r in bytes.
func (r Record) Len() int {
	return len(r.data)
}

// EntryID returns the entry id, or the checkpoint id for a checkpoint.
func (r Record) EntryID() uuid.UUID {
	switch {
	case r.IsCheckpoint():
		return readID(r.data, checkpointIDOffset)
	case r.hasEntryShape():
		return readID(r.data, entryIDOffset)
	default:
		return uuid.Nil
	}
}

// Timestamp returns the stored tick count.
func (r Record) Timestamp() Ticks {
	switch {
	case r.IsCheckpoint():
		return Ticks(binary.BigEndian.Uint64(r.data[checkpointTimeOffset:]))
	case r.hasEntryShape():
		return Ticks(binary.BigEndian.Uint64(r.data[entryTimeOffset:]))
	default:
		return 0
	}
}

// TransactionID returns the transaction id. Checkpoints report uuid.Nil.
func (r Record) TransactionID() uuid.UUID {
	if !r.hasEntryShape() {
		return uuid.Nil
	}
	return readID(r.data, entryTxIDOffset)
}

// Payload returns a copy of the entry payload. Checkpoints report an empty,
// non-nil slice.
func (r Record) Payload() []byte {
	if !r.hasEntryShape() {
		return []byte{}
	}
	return bytes.Clone(r.data[entryPayloadStart : len(r.data)-hash.Size])
}

// PayloadLen returns the payload length without copying it.
func (r Record) PayloadLen() int {
	if !r.hasEntryShape() {
		return 0
	}
	return len(r.data) - MinEntrySize
}

// Checksum returns the stored checksum.
func (r Record) Checksum() uint32 {
	if len(r.data) < hash.Size {
		return 0
	}
	return binary.BigEndian.Uint32(r.data[len(r.data)-hash.Size:])
}

// Version returns the checkpoint format version, or 0 for entries.
func (r Record) Version() byte {
	if !r.IsCheckpoint() {
		return 0
	}
	return r.data[checkpointVersionOffset]
}

// Key returns the identity of r.
func (r Record) Key() Key {
	return Key{ID: r.EntryID(), Timestamp: r.Timestamp()}
}

// Bytes returns an owned copy of the encoded record.
func (r Record) Bytes() []byte {
	return bytes.Clone(r.data)
}

// AppendTo appends the encoded record to dst and returns the extended slice.
func (r Record) AppendTo(dst []byte) []byte {
	return append(dst, r.data...)
}

// WriteTo writes the encoded record to w. It implements io.WriterTo.
func (r Record) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	if err == nil && n != len(r.data) {
		err = io.ErrShortWrite
	}
	return int64(n), err
}

// Equal reports whether r and o encode the same bytes.
func (r Record) Equal(o Record) bool {
	return bytes.Equal(r.data, o.data)
}

// Less reports whether r sorts before o in replay order.
func (r Record) Less(o Record) bool {
	return Compare(r, o) < 0
}

// Compare orders records by timestamp, then by id, both ascending. It is
// the replay order used during recovery; the file itself is in append order.
func Compare(a, b Record) int {
	if c := cmp.Compare(a.Timestamp(), b.Timestamp()); c != 0 {
		return c
	}
	aID, bID := a.EntryID(), b.EntryID()
	return bytes.Compare(aID[:], bID[:])
}

func (r Record) String() string {
	if r.IsCheckpoint() {
		return fmt.Sprintf("checkpoint{id=%s ts=%s v=%d}", r.EntryID(), r.Timestamp(), r.Version())
	}
	return fmt.Sprintf("entry{id=%s ts=%s tx=%s payload=%dB}",
		r.EntryID(), r.Timestamp(), r.TransactionID(), r.PayloadLen())
}

func readID(b []byte, off int) uuid.UUID {
	var id uuid.UUID
	copy(id[:], b[off:off+idSize])
	return id
}
