package record

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"

	"github.com/hupe1980/txwal/internal/hash"
)

// NewEntry builds a regular entry. A nil payload is rejected; an empty
// non-nil payload yields a MinEntrySize record.
func NewEntry(id uuid.UUID, ts Ticks, txID uuid.UUID, payload []byte) (Record, error) {
	if id == uuid.Nil {
		return Record{}, fmt.Errorf("%w: entry id must not be zero", ErrInvalidArgument)
	}
	if txID == uuid.Nil {
		return Record{}, fmt.Errorf("%w: transaction id must not be zero", ErrInvalidArgument)
	}
	if payload == nil {
		return Record{}, fmt.Errorf("%w: payload is required", ErrInvalidArgument)
	}

	buf := make([]byte, EntrySize(len(payload)))
	buf[0] = entryReserved
	copy(buf[entryIDOffset:], id[:])
	binary.BigEndian.PutUint64(buf[entryTimeOffset:], uint64(ts))
	copy(buf[entryTxIDOffset:], txID[:])
	copy(buf[entryPayloadStart:], payload)

	end := len(buf) - hash.Size
	binary.BigEndian.PutUint32(buf[end:], hash.Checksum(buf[:end]))
	return Record{data: buf}, nil
}

// NewCheckpoint builds a checkpoint stamped with the current UTC time.
func NewCheckpoint(id uuid.UUID) (Record, error) {
	return NewCheckpointAt(id, NowTicks())
}

// NewCheckpointAt builds a checkpoint with an explicit timestamp.
func NewCheckpointAt(id uuid.UUID, ts Ticks) (Record, error) {
	if id == uuid.Nil {
		return Record{}, fmt.Errorf("%w: checkpoint id must not be zero", ErrInvalidArgument)
	}

	buf := make([]byte, CheckpointSize)
	buf[0] = CheckpointMarker
	buf[checkpointVersionOffset] = CheckpointVersion
	copy(buf[checkpointIDOffset:], id[:])
	binary.BigEndian.PutUint64(buf[checkpointTimeOffset:], uint64(ts))
	binary.BigEndian.PutUint32(buf[checkpointMagicOffset:], CheckpointMagic)
	binary.BigEndian.PutUint32(buf[checkpointChecksumOffset:], hash.Checksum(buf[:checkpointChecksumOffset]))
	return Record{data: buf}, nil
}

// Decode wraps a copy of raw as a Record. It only checks that raw is long
// enough for the shape implied by its first byte; integrity is left to
// Validate.
func Decode(raw []byte) (Record, error) {
	if len(raw) == 0 {
		return Record{}, fmt.Errorf("%w: empty record buffer", ErrInvalidArgument)
	}
	minSize := MinEntrySize
	if raw[0] == CheckpointMarker {
		minSize = CheckpointSize
	}
	if len(raw) < minSize {
		return Record{}, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformed, len(raw), minSize)
	}
	return Record{data: bytes.Clone(raw)}, nil
}

// Validate reports whether r is intact: the stored checksum matches and, for
// checkpoints, the version and magic are the supported ones. Records too
// short to hold their fields are reported as invalid.
func (r Record) Validate() bool {
	if r.IsCheckpoint() {
		if r.data[checkpointVersionOffset] != CheckpointVersion {
			return false
		}
		if binary.BigEndian.Uint32(r.data[checkpointMagicOffset:]) != CheckpointMagic {
			return false
		}
		return hash.Verify(r.data[:checkpointChecksumOffset],
			binary.BigEndian.Uint32(r.data[checkpointChecksumOffset:]))
	}

	if len(r.data) < MinEntrySize || r.data[0] != entryReserved {
		return false
	}
	end := len(r.data) - hash.Size
	return hash.Verify(r.data[:end], binary.BigEndian.Uint32(r.data[end:]))
}

// Validate decodes raw and reports whether it is an intact record.
// Decoding failures are reported as false.
func Validate(raw []byte) bool {
	r, err := Decode(raw)
	if err != nil {
		return false
	}
	return r.Validate()
}
