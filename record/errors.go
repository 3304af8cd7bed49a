package record

import "errors"

var (
	// ErrInvalidArgument is returned when a caller supplies an input that can
	// never produce a valid record (zero identifier, absent payload, empty buffer).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformed is returned when raw bytes are too short or structurally
	// inconsistent to be decoded as a record.
	ErrMalformed = errors.New("malformed record")

	// ErrIntegrity marks a decoded record whose checksum, magic or version
	// does not verify. Validate reports this as false; writers return it
	// when refusing to append such a record.
	ErrIntegrity = errors.New("record integrity check failed")
)
