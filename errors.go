package txwal

import (
	"errors"
	"fmt"

	"github.com/hupe1980/txwal/payload"
	"github.com/hupe1980/txwal/wal"
)

var (
	// ErrInvalidArgument is returned for zero identifiers, absent payloads,
	// empty batches and records that fail validation.
	ErrInvalidArgument = wal.ErrInvalidArgument
	// ErrMalformed is returned when raw bytes are too short to be a record.
	ErrMalformed = wal.ErrMalformed
	// ErrIntegrity accompanies ErrInvalidArgument when a record's checksum,
	// version or magic is wrong.
	ErrIntegrity = wal.ErrIntegrity
	// ErrIO wraps failures of the underlying file.
	ErrIO = wal.ErrIO
	// ErrClosed is returned by every operation after Close.
	ErrClosed = wal.ErrClosed
	// ErrCancelled is returned when the context ends before the write started.
	ErrCancelled = wal.ErrCancelled
	// ErrSelfCheck is the panic value for a checkpoint that fails its own validation.
	ErrSelfCheck = wal.ErrSelfCheck
)

// OpError records the operation and log path of a failed call.
//
// The original error can be accessed via errors.Unwrap, so errors.Is works
// with the sentinel errors above.
type OpError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("txwal: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func translateError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var oe *OpError
	if errors.As(err, &oe) {
		return err
	}

	// Payload framing failures are caller input problems.
	if errors.Is(err, payload.ErrUnknownCodec) {
		err = fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return &OpError{Op: op, Path: path, Err: err}
}
