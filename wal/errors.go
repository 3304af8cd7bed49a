package wal

import (
	"errors"
	"fmt"

	"github.com/hupe1980/txwal/record"
)

var (
	// ErrInvalidArgument is record.ErrInvalidArgument, re-exported for callers of this package.
	ErrInvalidArgument = record.ErrInvalidArgument
	// ErrMalformed is record.ErrMalformed.
	ErrMalformed = record.ErrMalformed
	// ErrIntegrity is record.ErrIntegrity.
	ErrIntegrity = record.ErrIntegrity

	// ErrIO wraps failures of the underlying write, sync or lock calls.
	ErrIO = errors.New("wal i/o failure")

	// ErrClosed is returned by every operation invoked after Close.
	ErrClosed = errors.New("wal writer is closed")

	// ErrCancelled is returned when a context ends before the operation was
	// admitted to the critical section. The context error is wrapped too.
	ErrCancelled = errors.New("wal operation cancelled")

	// ErrSelfCheck is the panic value raised when a checkpoint built by the
	// writer fails its own validation. It indicates a codec bug.
	ErrSelfCheck = errors.New("wal checkpoint self-check failed")
)

func ioError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}

func cancelled(err error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, err)
}

// checkRecord rejects records that may not be appended.
func checkRecord(r record.Record) error {
	if r.Len() == 0 {
		return fmt.Errorf("%w: empty record", ErrInvalidArgument)
	}
	if !r.Validate() {
		return fmt.Errorf("%w: %w: %s", ErrInvalidArgument, ErrIntegrity, r.Kind())
	}
	return nil
}
