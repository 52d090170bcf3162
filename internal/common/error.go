// Package common defines sentinel errors shared by the storage, service and
// HTTP layers. Callers wrap them with fmt.Errorf("...: %w", err) and match
// with errors.Is.
package common

import "errors"

var (
	// ErrNotFound reports that no row matched the requested id.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput reports malformed input or a column constraint
	// violation on a write.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDecode reports a stored row that does not match the expected shape.
	ErrDecode = errors.New("decode error")

	// ErrInvariant reports a write that touched more than one row.
	ErrInvariant = errors.New("invariant violation")

	// ErrUnavailable reports that the storage backend cannot be reached.
	ErrUnavailable = errors.New("storage unavailable")
)
