package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested page or block does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input, such as an
	// identifier that is not a UUID or an unknown block type.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrStoreUnavailable indicates the content store failed to execute
	// a read or write. Adapters wrap the driver error with this sentinel.
	ErrStoreUnavailable = errors.New("store unavailable")
)
