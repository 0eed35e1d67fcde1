package jobpool

import "errors"

var (
	// ErrInvalidSize is returned when a pool is constructed with a
	// worker count below 1.
	ErrInvalidSize = errors.New("worker count must be at least 1")

	// ErrPoolClosed is returned by Submit once shutdown has begun.
	ErrPoolClosed = errors.New("pool is shut down")

	// ErrNotFound is returned by Lookup for an id this pool never
	// issued.
	ErrNotFound = errors.New("job not found")
)
