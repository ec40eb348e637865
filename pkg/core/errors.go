package core

import "errors"

// Common errors.
var (
	// ErrValidation is returned when a note would have neither title nor content.
	ErrValidation = errors.New("note needs a title or content")

	// ErrNotFound is returned when an operation references an unknown note ID.
	ErrNotFound = errors.New("note not found")

	// ErrStorage wraps any failure of the backing store.
	// The in-memory collection may be ahead of storage when it is returned.
	ErrStorage = errors.New("storage failure")

	// ErrParse marks a persisted collection that could not be decoded.
	// Load recovers from it by starting with an empty collection.
	ErrParse = errors.New("malformed note collection")

	// ErrQuotaExceeded is returned by backends when a write would exceed their size limit.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrReadOnly is returned by mutating operations on a read-only store.
	ErrReadOnly = errors.New("store is in read-only mode")
)
