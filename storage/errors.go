package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when no snapshot exists for a namespace.
	ErrNotFound = errors.New("snapshot not found")
)
