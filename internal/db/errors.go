package db

import "errors"

// Domain-level database error sentinels.
var (
	// Project errors
	ErrProjectNotFound = errors.New("project not found")

	// Returned while the storage circuit breaker is open
	ErrUnavailable = errors.New("storage temporarily unavailable")
)
