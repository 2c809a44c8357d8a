package storage

import "errors"

// Common storage errors
var (
	// ErrLeaseNotFound indicates that no lease is persisted
	ErrLeaseNotFound = errors.New("lease not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
