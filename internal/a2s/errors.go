package a2s

import "errors"

// Query errors
var (
	// ErrTimeout indicates that no response arrived before the deadline
	ErrTimeout = errors.New("a2s: request timed out")

	// ErrProtocol indicates a malformed, short or unexpected response
	ErrProtocol = errors.New("a2s: malformed response")

	// ErrTransport indicates a socket level failure
	ErrTransport = errors.New("a2s: transport failure")
)
