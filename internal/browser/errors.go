package browser

import (
	"errors"
	"fmt"
	"net/http"
)

// Backend errors
var (
	// ErrNotFound indicates that the listing is gone, usually after a missed heartbeat
	ErrNotFound = errors.New("listing not found")

	// ErrTransport indicates a network failure or an unexpected response
	ErrTransport = errors.New("backend transport failure")
)

// StatusError is a non-2xx response from the backend.
type StatusError struct {
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Is maps 404 onto ErrNotFound and every other status onto ErrTransport.
func (e *StatusError) Is(target error) bool {
	if e.StatusCode == http.StatusNotFound {
		return target == ErrNotFound
	}
	return target == ErrTransport
}
