package registration

import "errors"

// Registration errors
var (
	// ErrRegistration indicates that the backend refused or failed to create a listing
	ErrRegistration = errors.New("registration failed")

	// ErrClosed is returned by operations on a closed registration
	ErrClosed = errors.New("registration closed")
)
