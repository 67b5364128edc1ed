package shared

import (
	"errors"
	"fmt"
)

// RemoteError is a failed backend operation carrying the server-supplied
// code and message when the response included them.
type RemoteError struct {
	StatusCode int
	Code       string
	Message    string
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// ServerMessage extracts the server-provided message from err, or returns
// fallback when the error carries none.
func ServerMessage(err error, fallback string) string {
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}
	return fallback
}
