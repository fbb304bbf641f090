package domain

import "fmt"

// BackendError carries a non-2xx store-backend response so the UI can surface
// the server's reason (stock exhausted, item not found, ...) verbatim.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("store backend returned status %d", e.StatusCode)
}

// Reason returns the user-facing message, falling back to a generic one when
// the backend gave no detail.
func (e *BackendError) Reason() string {
	if e.Message != "" {
		return e.Message
	}
	return "la operación fue rechazada por el servidor"
}
