package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionExpired matches any response with status 401. Callers react by
// dropping the persisted session and sending the browser to the login page.
var ErrSessionExpired = errors.New("api: session expired")

// Error is a non-2xx response from the backend.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the backend's "error" field, shown to users as-is.
	Message string
	// Detail is the backend's "message" field, kept for logs.
	Detail string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("api: %s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports 401 responses as ErrSessionExpired.
func (e *Error) Is(target error) bool {
	return target == ErrSessionExpired && e.StatusCode == http.StatusUnauthorized
}

// Message returns the backend-provided message carried by err, or "".
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// StatusCode returns the backend status carried by err, or 0 for transport errors.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
