// Package apperr carries request errors with an HTTP-ish status code and
// optional per-field detail, so the GraphQL boundary can shape a uniform
// {message, status, data} envelope.
package apperr

import "net/http"

type Error struct {
	Message string   `json:"message"`
	Status  int      `json:"status"`
	Data    []*Error `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(message string, status int) *Error {
	return &Error{Message: message, Status: status}
}

// WithData wraps accumulated sub-errors, typically per-field validation
// failures, into a single aggregate error.
func WithData(message string, status int, data []*Error) *Error {
	return &Error{Message: message, Status: status, Data: data}
}

// StatusOf returns the status carried by err, or 500 for anything untagged.
func StatusOf(err error) int {
	if appErr, ok := err.(*Error); ok && appErr.Status != 0 {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
