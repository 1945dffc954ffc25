// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
	// SessionID names the drawer session that caused a conflict.
	SessionID *uint `json:"session_id,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// SessionConflict reports a request blocked by an already open drawer session.
func SessionConflict(msg string, sessionID uint) *APIError {
	return &APIError{Detail: msg, SessionID: &sessionID}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation failed", Fields: fields}
}
