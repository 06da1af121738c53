package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrWorkspaceNotFound  = errors.New("workspace not found")
	ErrFunctionNotFound   = errors.New("function not found")
	ErrJobNotFound        = errors.New("job not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNoSession          = errors.New("no active session")
)

// ErrorDetail is a single structured validation failure as reported by the
// backend: a location path into the request body, a message, and a type tag.
type ErrorDetail struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// APIError is the uniform error shape every transport failure is normalized
// into. Status is 0 for network-level failures (DNS, timeout, connection
// refused), otherwise the HTTP status code.
type APIError struct {
	Message string              `json:"message"`
	Status  int                 `json:"status"`
	Code    string              `json:"code,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Detail  []ErrorDetail       `json:"detail,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// IsNotFound reports whether err is a 404 API error or one of the
// not-found sentinels produced by the mock layer.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == 404
	}
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrWorkspaceNotFound) ||
		errors.Is(err, ErrFunctionNotFound) ||
		errors.Is(err, ErrJobNotFound) ||
		errors.Is(err, ErrUserNotFound)
}
