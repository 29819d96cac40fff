package client

import "errors"

var (
	// ErrUnavailable covers network failures and 5xx responses.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized is returned for declined credentials and rejected tokens.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError carries per-field reasons from a 422 response.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
