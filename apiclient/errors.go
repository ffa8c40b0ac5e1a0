package apiclient

import "errors"

// APIError is a classified failure from the backend. Silent errors are
// authentication failures (HTTP 401): consumers must not display, log, or
// retry them; the session layer resolves them by dropping to the
// unauthenticated state. Everything else is an ordinary error for the caller
// to surface.
type APIError struct {
	StatusCode int
	Message    string
	Silent     bool
}

func (e *APIError) Error() string {
	return e.Message
}

// fallback when the backend returns no usable message body
const genericFailureMessage = "Request failed"

const unauthorizedMessage = "Unauthorized"

func unauthorizedError() *APIError {
	return &APIError{StatusCode: 401, Message: unauthorizedMessage, Silent: true}
}

// IsSilent reports whether err carries the silent classification.
func IsSilent(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Silent
}

// IsUnauthorized reports whether err is the 401 classification.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}
