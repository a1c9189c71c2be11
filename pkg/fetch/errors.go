package fetch

import "errors"

var (
	// ErrBackendStatus marks a non-success HTTP status from the backend.
	ErrBackendStatus = errors.New("backend returned non-success status")

	// ErrDecode marks a response body that could not be decoded.
	ErrDecode = errors.New("failed to decode backend response")
)
