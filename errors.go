package anyhttp

import "errors"

var (
	// ErrNilRequest indicates Execute received a nil Request pointer.
	ErrNilRequest = errors.New("request is nil")

	// ErrInvalidMethod indicates an HTTP method not permitted by NewRequest.
	ErrInvalidMethod = errors.New("invalid HTTP method")

	// ErrInvalidURL indicates a malformed or missing request URL.
	ErrInvalidURL = errors.New("invalid URL provided")

	// ErrReadBody wraps failures while reading a response body.
	ErrReadBody = errors.New("failed to read response body")

	// ErrBodyConsumed is returned when a response body is read more than once.
	ErrBodyConsumed = errors.New("response body already consumed")

	// ErrURLUnresolved is the panic value of Response.URL when no URL was ever resolved.
	ErrURLUnresolved = errors.New("response URL was never resolved")
)
