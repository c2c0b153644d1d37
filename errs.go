package aiornot

import (
	"errors"
	"fmt"
)

var (
	// ErrAPIKeyRequired is returned by New when no API key was provided and none
	// could be found in the environment.
	ErrAPIKeyRequired = errors.New("API key required: set AIORNOT_API_KEY or pass WithAPIKey")

	// Sentinels for the API error taxonomy. Use errors.Is to match the class of
	// failure, or errors.As with *APIError to inspect the status code and body.
	ErrAuthentication = errors.New("invalid or missing API key")
	ErrValidation     = errors.New("request validation failed")
	ErrRateLimit      = errors.New("rate limit exceeded")
	ErrServer         = errors.New("server error")
	ErrAPI            = errors.New("API error")
)

// ErrorKind is a stable tag identifying the class of an error. The batch
// engine records it on error outcomes and it appears in the "error" field of
// JSONL output.
type ErrorKind string

const (
	KindAuthentication ErrorKind = "authentication"
	KindValidation     ErrorKind = "validation"
	KindRateLimit      ErrorKind = "rate_limit"
	KindServer         ErrorKind = "server"
	KindAPI            ErrorKind = "api"
	KindTimeout        ErrorKind = "timeout"
	KindFile           ErrorKind = "file"
	KindUnknown        ErrorKind = "error"
)

// APIError is returned for any non-2xx response from the AIORNOT API, other
// than transport timeouts.
//
// APIError implements Unwrap, so the taxonomy sentinels can be matched
// directly:
//
//	if errors.Is(err, aiornot.ErrAuthentication) {
//		// bad credential
//	}
//
//	var apiErr *aiornot.APIError
//	if errors.As(err, &apiErr) {
//		log.Printf("status %d: %s", apiErr.StatusCode, apiErr.Message)
//	}
type APIError struct {
	// Kind classifies the error by status code.
	Kind ErrorKind
	// StatusCode is the HTTP status the server responded with.
	StatusCode int
	// Message is the human-readable message extracted from the error body, or
	// the raw response text if the body was not structured.
	Message string
	// Body is the decoded error body, when it could be parsed.
	Body map[string]any
}

// Error returns a string representation of the error.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%d] %s", e.StatusCode, e.Message)
	}
	return e.Message
}

// Unwrap returns the sentinel matching the error's kind.
func (e *APIError) Unwrap() error {
	switch e.Kind {
	case KindAuthentication:
		return ErrAuthentication
	case KindValidation:
		return ErrValidation
	case KindRateLimit:
		return ErrRateLimit
	case KindServer:
		return ErrServer
	}
	return ErrAPI
}

// TimeoutError is returned when the remote does not respond within the
// configured deadline. It is distinct from APIError: no response was received.
type TimeoutError struct {
	// Op names the operation that timed out, e.g. "image analysis".
	Op  string
	Err error
}

// Error returns a string representation of the error.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out: %v", e.Op, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// FileError is returned when a local file or directory input cannot be used.
type FileError struct {
	Path string
	Err  error
}

// Error returns a string representation of the error.
func (e *FileError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Path)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Kind returns the taxonomy tag for err. Errors outside the SDK's taxonomy
// report KindUnknown.
func Kind(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		return KindTimeout
	}
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return KindFile
	}
	return KindUnknown
}
