package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderUnavailable indicates the model provider is unreachable.
	ErrProviderUnavailable = errors.New("llm provider unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrProviderStatus indicates the provider answered with a non-200 status
	// (bad key, quota, malformed request).
	ErrProviderStatus = errors.New("llm provider returned an error status")

	// ErrEmptyResponse indicates the provider answered without any text.
	ErrEmptyResponse = errors.New("llm returned no text")

	// ErrMissingAPIKey indicates a hosted provider was configured without a key.
	ErrMissingAPIKey = errors.New("llm api key not configured")

	// ErrInvalidOutput indicates the response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")
)

// StatusError carries the HTTP status and body of a failed provider call.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrProviderStatus }

// ParseError reports model output that no decoding strategy could recover.
// Snippet holds a bounded prefix of the raw text for server-side logs only.
type ParseError struct {
	Snippet string
	Cause   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %v (raw prefix: %q)", ErrInvalidOutput, e.Cause, e.Snippet)
}

func (e *ParseError) Unwrap() error { return ErrInvalidOutput }
