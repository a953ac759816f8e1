package llm

import "errors"

var (
	// ErrUnavailable indicates the generation endpoint is unreachable.
	ErrUnavailable = errors.New("generation endpoint unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("generation request timed out")

	// ErrInvalidOutput indicates the response could not be parsed into the
	// expected structured format.
	ErrInvalidOutput = errors.New("invalid generation output format")

	// ErrRetryExhausted indicates all retry attempts have been used.
	ErrRetryExhausted = errors.New("generation retry attempts exhausted")
)
