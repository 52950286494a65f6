package domain

import "errors"

var (
	// ErrAlreadyNotified is returned when a status log was already claimed for delivery
	ErrAlreadyNotified = errors.New("status change already notified")

	// ErrRecipientNotFound is returned when the application or its status log no longer exists
	ErrRecipientNotFound = errors.New("notification recipient not found")

	// ErrInvalidPayload is returned when an event body cannot be decoded
	ErrInvalidPayload = errors.New("invalid event payload")
)

// RetryableError wraps transient errors that should trigger a requeue
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError creates a new retryable error
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
