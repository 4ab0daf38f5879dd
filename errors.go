// Package agentdemo - errors.go
// Defines runtime errors and the tool failure classification.
package agentdemo

import "errors"

var (
	ErrSessionClosed = errors.New("session has been closed")
	ErrNoMessage     = errors.New("no message available")
)

// RetryableError marks a tool failure the model may retry with corrected
// arguments, e.g. a missing parameter.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

func NewRetryableError(err error) *RetryableError {
	return &RetryableError{Err: err}
}

// IgnorableError marks a tool failure that retrying cannot fix. The model
// is told not to try again.
type IgnorableError struct {
	Err error
}

func (e *IgnorableError) Error() string {
	return e.Err.Error()
}

func (e *IgnorableError) Unwrap() error {
	return e.Err
}

func NewIgnorableError(err error) *IgnorableError {
	return &IgnorableError{Err: err}
}
