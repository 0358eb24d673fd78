package utils

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	// ErrUnavailable marks failures where the backing store could not be
	// reached. Reads may degrade on it, writes answer 503.
	ErrUnavailable = errors.New("storage unavailable")
)

// ValidationError reports input the caller has to fix. Field is the request
// field it concerns and may be empty. It matches ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}
