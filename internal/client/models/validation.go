package models

import "errors"

// ErrValidation is matched by every ValidationError.
var ErrValidation = errors.New("validation failed")

// Messages shown to the operator when a form is rejected locally.
const (
	MsgRequiredFields  = "Please fill in all required fields"
	MsgInvalidBodyJSON = "Invalid JSON structure for body"
)

// ValidationError is a client-side rejection of a record. Message is shown
// verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}
