package apperrors

import "errors"

// ValidationError reports caller-correctable input problems.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ReferenceError reports an input that points at a record which does not exist.
type ReferenceError struct {
	Message string
}

func (e *ReferenceError) Error() string { return e.Message }

// Validation returns a *ValidationError carrying msg.
func Validation(msg string) error {
	return &ValidationError{Message: msg}
}

// Reference returns a *ReferenceError carrying msg.
func Reference(msg string) error {
	return &ReferenceError{Message: msg}
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsReference reports whether err wraps a *ReferenceError.
func IsReference(err error) bool {
	var r *ReferenceError
	return errors.As(err, &r)
}

// Message returns the user-facing text of a typed error, or err.Error() otherwise.
func Message(err error) string {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Message
	}
	var r *ReferenceError
	if errors.As(err, &r) {
		return r.Message
	}
	return err.Error()
}
