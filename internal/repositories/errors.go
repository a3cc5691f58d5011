package repositories

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when a customer insert hits the unique email index.
	ErrDuplicateEmail = errors.New("email already exists")
)
