package domain

import "errors"

var (
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrNotFound       = errors.New("not found")
	// ErrNoRowsAffected marks a conditional write that lost to a concurrent one.
	ErrNoRowsAffected = errors.New("no rows affected")
)
