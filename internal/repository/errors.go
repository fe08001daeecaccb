package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateRideID is returned when an insert collides with an existing ride id.
	ErrDuplicateRideID = errors.New("duplicate ride id")
)
