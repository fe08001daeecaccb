package service

import "errors"

var (
	// ErrRideNotPersisted is returned when a ride cannot be read back right after its insert.
	ErrRideNotPersisted = errors.New("ride not found after insert")
)
