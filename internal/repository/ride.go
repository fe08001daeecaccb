package repository

import (
	"context"

	"rides/internal/domain"
)

// RideRepository defines the persistence operations for rides.
//
// Lookups return every matching row rather than ErrNotFound so callers decide
// how an empty result is reported.
type RideRepository interface {
	// Create inserts a new ride and returns the row id assigned by the store.
	Create(ctx context.Context, ride *domain.Ride) (int64, error)

	// GetAll retrieves all rides in insertion order.
	GetAll(ctx context.Context) ([]*domain.Ride, error)

	// GetByRideID retrieves the rides whose business id equals id.
	GetByRideID(ctx context.Context, id string) ([]*domain.Ride, error)

	// GetByRowID retrieves the rides whose row id equals rowID.
	GetByRowID(ctx context.Context, rowID int64) ([]*domain.Ride, error)
}
