package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"rides/internal/domain"
	"rides/internal/repository"
)

const rideColumns = `row_id, ride_id, start_lat, start_long, end_lat, end_long, rider_name, driver_name, driver_vehicle, created`

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q      Querier
	logger *zap.Logger
}

// Ensure RideRepository implements repository.RideRepository.
var _ repository.RideRepository = (*RideRepository)(nil)

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB, logger *zap.Logger) *RideRepository {
	return &RideRepository{q: db, logger: logger}
}

// Create inserts a new ride and returns its row id.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) (int64, error) {
	r.logger.Debug("Creating a new ride", zap.String("ride_id", ride.RideID))

	query := `
		INSERT INTO rides (start_lat, start_long, end_lat, end_long, rider_name, driver_name, driver_vehicle, ride_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING row_id
	`

	var rowID int64
	err := r.q.QueryRowContext(ctx, query,
		ride.StartLat,
		ride.StartLong,
		ride.EndLat,
		ride.EndLong,
		ride.RiderName,
		ride.DriverName,
		ride.DriverVehicle,
		ride.RideID,
	).Scan(&rowID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s", repository.ErrDuplicateRideID, ride.RideID)
		}
		return 0, fmt.Errorf("failed to insert ride: %w", err)
	}

	return rowID, nil
}

// GetAll retrieves all rides in insertion order.
func (r *RideRepository) GetAll(ctx context.Context) ([]*domain.Ride, error) {
	r.logger.Debug("Getting all rides")

	query := `SELECT ` + rideColumns + ` FROM rides ORDER BY row_id`
	return r.query(ctx, query)
}

// GetByRideID retrieves the rides matching the business id.
func (r *RideRepository) GetByRideID(ctx context.Context, id string) ([]*domain.Ride, error) {
	r.logger.Debug("Getting a ride by id", zap.String("ride_id", id))

	query := `SELECT ` + rideColumns + ` FROM rides WHERE ride_id = $1`
	return r.query(ctx, query, id)
}

// GetByRowID retrieves the rides matching the row id.
func (r *RideRepository) GetByRowID(ctx context.Context, rowID int64) ([]*domain.Ride, error) {
	r.logger.Debug("Getting a ride by row id", zap.Int64("row_id", rowID))

	query := `SELECT ` + rideColumns + ` FROM rides WHERE row_id = $1`
	return r.query(ctx, query, rowID)
}

func (r *RideRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Ride, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rides: %w", err)
	}
	defer rows.Close()

	rides := make([]*domain.Ride, 0)
	for rows.Next() {
		var ride domain.Ride
		if err := rows.Scan(
			&ride.RowID,
			&ride.RideID,
			&ride.StartLat,
			&ride.StartLong,
			&ride.EndLat,
			&ride.EndLong,
			&ride.RiderName,
			&ride.DriverName,
			&ride.DriverVehicle,
			&ride.Created,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ride: %w", err)
		}
		rides = append(rides, &ride)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rides: %w", err)
	}
	return rides, nil
}
