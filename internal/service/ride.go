package service

import (
	"context"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"

	"rides/internal/domain"
	"rides/internal/repository"
)

const (
	// Ride ids only use word characters so Sanitize leaves them intact.
	rideIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	rideIDLength   = 10
)

// IDGenerator produces a fresh ride id.
type IDGenerator func() (string, error)

// NewRideID generates a short random alphanumeric ride id.
func NewRideID() (string, error) {
	return gonanoid.Generate(rideIDAlphabet, rideIDLength)
}

// RideService handles ride operations.
type RideService struct {
	rideRepo  repository.RideRepository
	newRideID IDGenerator
	logger    *zap.Logger
}

// NewRideService creates a new RideService. A nil idGen falls back to NewRideID.
func NewRideService(rideRepo repository.RideRepository, idGen IDGenerator, logger *zap.Logger) *RideService {
	if idGen == nil {
		idGen = NewRideID
	}
	return &RideService{
		rideRepo:  rideRepo,
		newRideID: idGen,
		logger:    logger,
	}
}

// ListRidesRequest contains the paging parameters for listing rides.
// Zero values select DefaultPage and DefaultPageSize.
type ListRidesRequest struct {
	Page int
	Size int
}

// CreateRideRequest contains the parameters for creating a ride.
type CreateRideRequest struct {
	StartLat      float64
	StartLong     float64
	EndLat        float64
	EndLong       float64
	RiderName     string
	DriverName    string
	DriverVehicle string
}

// ListRides returns one page of all stored rides.
func (s *RideService) ListRides(ctx context.Context, req ListRidesRequest) (*RidePage, error) {
	rides, err := s.rideRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(rides) == 0 {
		return nil, repository.ErrNotFound
	}

	page := Paginate(rides, req.Page, req.Size)
	s.logger.Debug("Paginated rides",
		zap.Int("page", page.Page),
		zap.Int("size", page.Size),
		zap.Int("total_pages", page.TotalPages),
		zap.Int("total_items", page.TotalItems),
	)
	return page, nil
}

// GetRide retrieves a ride by its business id after sanitizing the id.
func (s *RideService) GetRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	id := Sanitize(rideID)

	rides, err := s.rideRepo.GetByRideID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(rides) == 0 {
		return nil, fmt.Errorf("ride %s: %w", id, repository.ErrNotFound)
	}
	return rides[0], nil
}

// CreateRide sanitizes the request, stores a new ride under a fresh id and
// returns the row as read back from the store.
func (s *RideService) CreateRide(ctx context.Context, req CreateRideRequest) (*domain.Ride, error) {
	rideID, err := s.newRideID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ride id: %w", err)
	}

	ride := &domain.Ride{
		RideID:        rideID,
		StartLat:      req.StartLat,
		StartLong:     req.StartLong,
		EndLat:        req.EndLat,
		EndLong:       req.EndLong,
		RiderName:     Sanitize(req.RiderName),
		DriverName:    Sanitize(req.DriverName),
		DriverVehicle: Sanitize(req.DriverVehicle),
	}

	rowID, err := s.rideRepo.Create(ctx, ride)
	if err != nil {
		return nil, err
	}

	rides, err := s.rideRepo.GetByRowID(ctx, rowID)
	if err != nil {
		return nil, err
	}
	if len(rides) == 0 {
		return nil, fmt.Errorf("row %d: %w", rowID, ErrRideNotPersisted)
	}

	s.logger.Info("Ride created", zap.String("ride_id", rideID), zap.Int64("row_id", rowID))
	return rides[0], nil
}
