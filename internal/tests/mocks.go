// Package tests holds test doubles shared by the package tests.
package tests

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"rides/internal/domain"
	"rides/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

// MockRideRepository is an in-memory implementation of RideRepository.
// Rows keep insertion order and row ids are never reused.
type MockRideRepository struct {
	mu        sync.RWMutex
	rides     []*domain.Ride
	nextRowID int64

	// Counters for verification
	CreateCallCount      int32
	GetAllCallCount      int32
	GetByRideIDCallCount int32
	GetByRowIDCallCount  int32

	// Error injection
	CreateError      error
	GetAllError      error
	GetByRideIDError error
	GetByRowIDError  error
}

// Ensure MockRideRepository implements repository.RideRepository.
var _ repository.RideRepository = (*MockRideRepository)(nil)

// NewMockRideRepository creates a new mock ride repository.
func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{nextRowID: 1}
}

// AddRide stores a ride directly, assigning it the next row id.
func (m *MockRideRepository) AddRide(ride *domain.Ride) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insert(ride)
}

func (m *MockRideRepository) insert(ride *domain.Ride) int64 {
	stored := *ride
	stored.RowID = m.nextRowID
	if stored.Created.IsZero() {
		stored.Created = time.Now().UTC()
	}
	m.nextRowID++
	m.rides = append(m.rides, &stored)
	return stored.RowID
}

func (m *MockRideRepository) Create(ctx context.Context, ride *domain.Ride) (int64, error) {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rides {
		if r.RideID == ride.RideID {
			return 0, repository.ErrDuplicateRideID
		}
	}
	return m.insert(ride), nil
}

func (m *MockRideRepository) GetAll(ctx context.Context) ([]*domain.Ride, error) {
	atomic.AddInt32(&m.GetAllCallCount, 1)
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	return m.filter(func(*domain.Ride) bool { return true }), nil
}

func (m *MockRideRepository) GetByRideID(ctx context.Context, id string) ([]*domain.Ride, error) {
	atomic.AddInt32(&m.GetByRideIDCallCount, 1)
	if m.GetByRideIDError != nil {
		return nil, m.GetByRideIDError
	}
	return m.filter(func(r *domain.Ride) bool { return r.RideID == id }), nil
}

func (m *MockRideRepository) GetByRowID(ctx context.Context, rowID int64) ([]*domain.Ride, error) {
	atomic.AddInt32(&m.GetByRowIDCallCount, 1)
	if m.GetByRowIDError != nil {
		return nil, m.GetByRowIDError
	}
	return m.filter(func(r *domain.Ride) bool { return r.RowID == rowID }), nil
}

// filter returns copies of the matching rides to avoid mutation issues.
func (m *MockRideRepository) filter(match func(*domain.Ride) bool) []*domain.Ride {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Ride, 0, len(m.rides))
	for _, r := range m.rides {
		if match(r) {
			copy := *r
			result = append(result, &copy)
		}
	}
	return result
}

// Count returns the number of stored rides.
func (m *MockRideRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rides)
}

// SeedRides stores n identical rides with distinct ride ids.
func (m *MockRideRepository) SeedRides(n int, template domain.Ride) {
	for i := 0; i < n; i++ {
		ride := template
		ride.RideID = fmt.Sprintf("%s%03d", template.RideID, i)
		m.AddRide(&ride)
	}
}
