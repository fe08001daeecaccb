package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rides/internal/domain"
	"rides/internal/repository"
)

var rideColumnNames = []string{
	"row_id", "ride_id", "start_lat", "start_long", "end_lat", "end_long",
	"rider_name", "driver_name", "driver_vehicle", "created",
}

func newMockRepo(t *testing.T) (*RideRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRideRepository(db, zap.NewNop()), mock
}

func TestRideRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)

	ride := &domain.Ride{
		RideID:        "abc123XYZ0",
		StartLat:      70,
		StartLong:     100,
		EndLat:        75,
		EndLong:       110,
		RiderName:     "Max",
		DriverName:    "John",
		DriverVehicle: "Car",
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO rides")).
		WithArgs(70.0, 100.0, 75.0, 110.0, "Max", "John", "Car", "abc123XYZ0").
		WillReturnRows(sqlmock.NewRows([]string{"row_id"}).AddRow(int64(7)))

	rowID, err := repo.Create(context.Background(), ride)
	require.NoError(t, err)
	assert.Equal(t, int64(7), rowID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRideRepository_CreateDuplicateRideID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO rides")).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := repo.Create(context.Background(), &domain.Ride{RideID: "dup"})
	assert.ErrorIs(t, err, repository.ErrDuplicateRideID)
}

func TestRideRepository_CreateStoreError(t *testing.T) {
	repo, mock := newMockRepo(t)

	storeErr := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO rides")).WillReturnError(storeErr)

	_, err := repo.Create(context.Background(), &domain.Ride{RideID: "x"})
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, repository.ErrDuplicateRideID)
}

func TestRideRepository_GetAll(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM rides ORDER BY row_id")).
		WillReturnRows(sqlmock.NewRows(rideColumnNames).
			AddRow(int64(1), "first", 70.0, 100.0, 75.0, 110.0, "Max", "John", "Car", created).
			AddRow(int64(2), "second", 10.0, 20.0, 30.0, 40.0, "Ann", "Bob", "Van", created))

	rides, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rides, 2)
	assert.Equal(t, "first", rides[0].RideID)
	assert.Equal(t, int64(2), rides[1].RowID)
	assert.Equal(t, "Van", rides[1].DriverVehicle)
	assert.Equal(t, created, rides[0].Created)
}

func TestRideRepository_GetAllEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM rides ORDER BY row_id")).
		WillReturnRows(sqlmock.NewRows(rideColumnNames))

	rides, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rides)
	assert.Empty(t, rides)
}

func TestRideRepository_GetByRideID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM rides WHERE ride_id = $1")).
		WithArgs("DROP TABLE rides").
		WillReturnRows(sqlmock.NewRows(rideColumnNames))

	rides, err := repo.GetByRideID(context.Background(), "DROP TABLE rides")
	require.NoError(t, err)
	assert.Empty(t, rides)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRideRepository_GetByRowID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM rides WHERE row_id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(rideColumnNames).
			AddRow(int64(3), "third", 1.0, 2.0, 3.0, 4.0, "Max", "John", "Car", time.Now()))

	rides, err := repo.GetByRowID(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, rides, 1)
	assert.Equal(t, "third", rides[0].RideID)
}

func TestRideRepository_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM rides")).WillReturnError(sql.ErrConnDone)

	_, err := repo.GetAll(context.Background())
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestBuildSchemas(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for _, table := range Tables {
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS " + table.Name)).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, BuildSchemas(context.Background(), db, zap.NewNop()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildSchemas_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS rides")).
		WillReturnError(errors.New("permission denied"))

	err = BuildSchemas(context.Background(), db, zap.NewNop())
	assert.ErrorContains(t, err, "rides")
}
