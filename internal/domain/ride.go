package domain

import "time"

// Coordinate bounds for ride pickup and dropoff points.
const (
	MinLatitude  = -90
	MaxLatitude  = 90
	MinLongitude = -180
	MaxLongitude = 180
)

// Ride represents one recorded trip.
type Ride struct {
	RowID         int64  // Assigned by the store on insert, never reused.
	RideID        string // Generated by the service on create, immutable.
	StartLat      float64
	StartLong     float64
	EndLat        float64
	EndLong       float64
	RiderName     string
	DriverName    string
	DriverVehicle string
	Created       time.Time
}
