// Package validation holds the request checks run before any store access.
// Each check is a pure function returning a Result.
package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"rides/internal/domain"
)

// Messages reported to clients when a check fails.
const (
	MsgListRides   = "page and size must be integer > 0"
	MsgGetRideByID = "rideID must be a non empty alphanumeric"
	MsgLatitude    = "Start latitude and end latitude must be between -90 - 90 degrees"
	MsgLongitude   = "Start longitude and end longitude must be between -180 - 180 degrees"
	MsgText        = "riderName, driverName, driverVehicle must be String with length > 0"
)

var validate = validator.New()

var (
	latitudeTag  = "gte=" + strconv.Itoa(domain.MinLatitude) + ",lte=" + strconv.Itoa(domain.MaxLatitude)
	longitudeTag = "gte=" + strconv.Itoa(domain.MinLongitude) + ",lte=" + strconv.Itoa(domain.MaxLongitude)
)

// Result is the verdict of a single check.
type Result struct {
	Failed  bool
	Message string
}

func pass() Result { return Result{} }

func fail(msg string) Result { return Result{Failed: true, Message: msg} }

// CreateRideBody is the raw shape of a POST /rides body. Fields are decoded
// untyped so absent, mistyped and fractional values can be told apart; decode
// with json.Decoder.UseNumber.
type CreateRideBody struct {
	StartLat      any `json:"start_lat"`
	StartLong     any `json:"start_long"`
	EndLat        any `json:"end_lat"`
	EndLong       any `json:"end_long"`
	RiderName     any `json:"rider_name"`
	DriverName    any `json:"driver_name"`
	DriverVehicle any `json:"driver_vehicle"`
}

// ListRides checks the page and size query parameters. Validation only runs
// when both are supplied.
func ListRides(page, size string) Result {
	if page == "" || size == "" {
		return pass()
	}
	if _, ok := ParsePositiveInt(page); !ok {
		return fail(MsgListRides)
	}
	if _, ok := ParsePositiveInt(size); !ok {
		return fail(MsgListRides)
	}
	return pass()
}

// GetRideByID checks the path identifier.
func GetRideByID(id string) Result {
	if len(id) == 0 {
		return fail(MsgGetRideByID)
	}
	return pass()
}

// CreateRide checks a create body. Latitude, longitude and text fields are
// checked in that order and the first failure is reported.
func CreateRide(body CreateRideBody) Result {
	if !coordinatesValid(latitudeTag, body.StartLat, body.EndLat) {
		return fail(MsgLatitude)
	}
	if !coordinatesValid(longitudeTag, body.StartLong, body.EndLong) {
		return fail(MsgLongitude)
	}
	if !textValid(body.RiderName, body.DriverName, body.DriverVehicle) {
		return fail(MsgText)
	}
	return pass()
}

// ParsePositiveInt parses s as an integral number greater than zero.
// Values beyond math.MaxInt32 are capped.
func ParsePositiveInt(s string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !isIntegral(f) || f <= 0 {
		return 0, false
	}
	if f > math.MaxInt32 {
		return math.MaxInt32, true
	}
	return int(f), true
}

// Number converts a validated coordinate value to float64.
func Number(v any) float64 {
	f, _ := toFloat(v)
	return f
}

func coordinatesValid(tag string, values ...any) bool {
	for _, v := range values {
		f, ok := toFloat(v)
		if !ok || !isIntegral(f) {
			return false
		}
		if err := validate.Var(f, tag); err != nil {
			return false
		}
	}
	return true
}

func textValid(values ...any) bool {
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return false
		}
		if err := validate.Var(s, "min=1"); err != nil {
			return false
		}
	}
	return true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func isIntegral(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f)
}
