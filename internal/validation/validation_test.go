package validation

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBody() CreateRideBody {
	return CreateRideBody{
		StartLat:      json.Number("70"),
		StartLong:     json.Number("100"),
		EndLat:        json.Number("75"),
		EndLong:       json.Number("110"),
		RiderName:     "Max",
		DriverName:    "John",
		DriverVehicle: "Car",
	}
}

func TestListRides(t *testing.T) {
	testCases := []struct {
		name   string
		page   string
		size   string
		failed bool
	}{
		{"both absent", "", "", false},
		{"only page", "abc", "", false},
		{"only size", "", "-1", false},
		{"valid", "2", "5", false},
		{"integral float", "2.0", "5", false},
		{"not numbers", "abc", "abc", true},
		{"zero page", "0", "10", true},
		{"negative size", "1", "-1", true},
		{"fractional size", "1", "2.5", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := ListRides(tc.page, tc.size)
			assert.Equal(t, tc.failed, result.Failed)
			if tc.failed {
				assert.Equal(t, MsgListRides, result.Message)
			}
		})
	}
}

func TestGetRideByID(t *testing.T) {
	assert.True(t, GetRideByID("").Failed)
	assert.Equal(t, MsgGetRideByID, GetRideByID("").Message)
	assert.False(t, GetRideByID("abc").Failed)
}

func TestCreateRide_Valid(t *testing.T) {
	assert.False(t, CreateRide(validBody()).Failed)
}

func TestCreateRide_Boundaries(t *testing.T) {
	body := validBody()
	body.StartLat = json.Number("-90")
	body.EndLat = json.Number("90")
	body.StartLong = json.Number("-180")
	body.EndLong = json.Number("180")
	assert.False(t, CreateRide(body).Failed)

	body.StartLat = json.Number("0")
	assert.False(t, CreateRide(body).Failed)
}

func TestCreateRide_Failures(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(b *CreateRideBody)
		message string
	}{
		{"start latitude out of range", func(b *CreateRideBody) { b.StartLat = json.Number("200") }, MsgLatitude},
		{"end latitude too low", func(b *CreateRideBody) { b.EndLat = json.Number("-91") }, MsgLatitude},
		{"latitude missing", func(b *CreateRideBody) { b.EndLat = nil }, MsgLatitude},
		{"latitude fractional", func(b *CreateRideBody) { b.StartLat = json.Number("12.5") }, MsgLatitude},
		{"latitude as string", func(b *CreateRideBody) { b.StartLat = "70" }, MsgLatitude},
		{"start longitude out of range", func(b *CreateRideBody) { b.StartLong = json.Number("200") }, MsgLongitude},
		{"longitude missing", func(b *CreateRideBody) { b.EndLong = nil }, MsgLongitude},
		{"longitude fractional", func(b *CreateRideBody) { b.EndLong = json.Number("110.25") }, MsgLongitude},
		{"rider name number", func(b *CreateRideBody) { b.RiderName = json.Number("123") }, MsgText},
		{"driver name empty", func(b *CreateRideBody) { b.DriverName = "" }, MsgText},
		{"driver vehicle empty", func(b *CreateRideBody) { b.DriverVehicle = "" }, MsgText},
		{"driver vehicle missing", func(b *CreateRideBody) { b.DriverVehicle = nil }, MsgText},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			body := validBody()
			tc.mutate(&body)
			result := CreateRide(body)
			require.True(t, result.Failed)
			assert.Equal(t, tc.message, result.Message)
		})
	}
}

func TestCreateRide_CheckOrder(t *testing.T) {
	body := CreateRideBody{
		StartLat:  json.Number("200"),
		StartLong: json.Number("200"),
		EndLat:    json.Number("75"),
		EndLong:   json.Number("110"),
	}
	assert.Equal(t, MsgLatitude, CreateRide(body).Message)

	body.StartLat = json.Number("70")
	assert.Equal(t, MsgLongitude, CreateRide(body).Message)

	body.StartLong = json.Number("100")
	assert.Equal(t, MsgText, CreateRide(body).Message)
}

func TestCreateRide_EmptyBody(t *testing.T) {
	result := CreateRide(CreateRideBody{})
	assert.True(t, result.Failed)
	assert.Equal(t, MsgLatitude, result.Message)
}

func TestCreateRide_DecodedJSON(t *testing.T) {
	raw := `{"start_lat":70,"start_long":100,"end_lat":75,"end_long":110,"rider_name":"Max","driver_name":"John","driver_vehicle":"Car"}`
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var body CreateRideBody
	require.NoError(t, dec.Decode(&body))
	assert.False(t, CreateRide(body).Failed)
	assert.Equal(t, 70.0, Number(body.StartLat))
}

func TestParsePositiveInt(t *testing.T) {
	n, ok := ParsePositiveInt("42")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	n, ok = ParsePositiveInt("1e40")
	assert.True(t, ok)
	assert.Equal(t, math.MaxInt32, n)

	_, ok = ParsePositiveInt("NaN")
	assert.False(t, ok)

	_, ok = ParsePositiveInt("")
	assert.False(t, ok)
}

func TestCreateRide_ZeroCoordinatesArePresent(t *testing.T) {
	body := CreateRideBody{
		StartLat:      json.Number("0"),
		StartLong:     json.Number("0"),
		EndLat:        json.Number("0"),
		EndLong:       json.Number("0"),
		RiderName:     "Max",
		DriverName:    "John",
		DriverVehicle: "Car",
	}

	assert.False(t, CreateRide(body).Failed)

	body.StartLat = nil
	assert.Equal(t, MsgLatitude, CreateRide(body).Message)
}
