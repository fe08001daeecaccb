package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rides/internal/domain"
	"rides/internal/service"
	"rides/internal/validation"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService *service.RideService
	logger      *zap.Logger
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService, logger *zap.Logger) *RideHandler {
	return &RideHandler{
		rideService: rideService,
		logger:      logger,
	}
}

// RideResponse is the HTTP representation of a ride.
type RideResponse struct {
	RowID         int64   `json:"rowID"`
	RideID        string  `json:"rideID"`
	StartLat      float64 `json:"startLat"`
	StartLong     float64 `json:"startLong"`
	EndLat        float64 `json:"endLat"`
	EndLong       float64 `json:"endLong"`
	RiderName     string  `json:"riderName"`
	DriverName    string  `json:"driverName"`
	DriverVehicle string  `json:"driverVehicle"`
	Created       string  `json:"created"`
}

// ListRidesResponse is the pagination envelope for GET /rides.
type ListRidesResponse struct {
	TotalItems int            `json:"totalItems"`
	TotalPages int            `json:"totalPages"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	Data       []RideResponse `json:"data"`
}

func toRideResponse(r *domain.Ride) RideResponse {
	return RideResponse{
		RowID:         r.RowID,
		RideID:        r.RideID,
		StartLat:      r.StartLat,
		StartLong:     r.StartLong,
		EndLat:        r.EndLat,
		EndLong:       r.EndLong,
		RiderName:     r.RiderName,
		DriverName:    r.DriverName,
		DriverVehicle: r.DriverVehicle,
		Created:       r.Created.UTC().Format(time.RFC3339),
	}
}

// GetAll handles GET /rides
func (h *RideHandler) GetAll(c *gin.Context) {
	pageParam := c.Query("page")
	sizeParam := c.Query("size")

	if result := validation.ListRides(pageParam, sizeParam); result.Failed {
		respondValidationError(c, h.logger, result.Message)
		return
	}

	// A lone or unparsable parameter keeps its default.
	var req service.ListRidesRequest
	if page, ok := validation.ParsePositiveInt(pageParam); ok {
		req.Page = page
	}
	if size, ok := validation.ParsePositiveInt(sizeParam); ok {
		req.Size = size
	}

	page, err := h.rideService.ListRides(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	data := make([]RideResponse, 0, len(page.Data))
	for _, r := range page.Data {
		data = append(data, toRideResponse(r))
	}

	respondJSON(c, http.StatusOK, ListRidesResponse{
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
		Page:       page.Page,
		Size:       page.Size,
		Data:       data,
	})
}

// GetRide handles GET /rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	rideID := c.Param("id")

	if result := validation.GetRideByID(rideID); result.Failed {
		respondValidationError(c, h.logger, result.Message)
		return
	}

	ride, err := h.rideService.GetRide(c.Request.Context(), rideID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// CreateRide handles POST /rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	var body validation.CreateRideBody

	// An undecodable body leaves every field unset and fails validation below.
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		h.logger.Debug("Could not decode ride body", zap.Error(err))
		body = validation.CreateRideBody{}
	}

	if result := validation.CreateRide(body); result.Failed {
		respondValidationError(c, h.logger, result.Message)
		return
	}

	ride, err := h.rideService.CreateRide(c.Request.Context(), service.CreateRideRequest{
		StartLat:      validation.Number(body.StartLat),
		StartLong:     validation.Number(body.StartLong),
		EndLat:        validation.Number(body.EndLat),
		EndLong:       validation.Number(body.EndLong),
		RiderName:     body.RiderName.(string),
		DriverName:    body.DriverName.(string),
		DriverVehicle: body.DriverVehicle.(string),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRideResponse(ride))
}
