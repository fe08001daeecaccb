package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rides/internal/repository"
)

// Error codes returned in ErrorResponse.ErrorCode.
const (
	CodeValidationError  = "VALIDATION_ERROR"
	CodeServerError      = "SERVER_ERROR"
	CodeResourceNotFound = "RESOURCE_NOT_FOUND"
	CodeConflict         = "CONFLICT"
)

const (
	msgNotFound    = "Could not find any rides"
	msgServerError = "Unknown error"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// respondValidationError sends a 400 carrying the failed rule.
func respondValidationError(c *gin.Context, logger *zap.Logger, message string) {
	logger.Warn("Validation error",
		zap.String("path", c.FullPath()),
		zap.String("reason", message),
	)
	c.JSON(http.StatusBadRequest, ErrorResponse{
		ErrorCode: CodeValidationError,
		Message:   message,
	})
}

// respondError maps err to a status code and sends a generic body. The
// underlying cause is only logged.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	code := mapErrorToHTTPStatus(err)
	switch code {
	case http.StatusNotFound:
		logger.Warn("Rides not found", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(code, ErrorResponse{ErrorCode: CodeResourceNotFound, Message: msgNotFound})
	default:
		logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(code, ErrorResponse{ErrorCode: CodeServerError, Message: msgServerError})
	}
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Store failures, including id collisions, are server errors.
	default:
		return http.StatusInternalServerError
	}
}
