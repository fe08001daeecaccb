package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health with a static liveness confirmation.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "Healthy")
}
