package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/routepulse/service-routes/internal/application"
)

// Success writes a 200 with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// BadRequest writes a 400 with an error message.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// NotFound writes a 404 with an error message.
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": msg})
}

// Error maps a pipeline error onto its HTTP status. Resolution failures are
// client errors, empty route sets are not-found, and anything else is an
// upstream failure surfaced as 502.
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrPlaceNotResolved):
		BadRequest(c, "Could not geocode one or both places.")
	case errors.Is(err, application.ErrNoBaseRoutes):
		NotFound(c, "No base routes found")
	case errors.Is(err, application.ErrNoLiveRoutes):
		NotFound(c, "No live traffic routes found")
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream request failed"})
	}
}
