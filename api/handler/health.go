package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/farescout/models"
)

// Health returns a handler for GET /api/v1/health.
//
// Reports search load and degrades status when > 80% of the advisory
// concurrent-search ceiling is in use.
func Health(core Core, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := core.Stats()

		status := "healthy"
		if stats.MaxConcurrent > 0 && stats.ActiveSearches > int(float64(stats.MaxConcurrent)*0.8) {
			status = "degraded"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Stats:   stats,
			Version: "0.1.0",
		})
	}
}
