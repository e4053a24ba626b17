package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rentdesk/backend/internal/infrastructure/telemetry"
)

// ProfilingLabels tags CPU samples of each request with its route pattern and
// method. Unmatched routes are left unlabelled.
func ProfilingLabels() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			c.Next()
			return
		}
		labels := telemetry.HTTPRequestLabels(route, c.Request.Method)
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
