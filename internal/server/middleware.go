package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/beatporter/beatporter/internal/metrics"
)

// metricsMiddleware records request counts and latencies per route.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		if path == "/metrics" || path == "/health" {
			return
		}

		metrics.HTTPRequestsTotal.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Inc()
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}
