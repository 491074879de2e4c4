package middleware

import (
	"strconv"
	"time"

	"digital-menu-api/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records count, latency and status class of every request
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		code := strconv.Itoa(status)

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, code).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, code).Observe(time.Since(start).Seconds())
		m.HTTPStatusTotal.WithLabelValues(metrics.StatusCategory(status)).Inc()
	}
}
