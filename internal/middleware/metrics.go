package middleware

import (
	"strconv"
	"time"

	"github.com/GunarsK-portfolio/profile-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Instrument records request counts and latency per route template, so
// object keys in paths do not explode label cardinality.
func Instrument(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
