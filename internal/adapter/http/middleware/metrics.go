package middleware

import (
	"strconv"
	"time"

	"fulfillment-ledger/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// HTTPMetrics records request counts and latency by route template.
func HTTPMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		m.ObserveHTTP(c.Request.Method, c.FullPath(), strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
