package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"solar-roi/internal/metrics"
)

// Metrics records a counter and latency observation per request.
// The endpoint label is the route template (c.FullPath) so path
// parameters do not blow up the label cardinality.
func Metrics(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		collector.RecordAPIRequest(endpoint, c.Request.Method, strconv.Itoa(c.Writer.Status()))
		collector.RecordAPIDuration(endpoint, time.Since(start).Seconds())
	}
}
