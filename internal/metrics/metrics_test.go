package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// NewCollector registers against the default registry, so this test
// creates exactly one collector for the whole package.
func TestCollector(t *testing.T) {
	c := NewCollector("solar_roi_test")

	c.RecordAPIRequest("/api/v1/estimate", "POST", "200")
	c.RecordAPIRequest("/api/v1/estimate", "POST", "200")
	c.RecordAPIDuration("/api/v1/estimate", 0.05)
	c.RecordAPIError("LOCATION_NOT_FOUND", "/api/v1/estimate")
	c.RecordWeatherFetch("ok")
	c.RecordEstimate(1200)

	if got := testutil.ToFloat64(c.APIRequestsTotal.WithLabelValues("/api/v1/estimate", "POST", "200")); got != 2 {
		t.Errorf("api_requests_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.APIErrorsTotal.WithLabelValues("LOCATION_NOT_FOUND", "/api/v1/estimate")); got != 1 {
		t.Errorf("api_errors_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.WeatherFetchesTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("weather_fetches_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.EstimatesTotal); got != 1 {
		t.Errorf("estimates_computed_total = %v, want 1", got)
	}
}

func TestCollectorNilSafe(t *testing.T) {
	var c *Collector
	c.RecordAPIRequest("/x", "GET", "200")
	c.RecordAPIDuration("/x", 0.01)
	c.RecordAPIError("API_ERROR", "/x")
	c.RecordWeatherFetch("ok")
	c.RecordEstimate(0)
}
