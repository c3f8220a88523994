package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides application metrics collection
type Collector struct {
	// API metrics
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec
	APIErrorsTotal     *prometheus.CounterVec

	// Weather provider metrics
	WeatherFetchesTotal *prometheus.CounterVec

	// Estimate metrics
	EstimatesTotal  prometheus.Counter
	EstimateSavings prometheus.Histogram
}

// NewCollector creates a new metrics collector registered against the
// default registry. Create it once per process.
func NewCollector(namespace string) *Collector {
	return &Collector{
		APIRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests by endpoint, method, and status",
			},
			[]string{"endpoint", "method", "status"},
		),

		APIRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{"endpoint"},
		),

		APIErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_errors_total",
				Help:      "Total number of API errors by code",
			},
			[]string{"code", "endpoint"},
		),

		WeatherFetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "weather_fetches_total",
				Help:      "Total number of weather provider fetches by outcome",
			},
			[]string{"outcome"}, // "ok", "not_found", "unauthorized", "rate_limited", "upstream_error", "unavailable"
		),

		EstimatesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "estimates_computed_total",
				Help:      "Total number of savings estimates computed",
			},
		),

		EstimateSavings: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "estimate_monthly_savings",
				Help:      "Distribution of estimated monthly bill savings in the billing currency",
				Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
			},
		),
	}
}

// RecordAPIRequest increments the API request counter.
// All record methods are safe to call on a nil Collector.
func (c *Collector) RecordAPIRequest(endpoint, method, status string) {
	if c == nil {
		return
	}
	c.APIRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
}

// RecordAPIDuration observes one request duration for an endpoint
func (c *Collector) RecordAPIDuration(endpoint string, seconds float64) {
	if c == nil {
		return
	}
	c.APIRequestDuration.WithLabelValues(endpoint).Observe(seconds)
}

// RecordAPIError increments the API error counter
func (c *Collector) RecordAPIError(code, endpoint string) {
	if c == nil {
		return
	}
	c.APIErrorsTotal.WithLabelValues(code, endpoint).Inc()
}

// RecordWeatherFetch increments the provider fetch counter by outcome
func (c *Collector) RecordWeatherFetch(outcome string) {
	if c == nil {
		return
	}
	c.WeatherFetchesTotal.WithLabelValues(outcome).Inc()
}

// RecordEstimate counts one computed estimate and observes its savings
func (c *Collector) RecordEstimate(savings float64) {
	if c == nil {
		return
	}
	c.EstimatesTotal.Inc()
	c.EstimateSavings.Observe(savings)
}
