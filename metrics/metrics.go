// Package metrics provides Prometheus metrics for HTTP serving and for the
// extraction pipeline:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//   - omim_* gauges/counters tracking the last extraction run
//
// All metrics are automatically registered with the Prometheus default
// registry during package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen recently)",
		},
	)

	ExtractionDuration = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "omim_extraction_duration_seconds",
			Help: "Wall-clock duration of the last extraction run",
		},
	)

	AssociationsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "omim_associations_total",
			Help: "Associations emitted by the last extraction run",
		},
	)

	RowsParsed = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "omim_rows_parsed",
			Help: "Data rows parsed per source file in the last run",
		},
		[]string{"file"},
	)

	MalformedRowsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "omim_malformed_rows_total",
			Help: "Data rows skipped as malformed across all runs",
		},
	)

	MalformedMentionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "omim_malformed_mentions_total",
			Help: "Phenotype mentions skipped as malformed across all runs",
		},
	)

	ResolutionFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "omim_resolution_failures_total",
			Help: "morbidmap rows dropped because their MIM had no gene in the index",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(ExtractionDuration)
	prometheus.MustRegister(AssociationsTotal)
	prometheus.MustRegister(RowsParsed)
	prometheus.MustRegister(MalformedRowsTotal)
	prometheus.MustRegister(MalformedMentionsTotal)
	prometheus.MustRegister(ResolutionFailuresTotal)
}
