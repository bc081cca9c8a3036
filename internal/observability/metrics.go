// Package observability exposes Prometheus metrics for the hosted
// platform service.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is
// valid and records nothing, so callers never need to guard.
type Metrics struct {
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	ingestsTotal      *prometheus.CounterVec
	scoringDuration   prometheus.Observer
}

// NewMetrics creates and registers the service collectors on the
// default registry. Call once per process.
func NewMetrics() *Metrics {
	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scmap_http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scmap_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scmap_dataset_cache_hits_total",
			Help: "Total dataset cache hits observed.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scmap_dataset_cache_misses_total",
			Help: "Total dataset cache misses observed.",
		}),
		ingestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scmap_ingests_total",
			Help: "Total dataset intakes by outcome.",
		}, []string{"outcome"}),
		scoringDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scmap_scoring_duration_seconds",
			Help:    "Histogram of full-chamber scoring run durations.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	prometheus.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.cacheHits,
		m.cacheMisses,
		m.ingestsTotal,
		m.scoringDuration,
	)

	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// WrapHandler instruments a route with request counts and durations.
func (m *Metrics) WrapHandler(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		duration := time.Since(start).Seconds()
		if m != nil {
			m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
			m.httpDuration.WithLabelValues(route).Observe(duration)
		}
	})
}

// Handler returns the /metrics scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}

// CacheHit records a dataset cache hit.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

// CacheMiss records a dataset cache miss.
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

// IngestCompleted records a successful dataset intake.
func (m *Metrics) IngestCompleted() {
	if m == nil {
		return
	}
	m.ingestsTotal.WithLabelValues("completed").Inc()
}

// IngestFailed records a failed dataset intake.
func (m *Metrics) IngestFailed() {
	if m == nil {
		return
	}
	m.ingestsTotal.WithLabelValues("failed").Inc()
}

// ScoringRun records the duration of one full-chamber scoring pass.
func (m *Metrics) ScoringRun(duration time.Duration) {
	if m == nil {
		return
	}
	m.scoringDuration.Observe(duration.Seconds())
}
