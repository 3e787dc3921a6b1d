// Package metrics owns the Prometheus collectors exported at /metrics.
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "reel"

// System records request, toggle, and cache metrics on a private registry.
type System struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
	toggles         *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
}

// New creates a System with Go runtime and process collectors registered.
func New() *System {
	s := &System{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds, by route, method, and status.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method", "status"},
		),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		}),
		toggles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "toggles_total",
				Help:      "Like and subscription toggles, by target kind and resulting state.",
			},
			[]string{"kind", "state"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Cache lookups, by result.",
			},
			[]string{"result"},
		),
	}

	s.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		s.requestDuration,
		s.inFlight,
		s.toggles,
		s.cacheLookups,
	)

	return s
}

// RegisterDB exports connection pool statistics for db.
func (s *System) RegisterDB(name string, db *sql.DB) {
	s.registry.MustRegister(collectors.NewDBStatsCollector(db, name))
}

// Handler serves the registry in the Prometheus exposition format.
func (s *System) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (s *System) Registry() *prometheus.Registry {
	return s.registry
}

// ObserveRequest records one completed request.
func (s *System) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	s.requestDuration.
		WithLabelValues(route, method, strconv.Itoa(status)).
		Observe(elapsed.Seconds())
}

// TrackInFlight increments the in-flight gauge and returns its decrement.
func (s *System) TrackInFlight() func() {
	s.inFlight.Inc()
	return s.inFlight.Dec
}

// RecordToggle counts a toggle of kind ending in state.
func (s *System) RecordToggle(kind string, state bool) {
	s.toggles.WithLabelValues(kind, strconv.FormatBool(state)).Inc()
}

// RecordCache counts a cache hit or miss.
func (s *System) RecordCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	s.cacheLookups.WithLabelValues(result).Inc()
}
