// Package metrics provides Prometheus metrics for coin aggregation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "postmint"

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	SourceFetches    *prometheus.CounterVec
	SourceRecords    *prometheus.CounterVec
	SourceLatency    *prometheus.HistogramVec
	AggregationRuns  prometheus.Counter
	CreatorRecords   prometheus.Histogram
	CacheErrors      *prometheus.CounterVec
	ManualEntries    *prometheus.CounterVec
	APIRequests      *prometheus.CounterVec
	APIRequestErrors *prometheus.CounterVec
}

// New creates a Metrics instance registered on its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		SourceFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "aggregate",
			Name:      "source_fetches_total",
			Help:      "Source fetch attempts by source and status",
		}, []string{"source", "status"}),
		SourceRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "aggregate",
			Name:      "source_records_total",
			Help:      "Records returned by each source",
		}, []string{"source"}),
		SourceLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "aggregate",
			Name:      "source_fetch_seconds",
			Help:      "Source fetch latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		AggregationRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "aggregate",
			Name:      "runs_total",
			Help:      "Completed aggregation runs",
		}),
		CreatorRecords: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "aggregate",
			Name:      "creator_records",
			Help:      "Creator records found per run",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
		CacheErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "errors_total",
			Help:      "Cache failures by operation",
		}, []string{"op"}),
		ManualEntries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "manual_entries_total",
			Help:      "Manual coin entries by result",
		}, []string{"result"}),
		APIRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "coins_api",
			Name:      "requests_total",
			Help:      "Requests sent to the coins API by endpoint",
		}, []string{"endpoint"}),
		APIRequestErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "coins_api",
			Name:      "request_errors_total",
			Help:      "Failed requests to the coins API by endpoint",
		}, []string{"endpoint"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveSourceFetch(source string, elapsed time.Duration, records int, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.SourceFetches.WithLabelValues(source, status).Inc()
	m.SourceLatency.WithLabelValues(source).Observe(elapsed.Seconds())
	if err == nil {
		m.SourceRecords.WithLabelValues(source).Add(float64(records))
	}
}

func (m *Metrics) ObserveRun(creatorRecords int) {
	if m == nil {
		return
	}
	m.AggregationRuns.Inc()
	m.CreatorRecords.Observe(float64(creatorRecords))
}

func (m *Metrics) CacheError(op string) {
	if m == nil {
		return
	}
	m.CacheErrors.WithLabelValues(op).Inc()
}

func (m *Metrics) ManualEntry(result string) {
	if m == nil {
		return
	}
	m.ManualEntries.WithLabelValues(result).Inc()
}

func (m *Metrics) APIRequest(endpoint string, err error) {
	if m == nil {
		return
	}
	m.APIRequests.WithLabelValues(endpoint).Inc()
	if err != nil {
		m.APIRequestErrors.WithLabelValues(endpoint).Inc()
	}
}
