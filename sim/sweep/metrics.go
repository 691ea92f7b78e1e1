package sweep

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the sweep and HTTP collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	SweepsTotal           *prometheus.CounterVec
	ScenariosCompleted    prometheus.Counter
	ReplicationsCompleted prometheus.Counter
	ReplicationDuration   prometheus.Histogram

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.SweepsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweeps_total",
			Help:      "Total number of sweeps by outcome",
		},
		[]string{"status"},
	)

	m.ScenariosCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scenarios_completed_total",
			Help:      "Total number of scenarios reduced",
		},
	)

	m.ReplicationsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replications_completed_total",
			Help:      "Total number of replications simulated",
		},
	)

	m.ReplicationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "replication_duration_seconds",
			Help:      "Wall time of one replication in seconds",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(
		m.SweepsTotal,
		m.ScenariosCompleted,
		m.ReplicationsCompleted,
		m.ReplicationDuration,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)
	return m
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// ObserveSweep counts a finished sweep.
func (m *Metrics) ObserveSweep(success bool) {
	if m == nil {
		return
	}
	status := "success"
	if !success {
		status = "cancelled"
	}
	m.SweepsTotal.WithLabelValues(status).Inc()
}

// ObserveScenario counts a reduced scenario.
func (m *Metrics) ObserveScenario() {
	if m == nil {
		return
	}
	m.ScenariosCompleted.Inc()
}

// ObserveReplication counts a replication and records its duration.
func (m *Metrics) ObserveReplication(d time.Duration) {
	if m == nil {
		return
	}
	m.ReplicationsCompleted.Inc()
	m.ReplicationDuration.Observe(d.Seconds())
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
