// Package metrics provides Prometheus metrics for the mock servers and probe.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Default histogram buckets for request latency.
var defaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// Auth decision label values.
const (
	DecisionAllowed = "allowed"
	DecisionDenied  = "denied"
)

// Metrics holds all Prometheus metric collectors.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	AuthDecisions *prometheus.CounterVec

	ProbeDuration  *prometheus.HistogramVec
	ProbeResponses *prometheus.CounterVec
}

// New creates a Metrics instance with a custom registry and all collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: reg,

		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forwardauth_mock_http_requests_total",
			Help: "Total inbound HTTP requests.",
		}, []string{"method", "status_code", "path_prefix"}),

		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "forwardauth_mock_http_request_duration_seconds",
			Help:    "Inbound HTTP request latency in seconds.",
			Buckets: defaultBuckets,
		}, []string{"method", "status_code", "path_prefix"}),

		RequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "forwardauth_mock_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed.",
		}),

		AuthDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forwardauth_mock_auth_decisions_total",
			Help: "Basic auth checks by outcome.",
		}, []string{"result"}),

		ProbeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "forwardauth_mock_probe_request_duration_seconds",
			Help:    "Probe request latency in seconds.",
			Buckets: defaultBuckets,
		}, []string{"mode"}),

		ProbeResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forwardauth_mock_probe_responses_total",
			Help: "Probe responses by mode and status code.",
		}, []string{"mode", "status_code"}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.RequestsInFlight,
		m.AuthDecisions,
		m.ProbeDuration,
		m.ProbeResponses,
	)

	return m
}

// knownMethods lists the allowed HTTP method label values (bounded cardinality).
var knownMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true,
	"PATCH": true, "HEAD": true, "OPTIONS": true,
}

// NormalizeMethod returns a bounded HTTP method label for Prometheus metrics.
// Non-standard methods are mapped to "other" to prevent cardinality explosion.
func NormalizeMethod(method string) string {
	if knownMethods[method] {
		return method
	}
	return "other"
}

// knownRoutes lists exact-match path label values.
var knownRoutes = []string{"/auth", "/health", "/usage", "/metrics"}

// NormalizePath returns a bounded path label for Prometheus metrics. Anything
// under the MCP prefix collapses to "/mcp".
func NormalizePath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	for _, route := range knownRoutes {
		if path == route {
			return route
		}
	}
	if strings.HasPrefix(path, "/mcp") {
		return "/mcp"
	}
	return "other"
}
