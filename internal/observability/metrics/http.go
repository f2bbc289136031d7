package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "searchbox"

var breakerStates = []string{"closed", "half-open", "open"}

var knownPaths = map[string]struct{}{
	"/healthz":              {},
	"/metrics":              {},
	"/openapi.json":         {},
	"/v1/suggestions":       {},
	"/v1/resolve":           {},
	"/v1/navigate":          {},
	"/v1/analytics/actions": {},
}

type HTTPServerMetrics struct {
	service  string
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge
	rejectedTotal   *prometheus.CounterVec

	suggestTotal     *prometheus.CounterVec
	suggestItems     *prometheus.HistogramVec
	resolutionsTotal *prometheus.CounterVec
	navigationsTotal *prometheus.CounterVec
	breakerState     *prometheus.GaugeVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	rejectedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rejected_total",
			Help:      "Requests rejected before reaching a handler, by reason.",
		},
		[]string{"service", "reason"},
	)
	suggestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "suggest",
			Name:      "requests_total",
			Help:      "Suggestion lookups by outcome.",
		},
		[]string{"service", "outcome"},
	)
	suggestItems := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "suggest",
			Name:      "items",
			Help:      "Suggestions returned per lookup, including the search item.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 11, 16, 21},
		},
		[]string{"service"},
	)
	resolutionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolve",
			Name:      "resolutions_total",
			Help:      "Query resolutions by resulting kind.",
		},
		[]string{"service", "kind"},
	)
	navigationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "navigate",
			Name:      "navigations_total",
			Help:      "Navigation decisions by action.",
		},
		[]string{"service", "action"},
	)
	breakerState := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "resilience",
			Name:      "breaker_state",
			Help:      "Circuit breaker state per operation; 1 marks the current state.",
		},
		[]string{"service", "operation", "state"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		rejectedTotal,
		suggestTotal,
		suggestItems,
		resolutionsTotal,
		navigationsTotal,
		breakerState,
	)

	return &HTTPServerMetrics{
		service:          service,
		registry:         registry,
		requestTotal:     requestTotal,
		requestDuration:  requestDuration,
		requestInFlight:  requestInFlight,
		rejectedTotal:    rejectedTotal,
		suggestTotal:     suggestTotal,
		suggestItems:     suggestItems,
		resolutionsTotal: resolutionsTotal,
		navigationsTotal: navigationsTotal,
		breakerState:     breakerState,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			m.service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(m.service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath keeps label cardinality bounded for unknown routes.
func normalizePath(path string) string {
	if _, ok := knownPaths[path]; ok {
		return path
	}
	return "other"
}

func (m *HTTPServerMetrics) RecordRejected(reason string) {
	m.rejectedTotal.WithLabelValues(m.service, reason).Inc()
}

// RecordSuggest counts one lookup. Outcome is "short", "empty" or "results".
func (m *HTTPServerMetrics) RecordSuggest(outcome string, items int) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.suggestTotal.WithLabelValues(m.service, outcome).Inc()
	m.suggestItems.WithLabelValues(m.service).Observe(float64(items))
}

func (m *HTTPServerMetrics) RecordResolution(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	m.resolutionsTotal.WithLabelValues(m.service, kind).Inc()
}

func (m *HTTPServerMetrics) RecordNavigation(action string) {
	if action == "" {
		action = "none"
	}
	m.navigationsTotal.WithLabelValues(m.service, action).Inc()
}

func (m *HTTPServerMetrics) SetBreakerState(operation, state string) {
	for _, s := range breakerStates {
		value := 0.0
		if s == state {
			value = 1
		}
		m.breakerState.WithLabelValues(m.service, operation, s).Set(value)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
