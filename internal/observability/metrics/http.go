package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPServerMetrics holds the API-side registry: generic HTTP counters
// plus the search-domain series (per-source degradation, category result
// counts, search latency).
type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	searchTotal        *prometheus.CounterVec
	searchDuration     *prometheus.HistogramVec
	searchResults      *prometheus.HistogramVec
	sourceDegraded     *prometheus.CounterVec
	hydrationTotal     *prometheus.CounterVec
	overviewCannedHits *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lis",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lis",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "lis",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	searchTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lis",
			Subsystem: "search",
			Name:      "requests_total",
			Help:      "Total issue searches by outcome.",
		},
		[]string{"service", "outcome"},
	)
	searchDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lis",
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Issue search duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	searchResults := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lis",
			Subsystem: "search",
			Name:      "results_per_category",
			Help:      "Distribution of result counts per category per search.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21, 34, 50},
		},
		[]string{"service", "category"},
	)
	sourceDegraded := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lis",
			Subsystem: "search",
			Name:      "source_degraded_total",
			Help:      "Searches where a source contributed zero results due to failure or timeout.",
		},
		[]string{"service", "source"},
	)
	hydrationTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lis",
			Subsystem: "records",
			Name:      "hydrations_total",
			Help:      "Full-text hydration lookups by outcome.",
		},
		[]string{"service", "outcome"},
	)
	overviewCannedHits := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lis",
			Subsystem: "search",
			Name:      "overview_total",
			Help:      "Issue overviews served, canned topic match vs generic fallback.",
		},
		[]string{"service", "kind"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		searchTotal,
		searchDuration,
		searchResults,
		sourceDegraded,
		hydrationTotal,
		overviewCannedHits,
	)

	return &HTTPServerMetrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		searchTotal:        searchTotal,
		searchDuration:     searchDuration,
		searchResults:      searchResults,
		sourceDegraded:     sourceDegraded,
		hydrationTotal:     hydrationTotal,
		overviewCannedHits: overviewCannedHits,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
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
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/records/"):
		return "/v1/records/{record_id}/full-text"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordSearch(service, outcome string, duration time.Duration) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.searchTotal.WithLabelValues(service, outcome).Inc()
	m.searchDuration.WithLabelValues(service).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RecordSearchResults(service string, legislation, judgments, external int) {
	m.searchResults.WithLabelValues(service, "legislation").Observe(float64(legislation))
	m.searchResults.WithLabelValues(service, "judgments").Observe(float64(judgments))
	m.searchResults.WithLabelValues(service, "external").Observe(float64(external))
}

func (m *HTTPServerMetrics) RecordSourceDegraded(service, source string) {
	if source == "" {
		source = "unknown"
	}
	m.sourceDegraded.WithLabelValues(service, source).Inc()
}

func (m *HTTPServerMetrics) RecordHydration(service, outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.hydrationTotal.WithLabelValues(service, outcome).Inc()
}

func (m *HTTPServerMetrics) RecordOverview(service string, canned bool) {
	kind := "generic"
	if canned {
		kind = "canned"
	}
	m.overviewCannedHits.WithLabelValues(service, kind).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
