package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	queriesTotal    *prometheus.CounterVec
	queryDuration   *prometheus.HistogramVec
	confidenceScore *prometheus.HistogramVec

	searchTotal    *prometheus.CounterVec
	searchCache    *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
	searchResults  *prometheus.HistogramVec

	tokenCostTotal *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nn",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nn",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "nn",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queriesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nn",
			Subsystem: "pipeline",
			Name:      "queries_total",
			Help:      "Total processed queries by role and outcome.",
		},
		[]string{"service", "role", "status"},
	)
	queryDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nn",
			Subsystem: "pipeline",
			Name:      "query_duration_seconds",
			Help:      "End-to-end query duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "role"},
	)
	confidenceScore := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nn",
			Subsystem: "pipeline",
			Name:      "confidence_score",
			Help:      "Distribution of aggregate confidence scores.",
			Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		},
		[]string{"service"},
	)
	searchTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nn",
			Subsystem: "search",
			Name:      "requests_total",
			Help:      "Total search calls by outcome.",
		},
		[]string{"service", "outcome"},
	)
	searchCache := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nn",
			Subsystem: "search",
			Name:      "cache_total",
			Help:      "Search cache lookups by result.",
		},
		[]string{"service", "result"},
	)
	searchDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nn",
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Search call duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	searchResults := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nn",
			Subsystem: "search",
			Name:      "results",
			Help:      "Distribution of result counts per search call.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10},
		},
		[]string{"service"},
	)
	tokenCostTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nn",
			Subsystem: "llm",
			Name:      "token_cost_total",
			Help:      "Accumulated token cost estimate (total_tokens / 1000).",
		},
		[]string{"service", "model"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		queriesTotal,
		queryDuration,
		confidenceScore,
		searchTotal,
		searchCache,
		searchDuration,
		searchResults,
		tokenCostTotal,
	)

	return &HTTPServerMetrics{
		registry:        registry,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestInFlight: requestInFlight,
		queriesTotal:    queriesTotal,
		queryDuration:   queryDuration,
		confidenceScore: confidenceScore,
		searchTotal:     searchTotal,
		searchCache:     searchCache,
		searchDuration:  searchDuration,
		searchResults:   searchResults,
		tokenCostTotal:  tokenCostTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
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
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

func (m *HTTPServerMetrics) RecordQuery(service, role, status string, duration time.Duration) {
	if status == "" {
		status = "unknown"
	}
	m.queriesTotal.WithLabelValues(service, role, status).Inc()
	m.queryDuration.WithLabelValues(service, role).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RecordConfidence(service string, score float64) {
	m.confidenceScore.WithLabelValues(service).Observe(score)
}

func (m *HTTPServerMetrics) RecordSearch(service string, cacheHit bool, failed bool, resultCount int, duration time.Duration) {
	outcome := "ok"
	if failed {
		outcome = "error"
	}
	m.searchTotal.WithLabelValues(service, outcome).Inc()
	m.searchDuration.WithLabelValues(service).Observe(duration.Seconds())
	m.searchResults.WithLabelValues(service).Observe(float64(resultCount))

	result := "miss"
	if cacheHit {
		result = "hit"
	}
	m.searchCache.WithLabelValues(service, result).Inc()
}

func (m *HTTPServerMetrics) RecordTokenCost(service, model string, cost float64) {
	if model == "" {
		model = "unknown"
	}
	if cost > 0 {
		m.tokenCostTotal.WithLabelValues(service, model).Add(cost)
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
