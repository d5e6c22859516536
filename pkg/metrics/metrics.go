// Package metrics provides Prometheus instrumentation for SupplyHub.
//
// It pre-defines the standard HTTP metrics plus the vendor-feed counters the
// sync pipeline reports into.
//
// Wire it up once in internal/server:
//
//	r.Use(metrics.Middleware())
//	r.HandleFunc("/metrics", metrics.Handler())
//
// Then scrape http://localhost:8080/metrics from Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ─────────────────────────────────────────────
// Built-in HTTP metrics
// ─────────────────────────────────────────────

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, route path, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "supplyhub",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "supplyhub",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "supplyhub",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})
)

// ─────────────────────────────────────────────
// Vendor feed metrics
// ─────────────────────────────────────────────

var (
	// FeedRowsTotal counts normalized rows by vendor, pass and outcome.
	// outcome is one of "created" | "updated" | "skipped" | "error".
	FeedRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "supplyhub",
			Subsystem: "feed",
			Name:      "rows_total",
			Help:      "Total feed rows processed, by vendor, pass and outcome.",
		},
		[]string{"vendor", "pass", "outcome"},
	)

	// FeedRunDuration tracks how long a full vendor sync run takes.
	FeedRunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "supplyhub",
			Subsystem: "feed",
			Name:      "run_duration_seconds",
			Help:      "Duration of full vendor sync runs in seconds.",
			Buckets:   []float64{1, 5, 15, 60, 300, 900, 1800},
		},
		[]string{"vendor", "result"}, // result: "success" | "failure"
	)

	// FeedLastSuccess records the unix time of the last successful run.
	FeedLastSuccess = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "supplyhub",
			Subsystem: "feed",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix timestamp of the last successful sync run per vendor.",
		},
		[]string{"vendor"},
	)
)

// Registry is the dedicated registry all SupplyHub metrics live in.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		FeedRowsTotal,
		FeedRunDuration,
		FeedLastSuccess,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler returns the /metrics scrape endpoint.
func Handler() http.HandlerFunc {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}).ServeHTTP
}

// statusWriter captures the response code for labelling.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware instruments every request with duration, count and in-flight
// metrics. Install it outermost so latency covers the whole stack.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			status := strconv.Itoa(sw.status)
			RequestDuration.WithLabelValues(r.Method, r.URL.Path, status).
				Observe(time.Since(start).Seconds())
			RequestTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		})
	}
}
