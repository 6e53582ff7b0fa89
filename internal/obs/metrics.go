package obs

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Shared HTTP metrics.
var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	loginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Login attempts by outcome and resolution source.",
		},
		[]string{"outcome", "source"},
	)

	onboardingResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_results_total",
			Help: "Organization onboarding submissions by result.",
		},
		[]string{"result"},
	)

	insightDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "insight_generation_duration_seconds",
			Help:    "Insight generator latencies in seconds, including the simulated analysis delay.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"panel"},
	)
)

// Init registers metrics with the default registry.
func Init() {
	prometheus.MustRegister(
		httpInFlight, httpRequestsTotal, httpRequestDuration,
		loginAttempts, onboardingResults, insightDuration,
	)
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveLogin records a credential resolution outcome.
// source is one of: demo, remote, cache, none.
func ObserveLogin(outcome, source string) {
	loginAttempts.WithLabelValues(outcome, source).Inc()
}

// ObserveOnboarding records an onboarding submission result.
// result is one of: created, validation_failed, failed.
func ObserveOnboarding(result string) {
	onboardingResults.WithLabelValues(result).Inc()
}

// ObserveInsight records how long one insight panel took to produce.
func ObserveInsight(panel string, d time.Duration) {
	insightDuration.WithLabelValues(panel).Observe(d.Seconds())
}

// CanonicalPath collapses per-entity path segments so metric labels stay
// low-cardinality. Query strings are stripped.
func CanonicalPath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	parts := strings.Split(path, "/")
	if len(parts) >= 4 && parts[1] == "v1" && parts[2] == "organizations" {
		parts[3] = ":id"
		path = strings.Join(parts[:4], "/")
		if len(parts) == 5 {
			path += "/" + parts[4]
		}
	}
	return path
}

// Instrument wraps a handler with RPS/latency/in-flight measurements.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := CanonicalPath(r.URL.Path)
		method := r.Method

		httpInFlight.Inc()
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, code: 200}
		next.ServeHTTP(sw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(sw.code)

		httpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpInFlight.Dec()
	})
}

// statusWriter captures the response code for instrumentation.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// Flush keeps SSE responses streaming through the wrapper.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
