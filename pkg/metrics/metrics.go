// Package metrics exposes Prometheus instrumentation for the document server.
//
// Metrics are disabled until InitRegistry is called; every record function is
// a no-op while disabled so instrumented code never needs to check.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	vfserrors "github.com/Clay-Ferguson/quanta-docs/pkg/vfs/errors"
)

var (
	mu       sync.Mutex
	registry *prometheus.Registry

	engineOpsTotal    *prometheus.CounterVec
	engineOpDuration  *prometheus.HistogramVec
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
)

// InitRegistry creates the metrics registry and registers all collectors.
// Safe to call more than once; later calls are no-ops.
func InitRegistry() {
	mu.Lock()
	defer mu.Unlock()
	if registry != nil {
		return
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	engineOpsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "quanta_engine_operations_total",
			Help: "Total VFS engine operations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
	engineOpDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quanta_engine_operation_duration_seconds",
			Help:    "VFS engine operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	httpRequestsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "quanta_http_requests_total",
			Help: "Total HTTP requests by method, route, and status code",
		},
		[]string{"method", "route", "status"},
	)
	httpDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quanta_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	registry = reg
}

// IsEnabled reports whether InitRegistry has run.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return registry != nil
}

// Handler returns the HTTP handler serving the metrics endpoint, or a 404
// handler when metrics are disabled.
func Handler() http.Handler {
	mu.Lock()
	defer mu.Unlock()
	if registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// ObserveEngineOp records the outcome of one engine primitive. The outcome
// label is "ok" or the error code name, keeping cardinality bounded.
func ObserveEngineOp(op string, err error) {
	if !IsEnabled() {
		return
	}
	outcome := "ok"
	if err != nil {
		if code := vfserrors.CodeOf(err); code != 0 {
			outcome = code.String()
		} else {
			outcome = "error"
		}
	}
	engineOpsTotal.WithLabelValues(op, outcome).Inc()
}

// ObserveEngineOpDuration records the latency of one engine primitive.
func ObserveEngineOpDuration(op string, d time.Duration) {
	if !IsEnabled() {
		return
	}
	engineOpDuration.WithLabelValues(op).Observe(d.Seconds())
}

// ObserveHTTPRequest records one completed HTTP request against its route
// pattern, never the raw URL.
func ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if !IsEnabled() {
		return
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
