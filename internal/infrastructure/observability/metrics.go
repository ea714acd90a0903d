package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
)

// Metrics owns a private registry so several servers can coexist in tests.
type Metrics struct {
	registry   *prometheus.Registry
	summaryVec *prometheus.SummaryVec
	counterVec *prometheus.CounterVec

	created     prometheus.Counter
	scores      prometheus.Histogram
	rejected    prometheus.Counter
	notFound    prometheus.Counter
	storeErrors *prometheus.CounterVec
	unhandled   prometheus.Counter
}

// NewMetrics builds the HTTP and evaluation collectors on a private registry
// that also carries the Go and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		summaryVec: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request duration in seconds",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.95: 0.005,
					0.99: 0.001,
				},
			},
			[]string{"method", "path", "status_code"},
		),
		counterVec: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		created: factory.NewCounter(prometheus.CounterOpts{
			Name: "secucheck_evaluations_created_total",
			Help: "Evaluations persisted",
		}),
		scores: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "secucheck_evaluation_score",
			Help:    "Distribution of computed scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
		rejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "secucheck_validation_errors_total",
			Help: "Submissions rejected by validation",
		}),
		notFound: factory.NewCounter(prometheus.CounterOpts{
			Name: "secucheck_read_not_found_total",
			Help: "Lookups for unknown evaluation ids",
		}),
		storeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "secucheck_store_errors_total",
			Help: "Persistence failures by operation",
		}, []string{"op"}),
		unhandled: factory.NewCounter(prometheus.CounterOpts{
			Name: "secucheck_unhandled_errors_total",
			Help: "Unexpected failures hidden behind a generic error",
		}),
	}
}

const unmatchedRoute = "unmatched"

// Middleware records request count and latency labelled by the chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start).Seconds()
		// Raw paths of unrouted requests would make the label set unbounded.
		path := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		statusCode := strconv.Itoa(status)

		m.summaryVec.WithLabelValues(r.Method, path, statusCode).Observe(duration)
		m.counterVec.WithLabelValues(r.Method, path, statusCode).Inc()
	})
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the private registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// EvaluationCreated counts the evaluation and observes its score.
func (m *Metrics) EvaluationCreated(_ context.Context, evaluation domain.Evaluation) {
	m.created.Inc()
	m.scores.Observe(float64(evaluation.Score))
}

func (m *Metrics) ValidationRejected(context.Context, []domain.FieldError) {
	m.rejected.Inc()
}

func (m *Metrics) ReadNotFound(context.Context, string) {
	m.notFound.Inc()
}

// StoreFailed counts failures per store operation.
func (m *Metrics) StoreFailed(_ context.Context, op string, _ error) {
	m.storeErrors.WithLabelValues(op).Inc()
}

func (m *Metrics) Unhandled(context.Context, string) {
	m.unhandled.Inc()
}
