package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_leads_created_total",
			Help: "Total number of leads created",
		},
	)

	interactionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_interactions_recorded_total",
			Help: "Total number of interactions recorded",
		},
		[]string{"type", "contact"},
	)

	decisionsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_decisions_scored_total",
			Help: "Total number of lead decisions computed",
		},
		[]string{"tier"},
	)

	outreachPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_outreach_published_total",
			Help: "Total number of outreach suggestions published to the queue",
		},
		[]string{"tier"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern usa o padrão da rota do chi para não explodir a
// cardinalidade com IDs de lead.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

func RecordLeadCreated() {
	leadsCreated.Inc()
}

func RecordInteraction(tipo string, contact bool) {
	interactionsRecorded.WithLabelValues(tipo, strconv.FormatBool(contact)).Inc()
}

func RecordDecision(tier string) {
	decisionsScored.WithLabelValues(tier).Inc()
}

func RecordOutreachPublished(tier string) {
	outreachPublished.WithLabelValues(tier).Inc()
}
