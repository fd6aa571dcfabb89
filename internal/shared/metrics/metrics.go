package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics aggregates the Prometheus collectors for the portal.
type Metrics struct {
	registry *prometheus.Registry
	service  string

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	ticketTransitionsTotal  *prometheus.CounterVec
	documentsClassified     *prometheus.CounterVec
	resumesAnalyzed         *prometheus.CounterVec
	enrichmentDurationSecs  *prometheus.HistogramVec
}

// New builds a registry with all portal collectors registered.
func New(service string) *Metrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portal",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	ticketTransitionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "tickets",
			Name:      "transitions_total",
			Help:      "Ticket lifecycle transitions by action and result.",
		},
		[]string{"action", "result"},
	)
	documentsClassified := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "documents",
			Name:      "classified_total",
			Help:      "Documents classified by outcome.",
		},
		[]string{"department", "result"},
	)
	resumesAnalyzed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "resumes",
			Name:      "analyzed_total",
			Help:      "Resume analyses by result.",
		},
		[]string{"result"},
	)
	enrichmentDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portal",
			Subsystem: "enrichment",
			Name:      "duration_seconds",
			Help:      "Async enrichment duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"kind"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		ticketTransitionsTotal,
		documentsClassified,
		resumesAnalyzed,
		enrichmentDuration,
	)

	return &Metrics{
		registry:               registry,
		service:                service,
		requestTotal:           requestTotal,
		requestDuration:        requestDuration,
		ticketTransitionsTotal: ticketTransitionsTotal,
		documentsClassified:    documentsClassified,
		resumesAnalyzed:        resumesAnalyzed,
		enrichmentDurationSecs: enrichmentDuration,
	}
}

// ObserveTransition records a ticket transition attempt.
func (m *Metrics) ObserveTransition(action, result string) {
	if m == nil {
		return
	}
	m.ticketTransitionsTotal.WithLabelValues(action, result).Inc()
}

// ObserveClassification records a finished document classification.
func (m *Metrics) ObserveClassification(department, result string) {
	if m == nil {
		return
	}
	m.documentsClassified.WithLabelValues(department, result).Inc()
}

// ObserveResumeAnalysis records a finished resume analysis.
func (m *Metrics) ObserveResumeAnalysis(result string) {
	if m == nil {
		return
	}
	m.resumesAnalyzed.WithLabelValues(result).Inc()
}

// ObserveEnrichmentDuration records how long an async enrichment ran.
func (m *Metrics) ObserveEnrichmentDuration(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.enrichmentDurationSecs.WithLabelValues(kind).Observe(d.Seconds())
}

// GinMiddleware records per-request counters and latency.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.requestTotal.WithLabelValues(m.service, c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(m.service, c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
