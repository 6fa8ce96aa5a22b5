// Package metrics exposes Prometheus collectors for the HTTP layer and the
// background machinery (outbox, side effects, cascades, progress pushes).
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var histogramBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

// Metrics holds the collectors of one service. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	jobResults      *prometheus.CounterVec
	jobDuration     *prometheus.HistogramVec
	sideEffects     *prometheus.CounterVec
	cascadeDeleted  *prometheus.CounterVec
	progressPushes  *prometheus.CounterVec
	outboundCalls   *prometheus.CounterVec
}

// New creates the collectors for service on a dedicated registry.
func New(service string) *Metrics {
	subsystem := subsystemName(service)
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teamtrack",
			Subsystem: subsystem,
			Name:      "http_requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "teamtrack",
			Subsystem: subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"}),
		jobResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teamtrack",
			Subsystem: subsystem,
			Name:      "background_jobs_total",
			Help:      "Background job outcomes by queue",
		}, []string{"queue", "job", "outcome"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "teamtrack",
			Subsystem: subsystem,
			Name:      "background_job_duration_seconds",
			Help:      "Duration of a single background job attempt",
			Buckets:   histogramBuckets,
		}, []string{"queue", "job"}),
		sideEffects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teamtrack",
			Subsystem: subsystem,
			Name:      "side_effects_total",
			Help:      "Activity and notification deliveries by outcome",
		}, []string{"kind", "outcome"}),
		cascadeDeleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teamtrack",
			Subsystem: subsystem,
			Name:      "cascade_deleted_total",
			Help:      "Children removed by delete-by-parent operations",
		}, []string{"entity"}),
		progressPushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teamtrack",
			Subsystem: subsystem,
			Name:      "progress_pushes_total",
			Help:      "Project progress pushes by result state",
		}, []string{"state"}),
		outboundCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teamtrack",
			Subsystem: subsystem,
			Name:      "outbound_requests_total",
			Help:      "Calls to sibling services by target and outcome",
		}, []string{"target", "outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestTotal,
		m.requestDuration,
		m.jobResults,
		m.jobDuration,
		m.sideEffects,
		m.cascadeDeleted,
		m.progressPushes,
		m.outboundCalls,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveRequest records a finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"route":  route,
		"status": strconv.Itoa(status),
	}
	m.requestTotal.With(labels).Inc()
	m.requestDuration.With(labels).Observe(duration.Seconds())
}

// JobResult records the outcome of a background job attempt.
// Outcomes: succeeded, retrying, exhausted, dropped.
func (m *Metrics) JobResult(queue, job, outcome string) {
	if m == nil {
		return
	}
	m.jobResults.With(prometheus.Labels{"queue": queue, "job": job, "outcome": outcome}).Inc()
}

// ObserveJob records the duration of a job attempt.
func (m *Metrics) ObserveJob(queue, job string, duration time.Duration) {
	if m == nil {
		return
	}
	m.jobDuration.With(prometheus.Labels{"queue": queue, "job": job}).Observe(duration.Seconds())
}

// SideEffect records a side-effect delivery outcome.
func (m *Metrics) SideEffect(kind, outcome string) {
	if m == nil {
		return
	}
	m.sideEffects.With(prometheus.Labels{"kind": kind, "outcome": outcome}).Inc()
}

// CascadeDeleted adds n removed children of the given entity type.
func (m *Metrics) CascadeDeleted(entity string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.cascadeDeleted.With(prometheus.Labels{"entity": entity}).Add(float64(n))
}

// ProgressPush records the state reported for a progress push.
func (m *Metrics) ProgressPush(state string) {
	if m == nil {
		return
	}
	m.progressPushes.With(prometheus.Labels{"state": state}).Inc()
}

// OutboundCall records a call to a sibling service.
func (m *Metrics) OutboundCall(target, outcome string) {
	if m == nil {
		return
	}
	m.outboundCalls.With(prometheus.Labels{"target": target, "outcome": outcome}).Inc()
}

func subsystemName(service string) string {
	out := make([]rune, 0, len(service))
	for _, r := range service {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
