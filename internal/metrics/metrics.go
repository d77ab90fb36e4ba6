package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tokenmetrics_harvester"

// Metrics holds the harvester's Prometheus collectors.
type Metrics struct {
	gatherer prometheus.Gatherer

	recordsFetched   *prometheus.CounterVec
	recordsSkipped   *prometheus.CounterVec
	recordsPublished *prometheus.CounterVec
	jobErrors        *prometheus.CounterVec
	fetchDuration    *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return NewWith(reg, reg)
}

// NewWith registers the collectors on reg and serves them from g.
func NewWith(reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: g,
		recordsFetched: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_fetched_total",
			Help:      "Records returned by the API per resource.",
		}, []string{"resource"}),
		recordsSkipped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_skipped_total",
			Help:      "Records skipped because they were already published.",
		}, []string{"resource"}),
		recordsPublished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_published_total",
			Help:      "Records delivered to at least one publisher.",
		}, []string{"resource"}),
		jobErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_errors_total",
			Help:      "Failed job runs per job and stage.",
		}, []string{"job", "stage"}),
		fetchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of API fetches per resource.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource"}),
	}
}

// Handler serves the collected metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveFetch records one fetch and how many records it returned.
func (m *Metrics) ObserveFetch(resource string, d time.Duration, records int) {
	if m == nil {
		return
	}
	m.fetchDuration.WithLabelValues(resource).Observe(d.Seconds())
	m.recordsFetched.WithLabelValues(resource).Add(float64(records))
}

// Skipped counts records dropped as already seen.
func (m *Metrics) Skipped(resource string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.recordsSkipped.WithLabelValues(resource).Add(float64(n))
}

// Published counts delivered records.
func (m *Metrics) Published(resource string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.recordsPublished.WithLabelValues(resource).Add(float64(n))
}

// JobError counts a failure of job at stage (fetcher, fetch, publish).
func (m *Metrics) JobError(job, stage string) {
	if m == nil {
		return
	}
	m.jobErrors.WithLabelValues(job, stage).Inc()
}
