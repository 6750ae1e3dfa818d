package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for e-portfolio workflows.
type Metrics struct {
	RequestsSubmitted    *prometheus.CounterVec
	VerificationsTotal   *prometheus.CounterVec
	VerificationRatings  prometheus.Histogram
	RequestsExpired      prometheus.Counter
	RequestsCancelled    prometheus.Counter
	WorkflowLatency      *prometheus.HistogramVec
	ProgressComputations prometheus.Histogram
	ProgressCache        *prometheus.CounterVec
	EventsPublished      *prometheus.CounterVec
}

// New registers collectors with reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestsSubmitted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eportfolio_requests_submitted_total",
			Help: "Verification requests submitted, labeled by outcome",
		}, []string{"outcome"}),
		VerificationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eportfolio_verifications_total",
			Help: "Verification submissions, labeled by outcome",
		}, []string{"outcome"}),
		VerificationRatings: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "eportfolio_verification_rating",
			Help:    "Distribution of supervisor ratings on recorded verifications",
			Buckets: []float64{1, 2, 3, 4, 5},
		}),
		RequestsExpired: f.NewCounter(prometheus.CounterOpts{
			Name: "eportfolio_requests_expired_total",
			Help: "Pending requests moved to Expired",
		}),
		RequestsCancelled: f.NewCounter(prometheus.CounterOpts{
			Name: "eportfolio_requests_cancelled_total",
			Help: "Pending requests cancelled by their doctor",
		}),
		WorkflowLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eportfolio_workflow_latency_seconds",
			Help:    "Latency of workflow operations in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"workflow"}),
		ProgressComputations: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "eportfolio_progress_compute_seconds",
			Help:    "Time spent computing a doctor's progress report",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		ProgressCache: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eportfolio_progress_cache_total",
			Help: "Progress cache lookups, labeled by result (hit, miss, error)",
		}, []string{"result"}),
		EventsPublished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eportfolio_events_published_total",
			Help: "Domain events handed to the broker, labeled by type and outcome",
		}, []string{"type", "outcome"}),
	}
}

func (m *Metrics) IncrementRequestsSubmitted(outcome string) {
	m.RequestsSubmitted.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementVerifications(outcome string) {
	m.VerificationsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRating(rating int) {
	m.VerificationRatings.Observe(float64(rating))
}

func (m *Metrics) AddRequestsExpired(n int) {
	m.RequestsExpired.Add(float64(n))
}

func (m *Metrics) IncrementRequestsCancelled() {
	m.RequestsCancelled.Inc()
}

func (m *Metrics) ObserveWorkflow(workflow string, start time.Time) {
	m.WorkflowLatency.WithLabelValues(workflow).Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveProgressComputation(start time.Time) {
	m.ProgressComputations.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementProgressCache(result string) {
	m.ProgressCache.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementEventsPublished(eventType, outcome string) {
	m.EventsPublished.WithLabelValues(eventType, outcome).Inc()
}
