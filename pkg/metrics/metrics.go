package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fulfillment_ledger"

// Metrics holds the prometheus collectors for submissions, transitions and HTTP.
// A nil *Metrics, or one built with a nil registerer, is a no-op.
type Metrics struct {
	submissions    *prometheus.CounterVec
	debitedAmount  prometheus.Counter
	transitions    *prometheus.CounterVec
	storageRetries *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Fulfillment submissions by outcome.",
		}, []string{"outcome"}),
		debitedAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_debited_minor_units_total",
			Help:      "Sum of amounts debited from wallets, in minor units.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "Fulfillment status transitions by target status and outcome.",
		}, []string{"to", "outcome"}),
		storageRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conditional_update_retries_total",
			Help:      "Conditional updates that lost a race and were re-validated.",
		}, []string{"operation"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.submissions, m.debitedAmount, m.transitions, m.storageRetries, m.httpRequests, m.httpLatency)
	return m
}

// Submission outcomes.
const (
	OutcomeCharged           = "charged"
	OutcomeReplayed          = "replayed"
	OutcomeInsufficientFunds = "insufficient_funds"
	OutcomeRejected          = "rejected"
	OutcomeError             = "error"
)

// ObserveSubmission counts a submission outcome; amount is added to the
// debited total only for charged submissions.
func (m *Metrics) ObserveSubmission(outcome string, amount int64) {
	if m == nil || m.submissions == nil {
		return
	}
	m.submissions.WithLabelValues(normalizeLabel(outcome)).Inc()
	if outcome == OutcomeCharged && amount > 0 {
		m.debitedAmount.Add(float64(amount))
	}
}

// ObserveTransition counts a status transition attempt.
func (m *Metrics) ObserveTransition(to string, ok bool) {
	if m == nil || m.transitions == nil {
		return
	}
	outcome := "applied"
	if !ok {
		outcome = "rejected"
	}
	m.transitions.WithLabelValues(normalizeLabel(to), outcome).Inc()
}

// IncRetry counts a lost conditional update.
func (m *Metrics) IncRetry(operation string) {
	if m == nil || m.storageRetries == nil {
		return
	}
	m.storageRetries.WithLabelValues(normalizeLabel(operation)).Inc()
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route, code string, took time.Duration) {
	if m == nil || m.httpRequests == nil {
		return
	}
	route = normalizeLabel(route)
	m.httpRequests.WithLabelValues(method, route, code).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(took.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
