package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quarhire_http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quarhire_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	reconciliations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quarhire_payment_reconciliations_total",
			Help: "Payment reconciliation attempts by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	emails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quarhire_emails_total",
			Help: "Transactional emails by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
)

// Reconciliation outcomes.
const (
	OutcomeTransitioned = "transitioned"
	OutcomeAlreadyPaid  = "already_paid"
	OutcomeNotPaid      = "not_paid"
	OutcomeSkipped      = "skipped"
	OutcomeFailed       = "failed"
	OutcomeError        = "error"
)

func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func RecordReconciliation(source, outcome string) {
	reconciliations.WithLabelValues(source, outcome).Inc()
}

func RecordEmail(kind string, err error) {
	outcome := "sent"
	if err != nil {
		outcome = "failed"
	}
	emails.WithLabelValues(kind, outcome).Inc()
}
