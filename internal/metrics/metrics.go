// File: internal/metrics/metrics.go
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for monitoring submission outcomes
var (
	SubmissionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_submissions_total",
			Help: "Total number of form submissions received",
		},
	)

	SubmissionsAcceptedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_submissions_accepted_total",
			Help: "Total number of submissions that produced a lead record",
		},
	)

	SubmissionsRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_submissions_rejected_total",
			Help: "Total number of rejected submissions by reason",
		},
		[]string{"reason"},
	)

	WebhookFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_webhook_failures_total",
			Help: "Total number of failed webhook notifications",
		},
	)
)

// Rejection reason label values.
const (
	ReasonInvalidInput       = "invalid_input"
	ReasonDuplicate          = "duplicate"
	ReasonWebhookFailure     = "webhook_failure"
	ReasonPersistenceFailure = "persistence_failure"
)

// Register registers all metrics with the default registry.
func Register() {
	prometheus.MustRegister(
		SubmissionsTotal,
		SubmissionsAcceptedTotal,
		SubmissionsRejectedTotal,
		WebhookFailuresTotal,
	)
}
