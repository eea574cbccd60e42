package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Billing collectors, registered on the default registry and served by the
// same listener as the HTTP middleware metrics.
var (
	PendingChangesApplied = prometheus.NewCounter(prometheus.CounterOpts{
		Subsystem: "billing",
		Name:      "pending_changes_applied_total",
		Help:      "Deferred subscription changes applied by the scheduler.",
	})

	PendingChangeFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Subsystem: "billing",
		Name:      "pending_change_failures_total",
		Help:      "Deferred changes whose application failed and stayed pending.",
	})

	PayoutsSettled = prometheus.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "billing",
		Name:      "payouts_settled_total",
		Help:      "Creator payouts by final status.",
	}, []string{"status"})

	ContentPublished = prometheus.NewCounter(prometheus.CounterOpts{
		Subsystem: "billing",
		Name:      "content_published_total",
		Help:      "Scheduled content items flipped to published.",
	})

	JobRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "billing",
		Name:      "job_runs_total",
		Help:      "Background job runs by job name and result.",
	}, []string{"job", "result"})

	JobDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: "billing",
		Name:      "job_duration_milliseconds",
		Help:      "Background job run duration.",
		Buckets:   HistogramBuckets,
	}, []string{"job"})
)

func init() {
	prometheus.MustRegister(
		PendingChangesApplied,
		PendingChangeFailures,
		PayoutsSettled,
		ContentPublished,
		JobRuns,
		JobDurationMs,
	)
}
