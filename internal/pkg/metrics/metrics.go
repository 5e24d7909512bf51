// Package metrics registers the prometheus counters exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// TransitionsApplied counts committed order transitions by action name.
	TransitionsApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_transitions_total",
			Help: "number of committed order lifecycle transitions",
		},
		[]string{"action"},
	)

	// TransitionsRejected counts transitions refused by the state machine.
	TransitionsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_transitions_rejected_total",
			Help: "number of order transitions rejected as illegal",
		},
	)

	// JobsScheduled counts reminder jobs persisted by the scheduler.
	JobsScheduled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scheduler_jobs_scheduled_total",
			Help: "number of scheduled jobs persisted",
		},
	)

	// JobsFired counts jobs whose callbacks completed.
	JobsFired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scheduler_jobs_fired_total",
			Help: "number of scheduled jobs fired",
		},
	)

	// JobsCancelled counts best-effort cancellations that hit a pending job.
	JobsCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scheduler_jobs_cancelled_total",
			Help: "number of scheduled jobs cancelled before firing",
		},
	)
)

// Init registers all collectors with the default registry.
func Init() {
	prometheus.MustRegister(
		TransitionsApplied,
		TransitionsRejected,
		JobsScheduled,
		JobsFired,
		JobsCancelled,
	)
}
