package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(jobOperationsTotal, jobsByStatus) }

var (
	jobOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_operations_total",
			Help: "Job record operations by operation and result.",
		},
		[]string{"operation", "result"}, // result: ok | invalid | not_found | conflict | error
	)

	jobsByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "jobs_by_status",
			Help: "Job count per status as of the last statistics request.",
		},
		[]string{"status"},
	)
)

func IncJobOperation(operation, result string) {
	jobOperationsTotal.WithLabelValues(norm(operation), norm(result)).Inc()
}

func SetJobsByStatus(status string, n int) {
	jobsByStatus.WithLabelValues(norm(status)).Set(float64(n))
}
