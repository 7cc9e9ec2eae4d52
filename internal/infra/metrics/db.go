package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(storePoolConns) }

var storePoolConns = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "job_store_pool_connections",
		Help: "Connections in the job store's pool, by backend (postgres, sqlite) and state.",
	},
	[]string{"backend", "state"}, // state: total, idle, in_use
)

// SetDBPoolStats publishes one pool sample for the named store backend.
func SetDBPoolStats(backend string, total, idle, inUse int32) {
	backend = norm(backend)
	storePoolConns.WithLabelValues(backend, "total").Set(float64(total))
	storePoolConns.WithLabelValues(backend, "idle").Set(float64(idle))
	storePoolConns.WithLabelValues(backend, "in_use").Set(float64(inUse))
}
