package sched

import (
	"context"
	"time"

	"job-tracker/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// PoolStats is a point-in-time view of a connection pool.
type PoolStats struct {
	Total, Idle, InUse int32
}

// PoolStatsWorker publishes connection pool gauges for one store backend on
// every tick.
type PoolStatsWorker struct {
	interval time.Duration
	backend  string
	sample   func() PoolStats
	log      *zerolog.Logger
}

func NewPoolStatsWorker(interval time.Duration, backend string, sample func() PoolStats, logger *zerolog.Logger) *PoolStatsWorker {
	compLog := logger.With().Str("component", "PoolStatsWorker").Str("backend", backend).Logger()
	return &PoolStatsWorker{
		interval: interval,
		backend:  backend,
		sample:   sample,
		log:      &compLog,
	}
}

// Run samples once on startup, then on every tick until ctx is done.
func (w *PoolStatsWorker) Run(ctx context.Context) error {
	w.log.Debug().Dur("interval", w.interval).Msg("Starting pool stats worker")
	w.publish()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug().Msg("Stopping pool stats worker")
			return ctx.Err()
		case <-ticker.C:
			w.publish()
		}
	}
}

func (w *PoolStatsWorker) publish() {
	s := w.sample()
	metrics.SetDBPoolStats(w.backend, s.Total, s.Idle, s.InUse)
	w.log.Trace().Int32("total", s.Total).Int32("idle", s.Idle).Int32("in_use", s.InUse).Msg("pool stats")
}
