// Package db selects and opens the job store named by the database URL.
package db

import (
	"context"
	"fmt"

	"job-tracker/internal/config"
	"job-tracker/internal/domain/ports/repository"
	pg "job-tracker/internal/infra/db/postgres"
	"job-tracker/internal/infra/db/sqlite"
	"job-tracker/internal/infra/sched"
)

// Store bundles the repository and transaction manager of one backend.
type Store struct {
	Driver string
	Jobs   repository.JobRepository
	Tx     repository.TransactionManager
	// PoolStats samples the backend's connection pool.
	PoolStats func() sched.PoolStats
	Close     func()
}

func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	switch cfg.Driver() {
	case config.DriverPostgres:
		pool, err := pg.NewPgxPool(ctx, cfg.URL, cfg.MaxConns)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver: config.DriverPostgres,
			Jobs:   pg.NewPostgresJobRepo(pool),
			Tx:     pg.NewTxManager(pool),
			PoolStats: func() sched.PoolStats {
				s := pool.Stat()
				return sched.PoolStats{Total: s.TotalConns(), Idle: s.IdleConns(), InUse: s.AcquiredConns()}
			},
			Close: pool.Close,
		}, nil

	case config.DriverSQLite:
		sqlDB, err := sqlite.Open(ctx, cfg.SQLitePath())
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver: config.DriverSQLite,
			Jobs:   sqlite.NewSQLiteJobRepo(sqlDB),
			Tx:     sqlite.NewTxManager(sqlDB),
			PoolStats: func() sched.PoolStats {
				s := sqlDB.Stats()
				return sched.PoolStats{Total: int32(s.OpenConnections), Idle: int32(s.Idle), InUse: int32(s.InUse)}
			},
			Close: func() { _ = sqlDB.Close() },
		}, nil
	}
	return nil, fmt.Errorf("unsupported database url %q", cfg.URL)
}
