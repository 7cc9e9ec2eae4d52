package usecase

import (
	"context"
	"errors"

	"job-tracker/internal/domain"
	"job-tracker/internal/domain/model"
	"job-tracker/internal/domain/ports/repository"
	"job-tracker/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ StatsUseCase = (*statsUC)(nil)

type StatsUseCase interface {
	Summary(ctx context.Context) (*model.JobStats, error)
}

type statsUC struct {
	jobs repository.JobRepository
	log  *zerolog.Logger
}

func NewStatsUseCase(jobs repository.JobRepository, logger *zerolog.Logger) *statsUC {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &statsUC{jobs: jobs, log: logger}
}

// Summary counts all jobs, each status bucket, and projects the most
// recently dated application. The three reads are independent queries.
func (s *statsUC) Summary(ctx context.Context) (*model.JobStats, error) {
	total, err := s.jobs.CountAll(ctx, repository.NoTX)
	if err != nil {
		return nil, s.fail("count all", err)
	}
	byStatus, err := s.jobs.CountByStatus(ctx, repository.NoTX)
	if err != nil {
		return nil, s.fail("count by status", err)
	}

	stats := &model.JobStats{
		TotalJobs:    total,
		StatusCounts: model.NewStatusCounts(byStatus),
	}

	recent, err := s.jobs.FindMostRecent(ctx, repository.NoTX)
	switch {
	case err == nil:
		stats.RecentApplication = &model.RecentApplication{
			JobTitle:        recent.JobTitle,
			Company:         recent.Company,
			Status:          recent.Status,
			ApplicationDate: recent.ApplicationDate,
		}
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, s.fail("most recent", err)
	}

	for _, st := range model.JobStatuses {
		metrics.SetJobsByStatus(string(st), byStatus[st])
	}
	metrics.IncJobOperation("stats", "ok")
	return stats, nil
}

func (s *statsUC) fail(step string, err error) error {
	metrics.IncJobOperation("stats", "error")
	s.log.Error().Err(err).Str("step", step).Msg("job stats failed")
	return err
}
