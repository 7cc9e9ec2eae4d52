package repository

import (
	"context"

	"job-tracker/internal/domain/model"
)

// JobRepository is the port for job persistence.
type JobRepository interface {
	Create(ctx context.Context, tx Tx, job *model.Job) error
	// FindByID returns domain.ErrNotFound when no job has the id. Inside a
	// transaction the row is locked until commit.
	FindByID(ctx context.Context, tx Tx, id string) (*model.Job, error)
	// ListAll returns every job in insertion order.
	ListAll(ctx context.Context, tx Tx) ([]*model.Job, error)
	Update(ctx context.Context, tx Tx, job *model.Job) error
	Delete(ctx context.Context, tx Tx, id string) error
	CountAll(ctx context.Context, tx Tx) (int, error)
	CountByStatus(ctx context.Context, tx Tx) (map[model.JobStatus]int, error)
	// FindMostRecent returns the job with the latest application date, or
	// domain.ErrNotFound on an empty store.
	FindMostRecent(ctx context.Context, tx Tx) (*model.Job, error)
}
