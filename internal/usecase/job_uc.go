package usecase

import (
	"context"
	"errors"
	"time"

	"job-tracker/internal/domain"
	"job-tracker/internal/domain/model"
	"job-tracker/internal/domain/ports/repository"
	"job-tracker/internal/infra/logging"
	"job-tracker/internal/infra/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Compile-time check
var _ JobUseCase = (*jobUC)(nil)

// JobUseCase is the job record service. Errors are domain errors:
// *domain.ValidationError (ErrInvalidArgument), domain.ErrNotFound,
// *domain.ConflictError (ErrAlreadyExists), or a wrapped store failure.
type JobUseCase interface {
	Create(ctx context.Context, in model.JobInput) (*model.Job, error)
	List(ctx context.Context) ([]*model.Job, error)
	// Get treats a malformed id as not found.
	Get(ctx context.Context, id string) (*model.Job, error)
	// Update rejects a malformed id as invalid input, then checks existence
	// before validating the body.
	Update(ctx context.Context, id string, in model.JobInput) (*model.Job, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Job, error)
	Delete(ctx context.Context, id string) error
}

type jobUC struct {
	jobs repository.JobRepository
	tm   repository.TransactionManager
	log  *zerolog.Logger
	now  func() time.Time
}

// NewJobUseCase wires the service. tm may be nil, in which case update runs
// its read and write without a transaction.
func NewJobUseCase(jobs repository.JobRepository, tm repository.TransactionManager, logger *zerolog.Logger) *jobUC {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &jobUC{jobs: jobs, tm: tm, log: logger, now: time.Now}
}

func (u *jobUC) Create(ctx context.Context, in model.JobInput) (job *model.Job, err error) {
	defer logging.TraceDuration(u.log, "JobUC.Create")()
	defer func() { u.observe(ctx, "create", err) }()

	job, err = model.NewJob(in, u.now())
	if err != nil {
		return nil, err
	}
	if err := u.jobs.Create(ctx, repository.NoTX, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (u *jobUC) List(ctx context.Context) (jobs []*model.Job, err error) {
	defer func() { u.observe(ctx, "list", err) }()

	jobs, err = u.jobs.ListAll(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []*model.Job{}
	}
	return jobs, nil
}

func (u *jobUC) Get(ctx context.Context, id string) (job *model.Job, err error) {
	defer func() { u.observe(ctx, "get", err) }()

	if !isJobID(id) {
		return nil, domain.ErrNotFound
	}
	return u.jobs.FindByID(ctx, repository.NoTX, id)
}

func (u *jobUC) Update(ctx context.Context, id string, in model.JobInput) (job *model.Job, err error) {
	defer logging.TraceDuration(u.log, "JobUC.Update")()
	defer func() { u.observe(ctx, "update", err) }()

	if !isJobID(id) {
		return nil, domain.NewValidationError("Invalid job id")
	}
	err = u.withTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		current, err := u.jobs.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := current.Merge(in, u.now()); err != nil {
			return err
		}
		if err := u.jobs.Update(ctx, tx, current); err != nil {
			return err
		}
		job = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (u *jobUC) UpdateStatus(ctx context.Context, id, status string) (job *model.Job, err error) {
	defer func() { u.observe(ctx, "update_status", err) }()

	if status == "" {
		return nil, domain.NewValidationError("Status is required")
	}
	if _, err := model.ParseJobStatus(status); err != nil {
		return nil, err
	}
	if !isJobID(id) {
		return nil, domain.ErrNotFound
	}
	err = u.withTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		current, err := u.jobs.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := current.SetStatus(status, u.now()); err != nil {
			return err
		}
		if err := u.jobs.Update(ctx, tx, current); err != nil {
			return err
		}
		job = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (u *jobUC) Delete(ctx context.Context, id string) (err error) {
	defer func() { u.observe(ctx, "delete", err) }()

	if !isJobID(id) {
		return domain.ErrNotFound
	}
	return u.jobs.Delete(ctx, repository.NoTX, id)
}

func (u *jobUC) withTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	if u.tm == nil {
		return fn(ctx, repository.NoTX)
	}
	return u.tm.WithTx(ctx, fn)
}

// observe counts the outcome and logs unexpected store failures.
func (u *jobUC) observe(ctx context.Context, op string, err error) {
	result := resultOf(err)
	metrics.IncJobOperation(op, result)
	if result == "error" {
		logging.With(ctx, u.log).Error().Err(err).Str("operation", op).Msg("job store failure")
	}
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidArgument):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrAlreadyExists):
		return "conflict"
	}
	return "error"
}

func isJobID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
