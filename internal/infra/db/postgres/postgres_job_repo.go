package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"job-tracker/internal/domain"
	"job-tracker/internal/domain/model"
	"job-tracker/internal/domain/ports/repository"
)

var _ repository.JobRepository = (*PostgresJobRepo)(nil)

type PostgresJobRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresJobRepo(pool *pgxpool.Pool) *PostgresJobRepo {
	return &PostgresJobRepo{pool: pool}
}

const jobColumns = `id, job_title, application_date, job_link, location, note, company, position, status, created_at, updated_at`

func (r *PostgresJobRepo) Create(ctx context.Context, tx repository.Tx, j *model.Job) error {
	const q = `
INSERT INTO jobs (` + jobColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11);
`
	exec, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = exec.Exec(ctx, q,
		j.ID, j.JobTitle, j.ApplicationDate, j.JobLink, j.Location, j.Note,
		j.Company, j.Position, string(j.Status), j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create job: %w", mapWriteErr(err))
	}
	return nil
}

// FindByID locks the row when called inside a transaction.
func (r *PostgresJobRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	if inTx(tx) {
		q += ` FOR UPDATE`
	}
	exec, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	j, err := scanJob(exec.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return j, nil
}

func (r *PostgresJobRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Job, error) {
	const q = `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at, id;`
	exec, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := exec.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	out := []*model.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *PostgresJobRepo) Update(ctx context.Context, tx repository.Tx, j *model.Job) error {
	const q = `
UPDATE jobs SET
  job_title=$2, application_date=$3, job_link=$4, location=$5, note=$6,
  company=$7, position=$8, status=$9, updated_at=$10
WHERE id=$1;
`
	exec, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	ct, err := exec.Exec(ctx, q,
		j.ID, j.JobTitle, j.ApplicationDate, j.JobLink, j.Location, j.Note,
		j.Company, j.Position, string(j.Status), j.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", mapWriteErr(err))
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	exec, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	ct, err := exec.Exec(ctx, `DELETE FROM jobs WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepo) CountAll(ctx context.Context, tx repository.Tx) (int, error) {
	exec, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM jobs;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

func (r *PostgresJobRepo) CountByStatus(ctx context.Context, tx repository.Tx) (map[model.JobStatus]int, error) {
	exec, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := exec.Query(ctx, `SELECT status, COUNT(*) FROM jobs GROUP BY status;`)
	if err != nil {
		return nil, fmt.Errorf("count jobs by status: %w", err)
	}
	defer rows.Close()

	out := make(map[model.JobStatus]int, len(model.JobStatuses))
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out[model.JobStatus(status)] = n
	}
	return out, rows.Err()
}

func (r *PostgresJobRepo) FindMostRecent(ctx context.Context, tx repository.Tx) (*model.Job, error) {
	const q = `SELECT ` + jobColumns + ` FROM jobs ORDER BY application_date DESC, created_at DESC LIMIT 1;`
	exec, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	j, err := scanJob(exec.QueryRow(ctx, q))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("most recent job: %w", err)
	}
	return j, nil
}

func scanJob(row pgx.Row) (*model.Job, error) {
	var (
		j      model.Job
		status string
	)
	err := row.Scan(
		&j.ID, &j.JobTitle, &j.ApplicationDate, &j.JobLink, &j.Location, &j.Note,
		&j.Company, &j.Position, &status, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	j.Status = model.JobStatus(status)
	return &j, nil
}
