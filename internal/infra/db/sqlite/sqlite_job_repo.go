package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"job-tracker/internal/domain"
	"job-tracker/internal/domain/model"
	"job-tracker/internal/domain/ports/repository"
)

var _ repository.JobRepository = (*SQLiteJobRepo)(nil)

// timeLayout is fixed width so text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const jobColumns = `id, job_title, application_date, job_link, location, note, company, position, status, created_at, updated_at`

type SQLiteJobRepo struct {
	db *sql.DB
}

func NewSQLiteJobRepo(db *sql.DB) *SQLiteJobRepo {
	return &SQLiteJobRepo{db: db}
}

func (r *SQLiteJobRepo) Create(ctx context.Context, tx repository.Tx, j *model.Job) error {
	exec, err := getExecutor(r.db, tx)
	if err != nil {
		return err
	}
	_, err = exec.ExecContext(ctx,
		`INSERT INTO jobs (`+jobColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.JobTitle, fmtTime(j.ApplicationDate), j.JobLink, j.Location, j.Note,
		j.Company, j.Position, string(j.Status), fmtTime(j.CreatedAt), fmtTime(j.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create job: %w", mapWriteErr(err))
	}
	return nil
}

func (r *SQLiteJobRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Job, error) {
	exec, err := getExecutor(r.db, tx)
	if err != nil {
		return nil, err
	}
	j, err := scanJob(exec.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return j, nil
}

func (r *SQLiteJobRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Job, error) {
	exec, err := getExecutor(r.db, tx)
	if err != nil {
		return nil, err
	}
	rows, err := exec.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY rowid`)
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

func (r *SQLiteJobRepo) Update(ctx context.Context, tx repository.Tx, j *model.Job) error {
	exec, err := getExecutor(r.db, tx)
	if err != nil {
		return err
	}
	res, err := exec.ExecContext(ctx, `
UPDATE jobs SET
  job_title = ?, application_date = ?, job_link = ?, location = ?, note = ?,
  company = ?, position = ?, status = ?, updated_at = ?
WHERE id = ?`,
		j.JobTitle, fmtTime(j.ApplicationDate), j.JobLink, j.Location, j.Note,
		j.Company, j.Position, string(j.Status), fmtTime(j.UpdatedAt), j.ID,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", mapWriteErr(err))
	}
	return requireRow(res)
}

func (r *SQLiteJobRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	exec, err := getExecutor(r.db, tx)
	if err != nil {
		return err
	}
	res, err := exec.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteJobRepo) CountAll(ctx context.Context, tx repository.Tx) (int, error) {
	exec, err := getExecutor(r.db, tx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := exec.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

func (r *SQLiteJobRepo) CountByStatus(ctx context.Context, tx repository.Tx) (map[model.JobStatus]int, error) {
	exec, err := getExecutor(r.db, tx)
	if err != nil {
		return nil, err
	}
	rows, err := exec.QueryContext(ctx, `SELECT status, COUNT(*) FROM jobs GROUP BY status`)
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

func (r *SQLiteJobRepo) FindMostRecent(ctx context.Context, tx repository.Tx) (*model.Job, error) {
	exec, err := getExecutor(r.db, tx)
	if err != nil {
		return nil, err
	}
	row := exec.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY application_date DESC, rowid DESC LIMIT 1`)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("most recent job: %w", err)
	}
	return j, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (*model.Job, error) {
	var (
		j                         model.Job
		status                    string
		applied, created, updated string
	)
	err := row.Scan(
		&j.ID, &j.JobTitle, &applied, &j.JobLink, &j.Location, &j.Note,
		&j.Company, &j.Position, &status, &created, &updated,
	)
	if err != nil {
		return nil, err
	}
	j.Status = model.JobStatus(status)
	if j.ApplicationDate, err = time.Parse(timeLayout, applied); err != nil {
		return nil, fmt.Errorf("application_date: %w", err)
	}
	if j.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	if j.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return nil, fmt.Errorf("updated_at: %w", err)
	}
	return &j, nil
}

func fmtTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// mapWriteErr turns unique violations into *domain.ConflictError.
func mapWriteErr(err error) error {
	var sqErr *sqlite.Error
	if !errors.As(err, &sqErr) {
		return err
	}
	switch sqErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
	default:
		return err
	}
	if strings.Contains(sqErr.Error(), "jobs.id") {
		return &domain.ConflictError{Field: "_id"}
	}
	return &domain.ConflictError{Field: "value"}
}
