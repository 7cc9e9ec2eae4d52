package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id               TEXT PRIMARY KEY,
	job_title        TEXT NOT NULL,
	application_date TEXT NOT NULL,
	job_link         TEXT NOT NULL DEFAULT '',
	location         TEXT NOT NULL DEFAULT '',
	note             TEXT NOT NULL DEFAULT '',
	company          TEXT NOT NULL,
	position         TEXT NOT NULL,
	status           TEXT NOT NULL DEFAULT 'Applied'
	                 CHECK (status IN ('Applied', 'Interview', 'Offer', 'Rejected')),
	created_at       TEXT NOT NULL,
	updated_at       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS jobs_status_application_date_idx ON jobs (status, application_date DESC);
CREATE INDEX IF NOT EXISTS jobs_application_date_idx ON jobs (application_date DESC);
CREATE INDEX IF NOT EXISTS jobs_company_position_idx ON jobs (company, position);
`

// Open opens the database at path (":memory:" works), pins it to a single
// connection and applies the schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer; also keeps an in-memory database alive across calls
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite pragma: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate sqlite: %w", err)
	}
	return nil
}
