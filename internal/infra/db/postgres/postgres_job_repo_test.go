//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"job-tracker/internal/domain"
	"job-tracker/internal/domain/model"
	"job-tracker/internal/domain/ports/repository"
)

func newJob(t *testing.T, title, status, link string, applied time.Time) *model.Job {
	t.Helper()
	in := model.JobInput{JobTitle: title, Company: "Acme", Position: "Engineer", Status: &status, JobLink: &link}
	j, err := model.NewJob(in, applied)
	if err != nil {
		t.Fatalf("model.NewJob() failed: %v", err)
	}
	// postgres keeps microseconds
	j.ApplicationDate = j.ApplicationDate.Truncate(time.Microsecond)
	j.CreatedAt = j.CreatedAt.Truncate(time.Microsecond)
	j.UpdatedAt = j.UpdatedAt.Truncate(time.Microsecond)
	return j
}

func TestJobRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	repo := NewPostgresJobRepo(testPool)
	tm := NewTxManager(testPool)
	ctx := context.Background()

	t.Run("should perform full CRUD cycle", func(t *testing.T) {
		cleanup(t)

		// 1. Create
		job := newJob(t, "Backend Engineer", "Applied", "https://acme.io/jobs/1", time.Now().UTC())
		if err := repo.Create(ctx, nil, job); err != nil {
			t.Fatalf("Failed to create job: %v", err)
		}

		// 2. Read back
		found, err := repo.FindByID(ctx, nil, job.ID)
		if err != nil {
			t.Fatalf("Failed to find job: %v", err)
		}
		if found.JobTitle != "Backend Engineer" || found.Status != model.JobStatusApplied {
			t.Errorf("unexpected job %+v", found)
		}
		if !found.ApplicationDate.Equal(job.ApplicationDate) {
			t.Errorf("expected date %v, got %v", job.ApplicationDate, found.ApplicationDate)
		}

		// 3. Update inside a transaction
		err = tm.WithTx(ctx, func(ctx context.Context, tx repository.Tx) error {
			locked, err := repo.FindByID(ctx, tx, job.ID)
			if err != nil {
				return err
			}
			if err := locked.SetStatus("Interview", time.Now()); err != nil {
				return err
			}
			return repo.Update(ctx, tx, locked)
		})
		if err != nil {
			t.Fatalf("Failed to update job: %v", err)
		}
		updated, _ := repo.FindByID(ctx, nil, job.ID)
		if updated.Status != model.JobStatusInterview {
			t.Errorf("expected Interview, got %s", updated.Status)
		}

		// 4. Delete
		if err := repo.Delete(ctx, nil, job.ID); err != nil {
			t.Fatalf("Failed to delete job: %v", err)
		}
		if _, err := repo.FindByID(ctx, nil, job.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if err := repo.Delete(ctx, nil, job.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("should roll back when the callback fails", func(t *testing.T) {
		cleanup(t)
		job := newJob(t, "SRE", "Applied", "", time.Now().UTC())
		_ = repo.Create(ctx, nil, job)

		boom := errors.New("boom")
		err := tm.WithTx(ctx, func(ctx context.Context, tx repository.Tx) error {
			job.Status = model.JobStatusRejected
			if err := repo.Update(ctx, tx, job); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected callback error, got %v", err)
		}
		found, _ := repo.FindByID(ctx, nil, job.ID)
		if found.Status != model.JobStatusApplied {
			t.Errorf("expected rollback to keep Applied, got %s", found.Status)
		}
	})

	t.Run("should store several jobs with the same link", func(t *testing.T) {
		cleanup(t)
		first := newJob(t, "A", "Applied", "https://acme.io/jobs/7", time.Now().UTC())
		second := newJob(t, "B", "Applied", "https://acme.io/jobs/7", time.Now().UTC())
		if err := repo.Create(ctx, nil, first); err != nil {
			t.Fatalf("Failed to create first job: %v", err)
		}
		if err := repo.Create(ctx, nil, second); err != nil {
			t.Fatalf("Failed to create second job: %v", err)
		}
		if n, _ := repo.CountAll(ctx, nil); n != 2 {
			t.Errorf("expected 2 jobs, got %d", n)
		}
	})

	t.Run("should report a reused id as a conflict", func(t *testing.T) {
		cleanup(t)
		job := newJob(t, "A", "Applied", "", time.Now().UTC())
		if err := repo.Create(ctx, nil, job); err != nil {
			t.Fatalf("Failed to create job: %v", err)
		}
		err := repo.Create(ctx, nil, job)
		var cErr *domain.ConflictError
		if !errors.As(err, &cErr) || cErr.Field != "_id" {
			t.Fatalf("expected _id conflict, got %v", err)
		}
	})

	t.Run("should aggregate statistics", func(t *testing.T) {
		cleanup(t)
		base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		for i, s := range []string{"Applied", "Applied", "Applied", "Interview", "Rejected"} {
			if err := repo.Create(ctx, nil, newJob(t, s, s, "", base.AddDate(0, 0, i))); err != nil {
				t.Fatalf("Failed to create job: %v", err)
			}
		}

		total, err := repo.CountAll(ctx, nil)
		if err != nil || total != 5 {
			t.Fatalf("expected 5 jobs, got %d (%v)", total, err)
		}
		byStatus, err := repo.CountByStatus(ctx, nil)
		if err != nil {
			t.Fatalf("CountByStatus failed: %v", err)
		}
		if byStatus[model.JobStatusApplied] != 3 || byStatus[model.JobStatusInterview] != 1 || byStatus[model.JobStatusOffer] != 0 || byStatus[model.JobStatusRejected] != 1 {
			t.Errorf("unexpected counts %v", byStatus)
		}
		recent, err := repo.FindMostRecent(ctx, nil)
		if err != nil {
			t.Fatalf("FindMostRecent failed: %v", err)
		}
		if recent.Status != model.JobStatusRejected {
			t.Errorf("expected the Rejected job to be most recent, got %+v", recent)
		}

		all, err := repo.ListAll(ctx, nil)
		if err != nil || len(all) != 5 {
			t.Fatalf("expected 5 listed jobs, got %d (%v)", len(all), err)
		}
	})

	t.Run("should return not found on an empty table", func(t *testing.T) {
		cleanup(t)
		if _, err := repo.FindMostRecent(ctx, nil); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		all, err := repo.ListAll(ctx, nil)
		if err != nil || all == nil || len(all) != 0 {
			t.Errorf("expected empty non-nil list, got %v (%v)", all, err)
		}
	})
}
