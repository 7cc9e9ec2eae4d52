//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"job-tracker/internal/domain/model"
	"job-tracker/internal/usecase"
)

func TestStatsUseCase(t *testing.T) {
	ctx := context.Background()
	testLogger := newTestLogger()

	t.Run("Summary should count each status bucket", func(t *testing.T) {
		// --- Arrange ---
		repo := NewMockJobRepo()
		base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		statuses := []string{"Applied", "Applied", "Applied", "Interview", "Rejected"}
		for i, s := range statuses {
			in := model.JobInput{JobTitle: "Role", Company: "Co", Position: "Eng", Status: strPtr(s)}
			repo.seed(mustJob(in, base.Add(time.Duration(i)*24*time.Hour)))
		}
		latest := mustJob(model.JobInput{JobTitle: "Latest", Company: "Initech", Position: "Eng", Status: strPtr("Applied")}, base.Add(30*24*time.Hour))
		repo.seed(latest)

		uc := usecase.NewStatsUseCase(repo, testLogger)

		// --- Act ---
		stats, err := uc.Summary(ctx)

		// --- Assert ---
		if err != nil {
			t.Fatalf("expected no error, but got %v", err)
		}
		if stats.TotalJobs != 6 {
			t.Errorf("expected 6 jobs, but got %d", stats.TotalJobs)
		}
		want := model.StatusCounts{Pending: 4, Interview: 1, Offer: 0, Rejected: 1}
		if stats.StatusCounts != want {
			t.Errorf("expected %+v, but got %+v", want, stats.StatusCounts)
		}
		if stats.RecentApplication == nil || stats.RecentApplication.JobTitle != "Latest" || stats.RecentApplication.Company != "Initech" {
			t.Errorf("expected Latest@Initech as most recent, got %+v", stats.RecentApplication)
		}
	})

	t.Run("Summary should count jobs sharing one application date", func(t *testing.T) {
		repo := NewMockJobRepo()
		for _, s := range []string{"Applied", "Applied", "Applied", "Interview", "Rejected"} {
			repo.seed(mustJob(model.JobInput{JobTitle: "R", Company: "C", Position: "P", Status: strPtr(s)}, time.Now()))
		}
		stats, err := usecase.NewStatsUseCase(repo, testLogger).Summary(ctx)
		if err != nil {
			t.Fatalf("expected no error, but got %v", err)
		}
		if stats.TotalJobs != 5 || stats.StatusCounts != (model.StatusCounts{Pending: 3, Interview: 1, Offer: 0, Rejected: 1}) {
			t.Errorf("unexpected stats %+v", stats)
		}
	})

	t.Run("Summary on an empty store has no recent application", func(t *testing.T) {
		stats, err := usecase.NewStatsUseCase(NewMockJobRepo(), testLogger).Summary(ctx)
		if err != nil {
			t.Fatalf("expected no error, but got %v", err)
		}
		if stats.TotalJobs != 0 || stats.RecentApplication != nil {
			t.Errorf("expected zero stats, got %+v", stats)
		}
	})

	t.Run("Summary should fail when a count fails", func(t *testing.T) {
		repo := NewMockJobRepo()
		repo.CountByStatusErr = errors.New("boom")
		if _, err := usecase.NewStatsUseCase(repo, testLogger).Summary(ctx); err == nil {
			t.Fatal("expected an error, but got nil")
		}
	})

	t.Run("Summary should fail when the recent lookup fails", func(t *testing.T) {
		repo := NewMockJobRepo()
		repo.FindMostRecentErr = errors.New("boom")
		if _, err := usecase.NewStatsUseCase(repo, testLogger).Summary(ctx); err == nil {
			t.Fatal("expected an error, but got nil")
		}
	})
}
