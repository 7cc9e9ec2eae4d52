//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"job-tracker/internal/domain"
	"job-tracker/internal/domain/model"
	"job-tracker/internal/domain/ports/repository"
)

// =============================
// Repositories
// =============================

// MockJobRepo is an in-memory JobRepository. The ...Err fields force a
// failure on the matching method.
type MockJobRepo struct {
	mu    sync.Mutex
	jobs  map[string]*model.Job
	order []string

	CreateErr         error
	FindErr           error
	ListErr           error
	UpdateErr         error
	DeleteErr         error
	CountErr          error
	CountByStatusErr  error
	FindMostRecentErr error

	UpdateCalls int
}

var _ repository.JobRepository = (*MockJobRepo)(nil)

func NewMockJobRepo() *MockJobRepo {
	return &MockJobRepo{jobs: map[string]*model.Job{}}
}

func (m *MockJobRepo) Create(ctx context.Context, tx repository.Tx, job *model.Job) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *job
	m.jobs[job.ID] = &cp
	m.order = append(m.order, job.ID)
	return nil
}

func (m *MockJobRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Job, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (m *MockJobRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Job, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Job
	for _, id := range m.order {
		cp := *m.jobs[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockJobRepo) Update(ctx context.Context, tx repository.Tx, job *model.Job) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	if _, ok := m.jobs[job.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *job
	m.jobs[job.ID] = &cp
	return nil
}

func (m *MockJobRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.jobs, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockJobRepo) CountAll(ctx context.Context, tx repository.Tx) (int, error) {
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jobs), nil
}

func (m *MockJobRepo) CountByStatus(ctx context.Context, tx repository.Tx) (map[model.JobStatus]int, error) {
	if m.CountByStatusErr != nil {
		return nil, m.CountByStatusErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[model.JobStatus]int{}
	for _, j := range m.jobs {
		out[j.Status]++
	}
	return out, nil
}

func (m *MockJobRepo) FindMostRecent(ctx context.Context, tx repository.Tx) (*model.Job, error) {
	if m.FindMostRecentErr != nil {
		return nil, m.FindMostRecentErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.jobs) == 0 {
		return nil, domain.ErrNotFound
	}
	all := make([]*model.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		all = append(all, j)
	}
	sort.Slice(all, func(a, b int) bool { return all[a].ApplicationDate.After(all[b].ApplicationDate) })
	cp := *all[0]
	return &cp, nil
}

// seed stores a job directly, bypassing validation.
func (m *MockJobRepo) seed(j *model.Job) {
	_ = m.Create(context.Background(), repository.NoTX, j)
}

// =============================
// Transactions
// =============================

type noTx struct{}

type mockTxManager struct {
	calls int
}

func (m *mockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	m.calls++
	return fn(ctx, noTx{})
}

// =============================
// Utilities
// =============================

func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

func strPtr(s string) *string { return &s }

func mustJob(in model.JobInput, at time.Time) *model.Job {
	j, err := model.NewJob(in, at)
	if err != nil {
		panic(err)
	}
	return j
}
