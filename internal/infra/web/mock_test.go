//go:build !integration

package web

import (
	"context"
	"io"
	"sort"
	"sync"

	"job-tracker/internal/domain"
	"job-tracker/internal/domain/model"
	"job-tracker/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

// --- Mock Repository (Port) ---

type mockJobRepo struct {
	mu    sync.Mutex
	jobs  map[string]*model.Job
	order []string

	CreateError   error // To simulate errors
	ListError     error
	CountError    error
	FindByIDError error
}

var _ repository.JobRepository = (*mockJobRepo)(nil)

func newMockJobRepo() *mockJobRepo {
	return &mockJobRepo{jobs: map[string]*model.Job{}}
}

func (m *mockJobRepo) Create(ctx context.Context, tx repository.Tx, j *model.Job) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *j
	m.jobs[j.ID] = &cp
	m.order = append(m.order, j.ID)
	return nil
}

func (m *mockJobRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Job, error) {
	if m.FindByIDError != nil {
		return nil, m.FindByIDError
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

func (m *mockJobRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Job, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Job, 0, len(m.order))
	for _, id := range m.order {
		cp := *m.jobs[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockJobRepo) Update(ctx context.Context, tx repository.Tx, j *model.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[j.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *j
	m.jobs[j.ID] = &cp
	return nil
}

func (m *mockJobRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
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

func (m *mockJobRepo) CountAll(ctx context.Context, tx repository.Tx) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jobs), nil
}

func (m *mockJobRepo) CountByStatus(ctx context.Context, tx repository.Tx) (map[model.JobStatus]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[model.JobStatus]int{}
	for _, j := range m.jobs {
		out[j.Status]++
	}
	return out, nil
}

func (m *mockJobRepo) FindMostRecent(ctx context.Context, tx repository.Tx) (*model.Job, error) {
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

func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}
