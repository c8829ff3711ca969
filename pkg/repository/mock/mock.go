package mock

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/garnizeh/estimator/pkg/models"
	"github.com/garnizeh/estimator/pkg/repository"
)

// EstimateRepo is an in-memory repository for consumer tests.
type EstimateRepo struct {
	mu     sync.Mutex
	nextID int64
	clock  int64
	Stored map[int64]*models.Estimate

	ListErr   error
	SaveErr   error
	UpdateErr error
	DeleteErr error
}

var _ repository.EstimateRepo = (*EstimateRepo)(nil)

func NewEstimateRepo() *EstimateRepo {
	return &EstimateRepo{Stored: map[int64]*models.Estimate{}}
}

// tick fabricates a strictly increasing RFC3339-shaped timestamp so list
// ordering behaves like the real store.
func (m *EstimateRepo) tick() string {
	m.clock++
	return fmt.Sprintf("2024-01-01T00:00:00.%06d+00:00", m.clock)
}

func (m *EstimateRepo) ListEstimates(ctx context.Context) ([]models.Estimate, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Estimate, 0, len(m.Stored))
	for _, e := range m.Stored {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt > out[j].UpdatedAt })

	return out, nil
}

func (m *EstimateRepo) GetEstimate(ctx context.Context, id int64) (*models.Estimate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.Stored[id]
	if !ok {
		return nil, nil
	}
	cp := *e

	return &cp, nil
}

func (m *EstimateRepo) SaveEstimate(ctx context.Context, e *models.Estimate) (int64, error) {
	if m.SaveErr != nil {
		return 0, m.SaveErr
	}
	if err := validate(e); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	ts := m.tick()
	e.ID = m.nextID
	e.CreatedAt = ts
	e.UpdatedAt = ts
	cp := *e
	m.Stored[e.ID] = &cp

	return e.ID, nil
}

func (m *EstimateRepo) UpdateEstimate(ctx context.Context, e *models.Estimate) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if err := validate(e); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.Stored[e.ID]
	if !ok {
		return fmt.Errorf("%w: id %d", repository.ErrNotFound, e.ID)
	}

	e.CreatedAt = old.CreatedAt
	e.UpdatedAt = m.tick()
	cp := *e
	m.Stored[e.ID] = &cp

	return nil
}

func (m *EstimateRepo) DeleteEstimate(ctx context.Context, id int64) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.Stored, id)
	return nil
}

func validate(e *models.Estimate) error {
	if e == nil {
		return fmt.Errorf("%w: estimate is nil", repository.ErrInvalidEstimate)
	}
	if strings.TrimSpace(e.ClientName) == "" || strings.TrimSpace(e.ProjectName) == "" {
		return fmt.Errorf("%w: client_name and project_name are required", repository.ErrInvalidEstimate)
	}
	return nil
}
