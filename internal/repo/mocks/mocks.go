package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"emptycup-directory/internal/domain"
)

// DesignerRepository is a mock for domain.DesignerRepository.
type DesignerRepository struct {
	mock.Mock
}

var _ domain.DesignerRepository = (*DesignerRepository)(nil)

func (m *DesignerRepository) List(ctx context.Context) ([]domain.Profile, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]domain.Profile); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DesignerRepository) FindByID(ctx context.Context, id int64) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DesignerRepository) Create(ctx context.Context, p *domain.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *DesignerRepository) CreateBatch(ctx context.Context, ps []domain.Profile) (int, error) {
	args := m.Called(ctx, ps)
	return args.Int(0), args.Error(1)
}

func (m *DesignerRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *DesignerRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *DesignerRepository) Recent(ctx context.Context, n int) ([]domain.Profile, error) {
	args := m.Called(ctx, n)
	if list, ok := args.Get(0).([]domain.Profile); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Invalidator is a mock for service.Invalidator.
type Invalidator struct {
	mock.Mock
}

func (m *Invalidator) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
