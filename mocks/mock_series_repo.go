package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"faktura/internal/domain"
)

// MockSeriesRepo is a mock implementation of port.SeriesRepository.
type MockSeriesRepo struct {
	mock.Mock
}

func (m *MockSeriesRepo) Create(ctx context.Context, s *domain.InvoiceSeries) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSeriesRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.InvoiceSeries, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceSeries), args.Error(1)
}

func (m *MockSeriesRepo) GetByCode(ctx context.Context, code string) (*domain.InvoiceSeries, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceSeries), args.Error(1)
}

func (m *MockSeriesRepo) List(ctx context.Context) ([]domain.InvoiceSeries, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceSeries), args.Error(1)
}

func (m *MockSeriesRepo) Update(ctx context.Context, s *domain.InvoiceSeries) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSeriesRepo) Allocate(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
