package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"faktura/internal/domain"
)

// MockSettingRepo is a mock implementation of port.SettingRepository.
type MockSettingRepo struct {
	mock.Mock
}

func (m *MockSettingRepo) List(ctx context.Context) ([]domain.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Setting), args.Error(1)
}

func (m *MockSettingRepo) Get(ctx context.Context, key string) (*domain.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}

func (m *MockSettingRepo) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}
