package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"faktura/internal/domain"
)

// MockCompanyRepo is a mock implementation of port.CompanyRepository.
type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) Get(ctx context.Context) (*domain.CompanyInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyInfo), args.Error(1)
}

func (m *MockCompanyRepo) Upsert(ctx context.Context, c *domain.CompanyInfo) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCompanyRepo) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockCompanyRepo) GetBankAccount(ctx context.Context, id uuid.UUID) (*domain.BankAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockCompanyRepo) DefaultBankAccount(ctx context.Context) (*domain.BankAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockCompanyRepo) CreateBankAccount(ctx context.Context, a *domain.BankAccount) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockCompanyRepo) UpdateBankAccount(ctx context.Context, a *domain.BankAccount) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockCompanyRepo) SetDefaultBankAccount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCompanyRepo) DeleteBankAccount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
