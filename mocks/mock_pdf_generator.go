package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"faktura/internal/domain"
)

// MockPDFGenerator is a mock implementation of port.InvoicePDFGenerator.
type MockPDFGenerator struct {
	mock.Mock
}

func (m *MockPDFGenerator) Generate(ctx context.Context, doc *domain.InvoiceDocument) ([]byte, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
