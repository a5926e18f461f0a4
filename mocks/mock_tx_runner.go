package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"faktura/internal/port"
)

// MockTxRunner is a mock implementation of port.InvoiceTxRunner. The series
// and invoice mocks handed to fn are set by the test so expectations can be
// placed on them directly.
type MockTxRunner struct {
	mock.Mock

	SeriesRepo  *MockSeriesRepo
	InvoiceRepo *MockInvoiceRepo
}

func (m *MockTxRunner) RunInvoiceTx(ctx context.Context, fn func(series port.SeriesRepository, invoices port.InvoiceRepository) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.SeriesRepo, m.InvoiceRepo)
}
