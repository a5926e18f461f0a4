package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendInvoice(ctx context.Context, toEmail, toName, subject, body string, pdf []byte, filename string) error {
	args := m.Called(ctx, toEmail, toName, subject, body, pdf, filename)
	return args.Error(0)
}
