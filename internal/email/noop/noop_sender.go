package noop

import (
	"context"
	"log"

	"faktura/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs instead of sending.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendInvoice(_ context.Context, toEmail, toName, subject, _ string, pdf []byte, filename string) error {
	log.Printf("[NOOP EMAIL] %q to %s (%s), attachment %s (%d bytes)", subject, toName, toEmail, filename, len(pdf))
	return nil
}
