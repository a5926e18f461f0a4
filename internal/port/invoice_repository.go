package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"faktura/internal/domain"
)

// InvoiceRepository persists invoice aggregates (header plus items).
type InvoiceRepository interface {
	// Create inserts the invoice header and all of its items.
	Create(ctx context.Context, inv *domain.Invoice) error
	// GetByID loads the invoice with its items in sort order.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	// List returns a filtered, sorted page of invoice headers and the
	// unpaginated match count.
	List(ctx context.Context, f *domain.InvoiceFilter) ([]domain.Invoice, int, error)
	// Summary aggregates count and totals over the same filter as List.
	Summary(ctx context.Context, f *domain.InvoiceFilter) (*domain.InvoiceSummary, error)
	// Update rewrites the header and replaces the item list atomically
	// within the surrounding transaction.
	Update(ctx context.Context, inv *domain.Invoice) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	// MarkOverdue sets status=overdue on unpaid invoices past due as of
	// today, skipping ones already paid or overdue. Idempotent; returns
	// the number of rows touched.
	MarkOverdue(ctx context.Context, today time.Time) (int64, error)
	CountByClient(ctx context.Context, clientID uuid.UUID) (int, error)
}
