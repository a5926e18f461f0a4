package port

import (
	"context"

	"faktura/internal/domain"
)

// InvoicePDFGenerator renders a computed invoice snapshot into a PDF.
// Layout is entirely the generator's concern.
type InvoicePDFGenerator interface {
	Generate(ctx context.Context, doc *domain.InvoiceDocument) ([]byte, error)
}
