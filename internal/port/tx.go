package port

import "context"

// InvoiceTxRunner runs fn inside a database transaction with repositories
// bound to it. The allocate→recompute→persist sequence of invoice creation
// and every invoice mutation must go through here so readers never observe
// totals that disagree with items. fn returning an error rolls everything
// back.
type InvoiceTxRunner interface {
	RunInvoiceTx(ctx context.Context, fn func(series SeriesRepository, invoices InvoiceRepository) error) error
}
