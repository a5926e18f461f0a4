package port

import (
	"context"

	"github.com/google/uuid"

	"faktura/internal/domain"
)

// SeriesRepository manages invoice numbering series.
type SeriesRepository interface {
	Create(ctx context.Context, s *domain.InvoiceSeries) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InvoiceSeries, error)
	GetByCode(ctx context.Context, code string) (*domain.InvoiceSeries, error)
	List(ctx context.Context) ([]domain.InvoiceSeries, error)
	// Update changes description and active flag only. The counter and the
	// code are not updatable through this path.
	Update(ctx context.Context, s *domain.InvoiceSeries) error
	// Allocate atomically increments the series counter and returns the new
	// number. Concurrent calls against one series serialize on the row and
	// never observe the same value. There is no way to hand a number back.
	Allocate(ctx context.Context, id uuid.UUID) (int64, error)
}
