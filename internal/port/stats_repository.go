package port

import (
	"context"

	"github.com/google/uuid"

	"faktura/internal/domain"
)

// StatsRepository computes dashboard and per-client aggregates.
type StatsRepository interface {
	// Statistics aggregates over a year, or a single month when month > 0.
	Statistics(ctx context.Context, year, month int) (*domain.DashboardStats, error)
	// MonthlyRevenue returns one row per calendar month with data; callers
	// fill the gaps.
	MonthlyRevenue(ctx context.Context, year int) ([]domain.MonthlyRevenue, error)
	RecentInvoices(ctx context.Context, limit int) ([]domain.Invoice, error)
	ClientStats(ctx context.Context, clientID uuid.UUID) (*domain.ClientStats, error)
}
