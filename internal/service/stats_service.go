package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"faktura/internal/domain"
	"faktura/internal/port"
)

// StatsService computes dashboard figures and per-client history.
type StatsService interface {
	Dashboard(ctx context.Context, year, month int) (*domain.DashboardStats, error)
	MonthlyRevenue(ctx context.Context, year int) ([]domain.MonthlyRevenue, error)
	RecentInvoices(ctx context.Context, limit int) ([]domain.Invoice, error)
	ClientStats(ctx context.Context, clientID uuid.UUID) (*domain.ClientStats, error)
}

type statsService struct {
	statsRepo   port.StatsRepository
	invoiceRepo port.InvoiceRepository
	clientRepo  port.ClientRepository
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(statsRepo port.StatsRepository, invoiceRepo port.InvoiceRepository, clientRepo port.ClientRepository) StatsService {
	return &statsService{statsRepo: statsRepo, invoiceRepo: invoiceRepo, clientRepo: clientRepo}
}

func (s *statsService) refreshOverdue(ctx context.Context, caller string) {
	today := time.Now()
	if _, err := s.invoiceRepo.MarkOverdue(ctx, time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)); err != nil {
		log.Printf("statsService.%s: overdue refresh failed: %v", caller, err)
	}
}

func (s *statsService) Dashboard(ctx context.Context, year, month int) (*domain.DashboardStats, error) {
	if year == 0 {
		year = time.Now().Year()
	}
	if month < 0 || month > 12 {
		return nil, domain.Validationf("month", "month must be between 1 and 12")
	}
	s.refreshOverdue(ctx, "Dashboard")

	stats, err := s.statsRepo.Statistics(ctx, year, month)
	if err != nil {
		return nil, err
	}
	stats.Year = year
	stats.Month = month
	return stats, nil
}

// MonthlyRevenue always returns twelve rows; months without invoices are
// zero-filled so chart clients need no gap handling.
func (s *statsService) MonthlyRevenue(ctx context.Context, year int) ([]domain.MonthlyRevenue, error) {
	if year == 0 {
		year = time.Now().Year()
	}
	s.refreshOverdue(ctx, "MonthlyRevenue")

	rows, err := s.statsRepo.MonthlyRevenue(ctx, year)
	if err != nil {
		return nil, err
	}

	months := make([]domain.MonthlyRevenue, 12)
	for i := range months {
		months[i].Month = i + 1
	}
	for _, row := range rows {
		if row.Month >= 1 && row.Month <= 12 {
			months[row.Month-1] = row
		}
	}
	return months, nil
}

func (s *statsService) RecentInvoices(ctx context.Context, limit int) ([]domain.Invoice, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	return s.statsRepo.RecentInvoices(ctx, limit)
}

func (s *statsService) ClientStats(ctx context.Context, clientID uuid.UUID) (*domain.ClientStats, error) {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.statsRepo.ClientStats(ctx, clientID)
}
