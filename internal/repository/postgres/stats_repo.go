package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"faktura/internal/domain"
	"faktura/internal/port"
)

type statsRepo struct {
	db sqlx.ExtContext
}

// NewStatsRepo creates a PostgreSQL-backed StatsRepository.
func NewStatsRepo(db sqlx.ExtContext) port.StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) Statistics(ctx context.Context, year, month int) (*domain.DashboardStats, error) {
	query := `SELECT
			COALESCE(SUM(total), 0) AS total_issued,
			COALESCE(SUM(CASE WHEN status = 'paid' THEN total ELSE 0 END), 0) AS total_received,
			COALESCE(SUM(CASE WHEN status = 'paid' THEN 0 ELSE total END), 0) AS total_unpaid,
			COUNT(*) AS invoice_count,
			COALESCE(SUM(CASE WHEN status = 'paid' THEN 1 ELSE 0 END), 0) AS paid_count,
			COALESCE(SUM(CASE WHEN status IN ('draft', 'sent') THEN 1 ELSE 0 END), 0) AS unpaid_count,
			COALESCE(SUM(CASE WHEN status = 'overdue' THEN 1 ELSE 0 END), 0) AS overdue_count
		FROM invoices
		WHERE EXTRACT(YEAR FROM invoice_date) = $1`

	args := []interface{}{year}
	if month > 0 {
		query += " AND EXTRACT(MONTH FROM invoice_date) = $2"
		args = append(args, month)
	}

	var s domain.DashboardStats
	if err := sqlx.GetContext(ctx, r.db, &s, query, args...); err != nil {
		return nil, fmt.Errorf("statsRepo.Statistics: %w", err)
	}
	s.Year = year
	s.Month = month
	return &s, nil
}

func (r *statsRepo) MonthlyRevenue(ctx context.Context, year int) ([]domain.MonthlyRevenue, error) {
	query := `SELECT
			EXTRACT(MONTH FROM invoice_date)::int AS month,
			COALESCE(SUM(total), 0) AS total_issued,
			COALESCE(SUM(CASE WHEN status = 'paid' THEN total ELSE 0 END), 0) AS total_received,
			COALESCE(SUM(CASE WHEN status = 'paid' THEN 0 ELSE total END), 0) AS total_unpaid,
			COUNT(*) AS invoice_count
		FROM invoices
		WHERE EXTRACT(YEAR FROM invoice_date) = $1
		GROUP BY month
		ORDER BY month ASC`

	var rows []domain.MonthlyRevenue
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, year); err != nil {
		return nil, fmt.Errorf("statsRepo.MonthlyRevenue: %w", err)
	}
	return rows, nil
}

func (r *statsRepo) RecentInvoices(ctx context.Context, limit int) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := sqlx.SelectContext(ctx, r.db, &invoices,
		"SELECT "+invoiceColumns+" "+invoiceJoins+
			" ORDER BY i.invoice_date DESC, i.created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.RecentInvoices: %w", err)
	}
	return invoices, nil
}

func (r *statsRepo) ClientStats(ctx context.Context, clientID uuid.UUID) (*domain.ClientStats, error) {
	query := `SELECT
			COUNT(*) AS invoice_count,
			COALESCE(SUM(CASE WHEN status = 'paid' THEN 1 ELSE 0 END), 0) AS paid_invoice_count,
			COALESCE(SUM(CASE WHEN status = 'overdue' THEN 1 ELSE 0 END), 0) AS overdue_count,
			COALESCE(SUM(total), 0) AS total_invoiced,
			COALESCE(SUM(CASE WHEN status = 'paid' THEN total ELSE 0 END), 0) AS total_paid
		FROM invoices WHERE client_id = $1`

	var s domain.ClientStats
	if err := sqlx.GetContext(ctx, r.db, &s, query, clientID); err != nil {
		return nil, fmt.Errorf("statsRepo.ClientStats: %w", err)
	}
	s.TotalUnpaid = s.TotalInvoiced.Sub(s.TotalPaid)
	return &s, nil
}
