package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"faktura/internal/domain"
	"faktura/internal/port"
)

type seriesRepo struct {
	db sqlx.ExtContext
}

// NewSeriesRepo creates a PostgreSQL-backed SeriesRepository. It accepts
// either the pool or a transaction.
func NewSeriesRepo(db sqlx.ExtContext) port.SeriesRepository {
	return &seriesRepo{db: db}
}

func (r *seriesRepo) Create(ctx context.Context, s *domain.InvoiceSeries) error {
	query := `INSERT INTO invoice_series (id, series_code, description, current_number, is_active)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query, s.ID, s.SeriesCode, s.Description, s.CurrentNumber, s.IsActive)
	if err != nil {
		if isUniqueViolation(err, "") {
			return domain.ErrDuplicateSeriesCode
		}
		return fmt.Errorf("seriesRepo.Create: %w", err)
	}
	return nil
}

func (r *seriesRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.InvoiceSeries, error) {
	var s domain.InvoiceSeries
	err := sqlx.GetContext(ctx, r.db, &s, "SELECT * FROM invoice_series WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSeriesNotFound
		}
		return nil, fmt.Errorf("seriesRepo.GetByID: %w", err)
	}
	return &s, nil
}

func (r *seriesRepo) GetByCode(ctx context.Context, code string) (*domain.InvoiceSeries, error) {
	var s domain.InvoiceSeries
	err := sqlx.GetContext(ctx, r.db, &s, "SELECT * FROM invoice_series WHERE series_code = $1", code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSeriesNotFound
		}
		return nil, fmt.Errorf("seriesRepo.GetByCode: %w", err)
	}
	return &s, nil
}

func (r *seriesRepo) List(ctx context.Context) ([]domain.InvoiceSeries, error) {
	var series []domain.InvoiceSeries
	err := sqlx.SelectContext(ctx, r.db, &series,
		"SELECT * FROM invoice_series ORDER BY series_code ASC")
	if err != nil {
		return nil, fmt.Errorf("seriesRepo.List: %w", err)
	}
	return series, nil
}

func (r *seriesRepo) Update(ctx context.Context, s *domain.InvoiceSeries) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE invoice_series SET description = $1, is_active = $2 WHERE id = $3",
		s.Description, s.IsActive, s.ID)
	if err != nil {
		return fmt.Errorf("seriesRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSeriesNotFound
	}
	return nil
}

// Allocate increments the counter under the row lock taken by UPDATE, so
// concurrent allocations against the same series serialize and each caller
// sees a distinct number.
func (r *seriesRepo) Allocate(ctx context.Context, id uuid.UUID) (int64, error) {
	var number int64
	err := sqlx.GetContext(ctx, r.db, &number,
		"UPDATE invoice_series SET current_number = current_number + 1 WHERE id = $1 RETURNING current_number",
		id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrSeriesNotFound
		}
		return 0, fmt.Errorf("seriesRepo.Allocate: %w", err)
	}
	return number, nil
}
