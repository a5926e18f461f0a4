package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"faktura/internal/domain"
	"faktura/internal/port"
)

type invoiceRepo struct {
	db sqlx.ExtContext
}

// NewInvoiceRepo creates a PostgreSQL-backed InvoiceRepository. It accepts
// either the pool or a transaction.
func NewInvoiceRepo(db sqlx.ExtContext) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

const invoiceColumns = `i.id, i.series_id, s.series_code, i.invoice_number, i.full_number,
	i.client_id, c.company_name AS client_name, i.invoice_date, i.due_date, i.status,
	i.exclude_vat, i.vat_rate, i.subtotal, i.discount_amount, i.vat_amount, i.total,
	i.total_in_words, i.notes, i.issued_by, i.received_by, i.created_at, i.updated_at`

const invoiceJoins = `FROM invoices i
	JOIN invoice_series s ON s.id = i.series_id
	JOIN clients c ON c.id = i.client_id`

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	query := `INSERT INTO invoices (id, series_id, invoice_number, full_number, client_id,
			invoice_date, due_date, status, exclude_vat, vat_rate, subtotal, discount_amount,
			vat_amount, total, total_in_words, notes, issued_by, received_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.SeriesID, inv.InvoiceNumber, inv.FullNumber, inv.ClientID,
		inv.InvoiceDate, inv.DueDate, inv.Status, inv.ExcludeVAT, inv.VATRate,
		inv.Subtotal, inv.DiscountAmount, inv.VATAmount, inv.Total, inv.TotalInWords,
		inv.Notes, inv.IssuedBy, inv.ReceivedBy, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return domain.ErrConflict
		}
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}

	return r.insertItems(ctx, inv.ID, inv.Items)
}

func (r *invoiceRepo) insertItems(ctx context.Context, invoiceID uuid.UUID, items []domain.InvoiceItem) error {
	query := `INSERT INTO invoice_items (id, invoice_id, description, quantity, unit,
			unit_price, discount_percent, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for i := range items {
		it := &items[i]
		if it.ID == uuid.Nil {
			it.ID = uuid.New()
		}
		it.InvoiceID = invoiceID
		_, err := r.db.ExecContext(ctx, query,
			it.ID, it.InvoiceID, it.Description, it.Quantity, it.Unit,
			it.UnitPrice, it.DiscountPercent, it.SortOrder)
		if err != nil {
			return fmt.Errorf("invoiceRepo.insertItems: %w", err)
		}
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := sqlx.GetContext(ctx, r.db, &inv,
		"SELECT "+invoiceColumns+" "+invoiceJoins+" WHERE i.id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}

	err = sqlx.SelectContext(ctx, r.db, &inv.Items,
		"SELECT * FROM invoice_items WHERE invoice_id = $1 ORDER BY sort_order ASC, id ASC", id)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetByID items: %w", err)
	}
	return &inv, nil
}

// buildFilter renders the WHERE clause for f, returning the clause and args.
func buildFilter(f *domain.InvoiceFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Status != "" {
		add("i.status = $%d", f.Status)
	}
	if f.ClientID != uuid.Nil {
		add("i.client_id = $%d", f.ClientID)
	}
	if f.SeriesID != uuid.Nil {
		add("i.series_id = $%d", f.SeriesID)
	}
	if f.DateFrom != nil {
		add("i.invoice_date >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("i.invoice_date <= $%d", *f.DateTo)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var sortColumns = map[string]string{
	domain.SortByDate:   "i.invoice_date",
	domain.SortByNumber: "i.invoice_number",
	domain.SortByTotal:  "i.total",
	domain.SortByStatus: "i.status",
}

func (r *invoiceRepo) List(ctx context.Context, f *domain.InvoiceFilter) ([]domain.Invoice, int, error) {
	where, args := buildFilter(f)

	var total int
	err := sqlx.GetContext(ctx, r.db, &total, "SELECT COUNT(*) FROM invoices i"+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = sortColumns[domain.SortByDate]
	}
	direction := "ASC"
	if f.Descending {
		direction = "DESC"
	}
	order := fmt.Sprintf(" ORDER BY %s %s, i.created_at DESC", column, direction)

	args = append(args, f.Limit, f.Offset)
	page := fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var invoices []domain.Invoice
	err = sqlx.SelectContext(ctx, r.db, &invoices,
		"SELECT "+invoiceColumns+" "+invoiceJoins+where+order+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) Summary(ctx context.Context, f *domain.InvoiceFilter) (*domain.InvoiceSummary, error) {
	where, args := buildFilter(f)

	query := `SELECT COUNT(*) AS invoice_count,
			COALESCE(SUM(i.total), 0) AS total_invoiced,
			COALESCE(SUM(CASE WHEN i.status = 'paid' THEN i.total ELSE 0 END), 0) AS total_paid
		FROM invoices i` + where

	var s domain.InvoiceSummary
	if err := sqlx.GetContext(ctx, r.db, &s, query, args...); err != nil {
		return nil, fmt.Errorf("invoiceRepo.Summary: %w", err)
	}
	s.TotalUnpaid = s.TotalInvoiced.Sub(s.TotalPaid)
	if s.TotalUnpaid.IsNegative() {
		s.TotalUnpaid = decimal.Zero
	}
	return &s, nil
}

func (r *invoiceRepo) Update(ctx context.Context, inv *domain.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()

	query := `UPDATE invoices SET client_id = $1, invoice_date = $2, due_date = $3,
			exclude_vat = $4, vat_rate = $5, subtotal = $6, discount_amount = $7,
			vat_amount = $8, total = $9, total_in_words = $10, notes = $11,
			issued_by = $12, received_by = $13, updated_at = $14
		WHERE id = $15`

	result, err := r.db.ExecContext(ctx, query,
		inv.ClientID, inv.InvoiceDate, inv.DueDate, inv.ExcludeVAT, inv.VATRate,
		inv.Subtotal, inv.DiscountAmount, inv.VATAmount, inv.Total, inv.TotalInWords,
		inv.Notes, inv.IssuedBy, inv.ReceivedBy, inv.UpdatedAt, inv.ID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}

	if _, err := r.db.ExecContext(ctx, "DELETE FROM invoice_items WHERE invoice_id = $1", inv.ID); err != nil {
		return fmt.Errorf("invoiceRepo.Update items: %w", err)
	}
	return r.insertItems(ctx, inv.ID, inv.Items)
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE invoices SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM invoices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) MarkOverdue(ctx context.Context, today time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET status = 'overdue', updated_at = $1
		 WHERE due_date < $2 AND status NOT IN ('paid', 'overdue')`,
		time.Now().UTC(), today)
	if err != nil {
		return 0, fmt.Errorf("invoiceRepo.MarkOverdue: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

func (r *invoiceRepo) CountByClient(ctx context.Context, clientID uuid.UUID) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, r.db, &count,
		"SELECT COUNT(*) FROM invoices WHERE client_id = $1", clientID)
	if err != nil {
		return 0, fmt.Errorf("invoiceRepo.CountByClient: %w", err)
	}
	return count, nil
}
