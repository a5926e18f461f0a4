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

	"faktura/internal/domain"
	"faktura/internal/port"
)

type clientRepo struct {
	db sqlx.ExtContext
}

// NewClientRepo creates a PostgreSQL-backed ClientRepository.
func NewClientRepo(db sqlx.ExtContext) port.ClientRepository {
	return &clientRepo{db: db}
}

func (r *clientRepo) Create(ctx context.Context, c *domain.Client) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `INSERT INTO clients (id, company_name, registration_code, vat_code, address,
			phone, email, client_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.CompanyName, c.RegistrationCode, c.VATCode, c.Address,
		c.Phone, c.Email, c.ClientType, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("clientRepo.Create: %w", err)
	}
	return nil
}

func (r *clientRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var c domain.Client
	err := sqlx.GetContext(ctx, r.db, &c, "SELECT * FROM clients WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("clientRepo.GetByID: %w", err)
	}
	return &c, nil
}

func (r *clientRepo) List(ctx context.Context, f *domain.ClientFilter) ([]domain.Client, int, error) {
	var conds []string
	var args []interface{}

	if f.Search != "" {
		args = append(args, "%"+strings.ToLower(f.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(LOWER(company_name) LIKE $%d OR LOWER(registration_code) LIKE $%d OR LOWER(COALESCE(email, '')) LIKE $%d)",
			n, n, n))
	}
	if f.ClientType != "" {
		args = append(args, f.ClientType)
		conds = append(conds, fmt.Sprintf("client_type = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	err := sqlx.GetContext(ctx, r.db, &total, "SELECT COUNT(*) FROM clients"+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("clientRepo.List count: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	page := fmt.Sprintf(" ORDER BY company_name ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var clients []domain.Client
	err = sqlx.SelectContext(ctx, r.db, &clients, "SELECT * FROM clients"+where+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("clientRepo.List: %w", err)
	}
	return clients, total, nil
}

func (r *clientRepo) Update(ctx context.Context, c *domain.Client) error {
	c.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE clients SET company_name = $1, registration_code = $2, vat_code = $3,
			address = $4, phone = $5, email = $6, client_type = $7, updated_at = $8
		 WHERE id = $9`,
		c.CompanyName, c.RegistrationCode, c.VATCode, c.Address, c.Phone, c.Email,
		c.ClientType, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("clientRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *clientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM clients WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("clientRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}
