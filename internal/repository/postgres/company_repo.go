package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"faktura/internal/domain"
	"faktura/internal/port"
)

type companyRepo struct {
	db sqlx.ExtContext
}

// NewCompanyRepo creates a PostgreSQL-backed CompanyRepository.
func NewCompanyRepo(db sqlx.ExtContext) port.CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Get(ctx context.Context) (*domain.CompanyInfo, error) {
	var c domain.CompanyInfo
	err := sqlx.GetContext(ctx, r.db, &c, "SELECT * FROM company_info LIMIT 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("companyRepo.Get: %w", err)
	}
	return &c, nil
}

func (r *companyRepo) Upsert(ctx context.Context, c *domain.CompanyInfo) error {
	now := time.Now().UTC()
	c.UpdatedAt = now

	existing, err := r.Get(ctx)
	switch {
	case errors.Is(err, domain.ErrCompanyNotFound):
		c.ID = uuid.New()
		c.CreatedAt = now
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO company_info (id, company_name, tax_id, address, phone, email, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			c.ID, c.CompanyName, c.TaxID, c.Address, c.Phone, c.Email, c.CreatedAt, c.UpdatedAt)
	case err != nil:
		return err
	default:
		c.ID = existing.ID
		c.CreatedAt = existing.CreatedAt
		_, err = r.db.ExecContext(ctx,
			`UPDATE company_info SET company_name = $1, tax_id = $2, address = $3,
				phone = $4, email = $5, updated_at = $6 WHERE id = $7`,
			c.CompanyName, c.TaxID, c.Address, c.Phone, c.Email, c.UpdatedAt, c.ID)
	}
	if err != nil {
		return fmt.Errorf("companyRepo.Upsert: %w", err)
	}
	return nil
}

func (r *companyRepo) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	var accounts []domain.BankAccount
	err := sqlx.SelectContext(ctx, r.db, &accounts,
		"SELECT * FROM bank_accounts ORDER BY is_default DESC, created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("companyRepo.ListBankAccounts: %w", err)
	}
	return accounts, nil
}

func (r *companyRepo) GetBankAccount(ctx context.Context, id uuid.UUID) (*domain.BankAccount, error) {
	var a domain.BankAccount
	err := sqlx.GetContext(ctx, r.db, &a, "SELECT * FROM bank_accounts WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBankAccountNotFound
		}
		return nil, fmt.Errorf("companyRepo.GetBankAccount: %w", err)
	}
	return &a, nil
}

func (r *companyRepo) DefaultBankAccount(ctx context.Context) (*domain.BankAccount, error) {
	var a domain.BankAccount
	err := sqlx.GetContext(ctx, r.db, &a,
		"SELECT * FROM bank_accounts ORDER BY is_default DESC, created_at ASC LIMIT 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBankAccountNotFound
		}
		return nil, fmt.Errorf("companyRepo.DefaultBankAccount: %w", err)
	}
	return &a, nil
}

func (r *companyRepo) CreateBankAccount(ctx context.Context, a *domain.BankAccount) error {
	a.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bank_accounts (id, company_id, bank_name, account_number, is_default, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.CompanyID, a.BankName, a.AccountNumber, a.IsDefault, a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return domain.ErrDuplicateAccount
		}
		return fmt.Errorf("companyRepo.CreateBankAccount: %w", err)
	}
	if a.IsDefault {
		return r.clearOtherDefaults(ctx, a.ID)
	}
	return nil
}

func (r *companyRepo) UpdateBankAccount(ctx context.Context, a *domain.BankAccount) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE bank_accounts SET bank_name = $1, account_number = $2 WHERE id = $3",
		a.BankName, a.AccountNumber, a.ID)
	if err != nil {
		if isUniqueViolation(err, "") {
			return domain.ErrDuplicateAccount
		}
		return fmt.Errorf("companyRepo.UpdateBankAccount: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrBankAccountNotFound
	}
	return nil
}

func (r *companyRepo) SetDefaultBankAccount(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE bank_accounts SET is_default = TRUE WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("companyRepo.SetDefaultBankAccount: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrBankAccountNotFound
	}
	return r.clearOtherDefaults(ctx, id)
}

func (r *companyRepo) clearOtherDefaults(ctx context.Context, keep uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE bank_accounts SET is_default = FALSE WHERE id <> $1 AND is_default = TRUE", keep)
	if err != nil {
		return fmt.Errorf("companyRepo.clearOtherDefaults: %w", err)
	}
	return nil
}

func (r *companyRepo) DeleteBankAccount(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM bank_accounts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("companyRepo.DeleteBankAccount: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrBankAccountNotFound
	}
	return nil
}
