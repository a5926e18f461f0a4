package port

import (
	"context"

	"github.com/google/uuid"

	"faktura/internal/domain"
)

// CompanyRepository manages the singleton seller record and its bank accounts.
type CompanyRepository interface {
	Get(ctx context.Context) (*domain.CompanyInfo, error)
	Upsert(ctx context.Context, c *domain.CompanyInfo) error

	ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error)
	GetBankAccount(ctx context.Context, id uuid.UUID) (*domain.BankAccount, error)
	// DefaultBankAccount returns the default account, or the first one if
	// none is flagged, or ErrBankAccountNotFound when there are none.
	DefaultBankAccount(ctx context.Context) (*domain.BankAccount, error)
	CreateBankAccount(ctx context.Context, a *domain.BankAccount) error
	UpdateBankAccount(ctx context.Context, a *domain.BankAccount) error
	// SetDefaultBankAccount flags one account and clears the flag on all
	// others in the same statement batch.
	SetDefaultBankAccount(ctx context.Context, id uuid.UUID) error
	DeleteBankAccount(ctx context.Context, id uuid.UUID) error
}
