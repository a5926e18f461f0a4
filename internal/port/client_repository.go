package port

import (
	"context"

	"github.com/google/uuid"

	"faktura/internal/domain"
)

// ClientRepository persists the client register.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	List(ctx context.Context, f *domain.ClientFilter) ([]domain.Client, int, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}
