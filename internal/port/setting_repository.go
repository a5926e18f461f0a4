package port

import (
	"context"

	"faktura/internal/domain"
)

// SettingRepository stores free-form key/value settings.
type SettingRepository interface {
	List(ctx context.Context) ([]domain.Setting, error)
	Get(ctx context.Context, key string) (*domain.Setting, error)
	Set(ctx context.Context, key, value string) error
}
