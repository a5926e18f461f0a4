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

type settingRepo struct {
	db sqlx.ExtContext
}

// NewSettingRepo creates a PostgreSQL-backed SettingRepository.
func NewSettingRepo(db sqlx.ExtContext) port.SettingRepository {
	return &settingRepo{db: db}
}

func (r *settingRepo) List(ctx context.Context) ([]domain.Setting, error) {
	var settings []domain.Setting
	err := sqlx.SelectContext(ctx, r.db, &settings, "SELECT * FROM settings ORDER BY key ASC")
	if err != nil {
		return nil, fmt.Errorf("settingRepo.List: %w", err)
	}
	return settings, nil
}

func (r *settingRepo) Get(ctx context.Context, key string) (*domain.Setting, error) {
	var s domain.Setting
	err := sqlx.GetContext(ctx, r.db, &s, "SELECT * FROM settings WHERE key = $1", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("settingRepo.Get: %w", err)
	}
	return &s, nil
}

func (r *settingRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (id, key, value) VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		uuid.New(), key, value)
	if err != nil {
		return fmt.Errorf("settingRepo.Set: %w", err)
	}
	return nil
}
