package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"faktura/internal/port"
)

var _ port.InvoiceTxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction with
// tx-bound repositories, committing on success and rolling back otherwise.
type TxRunner struct {
	db *sqlx.DB
}

// NewTxRunner creates a TxRunner over the connection pool.
func NewTxRunner(db *sqlx.DB) *TxRunner {
	return &TxRunner{db: db}
}

// RunInvoiceTx implements port.InvoiceTxRunner.
func (r *TxRunner) RunInvoiceTx(ctx context.Context, fn func(series port.SeriesRepository, invoices port.InvoiceRepository) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewSeriesRepo(tx), NewInvoiceRepo(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
