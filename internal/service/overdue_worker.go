package service

import (
	"context"
	"log"
	"time"
)

// OverdueWorkerConfig holds settings for the overdue sweep worker.
type OverdueWorkerConfig struct {
	SweepInterval time.Duration
}

// OverdueWorker periodically marks unpaid invoices past their due date as
// overdue, so statuses stay honest even when nobody is reading.
type OverdueWorker struct {
	invoices InvoiceService
	cfg      OverdueWorkerConfig
}

// NewOverdueWorker creates a new OverdueWorker.
func NewOverdueWorker(invoices InvoiceService, cfg OverdueWorkerConfig) *OverdueWorker {
	return &OverdueWorker{invoices: invoices, cfg: cfg}
}

// Start runs the sweep loop until ctx is canceled. One sweep runs immediately
// on startup so a long-stopped instance catches up without waiting a tick.
func (w *OverdueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.SweepInterval)
	defer ticker.Stop()

	log.Printf("overdueWorker: started (interval=%s)", w.cfg.SweepInterval)

	w.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Printf("overdueWorker: shutdown complete")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *OverdueWorker) sweep(ctx context.Context) {
	marked, err := w.invoices.RefreshOverdue(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Printf("overdueWorker: sweep error: %v", err)
		return
	}
	if marked > 0 {
		log.Printf("overdueWorker: marked %d invoices overdue", marked)
	}
}
