package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"faktura/internal/config"
	emailnoop "faktura/internal/email/noop"
	emailses "faktura/internal/email/ses"
	"faktura/internal/handler"
	"faktura/internal/pdf"
	"faktura/internal/port"
	"faktura/internal/repository/postgres"
	"faktura/internal/router"
	"faktura/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	invoiceRepo := postgres.NewInvoiceRepo(db)
	clientRepo := postgres.NewClientRepo(db)
	seriesRepo := postgres.NewSeriesRepo(db)
	companyRepo := postgres.NewCompanyRepo(db)
	settingRepo := postgres.NewSettingRepo(db)
	statsRepo := postgres.NewStatsRepo(db)
	txRunner := postgres.NewTxRunner(db)

	// Initialize email delivery
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = emailses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = emailnoop.NewNoopSender()
	}

	pdfGen := pdf.NewGenerator()

	// Initialize services
	invoiceSvc := service.NewInvoiceService(invoiceRepo, clientRepo, seriesRepo, companyRepo, txRunner, pdfGen, emailSender, cfg.Invoice)
	clientSvc := service.NewClientService(clientRepo, invoiceRepo)
	settingsSvc := service.NewSettingsService(companyRepo, seriesRepo, settingRepo)
	statsSvc := service.NewStatsService(statsRepo, invoiceRepo, clientRepo)

	// Initialize handlers
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	clientH := handler.NewClientHandler(clientSvc, statsSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(cfg, invoiceH, clientH, settingsH, statsH, healthH)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background overdue sweep
	worker := service.NewOverdueWorker(invoiceSvc, service.OverdueWorkerConfig{
		SweepInterval: cfg.Invoice.OverdueSweepInterval,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	<-workerDone
	log.Println("shutdown complete")
	return nil
}
