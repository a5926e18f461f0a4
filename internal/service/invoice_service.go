package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"faktura/internal/config"
	"faktura/internal/domain"
	"faktura/internal/port"
	"faktura/internal/words"
)

// InvoiceItemInput is one line item as supplied by a caller. Nil numeric
// fields take defaults (quantity 1, discount 0); explicit values are
// validated, never clamped.
type InvoiceItemInput struct {
	Description     string           `json:"description"`
	Quantity        *decimal.Decimal `json:"quantity"`
	Unit            string           `json:"unit"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	SortOrder       *int             `json:"sort_order"`
}

// CreateInvoiceInput is the DTO for creating an invoice.
type CreateInvoiceInput struct {
	ClientID    uuid.UUID          `json:"client_id"`
	SeriesID    uuid.UUID          `json:"series_id"`
	InvoiceDate *time.Time         `json:"invoice_date"`
	DueDate     *time.Time         `json:"due_date"`
	Status      string             `json:"status"`
	ExcludeVAT  bool               `json:"exclude_vat"`
	VATRate     *decimal.Decimal   `json:"vat_rate"`
	Notes       string             `json:"notes"`
	IssuedBy    string             `json:"issued_by"`
	ReceivedBy  string             `json:"received_by"`
	Items       []InvoiceItemInput `json:"items"`
}

// UpdateInvoiceInput is the DTO for updating an invoice. Nil fields are left
// unchanged; a nil Items keeps the current item list.
type UpdateInvoiceInput struct {
	ClientID    *uuid.UUID          `json:"client_id"`
	SeriesID    *uuid.UUID          `json:"series_id"`
	InvoiceDate *time.Time          `json:"invoice_date"`
	DueDate     *time.Time          `json:"due_date"`
	ExcludeVAT  *bool               `json:"exclude_vat"`
	VATRate     *decimal.Decimal    `json:"vat_rate"`
	Notes       *string             `json:"notes"`
	IssuedBy    *string             `json:"issued_by"`
	ReceivedBy  *string             `json:"received_by"`
	Items       *[]InvoiceItemInput `json:"items"`
}

// InvoiceListResult bundles a page of invoices with the filter-wide summary.
type InvoiceListResult struct {
	Invoices []domain.Invoice       `json:"invoices"`
	Total    int                    `json:"total"`
	Summary  *domain.InvoiceSummary `json:"summary"`
}

// NextNumberPreview shows what the next allocation in a series would yield.
type NextNumberPreview struct {
	SeriesCode string `json:"series_code"`
	NextNumber int64  `json:"next_number"`
	FullNumber string `json:"full_number"`
}

// InvoiceService implements the invoice business rules: numbering, totals,
// the status lifecycle, duplication, and document rendering.
type InvoiceService interface {
	Create(ctx context.Context, input *CreateInvoiceInput) (*domain.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, f *domain.InvoiceFilter) (*InvoiceListResult, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateInvoiceInput) (*domain.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ChangeStatus(ctx context.Context, id uuid.UUID, target domain.InvoiceStatus) (*domain.Invoice, error)
	Duplicate(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	PreviewNextNumber(ctx context.Context, seriesID uuid.UUID) (*NextNumberPreview, error)
	RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	Send(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	RefreshOverdue(ctx context.Context) (int64, error)
	RenderAmountInWords(amount decimal.Decimal) (string, error)
}

type invoiceService struct {
	invoiceRepo port.InvoiceRepository
	clientRepo  port.ClientRepository
	seriesRepo  port.SeriesRepository
	companyRepo port.CompanyRepository
	txRunner    port.InvoiceTxRunner
	pdfGen      port.InvoicePDFGenerator
	email       port.EmailSender
	cfg         config.InvoiceConfig
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	clientRepo port.ClientRepository,
	seriesRepo port.SeriesRepository,
	companyRepo port.CompanyRepository,
	txRunner port.InvoiceTxRunner,
	pdfGen port.InvoicePDFGenerator,
	email port.EmailSender,
	cfg config.InvoiceConfig,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		seriesRepo:  seriesRepo,
		companyRepo: companyRepo,
		txRunner:    txRunner,
		pdfGen:      pdfGen,
		email:       email,
		cfg:         cfg,
	}
}

// buildItems converts caller item inputs to domain items, applying defaults
// for omitted fields and validating everything supplied explicitly.
func buildItems(inputs []InvoiceItemInput) ([]domain.InvoiceItem, error) {
	items := make([]domain.InvoiceItem, 0, len(inputs))
	for idx, in := range inputs {
		item := domain.InvoiceItem{
			ID:          uuid.New(),
			Description: in.Description,
			Quantity:    decimal.NewFromInt(1),
			Unit:        domain.DefaultUnit,
			SortOrder:   idx,
		}
		if in.Quantity != nil {
			item.Quantity = *in.Quantity
		}
		if in.Unit != "" {
			item.Unit = in.Unit
		}
		if in.UnitPrice != nil {
			item.UnitPrice = *in.UnitPrice
		}
		if in.DiscountPercent != nil {
			item.DiscountPercent = *in.DiscountPercent
		}
		if in.SortOrder != nil {
			item.SortOrder = *in.SortOrder
		}
		if err := domain.ValidateItem(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// finalize recomputes totals and re-renders the amount in words. Every write
// path goes through here before persisting.
func (s *invoiceService) finalize(inv *domain.Invoice) error {
	inv.Recalculate()
	inWords, err := s.RenderAmountInWords(inv.Total)
	if err != nil {
		return err
	}
	inv.TotalInWords = inWords
	return nil
}

func (s *invoiceService) Create(ctx context.Context, input *CreateInvoiceInput) (*domain.Invoice, error) {
	if input.ClientID == uuid.Nil {
		return nil, domain.Validationf("client_id", "client_id is required")
	}
	if input.SeriesID == uuid.Nil {
		return nil, domain.Validationf("series_id", "series_id is required")
	}

	client, err := s.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	series, err := s.seriesRepo.GetByID(ctx, input.SeriesID)
	if err != nil {
		return nil, err
	}
	if !series.IsActive {
		return nil, domain.Validationf("series_id", "series %q is not active", series.SeriesCode)
	}

	today := dateOnly(time.Now())
	invoiceDate := today
	if input.InvoiceDate != nil {
		invoiceDate = dateOnly(*input.InvoiceDate)
	}
	dueDate := invoiceDate.AddDate(0, 0, s.cfg.DefaultDueDays)
	if input.DueDate != nil {
		dueDate = dateOnly(*input.DueDate)
	}
	if dueDate.Before(invoiceDate) {
		return nil, domain.Validationf("due_date", "due date cannot be earlier than invoice date")
	}

	status := domain.StatusDraft
	if input.Status != "" {
		parsed, ok := domain.ParseStatus(input.Status)
		if !ok {
			return nil, domain.Validationf("status", "unknown status %q", input.Status)
		}
		status = parsed
	}

	vatRate := decimal.NewFromFloat(s.cfg.DefaultVATRate)
	if input.VATRate != nil {
		vatRate = *input.VATRate
	}
	if err := domain.ValidateVATRate(vatRate); err != nil {
		return nil, err
	}

	items, err := buildItems(input.Items)
	if err != nil {
		return nil, err
	}

	inv := &domain.Invoice{
		ID:          uuid.New(),
		SeriesID:    series.ID,
		SeriesCode:  series.SeriesCode,
		ClientID:    client.ID,
		ClientName:  client.CompanyName,
		InvoiceDate: invoiceDate,
		DueDate:     dueDate,
		Status:      status,
		ExcludeVAT:  input.ExcludeVAT,
		VATRate:     vatRate,
		Notes:       input.Notes,
		IssuedBy:    input.IssuedBy,
		ReceivedBy:  input.ReceivedBy,
		Items:       items,
	}
	if err := s.finalize(inv); err != nil {
		return nil, err
	}

	// Number allocation and the insert share one transaction so a failed
	// insert never burns a number that a reader could observe.
	err = s.txRunner.RunInvoiceTx(ctx, func(seriesTx port.SeriesRepository, invoiceTx port.InvoiceRepository) error {
		number, err := seriesTx.Allocate(ctx, series.ID)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = number
		inv.FullNumber = domain.FormatFullNumber(series.SeriesCode, number)
		return invoiceTx.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("invoiceService.Create: issued %s for client %s", inv.FullNumber, client.ID)
	return inv, nil
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	if _, err := s.RefreshOverdue(ctx); err != nil {
		log.Printf("invoiceService.GetByID: overdue refresh failed: %v", err)
	}
	return s.invoiceRepo.GetByID(ctx, id)
}

func (s *invoiceService) List(ctx context.Context, f *domain.InvoiceFilter) (*InvoiceListResult, error) {
	if _, err := s.RefreshOverdue(ctx); err != nil {
		log.Printf("invoiceService.List: overdue refresh failed: %v", err)
	}

	// Direction is the caller's choice; only the sort key gets a default
	// here so an explicit ascending order survives an omitted sort_by.
	if f.SortBy == "" {
		f.SortBy = domain.SortByDate
	}
	if _, ok := map[string]bool{
		domain.SortByDate: true, domain.SortByNumber: true,
		domain.SortByTotal: true, domain.SortByStatus: true,
	}[f.SortBy]; !ok {
		return nil, domain.Validationf("sort_by", "allowed: date, number, total, status")
	}

	invoices, total, err := s.invoiceRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	summary, err := s.invoiceRepo.Summary(ctx, f)
	if err != nil {
		return nil, err
	}
	return &InvoiceListResult{Invoices: invoices, Total: total, Summary: summary}, nil
}

func (s *invoiceService) Update(ctx context.Context, id uuid.UUID, input *UpdateInvoiceInput) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Immutable() {
		return nil, domain.ErrInvoiceImmutable
	}
	if input.SeriesID != nil && *input.SeriesID != inv.SeriesID {
		return nil, domain.ErrSeriesChange
	}

	if input.ClientID != nil {
		client, err := s.clientRepo.GetByID(ctx, *input.ClientID)
		if err != nil {
			return nil, err
		}
		inv.ClientID = client.ID
		inv.ClientName = client.CompanyName
	}
	if input.InvoiceDate != nil {
		inv.InvoiceDate = dateOnly(*input.InvoiceDate)
	}
	if input.DueDate != nil {
		inv.DueDate = dateOnly(*input.DueDate)
	}
	if inv.DueDate.Before(inv.InvoiceDate) {
		return nil, domain.Validationf("due_date", "due date cannot be earlier than invoice date")
	}
	if input.ExcludeVAT != nil {
		inv.ExcludeVAT = *input.ExcludeVAT
	}
	if input.VATRate != nil {
		if err := domain.ValidateVATRate(*input.VATRate); err != nil {
			return nil, err
		}
		inv.VATRate = *input.VATRate
	}
	if input.Notes != nil {
		inv.Notes = *input.Notes
	}
	if input.IssuedBy != nil {
		inv.IssuedBy = *input.IssuedBy
	}
	if input.ReceivedBy != nil {
		inv.ReceivedBy = *input.ReceivedBy
	}
	if input.Items != nil {
		items, err := buildItems(*input.Items)
		if err != nil {
			return nil, err
		}
		inv.Items = items
	}

	if err := s.finalize(inv); err != nil {
		return nil, err
	}

	err = s.txRunner.RunInvoiceTx(ctx, func(_ port.SeriesRepository, invoiceTx port.InvoiceRepository) error {
		return invoiceTx.Update(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv.Immutable() {
		return domain.ErrInvoiceImmutable
	}
	return s.invoiceRepo.Delete(ctx, id)
}

func (s *invoiceService) ChangeStatus(ctx context.Context, id uuid.UUID, target domain.InvoiceStatus) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := inv.Transition(target); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.UpdateStatus(ctx, id, inv.Status); err != nil {
		return nil, err
	}
	log.Printf("invoiceService.ChangeStatus: %s is now %s", inv.FullNumber, inv.Status)
	return inv, nil
}

func (s *invoiceService) Duplicate(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	original, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	series, err := s.seriesRepo.GetByID(ctx, original.SeriesID)
	if err != nil {
		return nil, err
	}
	if !series.IsActive {
		return nil, domain.Validationf("series_id", "series %q is not active", series.SeriesCode)
	}

	today := dateOnly(time.Now())
	span := original.DueDate.Sub(original.InvoiceDate)

	dup := &domain.Invoice{
		ID:          uuid.New(),
		SeriesID:    original.SeriesID,
		SeriesCode:  series.SeriesCode,
		ClientID:    original.ClientID,
		ClientName:  original.ClientName,
		InvoiceDate: today,
		DueDate:     today.Add(span),
		Status:      domain.StatusDraft,
		ExcludeVAT:  original.ExcludeVAT,
		VATRate:     original.VATRate,
		Notes:       original.Notes,
		IssuedBy:    original.IssuedBy,
		ReceivedBy:  original.ReceivedBy,
		Items:       make([]domain.InvoiceItem, len(original.Items)),
	}
	for i, it := range original.Items {
		dup.Items[i] = domain.InvoiceItem{
			ID:              uuid.New(),
			Description:     it.Description,
			Quantity:        it.Quantity,
			Unit:            it.Unit,
			UnitPrice:       it.UnitPrice,
			DiscountPercent: it.DiscountPercent,
			SortOrder:       it.SortOrder,
		}
	}
	if err := s.finalize(dup); err != nil {
		return nil, err
	}

	err = s.txRunner.RunInvoiceTx(ctx, func(seriesTx port.SeriesRepository, invoiceTx port.InvoiceRepository) error {
		number, err := seriesTx.Allocate(ctx, dup.SeriesID)
		if err != nil {
			return err
		}
		dup.InvoiceNumber = number
		dup.FullNumber = domain.FormatFullNumber(series.SeriesCode, number)
		return invoiceTx.Create(ctx, dup)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("invoiceService.Duplicate: %s duplicated as %s", original.FullNumber, dup.FullNumber)
	return dup, nil
}

func (s *invoiceService) PreviewNextNumber(ctx context.Context, seriesID uuid.UUID) (*NextNumberPreview, error) {
	series, err := s.seriesRepo.GetByID(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	next := series.PeekNextNumber()
	return &NextNumberPreview{
		SeriesCode: series.SeriesCode,
		NextNumber: next,
		FullNumber: domain.FormatFullNumber(series.SeriesCode, next),
	}, nil
}

func (s *invoiceService) RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	doc, err := s.buildDocument(ctx, inv)
	if err != nil {
		return nil, "", err
	}
	pdf, err := s.pdfGen.Generate(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("rendering invoice %s: %w", inv.FullNumber, err)
	}
	return pdf, fmt.Sprintf("invoice-%s.pdf", inv.FullNumber), nil
}

func (s *invoiceService) Send(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	client, err := s.clientRepo.GetByID(ctx, inv.ClientID)
	if err != nil {
		return nil, err
	}
	if client.Email == "" {
		return nil, domain.Validationf("email", "client %s has no email address", client.CompanyName)
	}

	doc, err := s.buildDocument(ctx, inv)
	if err != nil {
		return nil, err
	}
	pdf, err := s.pdfGen.Generate(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("rendering invoice %s: %w", inv.FullNumber, err)
	}

	subject := fmt.Sprintf("Invoice %s", inv.FullNumber)
	body := fmt.Sprintf("Please find attached invoice %s for %s, due on %s.",
		inv.FullNumber, inv.Total.StringFixed(domain.MoneyScale), inv.DueDate.Format("2006-01-02"))
	filename := fmt.Sprintf("invoice-%s.pdf", inv.FullNumber)
	if err := s.email.SendInvoice(ctx, client.Email, client.CompanyName, subject, body, pdf, filename); err != nil {
		return nil, fmt.Errorf("sending invoice %s: %w", inv.FullNumber, err)
	}

	// Sending a draft moves it through the lifecycle; re-sending an
	// already-sent or overdue invoice leaves the status alone.
	if inv.Status == domain.StatusDraft {
		if err := inv.Transition(domain.StatusSent); err != nil {
			return nil, err
		}
		if err := s.invoiceRepo.UpdateStatus(ctx, inv.ID, inv.Status); err != nil {
			return nil, err
		}
	}

	log.Printf("invoiceService.Send: %s emailed to %s", inv.FullNumber, client.Email)
	return inv, nil
}

func (s *invoiceService) buildDocument(ctx context.Context, inv *domain.Invoice) (*domain.InvoiceDocument, error) {
	company, err := s.companyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	client, err := s.clientRepo.GetByID(ctx, inv.ClientID)
	if err != nil {
		return nil, err
	}
	bank, err := s.companyRepo.DefaultBankAccount(ctx)
	if err != nil && !errors.Is(err, domain.ErrBankAccountNotFound) {
		return nil, err
	}
	return &domain.InvoiceDocument{
		Invoice:     inv,
		Seller:      company,
		BankAccount: bank,
		Buyer:       client,
	}, nil
}

// RefreshOverdue re-derives the overdue status for unpaid invoices past
// their due date. Safe to run concurrently and repeatedly.
func (s *invoiceService) RefreshOverdue(ctx context.Context) (int64, error) {
	return s.invoiceRepo.MarkOverdue(ctx, dateOnly(time.Now()))
}

// RenderAmountInWords spells out a monetary total in Lithuanian.
func (s *invoiceService) RenderAmountInWords(amount decimal.Decimal) (string, error) {
	rendered, err := words.Amount(amount)
	if err != nil {
		if errors.Is(err, words.ErrNegativeAmount) {
			return "", domain.Validationf("amount", "amount cannot be negative")
		}
		if errors.Is(err, words.ErrTooLarge) {
			return "", domain.Validationf("amount", "amount too large to spell out")
		}
		return "", err
	}
	return rendered, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
