package service_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"faktura/internal/config"
	"faktura/internal/domain"
	"faktura/internal/port"
	"faktura/internal/service"
	"faktura/mocks"
)

type invoiceServiceMocks struct {
	invoiceRepo *mocks.MockInvoiceRepo
	clientRepo  *mocks.MockClientRepo
	seriesRepo  *mocks.MockSeriesRepo
	companyRepo *mocks.MockCompanyRepo
	txRunner    *mocks.MockTxRunner
	pdfGen      *mocks.MockPDFGenerator
	email       *mocks.MockEmailSender
}

func setupInvoiceService() (*invoiceServiceMocks, service.InvoiceService) {
	m := &invoiceServiceMocks{
		invoiceRepo: new(mocks.MockInvoiceRepo),
		clientRepo:  new(mocks.MockClientRepo),
		seriesRepo:  new(mocks.MockSeriesRepo),
		companyRepo: new(mocks.MockCompanyRepo),
		pdfGen:      new(mocks.MockPDFGenerator),
		email:       new(mocks.MockEmailSender),
	}
	// The tx runner hands the same mocks back inside the transaction.
	txInvoiceRepo := new(mocks.MockInvoiceRepo)
	m.txRunner = &mocks.MockTxRunner{SeriesRepo: m.seriesRepo, InvoiceRepo: txInvoiceRepo}

	cfg := config.InvoiceConfig{
		DefaultVATRate: 0.21,
		DefaultDueDays: 14,
	}
	svc := service.NewInvoiceService(m.invoiceRepo, m.clientRepo, m.seriesRepo, m.companyRepo, m.txRunner, m.pdfGen, m.email, cfg)
	return m, svc
}

func mustDec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testClient() *domain.Client {
	return &domain.Client{
		ID:          uuid.New(),
		CompanyName: "UAB Testas",
		Email:       "info@testas.lt",
	}
}

func testSeries() *domain.InvoiceSeries {
	return &domain.InvoiceSeries{
		ID:            uuid.New(),
		SeriesCode:    "INV",
		CurrentNumber: 5,
		IsActive:      true,
	}
}

func TestCreateInvoice(t *testing.T) {
	m, svc := setupInvoiceService()
	client := testClient()
	series := testSeries()
	price := mustDec("24.50")

	m.clientRepo.On("GetByID", mock.Anything, client.ID).Return(client, nil)
	m.seriesRepo.On("GetByID", mock.Anything, series.ID).Return(series, nil)
	m.txRunner.On("RunInvoiceTx", mock.Anything).Return(nil)
	m.seriesRepo.On("Allocate", mock.Anything, series.ID).Return(int64(6), nil)
	m.txRunner.InvoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	inv, err := svc.Create(context.Background(), &service.CreateInvoiceInput{
		ClientID: client.ID,
		SeriesID: series.ID,
		Items: []service.InvoiceItemInput{
			{Description: "Consulting", UnitPrice: &price},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(6), inv.InvoiceNumber)
	assert.Equal(t, "INV 6", inv.FullNumber)
	assert.Equal(t, domain.StatusDraft, inv.Status)
	assert.Equal(t, client.CompanyName, inv.ClientName)

	assert.True(t, inv.Subtotal.Equal(mustDec("24.50")), "subtotal %s", inv.Subtotal)
	assert.True(t, inv.VATAmount.Equal(mustDec("5.15")), "vat %s", inv.VATAmount)
	assert.True(t, inv.Total.Equal(mustDec("29.65")), "total %s", inv.Total)
	assert.Equal(t, "dvidešimt devyni EUR ir šešiasdešimt penki ct", inv.TotalInWords)

	// Omitted dates default to today and today plus the configured term.
	assert.Equal(t, inv.InvoiceDate.AddDate(0, 0, 14), inv.DueDate)

	// Omitted item fields take defaults.
	require.Len(t, inv.Items, 1)
	assert.True(t, inv.Items[0].Quantity.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, domain.DefaultUnit, inv.Items[0].Unit)

	m.txRunner.InvoiceRepo.AssertExpectations(t)
}

func TestCreateInvoice_InactiveSeries(t *testing.T) {
	m, svc := setupInvoiceService()
	client := testClient()
	series := testSeries()
	series.IsActive = false

	m.clientRepo.On("GetByID", mock.Anything, client.ID).Return(client, nil)
	m.seriesRepo.On("GetByID", mock.Anything, series.ID).Return(series, nil)

	_, err := svc.Create(context.Background(), &service.CreateInvoiceInput{
		ClientID: client.ID,
		SeriesID: series.ID,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	m.seriesRepo.AssertNotCalled(t, "Allocate", mock.Anything, mock.Anything)
}

func TestCreateInvoice_UnknownClient(t *testing.T) {
	m, svc := setupInvoiceService()
	clientID := uuid.New()

	m.clientRepo.On("GetByID", mock.Anything, clientID).Return(nil, domain.ErrClientNotFound)

	_, err := svc.Create(context.Background(), &service.CreateInvoiceInput{
		ClientID: clientID,
		SeriesID: uuid.New(),
	})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestCreateInvoice_DueBeforeInvoiceDate(t *testing.T) {
	m, svc := setupInvoiceService()
	client := testClient()
	series := testSeries()

	m.clientRepo.On("GetByID", mock.Anything, client.ID).Return(client, nil)
	m.seriesRepo.On("GetByID", mock.Anything, series.ID).Return(series, nil)

	invoiceDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	dueDate := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), &service.CreateInvoiceInput{
		ClientID:    client.ID,
		SeriesID:    series.ID,
		InvoiceDate: &invoiceDate,
		DueDate:     &dueDate,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateInvoice_BadVATRate(t *testing.T) {
	m, svc := setupInvoiceService()
	client := testClient()
	series := testSeries()
	rate := mustDec("21")

	m.clientRepo.On("GetByID", mock.Anything, client.ID).Return(client, nil)
	m.seriesRepo.On("GetByID", mock.Anything, series.ID).Return(series, nil)

	_, err := svc.Create(context.Background(), &service.CreateInvoiceInput{
		ClientID: client.ID,
		SeriesID: series.ID,
		VATRate:  &rate,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestChangeStatus(t *testing.T) {
	m, svc := setupInvoiceService()
	inv := &domain.Invoice{ID: uuid.New(), FullNumber: "INV 6", Status: domain.StatusDraft}

	m.invoiceRepo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
	m.invoiceRepo.On("UpdateStatus", mock.Anything, inv.ID, domain.StatusSent).Return(nil)

	updated, err := svc.ChangeStatus(context.Background(), inv.ID, domain.StatusSent)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSent, updated.Status)
	m.invoiceRepo.AssertExpectations(t)
}

func TestChangeStatus_IllegalTransition(t *testing.T) {
	m, svc := setupInvoiceService()
	inv := &domain.Invoice{ID: uuid.New(), Status: domain.StatusPaid}

	m.invoiceRepo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)

	_, err := svc.ChangeStatus(context.Background(), inv.ID, domain.StatusSent)
	assert.ErrorIs(t, err, domain.ErrTransition)
	m.invoiceRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_PaidIsImmutable(t *testing.T) {
	m, svc := setupInvoiceService()
	inv := &domain.Invoice{ID: uuid.New(), Status: domain.StatusPaid}

	m.invoiceRepo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)

	notes := "updated"
	_, err := svc.Update(context.Background(), inv.ID, &service.UpdateInvoiceInput{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrInvoiceImmutable)
}

func TestUpdate_SeriesChangeRejected(t *testing.T) {
	m, svc := setupInvoiceService()
	inv := &domain.Invoice{
		ID:       uuid.New(),
		SeriesID: uuid.New(),
		Status:   domain.StatusDraft,
		VATRate:  mustDec("0.21"),
	}

	m.invoiceRepo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)

	otherSeries := uuid.New()
	_, err := svc.Update(context.Background(), inv.ID, &service.UpdateInvoiceInput{SeriesID: &otherSeries})
	assert.ErrorIs(t, err, domain.ErrSeriesChange)
}

func TestUpdate_RecomputesTotals(t *testing.T) {
	m, svc := setupInvoiceService()
	inv := &domain.Invoice{
		ID:          uuid.New(),
		SeriesID:    uuid.New(),
		Status:      domain.StatusDraft,
		InvoiceDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		VATRate:     mustDec("0.21"),
	}

	m.invoiceRepo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
	m.txRunner.On("RunInvoiceTx", mock.Anything).Return(nil)
	m.txRunner.InvoiceRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	price := mustDec("100.00")
	items := []service.InvoiceItemInput{{Description: "Hosting", UnitPrice: &price}}
	updated, err := svc.Update(context.Background(), inv.ID, &service.UpdateInvoiceInput{Items: &items})
	require.NoError(t, err)

	assert.True(t, updated.Subtotal.Equal(mustDec("100.00")))
	assert.True(t, updated.VATAmount.Equal(mustDec("21.00")))
	assert.True(t, updated.Total.Equal(mustDec("121.00")))
	assert.NotEmpty(t, updated.TotalInWords)
}

func TestDelete_PaidRejected(t *testing.T) {
	m, svc := setupInvoiceService()
	inv := &domain.Invoice{ID: uuid.New(), Status: domain.StatusPaid}

	m.invoiceRepo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)

	err := svc.Delete(context.Background(), inv.ID)
	assert.ErrorIs(t, err, domain.ErrInvoiceImmutable)
	m.invoiceRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDuplicate(t *testing.T) {
	m, svc := setupInvoiceService()
	series := testSeries()
	price := mustDec("24.50")
	original := &domain.Invoice{
		ID:          uuid.New(),
		SeriesID:    series.ID,
		SeriesCode:  series.SeriesCode,
		FullNumber:  "INV 3",
		ClientID:    uuid.New(),
		ClientName:  "UAB Testas",
		InvoiceDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:      domain.StatusPaid,
		VATRate:     mustDec("0.21"),
		Items: []domain.InvoiceItem{
			{ID: uuid.New(), Description: "Consulting", Quantity: decimal.NewFromInt(1), UnitPrice: price},
		},
	}

	m.invoiceRepo.On("GetByID", mock.Anything, original.ID).Return(original, nil)
	m.seriesRepo.On("GetByID", mock.Anything, series.ID).Return(series, nil)
	m.txRunner.On("RunInvoiceTx", mock.Anything).Return(nil)
	m.seriesRepo.On("Allocate", mock.Anything, series.ID).Return(int64(6), nil)
	m.txRunner.InvoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	dup, err := svc.Duplicate(context.Background(), original.ID)
	require.NoError(t, err)

	assert.NotEqual(t, original.ID, dup.ID)
	assert.Equal(t, "INV 6", dup.FullNumber)
	assert.Equal(t, domain.StatusDraft, dup.Status, "a copy always starts as a draft")

	// The copy is dated today and keeps the original's payment term span.
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	assert.Equal(t, today, dup.InvoiceDate)
	assert.Equal(t, original.DueDate.Sub(original.InvoiceDate), dup.DueDate.Sub(dup.InvoiceDate))

	require.Len(t, dup.Items, 1)
	assert.NotEqual(t, original.Items[0].ID, dup.Items[0].ID)
	assert.Equal(t, original.Items[0].Description, dup.Items[0].Description)
	assert.True(t, dup.Total.Equal(mustDec("29.65")))
}

func TestDuplicate_InactiveSeries(t *testing.T) {
	m, svc := setupInvoiceService()
	series := testSeries()
	series.IsActive = false
	original := &domain.Invoice{
		ID:         uuid.New(),
		SeriesID:   series.ID,
		SeriesCode: series.SeriesCode,
		FullNumber: "INV 3",
	}

	m.invoiceRepo.On("GetByID", mock.Anything, original.ID).Return(original, nil)
	m.seriesRepo.On("GetByID", mock.Anything, series.ID).Return(series, nil)

	_, err := svc.Duplicate(context.Background(), original.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
	m.seriesRepo.AssertNotCalled(t, "Allocate", mock.Anything, mock.Anything)
}

func TestPreviewNextNumber(t *testing.T) {
	m, svc := setupInvoiceService()
	series := testSeries()

	m.seriesRepo.On("GetByID", mock.Anything, series.ID).Return(series, nil)

	preview, err := svc.PreviewNextNumber(context.Background(), series.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(6), preview.NextNumber)
	assert.Equal(t, "INV 6", preview.FullNumber)
	assert.Equal(t, "INV", preview.SeriesCode)

	// Previewing must not consume a number.
	m.seriesRepo.AssertNotCalled(t, "Allocate", mock.Anything, mock.Anything)
}

func TestList_RefreshesOverdueFirst(t *testing.T) {
	m, svc := setupInvoiceService()

	m.invoiceRepo.On("MarkOverdue", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(2), nil)
	m.invoiceRepo.On("List", mock.Anything, mock.AnythingOfType("*domain.InvoiceFilter")).
		Return([]domain.Invoice{{FullNumber: "INV 1"}}, 1, nil)
	m.invoiceRepo.On("Summary", mock.Anything, mock.AnythingOfType("*domain.InvoiceFilter")).
		Return(&domain.InvoiceSummary{InvoiceCount: 1}, nil)

	result, err := svc.List(context.Background(), &domain.InvoiceFilter{Limit: 20})
	require.NoError(t, err)

	assert.Len(t, result.Invoices, 1)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Summary.InvoiceCount)
	m.invoiceRepo.AssertCalled(t, "MarkOverdue", mock.Anything, mock.AnythingOfType("time.Time"))
}

func TestList_BadSortKey(t *testing.T) {
	m, svc := setupInvoiceService()

	m.invoiceRepo.On("MarkOverdue", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(0), nil)

	_, err := svc.List(context.Background(), &domain.InvoiceFilter{SortBy: "color"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestList_AscendingOrderSurvivesSortKeyDefault(t *testing.T) {
	m, svc := setupInvoiceService()

	m.invoiceRepo.On("MarkOverdue", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(0), nil)
	m.invoiceRepo.On("List", mock.Anything, mock.AnythingOfType("*domain.InvoiceFilter")).
		Return([]domain.Invoice{}, 0, nil)
	m.invoiceRepo.On("Summary", mock.Anything, mock.AnythingOfType("*domain.InvoiceFilter")).
		Return(&domain.InvoiceSummary{}, nil)

	// order=asc with sort_by omitted.
	f := &domain.InvoiceFilter{Descending: false, Limit: 20}
	_, err := svc.List(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, domain.SortByDate, f.SortBy)
	assert.False(t, f.Descending, "explicit ascending order must not be overwritten")
}

// countingAllocator hands out consecutive numbers the way the atomic counter
// update does in the database. It is only safe under serialTxRunner's lock.
type countingAllocator struct {
	mocks.MockSeriesRepo
	current int64
}

func (a *countingAllocator) Allocate(ctx context.Context, id uuid.UUID) (int64, error) {
	a.current++
	return a.current, nil
}

type collectingInvoiceRepo struct {
	mocks.MockInvoiceRepo
	issued []int64
}

func (r *collectingInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	r.issued = append(r.issued, inv.InvoiceNumber)
	return nil
}

// serialTxRunner serializes transactions the way the row lock on the series
// counter does in Postgres.
type serialTxRunner struct {
	mu       sync.Mutex
	series   port.SeriesRepository
	invoices port.InvoiceRepository
}

func (r *serialTxRunner) RunInvoiceTx(ctx context.Context, fn func(series port.SeriesRepository, invoices port.InvoiceRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.series, r.invoices)
}

func TestCreateInvoice_ConcurrentNumbering(t *testing.T) {
	client := testClient()
	series := testSeries()

	clientRepo := new(mocks.MockClientRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	clientRepo.On("GetByID", mock.Anything, client.ID).Return(client, nil)
	seriesRepo.On("GetByID", mock.Anything, series.ID).Return(series, nil)

	allocator := &countingAllocator{current: series.CurrentNumber}
	sink := &collectingInvoiceRepo{}
	runner := &serialTxRunner{series: allocator, invoices: sink}

	svc := service.NewInvoiceService(
		new(mocks.MockInvoiceRepo), clientRepo, seriesRepo, new(mocks.MockCompanyRepo),
		runner, new(mocks.MockPDFGenerator), new(mocks.MockEmailSender),
		config.InvoiceConfig{DefaultVATRate: 0.21, DefaultDueDays: 14},
	)

	const n = 25
	price := mustDec("10.00")
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), &service.CreateInvoiceInput{
				ClientID: client.ID,
				SeriesID: series.ID,
				Items:    []service.InvoiceItemInput{{Description: "Consulting", UnitPrice: &price}},
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Len(t, sink.issued, n)
	numbers := append([]int64(nil), sink.issued...)
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
	for i, num := range numbers {
		assert.Equal(t, series.CurrentNumber+int64(i+1), num, "numbers must be distinct and consecutive")
	}
}

func TestSend_DraftBecomesSent(t *testing.T) {
	m, svc := setupInvoiceService()
	client := testClient()
	inv := &domain.Invoice{
		ID:         uuid.New(),
		FullNumber: "INV 6",
		ClientID:   client.ID,
		Status:     domain.StatusDraft,
		DueDate:    time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Total:      mustDec("29.65"),
	}
	company := &domain.CompanyInfo{ID: uuid.New(), CompanyName: "UAB Faktura"}

	m.invoiceRepo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
	m.clientRepo.On("GetByID", mock.Anything, client.ID).Return(client, nil)
	m.companyRepo.On("Get", mock.Anything).Return(company, nil)
	m.companyRepo.On("DefaultBankAccount", mock.Anything).Return(nil, domain.ErrBankAccountNotFound)
	m.pdfGen.On("Generate", mock.Anything, mock.AnythingOfType("*domain.InvoiceDocument")).Return([]byte("%PDF"), nil)
	m.email.On("SendInvoice", mock.Anything, client.Email, client.CompanyName,
		"Invoice INV 6", mock.AnythingOfType("string"), []byte("%PDF"), "invoice-INV 6.pdf").Return(nil)
	m.invoiceRepo.On("UpdateStatus", mock.Anything, inv.ID, domain.StatusSent).Return(nil)

	sent, err := svc.Send(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSent, sent.Status)
	m.email.AssertExpectations(t)
	m.invoiceRepo.AssertExpectations(t)
}

func TestSend_ClientWithoutEmail(t *testing.T) {
	m, svc := setupInvoiceService()
	client := testClient()
	client.Email = ""
	inv := &domain.Invoice{ID: uuid.New(), ClientID: client.ID, Status: domain.StatusDraft}

	m.invoiceRepo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
	m.clientRepo.On("GetByID", mock.Anything, client.ID).Return(client, nil)

	_, err := svc.Send(context.Background(), inv.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
	m.email.AssertNotCalled(t, "SendInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRenderAmountInWords(t *testing.T) {
	_, svc := setupInvoiceService()

	got, err := svc.RenderAmountInWords(mustDec("1234.56"))
	require.NoError(t, err)
	assert.Equal(t, "vienas tūkstantis du šimtai trisdešimt keturi EUR ir penkiasdešimt šeši ct", got)

	_, err = svc.RenderAmountInWords(mustDec("-1"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}
