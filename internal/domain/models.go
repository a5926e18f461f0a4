package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client represents a buyer or supplier in the client register.
type Client struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	CompanyName      string     `db:"company_name" json:"company_name"`
	RegistrationCode string     `db:"registration_code" json:"registration_code"`
	VATCode          string     `db:"vat_code" json:"vat_code"`
	Address          string     `db:"address" json:"address"`
	Phone            string     `db:"phone" json:"phone"`
	Email            string     `db:"email" json:"email"`
	ClientType       ClientType `db:"client_type" json:"client_type"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// CompanyInfo holds the seller details. There is at most one row.
type CompanyInfo struct {
	ID          uuid.UUID `db:"id" json:"id"`
	CompanyName string    `db:"company_name" json:"company_name"`
	TaxID       string    `db:"tax_id" json:"tax_id"`
	Address     string    `db:"address" json:"address"`
	Phone       string    `db:"phone" json:"phone"`
	Email       string    `db:"email" json:"email"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// BankAccount is a company bank account; exactly one may be the default.
type BankAccount struct {
	ID            uuid.UUID `db:"id" json:"id"`
	CompanyID     uuid.UUID `db:"company_id" json:"company_id"`
	BankName      string    `db:"bank_name" json:"bank_name"`
	AccountNumber string    `db:"account_number" json:"account_number"`
	IsDefault     bool      `db:"is_default" json:"is_default"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// InvoiceSeries is a named numbering stream invoices draw their numbers from.
// CurrentNumber only ever increases; the allocator owns all writes to it.
type InvoiceSeries struct {
	ID            uuid.UUID `db:"id" json:"id"`
	SeriesCode    string    `db:"series_code" json:"series_code"`
	Description   string    `db:"description" json:"description"`
	CurrentNumber int64     `db:"current_number" json:"current_number"`
	IsActive      bool      `db:"is_active" json:"is_active"`
}

// Invoice is the aggregate root: header fields plus an ordered item list.
// Stored totals are always derived from the items by Recalculate; they are
// never accepted from callers.
type Invoice struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	SeriesID       uuid.UUID       `db:"series_id" json:"series_id"`
	SeriesCode     string          `db:"series_code" json:"series_code"`
	InvoiceNumber  int64           `db:"invoice_number" json:"invoice_number"`
	FullNumber     string          `db:"full_number" json:"full_number"`
	ClientID       uuid.UUID       `db:"client_id" json:"client_id"`
	ClientName     string          `db:"client_name" json:"client_name"`
	InvoiceDate    time.Time       `db:"invoice_date" json:"invoice_date"`
	DueDate        time.Time       `db:"due_date" json:"due_date"`
	Status         InvoiceStatus   `db:"status" json:"status"`
	ExcludeVAT     bool            `db:"exclude_vat" json:"exclude_vat"`
	VATRate        decimal.Decimal `db:"vat_rate" json:"vat_rate"`
	Subtotal       decimal.Decimal `db:"subtotal" json:"subtotal"`
	DiscountAmount decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	VATAmount      decimal.Decimal `db:"vat_amount" json:"vat_amount"`
	Total          decimal.Decimal `db:"total" json:"total"`
	TotalInWords   string          `db:"total_in_words" json:"total_in_words"`
	Notes          string          `db:"notes" json:"notes"`
	IssuedBy       string          `db:"issued_by" json:"issued_by"`
	ReceivedBy     string          `db:"received_by" json:"received_by"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`

	Items []InvoiceItem `db:"-" json:"items"`
}

// InvoiceItem is one billable line, owned by exactly one invoice.
type InvoiceItem struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	InvoiceID       uuid.UUID       `db:"invoice_id" json:"invoice_id"`
	Description     string          `db:"description" json:"description"`
	Quantity        decimal.Decimal `db:"quantity" json:"quantity"`
	Unit            string          `db:"unit" json:"unit"`
	UnitPrice       decimal.Decimal `db:"unit_price" json:"unit_price"`
	DiscountPercent decimal.Decimal `db:"discount_percent" json:"discount_percent"`
	SortOrder       int             `db:"sort_order" json:"sort_order"`
}

// Setting is a free-form key/value configuration entry.
type Setting struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Key         string    `db:"key" json:"key"`
	Value       string    `db:"value" json:"value"`
	Description string    `db:"description" json:"description"`
}

// InvoiceSummary aggregates totals over a filtered invoice set.
type InvoiceSummary struct {
	InvoiceCount  int             `db:"invoice_count" json:"invoice_count"`
	TotalInvoiced decimal.Decimal `db:"total_invoiced" json:"total_invoiced"`
	TotalPaid     decimal.Decimal `db:"total_paid" json:"total_paid"`
	TotalUnpaid   decimal.Decimal `db:"-" json:"total_unpaid"`
}

// DashboardStats holds the headline figures for a year or a single month.
type DashboardStats struct {
	Year          int             `db:"-" json:"year"`
	Month         int             `db:"-" json:"month,omitempty"`
	TotalIssued   decimal.Decimal `db:"total_issued" json:"total_issued"`
	TotalReceived decimal.Decimal `db:"total_received" json:"total_received"`
	TotalUnpaid   decimal.Decimal `db:"total_unpaid" json:"total_unpaid"`
	InvoiceCount  int             `db:"invoice_count" json:"invoice_count"`
	PaidCount     int             `db:"paid_count" json:"paid_count"`
	UnpaidCount   int             `db:"unpaid_count" json:"unpaid_count"`
	OverdueCount  int             `db:"overdue_count" json:"overdue_count"`
}

// MonthlyRevenue is one month's slice of the revenue chart.
type MonthlyRevenue struct {
	Month         int             `db:"month" json:"month"`
	TotalIssued   decimal.Decimal `db:"total_issued" json:"total_issued"`
	TotalReceived decimal.Decimal `db:"total_received" json:"total_received"`
	TotalUnpaid   decimal.Decimal `db:"total_unpaid" json:"total_unpaid"`
	InvoiceCount  int             `db:"invoice_count" json:"invoice_count"`
}

// ClientStats aggregates invoicing history for a single client.
type ClientStats struct {
	InvoiceCount     int             `db:"invoice_count" json:"invoice_count"`
	PaidInvoiceCount int             `db:"paid_invoice_count" json:"paid_invoice_count"`
	OverdueCount     int             `db:"overdue_count" json:"overdue_count"`
	TotalInvoiced    decimal.Decimal `db:"total_invoiced" json:"total_invoiced"`
	TotalPaid        decimal.Decimal `db:"total_paid" json:"total_paid"`
	TotalUnpaid      decimal.Decimal `db:"-" json:"total_unpaid"`
}

// InvoiceDocument is the fully computed snapshot handed to the PDF renderer
// and the email sender. The renderer never recomputes anything.
type InvoiceDocument struct {
	Invoice     *Invoice
	Seller      *CompanyInfo
	BankAccount *BankAccount
	Buyer       *Client
}
