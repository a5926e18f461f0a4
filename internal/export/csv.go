// Package export renders invoice registers as CSV and XLSX downloads.
package export

import (
	"encoding/csv"
	"io"
	"time"

	"faktura/internal/domain"
)

// BOM is the UTF-8 byte order mark, written ahead of CSV output so Excel on
// Windows decodes Lithuanian characters correctly.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var csvColumns = []string{
	"Number",
	"Series",
	"Client",
	"Invoice Date",
	"Due Date",
	"Status",
	"Subtotal",
	"Discount",
	"VAT",
	"Total",
	"Created At",
}

// CSVWriter wraps csv.Writer for exporting the invoice register.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(csvColumns)
}

// WriteInvoices converts a batch of invoices to CSV rows and writes them.
func (w *CSVWriter) WriteInvoices(invoices []domain.Invoice) error {
	for i := range invoices {
		if err := w.csv.Write(invoiceToRow(&invoices[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

func invoiceToRow(inv *domain.Invoice) []string {
	return []string{
		inv.FullNumber,
		inv.SeriesCode,
		inv.ClientName,
		inv.InvoiceDate.Format("2006-01-02"),
		inv.DueDate.Format("2006-01-02"),
		string(inv.Status),
		inv.Subtotal.StringFixed(domain.MoneyScale),
		inv.DiscountAmount.StringFixed(domain.MoneyScale),
		inv.VATAmount.StringFixed(domain.MoneyScale),
		inv.Total.StringFixed(domain.MoneyScale),
		inv.CreatedAt.Format(time.RFC3339),
	}
}
