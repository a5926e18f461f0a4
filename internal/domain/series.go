package domain

import "fmt"

// FormatFullNumber renders the canonical display number for an invoice,
// e.g. ("INV", 6) → "INV 6". Pure formatting; it never allocates.
func FormatFullNumber(seriesCode string, number int64) string {
	return fmt.Sprintf("%s %d", seriesCode, number)
}

// PeekNextNumber returns the number the next allocation would yield,
// without consuming it.
func (s *InvoiceSeries) PeekNextNumber() int64 {
	return s.CurrentNumber + 1
}
