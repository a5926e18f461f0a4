package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Monetary values are stored with 2 decimal places, quantities with 3.
// Line totals are carried at full precision during summation; only the
// final aggregates are rounded (half away from zero).
const (
	MoneyScale    = 2
	QuantityScale = 3
)

var (
	oneHundred = decimal.NewFromInt(100)
	maxPercent = decimal.NewFromInt(100)
	maxVATRate = decimal.NewFromInt(1)
)

// DefaultUnit is used when an item does not specify a measurement unit.
const DefaultUnit = "vnt"

// GrossTotal returns quantity × unit price at full precision.
func (it *InvoiceItem) GrossTotal() decimal.Decimal {
	return it.Quantity.Mul(it.UnitPrice)
}

// DiscountValue returns the discount portion of the gross total.
func (it *InvoiceItem) DiscountValue() decimal.Decimal {
	return it.GrossTotal().Mul(it.DiscountPercent.Div(oneHundred))
}

// LineTotal returns the net amount for the line: gross minus discount.
func (it *InvoiceItem) LineTotal() decimal.Decimal {
	return it.GrossTotal().Sub(it.DiscountValue())
}

// ValidateItem checks an item supplied by a caller. Out-of-range values are
// rejected, never clamped.
func ValidateItem(it *InvoiceItem) error {
	if strings.TrimSpace(it.Description) == "" {
		return Validationf("description", "item description is required")
	}
	if it.Quantity.IsNegative() {
		return Validationf("quantity", "must be non-negative")
	}
	if it.UnitPrice.IsNegative() {
		return Validationf("unit_price", "must be non-negative")
	}
	if it.DiscountPercent.IsNegative() || it.DiscountPercent.GreaterThan(maxPercent) {
		return Validationf("discount_percent", "must be between 0 and 100")
	}
	return nil
}

// ValidateVATRate checks a VAT rate expressed as a ratio (0.21 = 21%).
func ValidateVATRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(maxVATRate) {
		return Validationf("vat_rate", "must be a ratio between 0 and 1")
	}
	return nil
}

// Totals holds the aggregate monetary figures of an invoice, rounded to
// MoneyScale. Total always equals Subtotal + VAT exactly.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	VAT      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals sums the items into invoice totals. Summation runs at full
// per-line precision; rounding happens once, on the aggregates. VAT is
// computed from the unrounded subtotal, so a 0.21 rate on 24.50 yields
// 5.145 → 5.15. The result is identical for any item order and for repeated
// calls over unchanged items.
func ComputeTotals(items []InvoiceItem, vatRate decimal.Decimal, excludeVAT bool) Totals {
	var gross, net decimal.Decimal
	for i := range items {
		gross = gross.Add(items[i].GrossTotal())
		net = net.Add(items[i].LineTotal())
	}

	discount := gross.Sub(net)
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	vat := decimal.Zero
	if !excludeVAT {
		vat = net.Mul(vatRate)
		if vat.IsNegative() {
			vat = decimal.Zero
		}
	}

	subtotal := net.Round(MoneyScale)
	vat = vat.Round(MoneyScale)
	return Totals{
		Subtotal: subtotal,
		Discount: discount.Round(MoneyScale),
		VAT:      vat,
		Total:    subtotal.Add(vat),
	}
}

// Recalculate recomputes the invoice's stored totals from its current items
// using its stored VAT settings. It must run after every item mutation;
// persisting an invoice without it is a bug.
func (inv *Invoice) Recalculate() {
	t := ComputeTotals(inv.Items, inv.VATRate, inv.ExcludeVAT)
	inv.Subtotal = t.Subtotal
	inv.DiscountAmount = t.Discount
	inv.VATAmount = t.VAT
	inv.Total = t.Total
}
