package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(qty, price, discount string) InvoiceItem {
	return InvoiceItem{
		Description:     "test item",
		Quantity:        dec(qty),
		UnitPrice:       dec(price),
		DiscountPercent: dec(discount),
	}
}

func TestLineTotal(t *testing.T) {
	it := item("2", "10.00", "0")
	assert.True(t, it.LineTotal().Equal(dec("20.00")), "got %s", it.LineTotal())

	discounted := item("2", "10.00", "25")
	assert.True(t, discounted.LineTotal().Equal(dec("15.00")), "got %s", discounted.LineTotal())

	free := item("3", "9.99", "100")
	assert.True(t, free.LineTotal().IsZero())
}

func TestComputeTotals_VATFromUnroundedSubtotal(t *testing.T) {
	// 24.50 × 0.21 = 5.145, which rounds to 5.15. Computing VAT from an
	// already-rounded subtotal would give the same here, but per-line VAT
	// rounding would not; this pins the single-rounding behavior.
	items := []InvoiceItem{item("1", "24.50", "0")}
	got := ComputeTotals(items, dec("0.21"), false)

	assert.True(t, got.Subtotal.Equal(dec("24.50")), "subtotal %s", got.Subtotal)
	assert.True(t, got.VAT.Equal(dec("5.15")), "vat %s", got.VAT)
	assert.True(t, got.Total.Equal(dec("29.65")), "total %s", got.Total)
	assert.True(t, got.Discount.IsZero())
}

func TestComputeTotals_TotalIsSubtotalPlusVAT(t *testing.T) {
	items := []InvoiceItem{
		item("0.333", "9.99", "0"),
		item("7", "1.11", "12.5"),
		item("2.5", "0.07", "33"),
	}
	got := ComputeTotals(items, dec("0.21"), false)
	assert.True(t, got.Total.Equal(got.Subtotal.Add(got.VAT)),
		"total %s != subtotal %s + vat %s", got.Total, got.Subtotal, got.VAT)
}

func TestComputeTotals_OrderIndependent(t *testing.T) {
	a := item("1.234", "5.67", "10")
	b := item("9", "0.99", "0")
	c := item("4", "12.50", "50")

	forward := ComputeTotals([]InvoiceItem{a, b, c}, dec("0.21"), false)
	reversed := ComputeTotals([]InvoiceItem{c, b, a}, dec("0.21"), false)

	assert.True(t, forward.Subtotal.Equal(reversed.Subtotal))
	assert.True(t, forward.VAT.Equal(reversed.VAT))
	assert.True(t, forward.Total.Equal(reversed.Total))
}

func TestComputeTotals_ExcludeVAT(t *testing.T) {
	items := []InvoiceItem{item("1", "100.00", "0")}
	got := ComputeTotals(items, dec("0.21"), true)

	assert.True(t, got.VAT.IsZero())
	assert.True(t, got.Total.Equal(dec("100.00")))
}

func TestComputeTotals_Discount(t *testing.T) {
	items := []InvoiceItem{item("2", "50.00", "10")}
	got := ComputeTotals(items, dec("0.21"), false)

	assert.True(t, got.Subtotal.Equal(dec("90.00")), "subtotal %s", got.Subtotal)
	assert.True(t, got.Discount.Equal(dec("10.00")), "discount %s", got.Discount)
	assert.True(t, got.VAT.Equal(dec("18.90")), "vat %s", got.VAT)
	assert.True(t, got.Total.Equal(dec("108.90")), "total %s", got.Total)
}

func TestComputeTotals_Empty(t *testing.T) {
	got := ComputeTotals(nil, dec("0.21"), false)
	assert.True(t, got.Subtotal.IsZero())
	assert.True(t, got.VAT.IsZero())
	assert.True(t, got.Total.IsZero())
}

func TestValidateItem(t *testing.T) {
	tests := []struct {
		name  string
		item  InvoiceItem
		field string
	}{
		{"empty description", InvoiceItem{Description: "  "}, "description"},
		{"negative quantity", item("-1", "5", "0"), "quantity"},
		{"negative price", item("1", "-5", "0"), "price"},
		{"discount over 100", item("1", "5", "101"), "discount"},
		{"negative discount", item("1", "5", "-1"), "discount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItem(&tt.item)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	valid := item("0", "0", "0")
	require.NoError(t, ValidateItem(&valid), "zero quantity and price are allowed")
}

func TestValidateVATRate(t *testing.T) {
	assert.NoError(t, ValidateVATRate(dec("0")))
	assert.NoError(t, ValidateVATRate(dec("0.21")))
	assert.NoError(t, ValidateVATRate(dec("1")))
	assert.ErrorIs(t, ValidateVATRate(dec("-0.01")), ErrValidation)
	assert.ErrorIs(t, ValidateVATRate(dec("1.01")), ErrValidation)
	assert.ErrorIs(t, ValidateVATRate(dec("21")), ErrValidation)
}

func TestRecalculate(t *testing.T) {
	inv := &Invoice{
		VATRate: dec("0.21"),
		Items:   []InvoiceItem{item("1", "24.50", "0")},
	}
	inv.Recalculate()

	assert.True(t, inv.Subtotal.Equal(dec("24.50")))
	assert.True(t, inv.VATAmount.Equal(dec("5.15")))
	assert.True(t, inv.Total.Equal(dec("29.65")))

	// Recalculating again over unchanged items is a no-op.
	inv.Recalculate()
	assert.True(t, inv.Total.Equal(dec("29.65")))
}
