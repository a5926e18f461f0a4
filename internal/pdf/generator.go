// Package pdf renders invoice documents with Maroto v2.
//
// A4 layout, top to bottom: seller block with the invoice number opposite,
// buyer block, the item table, right-aligned totals, the total spelled out
// in words, signature lines, and the bank details footer.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"faktura/internal/domain"
)

var (
	colorAccent = &props.Color{Red: 30, Green: 60, Blue: 110}
	colorMuted  = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Generator renders an InvoiceDocument into PDF bytes.
type Generator struct{}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator { return &Generator{} }

// Generate builds the PDF for a fully computed invoice snapshot.
func (g *Generator) Generate(_ context.Context, doc *domain.InvoiceDocument) ([]byte, error) {
	inv := doc.Invoice

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Sąskaita faktūra %s", inv.FullNumber), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorAccent, Thickness: 0.5}))
	m.AddRows(partyRow("PARDAVĖJAS / SELLER", sellerLines(doc.Seller)))
	m.AddRows(partyRow("PIRKĖJAS / BUYER", buyerLines(doc.Buyer)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorAccent, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range itemRows(inv.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorAccent, Thickness: 0.3}))
	m.AddRows(totalsRow(inv))
	m.AddRows(wordsRow(inv))
	m.AddRows(line.NewRow(2))
	m.AddRows(signatureRow(inv))

	if doc.BankAccount != nil {
		m.AddRows(line.NewRow(2))
		m.AddRows(line.NewRow(1, props.Line{Color: colorMuted, Thickness: 0.3}))
		m.AddRows(bankRow(doc.BankAccount))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return out.GetBytes(), nil
}

func headerRow(doc *domain.InvoiceDocument) core.Row {
	inv := doc.Invoice
	return row.New(20).Add(
		col.New(7).Add(
			text.New(doc.Seller.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorAccent, Top: 1,
			}),
			text.New("Įm. kodas: "+doc.Seller.TaxID, props.Text{
				Size: 9, Top: 9, Color: colorMuted,
			}),
		),
		col.New(5).Add(
			text.New("SĄSKAITA FAKTŪRA", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorAccent, Top: 1,
			}),
			text.New(inv.FullNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+inv.InvoiceDate.Format("2006-01-02"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorMuted,
			}),
			text.New("Apmokėti iki: "+inv.DueDate.Format("2006-01-02"), props.Text{
				Size: 8, Align: align.Right, Top: 18, Color: colorMuted,
			}),
		),
	)
}

func sellerLines(seller *domain.CompanyInfo) []string {
	return []string{
		seller.CompanyName,
		joinFields("Adresas: "+orDash(seller.Address), "Tel: "+orDash(seller.Phone), "El. paštas: "+orDash(seller.Email)),
	}
}

func buyerLines(buyer *domain.Client) []string {
	second := joinFields("Įm. kodas: " + orDash(buyer.RegistrationCode))
	if buyer.VATCode != "" {
		second = joinFields(second, "PVM kodas: "+buyer.VATCode)
	}
	second = joinFields(second, "Adresas: "+orDash(buyer.Address))
	return []string{buyer.CompanyName, second}
}

func partyRow(title string, lines []string) core.Row {
	components := []core.Component{
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorAccent, Top: 1,
		}),
		text.New(lines[0], props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		text.New(lines[1], props.Text{Size: 8, Top: 12, Color: colorMuted}),
	}
	return row.New(15).Add(col.New(12).Add(components...))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorAccent, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Nr.", 1, align.Center),
		h("Pavadinimas", 4, align.Left),
		h("Kiekis", 2, align.Right),
		h("Kaina", 2, align.Right),
		h("Nuolaida", 1, align.Right),
		h("Suma", 2, align.Right),
	)
}

func itemRows(items []domain.InvoiceItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for i, item := range items {
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", i+1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				item.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				item.Quantity.String()+" "+item.Unit,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				item.UnitPrice.StringFixed(domain.MoneyScale),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				item.DiscountPercent.String()+"%",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				item.LineTotal().StringFixed(domain.MoneyScale),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return rows
}

type totalLine struct {
	label string
	value string
	grand bool
}

func totalsRow(inv *domain.Invoice) core.Row {
	lines := []totalLine{
		{label: "Suma be PVM:", value: inv.Subtotal.StringFixed(domain.MoneyScale) + " EUR"},
	}
	if inv.DiscountAmount.IsPositive() {
		lines = append(lines, totalLine{
			label: "Nuolaida:",
			value: inv.DiscountAmount.StringFixed(domain.MoneyScale) + " EUR",
		})
	}
	if !inv.ExcludeVAT {
		lines = append(lines, totalLine{
			label: fmt.Sprintf("PVM (%s%%):", inv.VATRate.Mul(decimal.NewFromInt(100)).String()),
			value: inv.VATAmount.StringFixed(domain.MoneyScale) + " EUR",
		})
	}
	lines = append(lines, totalLine{
		label: "IŠ VISO:",
		value: inv.Total.StringFixed(domain.MoneyScale) + " EUR",
		grand: true,
	})

	labels := make([]core.Component, 0, len(lines))
	values := make([]core.Component, 0, len(lines))
	for i, l := range lines {
		top := float64(1 + i*6)
		size := 9.0
		var color *props.Color
		style := fontstyle.Bold
		if l.grand {
			size = 10
			color = colorAccent
		}
		labels = append(labels, text.New(l.label, props.Text{
			Style: style, Size: size, Align: align.Right, Right: 2, Top: top, Color: color,
		}))
		valueProps := props.Text{Size: size, Align: align.Right, Right: 1, Top: top, Color: color}
		if l.grand {
			valueProps.Style = fontstyle.Bold
		}
		values = append(values, text.New(l.value, valueProps))
	}

	return row.New(float64(4 + len(lines)*6)).Add(
		col.New(5),
		col.New(4).Add(labels...),
		col.New(3).Add(values...),
	)
}

func wordsRow(inv *domain.Invoice) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New("Suma žodžiais: "+inv.TotalInWords, props.Text{
				Style: fontstyle.Italic, Size: 8, Top: 2,
			}),
		),
	)
}

func signatureRow(inv *domain.Invoice) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New("Sąskaitą išrašė:", props.Text{Size: 8, Color: colorMuted, Top: 1}),
			text.New(orDash(inv.IssuedBy), props.Text{Size: 9, Top: 6}),
			text.New("________________________", props.Text{Size: 8, Top: 11, Color: colorMuted}),
		),
		col.New(6).Add(
			text.New("Sąskaitą priėmė:", props.Text{Size: 8, Color: colorMuted, Top: 1}),
			text.New(orDash(inv.ReceivedBy), props.Text{Size: 9, Top: 6}),
			text.New("________________________", props.Text{Size: 8, Top: 11, Color: colorMuted}),
		),
	)
}

func bankRow(account *domain.BankAccount) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("Mokėjimo rekvizitai", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorAccent, Top: 1,
			}),
			text.New(joinFields(account.BankName, "Sąsk. nr.: "+account.AccountNumber), props.Text{
				Size: 8, Top: 6, Color: colorMuted,
			}),
		),
	)
}

func joinFields(fields ...string) string {
	joined := ""
	for _, f := range fields {
		if f == "" {
			continue
		}
		if joined != "" {
			joined += "   |   "
		}
		joined += f
	}
	return joined
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
