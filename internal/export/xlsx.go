package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"faktura/internal/domain"
)

const xlsxSheet = "Invoices"

// WriteXLSX renders the invoice register as an XLSX workbook. Monetary
// columns carry float values so spreadsheet formulas keep working.
func WriteXLSX(w io.Writer, invoices []domain.Invoice) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return fmt.Errorf("xlsx: create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("xlsx: drop default sheet: %w", err)
	}

	for i, header := range csvColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(xlsxSheet, cell, header)
	}

	for i := range invoices {
		inv := &invoices[i]
		row := i + 2
		f.SetCellValue(xlsxSheet, fmt.Sprintf("A%d", row), inv.FullNumber)
		f.SetCellValue(xlsxSheet, fmt.Sprintf("B%d", row), inv.SeriesCode)
		f.SetCellValue(xlsxSheet, fmt.Sprintf("C%d", row), inv.ClientName)
		f.SetCellValue(xlsxSheet, fmt.Sprintf("D%d", row), inv.InvoiceDate.Format("2006-01-02"))
		f.SetCellValue(xlsxSheet, fmt.Sprintf("E%d", row), inv.DueDate.Format("2006-01-02"))
		f.SetCellValue(xlsxSheet, fmt.Sprintf("F%d", row), string(inv.Status))
		f.SetCellValue(xlsxSheet, fmt.Sprintf("G%d", row), inv.Subtotal.InexactFloat64())
		f.SetCellValue(xlsxSheet, fmt.Sprintf("H%d", row), inv.DiscountAmount.InexactFloat64())
		f.SetCellValue(xlsxSheet, fmt.Sprintf("I%d", row), inv.VATAmount.InexactFloat64())
		f.SetCellValue(xlsxSheet, fmt.Sprintf("J%d", row), inv.Total.InexactFloat64())
		f.SetCellValue(xlsxSheet, fmt.Sprintf("K%d", row), inv.CreatedAt.Format("2006-01-02 15:04"))
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write workbook: %w", err)
	}
	return nil
}
