package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dentassist/dentsync/internal/model"
)

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// TransactionsXLSX renders the clinic transaction ledger as a spreadsheet.
func TransactionsXLSX(txns []*model.FinancialTransaction) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Transactions"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := writeRow(f, sheet, 1, []interface{}{"Date", "Type", "Category", "Description", "Amount"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i, t := range txns {
		row := []interface{}{t.Date, string(t.Type), t.Category, t.Description, t.Amount}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}

// BillingXLSX renders billing entries across all patients, one row per entry.
func BillingXLSX(patients []*model.Patient) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Billing"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := writeRow(f, sheet, 1, []interface{}{"Patient", "Date", "Description", "Amount", "Status"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	row := 2
	for _, p := range patients {
		for _, e := range p.BillingEntries {
			values := []interface{}{p.Name, e.Date.Format("2006-01-02"), e.Description, e.Amount, string(e.Status)}
			if err := writeRow(f, sheet, row, values); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}
