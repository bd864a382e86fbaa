package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kagisom/bankrecon/internal/domain"
	"github.com/kagisom/bankrecon/pkg/fileutil"
)

// export column order kept stable for the downstream debtors team
var exportColumns = []string{"valueDate", "remittanceInfo", "reference", "amount", "creditDebitIndicator"}

// ExportTransactions writes an unfiltered transaction export as a timestamped
// xlsx workbook and returns the file path.
func (w *Writer) ExportTransactions(name string, txns []domain.Transaction, at time.Time) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for col, header := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", fmt.Errorf("building export header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return "", fmt.Errorf("writing export header: %w", err)
		}
	}

	for i, txn := range txns {
		values := []any{
			txn.ValueDate.Format("2006-01-02"),
			txn.RemittanceInfo,
			txn.Reference,
			txn.Amount.InexactFloat64(),
			string(txn.CreditDebit),
		}

		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return "", fmt.Errorf("building export cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return "", fmt.Errorf("writing export row: %w", err)
			}
		}
	}

	path := fileutil.ExportPath(w.OutputDir, name, at, "xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving transactions export: %w", err)
	}

	return path, nil
}
