package report

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/kagisom/bankrecon/internal/domain"
)

// WriteBatchReport renders the tabular summary PDF for one posted batch and
// returns the file path.
func (w *Writer) WriteBatchReport(b domain.Batch, label string, txns []domain.Transaction, at time.Time) (string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	batchDate := at.Format("02Jan2006")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(200, 10, fmt.Sprintf("%s DEBTOR ACCOUNTS", label), "", 1, "C", false, 0, "")
	pdf.CellFormat(200, 10, fmt.Sprintf("TRANSACTION SUMMARY REPORT - %s", batchDate), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(200, 10, fmt.Sprintf("BATCH ID: %d", b.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(200, 10, "TOTAL AMOUNT: "+formatRand(b.Total), "", 1, "L", false, 0, "")
	pdf.CellFormat(200, 10, "TOTAL DISCOUNT: "+formatRand(b.Discount), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.CellFormat(40, 10, "TRANSACTION DATE", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 10, "REFERENCE", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 10, "AMOUNT", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 10, "DISCOUNT", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 10, "TOTAL", "1", 1, "C", false, 0, "")

	for _, txn := range txns {
		pdf.CellFormat(40, 8, txn.ValueDate.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, txn.Reference, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, txn.Amount.StringFixed(2), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, txn.Discount.StringFixed(2), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, txn.Total.StringFixed(2), "1", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, "END OF REPORT", "", 1, "C", false, 0, "")

	fileName := fmt.Sprintf("FNB %s Transactions BATCH %d_%s.pdf", label, b.ID, batchDate)
	path := filepath.Join(w.OutputDir, fileName)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("writing batch report PDF: %w", err)
	}

	return path, nil
}
