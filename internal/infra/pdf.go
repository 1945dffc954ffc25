package infra

// pdf.go: Closing report rendering using go-pdf/fpdf.
// A4 portrait page with:
//   - Store name header and session window
//   - Totals block (gross, net of tax, tax, sale count)
//   - Per-employee table (id, name, sales, gross subtotal)
//
// The output file is saved to storagePath/session_{id}_report.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"cashdrawer/internal/dto"

	"github.com/go-pdf/fpdf"
)

const reportTimeLayout = "02/01/2006 15:04"

// RenderReportPDF writes the closing report of a drawer session to disk.
// storagePath is created if needed. Returns the path of the generated file.
func RenderReportPDF(report *dto.SessionReport, storeName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("session_%d_report.pdf", report.SessionID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr(storeName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Drawer session #%d", report.SessionID), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Session window ───────────────────────────────────────────────────────
	closed := "still open"
	if report.ClosedAt != nil {
		closed = report.ClosedAt.Format(reportTimeLayout)
	}
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, tr(fmt.Sprintf("Opened by: %s (#%d)", report.OpenedByName, report.OpenedBy)), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Opened at: "+report.OpenedAt.Format(reportTimeLayout), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Closed at: "+closed, "", 1, "L", false, 0, "")
	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Totals ───────────────────────────────────────────────────────────────
	labelW := contentW * 0.6
	valueW := contentW * 0.4
	totals := []struct{ label, value string }{
		{"Sales", fmt.Sprintf("%d", report.SaleCount)},
		{"Gross total", report.GrossTotal.StringFixed(2)},
		{"Net of tax", report.NetOfTaxTotal.StringFixed(2)},
		{"Tax", report.TaxTotal.StringFixed(2)},
	}
	for i, t := range totals {
		style := ""
		if i == 1 {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(labelW, 6, t.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 6, t.value, "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// ── Per employee ─────────────────────────────────────────────────────────
	col1 := contentW * 0.12
	col2 := contentW * 0.48
	col3 := contentW * 0.15
	col4 := contentW * 0.25

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "ID", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Employee", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Sales", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 6, "Gross", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	if len(report.PerEmployee) == 0 {
		pdf.CellFormat(contentW, 6, "No sales in this session.", "", 1, "L", false, 0, "")
	}
	for _, e := range report.PerEmployee {
		name := e.EmployeeName
		if len(name) > 40 {
			name = name[:39] + "..."
		}
		pdf.CellFormat(col1, 6, fmt.Sprintf("%d", e.EmployeeID), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, tr(name), "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, fmt.Sprintf("%d", e.SaleCount), "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 6, e.GrossSubtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
