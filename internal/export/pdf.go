package export

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"tharwa/internal/models"
	"tharwa/internal/money"
	"tharwa/internal/portfolio"
	"tharwa/internal/schedule"
)

// Column widths (mm) for the detail table on an A4 portrait page.
var detailWidths = []float64{38, 24, 14, 30, 24, 22, 18, 20}

var detailHeaders = []string{
	"Property", "Emirate", "Seq", "Milestone", "Amount", "Due Date", "Status", "Paid",
}

// Report builds the printable portfolio report: a title block, a
// summary table, and an installment detail table. gofpdf's auto page
// break starts a new page whenever a row would overflow; the detail
// header is repeated on each new page.
func Report(title, subject, periodLabel string, summary portfolio.Summary, investments []models.Investment, now, generatedAt time.Time) (*gofpdf.Fpdf, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Title block
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, subject, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, periodLabel, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Generated "+generatedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Summary table
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, "Portfolio Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	summaryRows := [][2]string{
		{"Total Investment", money.Format(summary.TotalInvestment)},
		{"Total Paid", money.Format(summary.TotalPaid)},
		{"Total Pending", money.Format(summary.TotalPending)},
		{"Total Overdue", money.Format(summary.TotalOverdue)},
		{"Percentage Collected", fmt.Sprintf("%.1f%%", summary.PercentageCollected)},
	}
	for _, row := range summaryRows {
		pdf.CellFormat(60, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// Detail table
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, "Installment Detail", "", 1, "L", false, 0, "")
	writeDetailHeader(pdf)
	pdf.SetFont("Helvetica", "", 8)

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottomMargin := pdf.GetMargins()
	for i := range investments {
		inv := &investments[i]
		for j := range inv.Installments {
			inst := &inv.Installments[j]
			if pdf.GetY()+7 > pageHeight-bottomMargin {
				pdf.AddPage()
				writeDetailHeader(pdf)
				pdf.SetFont("Helvetica", "", 8)
			}
			writeDetailRow(pdf, inv, inst, now)
		}
	}

	if pdf.Err() {
		return nil, pdf.Error()
	}
	return pdf, nil
}

func writeDetailHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 8)
	for i, h := range detailHeaders {
		pdf.CellFormat(detailWidths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
}

func writeDetailRow(pdf *gofpdf.Fpdf, inv *models.Investment, inst *models.Installment, now time.Time) {
	dueDate := "TBD"
	if inst.DueDate != nil {
		dueDate = inst.DueDate.Format(dateLayout)
	}
	paid := ""
	if inst.PaidAmount != nil {
		paid = money.Format(*inst.PaidAmount)
	} else if inst.Status == models.InstallmentStatusPaid {
		paid = money.Format(inst.Amount)
	}

	cells := []string{
		inv.Property.Name,
		inv.Property.Emirate,
		fmt.Sprintf("%d", inst.SequenceNumber),
		inst.Milestone,
		money.Format(inst.Amount),
		dueDate,
		string(schedule.EffectiveStatus(inst, now)),
		paid,
	}
	for i, c := range cells {
		pdf.CellFormat(detailWidths[i], 7, c, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}
