// Package export renders aggregated portfolio data into downloadable
// documents: a multi-sheet xlsx workbook and a paginated PDF report.
// Column order and header names are a frozen contract; downstream
// spreadsheets key on them, so changes here are breaking.
package export

import (
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"tharwa/internal/models"
	"tharwa/internal/money"
	"tharwa/internal/portfolio"
	"tharwa/internal/schedule"
)

// Sheet names of the workbook.
const (
	SheetSummary        = "Summary"
	SheetByEmirate      = "By Emirate"
	SheetAllInvestments = "All Investments"
	SheetOverdue        = "Overdue"
)

// Frozen header rows. Golden-tested; do not reorder or rename.
var (
	ByEmirateHeaders = []string{"Emirate", "Investments", "Value (AED)"}

	InvestmentHeaders = []string{
		"Property", "Emirate", "Developer", "Installment", "Milestone",
		"Percentage", "Amount (AED)", "Due Date", "Status",
		"Paid Date", "Paid Amount (AED)", "Method", "Reference",
	}
)

const dateLayout = "2006-01-02"

// Workbook builds the portfolio workbook: a Summary sheet of key/value
// pairs, a By Emirate rollup, the full installment detail, and the
// overdue subset. Currency cells carry pre-formatted display strings.
func Workbook(summary portfolio.Summary, investments []models.Investment, now time.Time) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeSummarySheet(f, summary); err != nil {
		return nil, err
	}
	if err := writeByEmirateSheet(f, summary); err != nil {
		return nil, err
	}
	if err := writeInvestmentSheet(f, SheetAllInvestments, investments, now, false); err != nil {
		return nil, err
	}
	if err := writeInvestmentSheet(f, SheetOverdue, investments, now, true); err != nil {
		return nil, err
	}

	// Drop the default workbook sheet.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	idx, err := f.GetSheetIndex(SheetSummary)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	return f, nil
}

func writeSummarySheet(f *excelize.File, summary portfolio.Summary) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Investments", summary.InvestmentCount},
		{"Total Investment", money.Format(summary.TotalInvestment)},
		{"Total Paid", money.Format(summary.TotalPaid)},
		{"Total Pending", money.Format(summary.TotalPending)},
		{"Total Overdue", money.Format(summary.TotalOverdue)},
		{"Percentage Collected", fmt.Sprintf("%.1f%%", summary.PercentageCollected)},
		{"Paid Installments", summary.PaidCount},
		{"Pending Installments", summary.PendingCount},
		{"Overdue Installments", summary.OverdueCount},
	}
	for i, row := range rows {
		if err := setRow(f, SheetSummary, i+1, row); err != nil {
			return err
		}
	}
	return nil
}

func writeByEmirateSheet(f *excelize.File, summary portfolio.Summary) error {
	if _, err := f.NewSheet(SheetByEmirate); err != nil {
		return err
	}
	if err := setRow(f, SheetByEmirate, 1, toRow(ByEmirateHeaders)); err != nil {
		return err
	}

	// Map iteration order is random; sort keys for a stable document.
	keys := make([]string, 0, len(summary.ByEmirate))
	for k := range summary.ByEmirate {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, k := range keys {
		g := summary.ByEmirate[k]
		row := []interface{}{k, g.Count, money.Format(g.Value)}
		if err := setRow(f, SheetByEmirate, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeInvestmentSheet(f *excelize.File, sheet string, investments []models.Investment, now time.Time, overdueOnly bool) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, toRow(InvestmentHeaders)); err != nil {
		return err
	}

	rowNum := 2
	for i := range investments {
		inv := &investments[i]
		for j := range inv.Installments {
			inst := &inv.Installments[j]
			status := schedule.EffectiveStatus(inst, now)
			if overdueOnly && status != models.InstallmentStatusOverdue {
				continue
			}
			if err := setRow(f, sheet, rowNum, installmentRow(inv, inst, status)); err != nil {
				return err
			}
			rowNum++
		}
	}
	return nil
}

func installmentRow(inv *models.Investment, inst *models.Installment, status models.InstallmentStatus) []interface{} {
	dueDate := ""
	if inst.DueDate != nil {
		dueDate = inst.DueDate.Format(dateLayout)
	}
	paidDate := ""
	if inst.PaidDate != nil {
		paidDate = inst.PaidDate.Format(dateLayout)
	}
	paidAmount := ""
	if inst.PaidAmount != nil {
		paidAmount = money.Format(*inst.PaidAmount)
	}
	return []interface{}{
		inv.Property.Name,
		inv.Property.Emirate,
		inv.Property.Developer,
		inst.SequenceNumber,
		inst.Milestone,
		inst.Percentage,
		money.Format(inst.Amount),
		dueDate,
		string(status),
		paidDate,
		paidAmount,
		string(inst.PaymentMethod),
		inst.PaymentReference,
	}
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
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

func toRow(headers []string) []interface{} {
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	return row
}
