// Package portfolio rolls installments across many investments up into
// summary statistics. Everything here is pure: the caller supplies the
// already-loaded investments and the instant "now" used for the
// read-time overdue rule, so results are reproducible in tests.
package portfolio

import (
	"time"

	"tharwa/internal/models"
	"tharwa/internal/schedule"
)

// GroupTotal is one bucket of a grouped breakdown.
type GroupTotal struct {
	Count int   `json:"count"`
	Value int64 `json:"value"`
}

// Summary contains the aggregated state of a portfolio. It is computed
// on demand and never persisted.
type Summary struct {
	InvestmentCount     int   `json:"investment_count"`
	TotalInvestment     int64 `json:"total_investment"`
	TotalPaid           int64 `json:"total_paid"`
	TotalPending        int64 `json:"total_pending"`
	TotalOverdue        int64 `json:"total_overdue"`
	PaidCount           int   `json:"paid_count"`
	PendingCount        int   `json:"pending_count"`
	OverdueCount        int   `json:"overdue_count"`
	PercentageCollected float64 `json:"percentage_collected"`

	ByEmirate   map[string]GroupTotal `json:"by_emirate"`
	ByDeveloper map[string]GroupTotal `json:"by_developer"`
}

// Aggregate combines the installments of all given investments into a
// Summary. Overdue is computed per the read-time rule against now. An
// empty or nil portfolio yields an all-zero summary, never NaN.
func Aggregate(investments []models.Investment, now time.Time) Summary {
	summary := Summary{
		ByEmirate:   make(map[string]GroupTotal),
		ByDeveloper: make(map[string]GroupTotal),
	}

	var scheduled int64
	for i := range investments {
		inv := &investments[i]
		totalCost := inv.TotalCost()
		summary.InvestmentCount++
		summary.TotalInvestment += totalCost

		addGroup(summary.ByEmirate, NormalizeGroupKey(inv.Property.Emirate), totalCost)
		addGroup(summary.ByDeveloper, NormalizeGroupKey(inv.Property.Developer), totalCost)

		for j := range inv.Installments {
			inst := &inv.Installments[j]
			scheduled += inst.Amount
			switch schedule.EffectiveStatus(inst, now) {
			case models.InstallmentStatusPaid:
				summary.PaidCount++
				summary.TotalPaid += paidValue(inst)
			case models.InstallmentStatusOverdue:
				summary.OverdueCount++
				summary.TotalOverdue += inst.Amount
			default:
				summary.PendingCount++
				summary.TotalPending += inst.Amount
			}
		}
	}

	if scheduled > 0 {
		summary.PercentageCollected = float64(summary.TotalPaid) / float64(scheduled) * 100
	}
	return summary
}

// PaidPercentage returns how much of an investment's scheduled amounts
// has been collected, as a percentage. Investments with no installments
// (or an all-zero schedule) yield 0, never a division error.
func PaidPercentage(inv *models.Investment) float64 {
	var scheduled, paid int64
	for i := range inv.Installments {
		inst := &inv.Installments[i]
		scheduled += inst.Amount
		if inst.Status == models.InstallmentStatusPaid {
			paid += paidValue(inst)
		}
	}
	if scheduled == 0 {
		return 0
	}
	return float64(paid) / float64(scheduled) * 100
}

// paidValue is the collected amount for a paid installment: the actual
// paid amount when recorded, falling back to the nominal amount.
func paidValue(inst *models.Installment) int64 {
	if inst.PaidAmount != nil {
		return *inst.PaidAmount
	}
	return inst.Amount
}

func addGroup(groups map[string]GroupTotal, key string, value int64) {
	g := groups[key]
	g.Count++
	g.Value += value
	groups[key] = g
}
