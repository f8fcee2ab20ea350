// Package schedule derives installment schedules from a total price and
// a set of milestone percentages, and answers read-time questions about
// them (effective status, next payment due).
//
// All functions are pure: they take and return installment slices and
// never touch the database. Percentages are not required to sum to 100;
// out-of-balance templates produce a non-fatal Warning alongside the
// result rather than an error.
package schedule

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/models"
	"tharwa/internal/money"
)

// Milestone is one entry of a schedule template.
type Milestone struct {
	Label      string     `json:"label"`
	Percentage float64    `json:"percentage"`
	DueDate    *time.Time `json:"due_date,omitempty"`
}

// Template is an ordered list of milestones covering a purchase price.
// The percentages are always supplied by the caller; nothing here
// hard-codes a payment plan.
type Template []Milestone

// TwoPart builds the standard two-installment split, e.g. TwoPart(60, 40).
func TwoPart(downPct, handoverPct float64) Template {
	return Template{
		{Label: "Down Payment", Percentage: downPct},
		{Label: "Handover", Percentage: handoverPct},
	}
}

// ConstructionLinked builds a multi-milestone construction-linked split,
// e.g. ConstructionLinked(10, 10, 20, 20, 20, 20).
func ConstructionLinked(pcts ...float64) Template {
	tmpl := make(Template, 0, len(pcts))
	for i, p := range pcts {
		tmpl = append(tmpl, Milestone{
			Label:      fmt.Sprintf("Milestone %d", i+1),
			Percentage: p,
		})
	}
	return tmpl
}

// Warning is a non-fatal consistency finding attached to a generated
// schedule. Warnings never prevent the schedule from being used.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	// WarnPercentageSum signals that the template percentages do not
	// sum to 100. Deliberately not an error: out-of-balance schedules
	// exist in the wild and are the caller's responsibility.
	WarnPercentageSum = "PERCENTAGE_SUM"
)

// Generate produces a fully populated installment list from a total
// price and a template. Sequence numbers are contiguous starting at 1
// and each amount is the rounded percentage of the total. When the
// percentages sum to exactly 100, the rounding remainder is folded into
// the last installment so the amounts sum exactly to the total.
func Generate(totalPrice int64, tmpl Template) ([]models.Installment, []Warning, error) {
	if totalPrice < 0 {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Total price cannot be negative")
	}
	if err := validatePercentages(tmpl); err != nil {
		return nil, nil, err
	}

	installments := make([]models.Installment, 0, len(tmpl))
	sumPct := decimal.Zero
	var sumAmount int64
	for i, m := range tmpl {
		amount := money.Percent(totalPrice, m.Percentage)
		installments = append(installments, models.Installment{
			SequenceNumber: i + 1,
			Milestone:      m.Label,
			Percentage:     m.Percentage,
			Amount:         amount,
			DueDate:        m.DueDate,
			Status:         models.InstallmentStatusPending,
		})
		sumPct = sumPct.Add(decimal.NewFromFloat(m.Percentage))
		sumAmount += amount
	}

	var warnings []Warning
	if len(tmpl) > 0 {
		if sumPct.Equal(decimal.NewFromInt(100)) {
			// Distribute the rounding remainder to the last installment.
			last := &installments[len(installments)-1]
			last.Amount += totalPrice - sumAmount
		} else {
			warnings = append(warnings, Warning{
				Code:    WarnPercentageSum,
				Message: fmt.Sprintf("Template percentages sum to %s, not 100", sumPct.String()),
			})
		}
	}

	return installments, warnings, nil
}

// Add appends a new installment with the next sequence number. The
// amount is computed from the percentage of totalPrice unless an
// explicit override amount is supplied.
func Add(installments []models.Installment, totalPrice int64, label string, pct float64, dueDate *time.Time, override *int64) ([]models.Installment, error) {
	if !validPercentage(pct) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Percentage must be a finite number in [0, 100]")
	}
	if override != nil && *override < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount cannot be negative")
	}

	amount := money.Percent(totalPrice, pct)
	if override != nil {
		amount = *override
	}

	out := append(append([]models.Installment{}, installments...), models.Installment{
		SequenceNumber: len(installments) + 1,
		Milestone:      label,
		Percentage:     pct,
		Amount:         amount,
		DueDate:        dueDate,
		Status:         models.InstallmentStatusPending,
	})
	return out, nil
}

// Remove deletes the installment with the given sequence number and
// renumbers the remainder in a single pass, preserving relative order.
// The result always carries a contiguous 1..N sequence regardless of
// which position was removed.
func Remove(installments []models.Installment, seq int) ([]models.Installment, error) {
	found := false
	out := make([]models.Installment, 0, len(installments))
	for _, inst := range installments {
		if inst.SequenceNumber == seq {
			found = true
			continue
		}
		if found {
			inst.SequenceNumber--
		}
		out = append(out, inst)
	}
	if !found {
		return nil, apperrors.ErrInstallmentNotFound
	}
	return out, nil
}

// RecomputeAmount updates one installment's percentage and recomputes
// its amount from totalPrice. Other entries are untouched: the schedule
// is never auto-rebalanced to sum to 100.
func RecomputeAmount(installments []models.Installment, seq int, newPct float64, totalPrice int64) ([]models.Installment, error) {
	if !validPercentage(newPct) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Percentage must be a finite number in [0, 100]")
	}

	out := append([]models.Installment{}, installments...)
	for i := range out {
		if out[i].SequenceNumber == seq {
			out[i].Percentage = newPct
			out[i].Amount = money.Percent(totalPrice, newPct)
			return out, nil
		}
	}
	return nil, apperrors.ErrInstallmentNotFound
}

func validatePercentages(tmpl Template) error {
	for _, m := range tmpl {
		if !validPercentage(m.Percentage) {
			return apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("Invalid percentage for milestone %q", m.Label))
		}
	}
	return nil
}

func validPercentage(pct float64) bool {
	return !math.IsNaN(pct) && !math.IsInf(pct, 0) && pct >= 0 && pct <= 100
}
