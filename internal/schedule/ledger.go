package schedule

import (
	"time"

	"tharwa/internal/models"
)

// EffectiveStatus returns the status an installment should display at
// the given instant. "overdue" is never stored: a pending installment
// whose due date is strictly before now is overdue at read time only.
// Installments without a due date are treated as "to be determined" and
// are never overdue.
func EffectiveStatus(inst *models.Installment, now time.Time) models.InstallmentStatus {
	if inst.Status == models.InstallmentStatusPending && IsOverdue(inst, now) {
		return models.InstallmentStatusOverdue
	}
	return inst.Status
}

// IsOverdue reports whether a pending installment's due date has
// passed. Paid installments are never overdue.
func IsOverdue(inst *models.Installment, now time.Time) bool {
	return inst.Status == models.InstallmentStatusPending &&
		inst.DueDate != nil &&
		inst.DueDate.Before(now)
}

// NextPayment returns the pending installment with the earliest due
// date, ties broken by lowest sequence number. Installments without a
// due date are never returned; nil means nothing is scheduled. Paid
// installments never reappear here, regardless of their paid date.
func NextPayment(installments []models.Installment) *models.Installment {
	var next *models.Installment
	for i := range installments {
		inst := &installments[i]
		if inst.Status != models.InstallmentStatusPending || inst.DueDate == nil {
			continue
		}
		if next == nil ||
			inst.DueDate.Before(*next.DueDate) ||
			(inst.DueDate.Equal(*next.DueDate) && inst.SequenceNumber < next.SequenceNumber) {
			next = inst
		}
	}
	return next
}
