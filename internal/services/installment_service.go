package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/models"
	"tharwa/internal/schedule"
)

// installmentService handles per-installment operations: appending,
// removal with renumbering, percentage updates, and payment recording.
type installmentService struct {
	db                *gorm.DB
	investmentService InvestmentServicer
}

// NewInstallmentService creates a new InstallmentServicer.
func NewInstallmentService(db *gorm.DB, investmentService InvestmentServicer) InstallmentServicer {
	return &installmentService{db: db, investmentService: investmentService}
}

// AddInstallment appends a new installment to the investment's
// schedule with the next sequence number. The amount is derived from
// the percentage of the base price unless an override is supplied.
func (s *installmentService) AddInstallment(investmentID uint, label string, percentage float64, dueDate *time.Time, overrideAmount *int64) (*models.Installment, error) {
	investment, err := s.investmentService.GetInvestmentByID(investmentID)
	if err != nil {
		return nil, err
	}

	updated, err := schedule.Add(investment.Installments, investment.BasePrice, label, percentage, dueDate, overrideAmount)
	if err != nil {
		return nil, err
	}

	added := updated[len(updated)-1]
	added.InvestmentID = investmentID
	if err := s.db.Create(&added).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &added, nil
}

// RemoveInstallment deletes one installment and renumbers the rest so
// sequence numbers stay contiguous from 1. The delete and every
// renumber land in one transaction: a failure leaves the schedule
// untouched.
func (s *installmentService) RemoveInstallment(investmentID uint, sequenceNumber int) error {
	investment, err := s.investmentService.GetInvestmentByID(investmentID)
	if err != nil {
		return err
	}

	renumbered, err := schedule.Remove(investment.Installments, sequenceNumber)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Where("investment_id = ? AND sequence_number = ?", investmentID, sequenceNumber).
			Delete(&models.Installment{}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		for i := range renumbered {
			inst := &renumbered[i]
			if txErr := tx.Model(&models.Installment{}).
				Where("id = ?", inst.ID).
				Update("sequence_number", inst.SequenceNumber).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
		}
		return nil
	})
}

// UpdatePercentage changes one installment's percentage and recomputes
// its amount from the investment's base price. No other installment is
// touched: schedules are never auto-rebalanced.
func (s *installmentService) UpdatePercentage(investmentID uint, sequenceNumber int, newPercentage float64) (*models.Installment, error) {
	investment, err := s.investmentService.GetInvestmentByID(investmentID)
	if err != nil {
		return nil, err
	}

	updated, err := schedule.RecomputeAmount(investment.Installments, sequenceNumber, newPercentage, investment.BasePrice)
	if err != nil {
		return nil, err
	}

	for i := range updated {
		if updated[i].SequenceNumber == sequenceNumber {
			inst := updated[i]
			if err := s.db.Model(&models.Installment{}).Where("id = ?", inst.ID).
				Updates(map[string]interface{}{
					"percentage": inst.Percentage,
					"amount":     inst.Amount,
				}).Error; err != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			return &inst, nil
		}
	}
	return nil, apperrors.ErrInstallmentNotFound
}

// MarkPaid records a payment against a pending installment. The paid
// amount is accepted as-is; partial and over-payments are deliberately
// never reconciled against the nominal amount. Paying twice fails, and
// there is no unmark operation.
func (s *installmentService) MarkPaid(investmentID uint, sequenceNumber int, paidDate time.Time, paidAmount int64, method models.PaymentMethod, reference string) (*models.Installment, error) {
	if paidAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Paid amount cannot be negative")
	}

	inst, err := s.findInstallment(investmentID, sequenceNumber)
	if err != nil {
		return nil, err
	}
	if inst.Status == models.InstallmentStatusPaid {
		return nil, apperrors.ErrInstallmentAlreadyPaid
	}

	updates := map[string]interface{}{
		"status":            models.InstallmentStatusPaid,
		"paid_date":         paidDate,
		"paid_amount":       paidAmount,
		"payment_method":    method,
		"payment_reference": reference,
	}
	if err := s.db.Model(inst).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	inst.Status = models.InstallmentStatusPaid
	inst.PaidDate = &paidDate
	inst.PaidAmount = &paidAmount
	inst.PaymentMethod = method
	inst.PaymentReference = reference
	return inst, nil
}

// NextPayment returns the next pending installment by due date, or nil
// when nothing dated remains unpaid.
func (s *installmentService) NextPayment(investmentID uint) (*models.Installment, error) {
	investment, err := s.investmentService.GetInvestmentByID(investmentID)
	if err != nil {
		return nil, err
	}
	return schedule.NextPayment(investment.Installments), nil
}

func (s *installmentService) findInstallment(investmentID uint, sequenceNumber int) (*models.Installment, error) {
	// Verify the investment exists first so a missing parent reports
	// the right error.
	if _, err := s.investmentService.GetInvestmentByID(investmentID); err != nil {
		return nil, err
	}

	var inst models.Installment
	err := s.db.Where("investment_id = ? AND sequence_number = ?", investmentID, sequenceNumber).
		First(&inst).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInstallmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &inst, nil
}
