package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/models"
	"tharwa/internal/pagination"
)

// remittanceService handles periodic tax filings.
type remittanceService struct {
	db *gorm.DB
}

// NewRemittanceService creates a new RemittanceServicer.
func NewRemittanceService(db *gorm.DB) RemittanceServicer {
	return &remittanceService{db: db}
}

// CreateRemittance opens a filing period with the tax collected in it.
func (s *remittanceService) CreateRemittance(periodLabel string, taxCollected int64) (*models.TaxRemittance, error) {
	if periodLabel == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Period label is required")
	}
	if taxCollected < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Tax collected cannot be negative")
	}

	remittance := &models.TaxRemittance{
		PeriodLabel:  periodLabel,
		TaxCollected: taxCollected,
	}
	if err := s.db.Create(remittance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return remittance, nil
}

// MarkRemitted records the amount actually paid to the authority for a period.
func (s *remittanceService) MarkRemitted(remittanceID uint, amount int64, date time.Time, reference string) (*models.TaxRemittance, error) {
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Remitted amount cannot be negative")
	}

	var remittance models.TaxRemittance
	if err := s.db.First(&remittance, remittanceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRemittanceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]any{
		"remitted":      amount,
		"remitted_date": date,
		"reference":     reference,
	}
	if err := s.db.Model(&remittance).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &remittance, nil
}

// GetRemittances returns a paginated list of filings, newest first.
func (s *remittanceService) GetRemittances(page pagination.PageRequest) (*pagination.PageResponse[models.TaxRemittance], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.TaxRemittance{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var remittances []models.TaxRemittance
	err := s.db.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&remittances).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(remittances, page.Page, page.PageSize, totalItems)
	return &result, nil
}
