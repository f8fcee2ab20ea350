package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/models"
	"tharwa/internal/pagination"
	"tharwa/internal/portfolio"
	"tharwa/internal/schedule"
)

// investmentService handles investment-related business logic.
type investmentService struct {
	db              *gorm.DB
	propertyService PropertyServicer
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB, propertyService PropertyServicer) InvestmentServicer {
	return &investmentService{db: db, propertyService: propertyService}
}

// CreateInvestment records a new off-plan purchase against a property.
// The total cost is always derived from the parts, never stored.
func (s *investmentService) CreateInvestment(propertyID uint, basePrice int64, landDeptFeePercent float64, adminFees, otherFees int64) (*models.Investment, error) {
	if basePrice < 0 || adminFees < 0 || otherFees < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Prices and fees cannot be negative")
	}
	if landDeptFeePercent < 0 || math.IsNaN(landDeptFeePercent) || math.IsInf(landDeptFeePercent, 0) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Fee percent must be a non-negative finite number")
	}

	property, err := s.propertyService.GetPropertyByID(propertyID)
	if err != nil {
		return nil, err
	}

	investment := &models.Investment{
		PropertyID:         propertyID,
		BasePrice:          basePrice,
		LandDeptFeePercent: landDeptFeePercent,
		AdminFees:          adminFees,
		OtherFees:          otherFees,
	}
	if err := s.db.Create(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	investment.Property = *property
	return investment, nil
}

// GetInvestments returns a paginated list of investments with their
// properties and schedules preloaded.
func (s *investmentService) GetInvestments(page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Investment{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investments []models.Investment
	if err := s.db.Preload("Property").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_number ASC")
		}).
		Order("created_at DESC").
		Scopes(pagination.Paginate(page)).Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(investments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetInvestmentByID returns an investment with property and installments.
func (s *investmentService) GetInvestmentByID(investmentID uint) (*models.Investment, error) {
	var investment models.Investment
	err := s.db.Preload("Property").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_number ASC")
		}).
		First(&investment, investmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investment, nil
}

// DeleteInvestment removes an investment together with its whole
// schedule. Installments never outlive their investment.
func (s *investmentService) DeleteInvestment(investmentID uint) error {
	investment, err := s.GetInvestmentByID(investmentID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Where("investment_id = ?", investmentID).Delete(&models.Installment{}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		if txErr := tx.Delete(investment).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
	return err
}

// GenerateSchedule replaces the investment's schedule with one derived
// from the given template over the base price. The old plan is dropped
// and the new one inserted in a single transaction; percentage-sum
// warnings are returned alongside the result, never as a failure.
func (s *investmentService) GenerateSchedule(investmentID uint, tmpl schedule.Template) ([]models.Installment, []schedule.Warning, error) {
	investment, err := s.GetInvestmentByID(investmentID)
	if err != nil {
		return nil, nil, err
	}

	installments, warnings, err := schedule.Generate(investment.BasePrice, tmpl)
	if err != nil {
		return nil, nil, err
	}
	for i := range installments {
		installments[i].InvestmentID = investmentID
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Where("investment_id = ?", investmentID).Delete(&models.Installment{}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		if len(installments) == 0 {
			return nil
		}
		if txErr := tx.Create(&installments).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return installments, warnings, nil
}

// GetPortfolio aggregates all investments into a portfolio summary.
// The caller supplies "now" so the read-time overdue rule is stable.
func (s *investmentService) GetPortfolio(now time.Time) (*portfolio.Summary, error) {
	var investments []models.Investment
	if err := s.db.Preload("Property").Preload("Installments").Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := portfolio.Aggregate(investments, now)
	return &summary, nil
}
