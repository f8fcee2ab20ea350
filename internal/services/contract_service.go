package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/models"
	"tharwa/internal/pagination"
)

// contractService handles tenancy-contract and rent-cheque logic.
type contractService struct {
	db              *gorm.DB
	propertyService PropertyServicer
}

// NewContractService creates a new ContractServicer.
func NewContractService(db *gorm.DB, propertyService PropertyServicer) ContractServicer {
	return &contractService{db: db, propertyService: propertyService}
}

// CreateContract records a tenancy agreement and generates its post-dated
// rent cheques. The annual rent is split evenly across the cheques, with
// any division remainder folded into the last cheque so the amounts sum
// exactly to the rent. Due dates are spread evenly across the contract
// span, starting on the contract start date.
func (s *contractService) CreateContract(propertyID uint, tenantName string, annualRent int64, startDate, endDate time.Time, chequeCount int) (*models.TenancyContract, error) {
	if !endDate.After(startDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Contract end date must be after start date")
	}
	if annualRent <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Annual rent must be positive")
	}
	if chequeCount < 1 || chequeCount > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Cheque count must be between 1 and 12")
	}
	if _, err := s.propertyService.GetPropertyByID(propertyID); err != nil {
		return nil, err
	}

	contract := &models.TenancyContract{
		PropertyID:  propertyID,
		TenantName:  tenantName,
		AnnualRent:  annualRent,
		StartDate:   startDate,
		EndDate:     endDate,
		ChequeCount: chequeCount,
	}

	base := annualRent / int64(chequeCount)
	spanDays := int(endDate.Sub(startDate).Hours() / 24)
	for i := 0; i < chequeCount; i++ {
		amount := base
		if i == chequeCount-1 {
			amount = annualRent - base*int64(chequeCount-1)
		}
		contract.Cheques = append(contract.Cheques, models.Cheque{
			ChequeNumber: fmt.Sprintf("PDC-%02d", i+1),
			Amount:       amount,
			DueDate:      startDate.AddDate(0, 0, i*spanDays/chequeCount),
			Status:       models.ChequeStatusPending,
		})
	}

	if err := s.db.Create(contract).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return contract, nil
}

// GetContracts returns a paginated list of tenancy contracts with their cheques.
func (s *contractService) GetContracts(page pagination.PageRequest) (*pagination.PageResponse[models.TenancyContract], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.TenancyContract{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var contracts []models.TenancyContract
	err := s.db.
		Preload("Cheques", func(db *gorm.DB) *gorm.DB {
			return db.Order("due_date ASC")
		}).
		Order("start_date DESC").
		Scopes(pagination.Paginate(page)).
		Find(&contracts).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(contracts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetContractByID returns a single contract with its cheques.
func (s *contractService) GetContractByID(contractID uint) (*models.TenancyContract, error) {
	var contract models.TenancyContract
	err := s.db.
		Preload("Cheques", func(db *gorm.DB) *gorm.DB {
			return db.Order("due_date ASC")
		}).
		First(&contract, contractID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContractNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &contract, nil
}

// UpdateChequeStatus moves one cheque of a contract to a new clearing state.
func (s *contractService) UpdateChequeStatus(contractID, chequeID uint, status models.ChequeStatus) (*models.Cheque, error) {
	if _, err := s.GetContractByID(contractID); err != nil {
		return nil, err
	}

	var cheque models.Cheque
	if err := s.db.Where("contract_id = ?", contractID).First(&cheque, chequeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrChequeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(&cheque).Update("status", status).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &cheque, nil
}

// DeleteContract soft-deletes a contract and its cheques.
func (s *contractService) DeleteContract(contractID uint) error {
	contract, err := s.GetContractByID(contractID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contract_id = ?", contractID).Delete(&models.Cheque{}).Error; err != nil {
			return err
		}
		return tx.Delete(contract).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
