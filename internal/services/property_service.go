package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/models"
	"tharwa/internal/pagination"
)

// propertyService handles property-related business logic.
type propertyService struct {
	db *gorm.DB
}

// NewPropertyService creates a new PropertyServicer.
func NewPropertyService(db *gorm.DB) PropertyServicer {
	return &propertyService{db: db}
}

// CreateProperty creates a new managed property.
func (s *propertyService) CreateProperty(name, emirate, developer, community string, bedrooms int, purpose models.PropertyPurpose, purchasePrice int64) (*models.Property, error) {
	if purchasePrice < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Purchase price cannot be negative")
	}

	property := &models.Property{
		Name:          name,
		Emirate:       emirate,
		Developer:     developer,
		Community:     community,
		Bedrooms:      bedrooms,
		Purpose:       purpose,
		Status:        models.PropertyStatusActive,
		PurchasePrice: purchasePrice,
	}
	if err := s.db.Create(property).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return property, nil
}

// GetProperties returns a paginated, optionally filtered list of properties.
func (s *propertyService) GetProperties(page pagination.PageRequest, filter PropertyFilter) (*pagination.PageResponse[models.Property], error) {
	page.Defaults()

	base := s.db.Model(&models.Property{})
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.Purpose != nil {
		base = base.Where("purpose = ?", *filter.Purpose)
	}
	if filter.Emirate != nil {
		base = base.Where("emirate = ?", *filter.Emirate)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var properties []models.Property
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&properties).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(properties, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetPropertyByID returns a single property.
func (s *propertyService) GetPropertyByID(propertyID uint) (*models.Property, error) {
	var property models.Property
	if err := s.db.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPropertyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &property, nil
}

// UpdateProperty updates mutable property fields. Only non-zero/non-nil
// arguments are applied.
func (s *propertyService) UpdateProperty(propertyID uint, name, developer, community string, bedrooms *int, status *models.PropertyStatus) (*models.Property, error) {
	property, err := s.GetPropertyByID(propertyID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if developer != "" {
		updates["developer"] = developer
	}
	if community != "" {
		updates["community"] = community
	}
	if bedrooms != nil {
		updates["bedrooms"] = *bedrooms
	}
	if status != nil {
		updates["status"] = *status
	}
	if len(updates) == 0 {
		return property, nil
	}

	if err := s.db.Model(property).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return property, nil
}

// DeleteProperty soft-deletes a property.
func (s *propertyService) DeleteProperty(propertyID uint) error {
	property, err := s.GetPropertyByID(propertyID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(property).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
