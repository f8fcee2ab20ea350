package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/models"
	"tharwa/internal/pagination"
)

// expenseService handles operating-expense logic.
type expenseService struct {
	db              *gorm.DB
	propertyService PropertyServicer
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, propertyService PropertyServicer) ExpenseServicer {
	return &expenseService{db: db, propertyService: propertyService}
}

// CreateExpense records an operating cost against a property.
func (s *expenseService) CreateExpense(propertyID uint, category, description string, amount int64, date time.Time) (*models.Expense, error) {
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Expense amount cannot be negative")
	}
	if _, err := s.propertyService.GetPropertyByID(propertyID); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		PropertyID:  propertyID,
		Category:    category,
		Description: description,
		Amount:      amount,
		Date:        date,
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// GetPropertyExpenses returns a paginated list of expenses for one
// property, optionally limited to a date range.
func (s *expenseService) GetPropertyExpenses(propertyID uint, page pagination.PageRequest, from, to *time.Time) (*pagination.PageResponse[models.Expense], error) {
	if _, err := s.propertyService.GetPropertyByID(propertyID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("property_id = ?", propertyID)
	if from != nil {
		base = base.Where("date >= ?", *from)
	}
	if to != nil {
		base = base.Where("date <= ?", *to)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeleteExpense soft-deletes an expense.
func (s *expenseService) DeleteExpense(expenseID uint) error {
	var expense models.Expense
	if err := s.db.First(&expense, expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrExpenseNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Delete(&expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
