package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/pagination"
	"tharwa/internal/services"
)

// ExpenseHandler handles operating-expense requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	auditService   services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService}
}

// CreateExpenseRequest represents the request payload for recording an expense.
type CreateExpenseRequest struct {
	Category    string    `json:"category" binding:"required,min=1,max=100"`
	Description string    `json:"description" binding:"max=500"`
	Amount      int64     `json:"amount" binding:"required,gt=0"`
	Date        time.Time `json:"date" binding:"required"`
}

// ListExpensesQuery represents the query parameters for listing expenses.
type ListExpensesQuery struct {
	pagination.PageRequest
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// CreateExpense handles recording an operating cost.
// @Summary     Create expense
// @Description Record an operating cost against a property
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       id      path int                  true "Property ID"
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Property not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties/{id}/expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	propertyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.CreateExpense(propertyID, req.Category, req.Description, req.Amount, req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_EXPENSE", "expense", expense.ID, c.ClientIP(),
		map[string]interface{}{"property_id": propertyID, "category": req.Category, "amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// GetPropertyExpenses handles listing expenses for a property.
// @Summary     List expenses
// @Description Get a paginated list of expenses for a property
// @Tags        expenses
// @Produce     json
// @Param       id        path  int    true  "Property ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       from      query string false "Expenses on or after (YYYY-MM-DD)"
// @Param       to        query string false "Expenses on or before (YYYY-MM-DD)"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Paginated expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Property not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties/{id}/expenses [get]
func (h *ExpenseHandler) GetPropertyExpenses(c *gin.Context) {
	propertyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListExpensesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.expenseService.GetPropertyExpenses(propertyID, query.PageRequest, query.From, query.To)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteExpense handles deleting an expense.
// @Summary     Delete expense
// @Description Delete an expense
// @Tags        expenses
// @Produce     json
// @Param       id path int true "Expense ID"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_EXPENSE", "expense", expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}
