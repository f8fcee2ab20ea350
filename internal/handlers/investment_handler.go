package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/pagination"
	"tharwa/internal/schedule"
	"tharwa/internal/services"
)

// InvestmentHandler handles investment and portfolio requests.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
	auditService      services.AuditServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer, auditService services.AuditServicer) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService, auditService: auditService}
}

// CreateInvestmentRequest represents the request payload for creating an investment.
type CreateInvestmentRequest struct {
	PropertyID         uint    `json:"property_id" binding:"required"`
	BasePrice          int64   `json:"base_price" binding:"required,gt=0"`
	LandDeptFeePercent float64 `json:"land_dept_fee_percent" binding:"gte=0,lte=100"`
	AdminFees          int64   `json:"admin_fees" binding:"gte=0"`
	OtherFees          int64   `json:"other_fees" binding:"gte=0"`
}

// MilestoneRequest represents one milestone of a schedule template.
type MilestoneRequest struct {
	Label      string     `json:"label" binding:"required,min=1,max=200"`
	Percentage float64    `json:"percentage" binding:"gte=0,lte=100"`
	DueDate    *time.Time `json:"due_date,omitempty"`
}

// GenerateScheduleRequest represents the request payload for generating a payment schedule.
type GenerateScheduleRequest struct {
	Milestones []MilestoneRequest `json:"milestones" binding:"required,min=1,dive"`
}

// CreateInvestment handles creating a new investment.
// @Summary     Create investment
// @Description Record an off-plan purchase against a property
// @Tags        investments
// @Accept      json
// @Produce     json
// @Param       request body CreateInvestmentRequest true "Investment details"
// @Success     201 {object} models.Investment "Investment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Property not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [post]
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.CreateInvestment(
		req.PropertyID, req.BasePrice, req.LandDeptFeePercent, req.AdminFees, req.OtherFees,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_INVESTMENT", "investment", investment.ID, c.ClientIP(),
		map[string]interface{}{"property_id": req.PropertyID, "base_price": req.BasePrice})

	c.JSON(http.StatusCreated, gin.H{
		"investment": investment,
		"total_cost": investment.TotalCost(),
	})
}

// GetInvestments handles listing investments.
// @Summary     List investments
// @Description Get a paginated list of investments with schedules
// @Tags        investments
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Investment] "Paginated investments"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [get]
func (h *InvestmentHandler) GetInvestments(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.investmentService.GetInvestments(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetInvestment handles fetching a single investment with its schedule.
// @Summary     Get investment
// @Description Get an investment by ID, including its payment schedule
// @Tags        investments
// @Produce     json
// @Param       id path int true "Investment ID"
// @Success     200 {object} models.Investment "Investment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [get]
func (h *InvestmentHandler) GetInvestment(c *gin.Context) {
	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.investmentService.GetInvestmentByID(investmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"investment": investment,
		"total_cost": investment.TotalCost(),
	})
}

// DeleteInvestment handles deleting an investment and its schedule.
// @Summary     Delete investment
// @Description Delete an investment together with its payment schedule
// @Tags        investments
// @Produce     json
// @Param       id path int true "Investment ID"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [delete]
func (h *InvestmentHandler) DeleteInvestment(c *gin.Context) {
	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.investmentService.DeleteInvestment(investmentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_INVESTMENT", "investment", investmentID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Investment deleted"})
}

// GenerateSchedule handles generating a payment schedule for an investment.
// @Summary     Generate payment schedule
// @Description Replace the investment's schedule with one derived from the given milestones
// @Tags        investments
// @Accept      json
// @Produce     json
// @Param       id      path int                     true "Investment ID"
// @Param       request body GenerateScheduleRequest true "Schedule template"
// @Success     201 {object} map[string]interface{} "Generated installments and warnings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/schedule [post]
func (h *InvestmentHandler) GenerateSchedule(c *gin.Context) {
	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	tmpl := make(schedule.Template, 0, len(req.Milestones))
	for _, m := range req.Milestones {
		tmpl = append(tmpl, schedule.Milestone{
			Label:      m.Label,
			Percentage: m.Percentage,
			DueDate:    m.DueDate,
		})
	}

	installments, warnings, err := h.investmentService.GenerateSchedule(investmentID, tmpl)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("GENERATE_SCHEDULE", "investment", investmentID, c.ClientIP(),
		map[string]interface{}{"milestones": len(req.Milestones)})

	c.JSON(http.StatusCreated, gin.H{
		"installments": installments,
		"warnings":     warnings,
	})
}

// GetPortfolioSummary handles aggregating the whole portfolio.
// @Summary     Portfolio summary
// @Description Aggregate all investments into portfolio-level totals and breakdowns
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} portfolio.Summary "Portfolio summary"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/summary [get]
func (h *InvestmentHandler) GetPortfolioSummary(c *gin.Context) {
	summary, err := h.investmentService.GetPortfolio(time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
