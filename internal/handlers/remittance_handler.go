package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/pagination"
	"tharwa/internal/services"
)

// RemittanceHandler handles tax-remittance requests.
type RemittanceHandler struct {
	remittanceService services.RemittanceServicer
	auditService      services.AuditServicer
}

// NewRemittanceHandler creates a new RemittanceHandler.
func NewRemittanceHandler(remittanceService services.RemittanceServicer, auditService services.AuditServicer) *RemittanceHandler {
	return &RemittanceHandler{remittanceService: remittanceService, auditService: auditService}
}

// CreateRemittanceRequest represents the request payload for opening a filing period.
type CreateRemittanceRequest struct {
	PeriodLabel  string `json:"period_label" binding:"required,min=1,max=50"`
	TaxCollected int64  `json:"tax_collected" binding:"gte=0"`
}

// MarkRemittedRequest represents the request payload for recording a remittance.
type MarkRemittedRequest struct {
	Amount    int64     `json:"amount" binding:"required,gt=0"`
	Date      time.Time `json:"date" binding:"required"`
	Reference string    `json:"reference" binding:"max=200"`
}

// CreateRemittance handles opening a tax filing period.
// @Summary     Create tax remittance
// @Description Open a filing period with the tax collected in it
// @Tags        remittances
// @Accept      json
// @Produce     json
// @Param       request body CreateRemittanceRequest true "Remittance details"
// @Success     201 {object} models.TaxRemittance "Remittance created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /remittances [post]
func (h *RemittanceHandler) CreateRemittance(c *gin.Context) {
	var req CreateRemittanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	remittance, err := h.remittanceService.CreateRemittance(req.PeriodLabel, req.TaxCollected)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_REMITTANCE", "remittance", remittance.ID, c.ClientIP(),
		map[string]interface{}{"period": req.PeriodLabel, "tax_collected": req.TaxCollected})

	c.JSON(http.StatusCreated, gin.H{"remittance": remittance})
}

// MarkRemitted handles recording a payment to the authority.
// @Summary     Mark remitted
// @Description Record the amount actually remitted for a filing period
// @Tags        remittances
// @Accept      json
// @Produce     json
// @Param       id      path int                 true "Remittance ID"
// @Param       request body MarkRemittedRequest true "Remittance payment"
// @Success     200 {object} models.TaxRemittance "Updated remittance"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Remittance not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /remittances/{id}/remit [post]
func (h *RemittanceHandler) MarkRemitted(c *gin.Context) {
	remittanceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req MarkRemittedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	remittance, err := h.remittanceService.MarkRemitted(remittanceID, req.Amount, req.Date, req.Reference)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("MARK_REMITTED", "remittance", remittanceID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount})

	c.JSON(http.StatusOK, gin.H{"remittance": remittance})
}

// GetRemittances handles listing filing periods.
// @Summary     List remittances
// @Description Get a paginated list of tax filing periods
// @Tags        remittances
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.TaxRemittance] "Paginated remittances"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /remittances [get]
func (h *RemittanceHandler) GetRemittances(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.remittanceService.GetRemittances(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
