package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/models"
	"tharwa/internal/services"
)

// InstallmentHandler handles per-installment requests.
type InstallmentHandler struct {
	installmentService services.InstallmentServicer
	auditService       services.AuditServicer
}

// NewInstallmentHandler creates a new InstallmentHandler.
func NewInstallmentHandler(installmentService services.InstallmentServicer, auditService services.AuditServicer) *InstallmentHandler {
	return &InstallmentHandler{installmentService: installmentService, auditService: auditService}
}

// AddInstallmentRequest represents the request payload for appending an installment.
type AddInstallmentRequest struct {
	Label      string     `json:"label" binding:"required,min=1,max=200"`
	Percentage float64    `json:"percentage" binding:"gte=0,lte=100"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	Amount     *int64     `json:"amount,omitempty" binding:"omitempty,gt=0"`
}

// UpdatePercentageRequest represents the request payload for changing an installment's percentage.
type UpdatePercentageRequest struct {
	Percentage float64 `json:"percentage" binding:"gte=0,lte=100"`
}

// MarkPaidRequest represents the request payload for recording a payment.
type MarkPaidRequest struct {
	PaidDate      time.Time            `json:"paid_date" binding:"required"`
	PaidAmount    int64                `json:"paid_amount" binding:"required,gt=0"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required,payment_method"`
	Reference     string               `json:"reference" binding:"max=200"`
}

// AddInstallment handles appending an installment to a schedule.
// @Summary     Add installment
// @Description Append an installment to the investment's schedule
// @Tags        installments
// @Accept      json
// @Produce     json
// @Param       id      path int                   true "Investment ID"
// @Param       request body AddInstallmentRequest true "Installment details"
// @Success     201 {object} models.Installment "Installment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/installments [post]
func (h *InstallmentHandler) AddInstallment(c *gin.Context) {
	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	installment, err := h.installmentService.AddInstallment(investmentID, req.Label, req.Percentage, req.DueDate, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("ADD_INSTALLMENT", "installment", installment.ID, c.ClientIP(),
		map[string]interface{}{"investment_id": investmentID, "sequence_number": installment.SequenceNumber})

	c.JSON(http.StatusCreated, gin.H{"installment": installment})
}

// RemoveInstallment handles removing an installment from a schedule.
// @Summary     Remove installment
// @Description Remove one installment; the remaining entries are renumbered
// @Tags        installments
// @Produce     json
// @Param       id  path int true "Investment ID"
// @Param       seq path int true "Sequence number"
// @Success     200 {object} map[string]string "Removed"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Installment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/installments/{seq} [delete]
func (h *InstallmentHandler) RemoveInstallment(c *gin.Context) {
	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	seq, err := parsePathID(c, "seq")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.installmentService.RemoveInstallment(investmentID, int(seq)); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("REMOVE_INSTALLMENT", "investment", investmentID, c.ClientIP(),
		map[string]interface{}{"sequence_number": seq})

	c.JSON(http.StatusOK, gin.H{"message": "Installment removed"})
}

// UpdatePercentage handles changing an installment's percentage.
// @Summary     Update installment percentage
// @Description Change one installment's percentage and recompute its amount
// @Tags        installments
// @Accept      json
// @Produce     json
// @Param       id      path int                     true "Investment ID"
// @Param       seq     path int                     true "Sequence number"
// @Param       request body UpdatePercentageRequest true "New percentage"
// @Success     200 {object} models.Installment "Updated installment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Installment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/installments/{seq} [put]
func (h *InstallmentHandler) UpdatePercentage(c *gin.Context) {
	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	seq, err := parsePathID(c, "seq")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePercentageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	installment, err := h.installmentService.UpdatePercentage(investmentID, int(seq), req.Percentage)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_INSTALLMENT", "installment", installment.ID, c.ClientIP(),
		map[string]interface{}{"percentage": req.Percentage})

	c.JSON(http.StatusOK, gin.H{"installment": installment})
}

// MarkPaid handles recording a payment against an installment.
// @Summary     Mark installment paid
// @Description Record a payment; the paid amount is stored as given
// @Tags        installments
// @Accept      json
// @Produce     json
// @Param       id      path int             true "Investment ID"
// @Param       seq     path int             true "Sequence number"
// @Param       request body MarkPaidRequest true "Payment details"
// @Success     200 {object} models.Installment "Paid installment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Installment not found"
// @Failure     409 {object} ErrorResponse "Already paid"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/installments/{seq}/pay [post]
func (h *InstallmentHandler) MarkPaid(c *gin.Context) {
	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	seq, err := parsePathID(c, "seq")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	installment, err := h.installmentService.MarkPaid(investmentID, int(seq), req.PaidDate, req.PaidAmount, req.PaymentMethod, req.Reference)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("PAY_INSTALLMENT", "installment", installment.ID, c.ClientIP(),
		map[string]interface{}{"paid_amount": req.PaidAmount, "method": string(req.PaymentMethod)})

	c.JSON(http.StatusOK, gin.H{"installment": installment})
}

// NextPayment handles fetching the next pending installment.
// @Summary     Next payment
// @Description Get the next pending installment by due date, if any
// @Tags        installments
// @Produce     json
// @Param       id path int true "Investment ID"
// @Success     200 {object} models.Installment "Next payment, null when none remains"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/next-payment [get]
func (h *InstallmentHandler) NextPayment(c *gin.Context) {
	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	next, err := h.installmentService.NextPayment(investmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"next_payment": next})
}
