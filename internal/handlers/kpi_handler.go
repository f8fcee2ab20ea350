package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/services"
)

// KPIHandler handles property performance metric requests.
type KPIHandler struct {
	kpiService services.KPIServicer
}

// NewKPIHandler creates a new KPIHandler.
func NewKPIHandler(kpiService services.KPIServicer) *KPIHandler {
	return &KPIHandler{kpiService: kpiService}
}

// KPIPeriodQuery represents the query parameters naming a metric period.
type KPIPeriodQuery struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// GetPropertyKPIs handles computing the metrics of one property.
// @Summary     Property KPIs
// @Description Compute revenue, occupancy, ADR, RevPAR and NOI for one property over a period
// @Tags        kpis
// @Produce     json
// @Param       id   path  int    true "Property ID"
// @Param       from query string true "Period start (YYYY-MM-DD)"
// @Param       to   query string true "Period end (YYYY-MM-DD)"
// @Success     200 {object} services.PropertyKPIs "Metrics"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Property not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties/{id}/kpis [get]
func (h *KPIHandler) GetPropertyKPIs(c *gin.Context) {
	propertyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query KPIPeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	kpis, err := h.kpiService.GetPropertyKPIs(propertyID, query.From, query.To)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"kpis": kpis})
}

// GetPortfolioKPIs handles computing per-property metrics across the portfolio.
// @Summary     Portfolio KPIs
// @Description Compute per-property operating metrics over a period
// @Tags        kpis
// @Produce     json
// @Param       from query string true "Period start (YYYY-MM-DD)"
// @Param       to   query string true "Period end (YYYY-MM-DD)"
// @Success     200 {object} []services.PropertyKPIs "Metrics per property"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/kpis [get]
func (h *KPIHandler) GetPortfolioKPIs(c *gin.Context) {
	var query KPIPeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	kpis, err := h.kpiService.GetPortfolioKPIs(query.From, query.To)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"kpis": kpis})
}
