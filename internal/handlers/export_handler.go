package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/services"
)

// ExportHandler handles spreadsheet and PDF export requests.
type ExportHandler struct {
	exportService services.ExportServicer
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService services.ExportServicer) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportInvestmentsXLSX handles downloading the portfolio spreadsheet.
// @Summary     Export investments spreadsheet
// @Description Download the full portfolio as an Excel workbook
// @Tags        exports
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success     200 {file} binary "Workbook"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /exports/investments.xlsx [get]
func (h *ExportHandler) ExportInvestmentsXLSX(c *gin.Context) {
	now := time.Now()
	f, err := h.exportService.InvestmentsWorkbook(now)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := fmt.Sprintf("investments-%s.xlsx", now.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	c.Status(http.StatusOK)
}

// ExportPortfolioPDF handles downloading the portfolio report.
// @Summary     Export portfolio report
// @Description Download the portfolio report as a PDF
// @Tags        exports
// @Produce     application/pdf
// @Success     200 {file} binary "Report"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /exports/portfolio.pdf [get]
func (h *ExportHandler) ExportPortfolioPDF(c *gin.Context) {
	now := time.Now()
	pdf, err := h.exportService.PortfolioReport(now)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := fmt.Sprintf("portfolio-%s.pdf", now.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/pdf")

	if err := pdf.Output(c.Writer); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	c.Status(http.StatusOK)
}
