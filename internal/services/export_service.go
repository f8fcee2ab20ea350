package services

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/export"
	"tharwa/internal/models"
	"tharwa/internal/portfolio"
)

// exportService builds spreadsheet and PDF documents over the whole portfolio.
type exportService struct {
	db *gorm.DB
}

// NewExportService creates a new ExportServicer.
func NewExportService(db *gorm.DB) ExportServicer {
	return &exportService{db: db}
}

// InvestmentsWorkbook builds the portfolio spreadsheet. Overdue status is
// derived against now, the same way the dashboard shows it.
func (s *exportService) InvestmentsWorkbook(now time.Time) (*excelize.File, error) {
	investments, err := s.loadInvestments()
	if err != nil {
		return nil, err
	}

	summary := portfolio.Aggregate(investments, now)
	f, err := export.Workbook(summary, investments, now)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return f, nil
}

// PortfolioReport builds the portfolio PDF report.
func (s *exportService) PortfolioReport(now time.Time) (*gofpdf.Fpdf, error) {
	investments, err := s.loadInvestments()
	if err != nil {
		return nil, err
	}

	summary := portfolio.Aggregate(investments, now)
	periodLabel := fmt.Sprintf("As of %s", now.Format("2 January 2006"))
	pdf, err := export.Report("Portfolio Report", "Investment Portfolio", periodLabel, summary, investments, now, time.Now())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return pdf, nil
}

func (s *exportService) loadInvestments() ([]models.Investment, error) {
	var investments []models.Investment
	err := s.db.
		Preload("Property").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_number ASC")
		}).
		Order("id ASC").
		Find(&investments).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investments, nil
}
