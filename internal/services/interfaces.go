package services

import (
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"tharwa/internal/models"
	"tharwa/internal/pagination"
	"tharwa/internal/portfolio"
	"tharwa/internal/schedule"
)

// PropertyFilter holds optional filter parameters for listing properties.
type PropertyFilter struct {
	Status  *models.PropertyStatus
	Purpose *models.PropertyPurpose
	Emirate *string
}

// PropertyServicer defines the contract for property-related business logic.
type PropertyServicer interface {
	CreateProperty(name, emirate, developer, community string, bedrooms int, purpose models.PropertyPurpose, purchasePrice int64) (*models.Property, error)
	GetProperties(page pagination.PageRequest, filter PropertyFilter) (*pagination.PageResponse[models.Property], error)
	GetPropertyByID(propertyID uint) (*models.Property, error)
	UpdateProperty(propertyID uint, name, developer, community string, bedrooms *int, status *models.PropertyStatus) (*models.Property, error)
	DeleteProperty(propertyID uint) error
}

// InvestmentServicer defines the contract for investment-related business logic.
type InvestmentServicer interface {
	CreateInvestment(propertyID uint, basePrice int64, landDeptFeePercent float64, adminFees, otherFees int64) (*models.Investment, error)
	GetInvestments(page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error)
	GetInvestmentByID(investmentID uint) (*models.Investment, error)
	DeleteInvestment(investmentID uint) error
	GenerateSchedule(investmentID uint, tmpl schedule.Template) ([]models.Installment, []schedule.Warning, error)
	GetPortfolio(now time.Time) (*portfolio.Summary, error)
}

// InstallmentServicer defines the contract for installment-level operations.
type InstallmentServicer interface {
	AddInstallment(investmentID uint, label string, percentage float64, dueDate *time.Time, overrideAmount *int64) (*models.Installment, error)
	RemoveInstallment(investmentID uint, sequenceNumber int) error
	UpdatePercentage(investmentID uint, sequenceNumber int, newPercentage float64) (*models.Installment, error)
	MarkPaid(investmentID uint, sequenceNumber int, paidDate time.Time, paidAmount int64, method models.PaymentMethod, reference string) (*models.Installment, error)
	NextPayment(investmentID uint) (*models.Installment, error)
}

// BookingFilter holds optional filter parameters for listing bookings.
type BookingFilter struct {
	Status   *models.BookingStatus
	FromDate *time.Time
	ToDate   *time.Time
}

// BookingServicer defines the contract for booking-related business logic.
type BookingServicer interface {
	CreateBooking(propertyID uint, guestName string, checkIn, checkOut time.Time, nightlyRate int64, channel string) (*models.Booking, error)
	GetPropertyBookings(propertyID uint, page pagination.PageRequest, filter BookingFilter) (*pagination.PageResponse[models.Booking], error)
	GetBookingByID(bookingID uint) (*models.Booking, error)
	UpdateBookingStatus(bookingID uint, status models.BookingStatus) (*models.Booking, error)
	DeleteBooking(bookingID uint) error
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(propertyID uint, category, description string, amount int64, date time.Time) (*models.Expense, error)
	GetPropertyExpenses(propertyID uint, page pagination.PageRequest, from, to *time.Time) (*pagination.PageResponse[models.Expense], error)
	DeleteExpense(expenseID uint) error
}

// ContractServicer defines the contract for tenancy-contract business logic.
type ContractServicer interface {
	CreateContract(propertyID uint, tenantName string, annualRent int64, startDate, endDate time.Time, chequeCount int) (*models.TenancyContract, error)
	GetContracts(page pagination.PageRequest) (*pagination.PageResponse[models.TenancyContract], error)
	GetContractByID(contractID uint) (*models.TenancyContract, error)
	UpdateChequeStatus(contractID, chequeID uint, status models.ChequeStatus) (*models.Cheque, error)
	DeleteContract(contractID uint) error
}

// RemittanceServicer defines the contract for tax-remittance business logic.
type RemittanceServicer interface {
	CreateRemittance(periodLabel string, taxCollected int64) (*models.TaxRemittance, error)
	MarkRemitted(remittanceID uint, amount int64, date time.Time, reference string) (*models.TaxRemittance, error)
	GetRemittances(page pagination.PageRequest) (*pagination.PageResponse[models.TaxRemittance], error)
}

// PropertyKPIs contains the operating metrics of one property over a period.
type PropertyKPIs struct {
	PropertyID      uint    `json:"property_id"`
	Revenue         int64   `json:"revenue"`
	Expenses        int64   `json:"expenses"`
	NOI             int64   `json:"noi"`
	NightsBooked    int     `json:"nights_booked"`
	NightsAvailable int     `json:"nights_available"`
	OccupancyRate   float64 `json:"occupancy_rate"`
	ADR             int64   `json:"adr"`
	RevPAR          int64   `json:"revpar"`
}

// KPIServicer defines the contract for property performance metrics.
type KPIServicer interface {
	GetPropertyKPIs(propertyID uint, from, to time.Time) (*PropertyKPIs, error)
	GetPortfolioKPIs(from, to time.Time) ([]PropertyKPIs, error)
}

// ExportServicer defines the contract for document exports.
type ExportServicer interface {
	InvestmentsWorkbook(now time.Time) (*excelize.File, error)
	PortfolioReport(now time.Time) (*gofpdf.Fpdf, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType string, resourceID uint, ipAddress string, changes map[string]any)
}
