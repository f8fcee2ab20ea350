package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"tharwa/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestProperty creates an active off-plan property in Dubai.
func CreateTestProperty(t *testing.T, db *gorm.DB) *models.Property {
	t.Helper()

	property := &models.Property{
		Name:          fmt.Sprintf("Unit %d", nextID()),
		Emirate:       "Dubai",
		Developer:     "Emaar",
		Community:     "Downtown",
		Bedrooms:      1,
		Purpose:       models.PropertyPurposeOffPlan,
		Status:        models.PropertyStatusActive,
		PurchasePrice: 1_000_000,
	}
	if err := db.Create(property).Error; err != nil {
		t.Fatalf("failed to create test property: %v", err)
	}
	return property
}

// CreateTestInvestment creates an investment on the given property with
// a 1,000,000 base price, 4% land department fee and 2,000 admin fees.
func CreateTestInvestment(t *testing.T, db *gorm.DB, propertyID uint) *models.Investment {
	t.Helper()

	investment := &models.Investment{
		PropertyID:         propertyID,
		BasePrice:          1_000_000,
		LandDeptFeePercent: 4,
		AdminFees:          2_000,
		OtherFees:          0,
	}
	if err := db.Create(investment).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return investment
}

// CreateTestInstallment creates a pending installment with the given
// sequence number, amount and due date.
func CreateTestInstallment(t *testing.T, db *gorm.DB, investmentID uint, seq int, amount int64, dueDate *time.Time) *models.Installment {
	t.Helper()

	installment := &models.Installment{
		InvestmentID:   investmentID,
		SequenceNumber: seq,
		Milestone:      fmt.Sprintf("Milestone %d", seq),
		Percentage:     10,
		Amount:         amount,
		DueDate:        dueDate,
		Status:         models.InstallmentStatusPending,
	}
	if err := db.Create(installment).Error; err != nil {
		t.Fatalf("failed to create test installment: %v", err)
	}
	return installment
}

// CreateTestBooking creates a confirmed booking spanning the given nights.
func CreateTestBooking(t *testing.T, db *gorm.DB, propertyID uint, checkIn time.Time, nights int, nightlyRate int64) *models.Booking {
	t.Helper()

	booking := &models.Booking{
		PropertyID:  propertyID,
		GuestName:   fmt.Sprintf("Guest %d", nextID()),
		CheckIn:     checkIn,
		CheckOut:    checkIn.AddDate(0, 0, nights),
		NightlyRate: nightlyRate,
		TotalAmount: int64(nights) * nightlyRate,
		Channel:     "direct",
		Status:      models.BookingStatusConfirmed,
	}
	if err := db.Create(booking).Error; err != nil {
		t.Fatalf("failed to create test booking: %v", err)
	}
	return booking
}

// CreateTestExpense creates an expense on the given property.
func CreateTestExpense(t *testing.T, db *gorm.DB, propertyID uint, amount int64, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		PropertyID: propertyID,
		Category:   "maintenance",
		Amount:     amount,
		Date:       date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}
