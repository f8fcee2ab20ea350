package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/models"
)

// kpiService computes operating metrics over bookings and expenses.
type kpiService struct {
	db              *gorm.DB
	propertyService PropertyServicer
}

// NewKPIService creates a new KPIServicer.
func NewKPIService(db *gorm.DB, propertyService PropertyServicer) KPIServicer {
	return &kpiService{db: db, propertyService: propertyService}
}

// GetPropertyKPIs computes the metrics of one property over [from, to].
// Cancelled bookings are excluded. Rates are derived from whole-dirham
// totals and rounded toward zero.
func (s *kpiService) GetPropertyKPIs(propertyID uint, from, to time.Time) (*PropertyKPIs, error) {
	if _, err := s.propertyService.GetPropertyByID(propertyID); err != nil {
		return nil, err
	}
	if !to.After(from) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "End of period must be after start")
	}
	return s.computeKPIs(propertyID, from, to)
}

// GetPortfolioKPIs computes per-property metrics for every property over
// [from, to].
func (s *kpiService) GetPortfolioKPIs(from, to time.Time) ([]PropertyKPIs, error) {
	if !to.After(from) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "End of period must be after start")
	}

	var properties []models.Property
	if err := s.db.Order("id ASC").Find(&properties).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	results := make([]PropertyKPIs, 0, len(properties))
	for _, property := range properties {
		kpis, err := s.computeKPIs(property.ID, from, to)
		if err != nil {
			return nil, err
		}
		results = append(results, *kpis)
	}
	return results, nil
}

func (s *kpiService) computeKPIs(propertyID uint, from, to time.Time) (*PropertyKPIs, error) {
	var bookings []models.Booking
	err := s.db.
		Where("property_id = ? AND status <> ? AND check_in < ? AND check_out > ?",
			propertyID, models.BookingStatusCancelled, to, from).
		Find(&bookings).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	kpis := &PropertyKPIs{
		PropertyID:      propertyID,
		NightsAvailable: int(to.Sub(from).Hours() / 24),
	}

	for _, booking := range bookings {
		// Only the nights that fall inside the period count; the
		// revenue of those nights is attributed at the nightly rate.
		nights := overlapNights(booking.CheckIn, booking.CheckOut, from, to)
		kpis.NightsBooked += nights
		kpis.Revenue += int64(nights) * booking.NightlyRate
	}

	row := s.db.Model(&models.Expense{}).
		Where("property_id = ? AND date >= ? AND date < ?", propertyID, from, to).
		Select("COALESCE(SUM(amount), 0)")
	if err := row.Scan(&kpis.Expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	kpis.NOI = kpis.Revenue - kpis.Expenses
	if kpis.NightsAvailable > 0 {
		kpis.OccupancyRate = float64(kpis.NightsBooked) / float64(kpis.NightsAvailable) * 100
		kpis.RevPAR = kpis.Revenue / int64(kpis.NightsAvailable)
	}
	if kpis.NightsBooked > 0 {
		kpis.ADR = kpis.Revenue / int64(kpis.NightsBooked)
	}
	return kpis, nil
}

// overlapNights returns the number of nights of [checkIn, checkOut) that
// fall inside [from, to).
func overlapNights(checkIn, checkOut, from, to time.Time) int {
	start := checkIn
	if from.After(start) {
		start = from
	}
	end := checkOut
	if to.Before(end) {
		end = to
	}
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start).Hours() / 24)
}
