package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/models"
	"tharwa/internal/pagination"
)

// bookingService handles short-term-rental booking logic.
type bookingService struct {
	db              *gorm.DB
	propertyService PropertyServicer
}

// NewBookingService creates a new BookingServicer.
func NewBookingService(db *gorm.DB, propertyService PropertyServicer) BookingServicer {
	return &bookingService{db: db, propertyService: propertyService}
}

// CreateBooking records a stay. The total amount is nights times the
// nightly rate.
func (s *bookingService) CreateBooking(propertyID uint, guestName string, checkIn, checkOut time.Time, nightlyRate int64, channel string) (*models.Booking, error) {
	if !checkOut.After(checkIn) {
		return nil, apperrors.ErrInvalidBookingSpan
	}
	if nightlyRate < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Nightly rate cannot be negative")
	}
	if _, err := s.propertyService.GetPropertyByID(propertyID); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		PropertyID:  propertyID,
		GuestName:   guestName,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		NightlyRate: nightlyRate,
		Channel:     channel,
		Status:      models.BookingStatusConfirmed,
	}
	booking.TotalAmount = int64(booking.Nights()) * nightlyRate

	if err := s.db.Create(booking).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return booking, nil
}

// GetPropertyBookings returns a paginated, filtered list of bookings
// for one property.
func (s *bookingService) GetPropertyBookings(propertyID uint, page pagination.PageRequest, filter BookingFilter) (*pagination.PageResponse[models.Booking], error) {
	if _, err := s.propertyService.GetPropertyByID(propertyID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Booking{}).Where("property_id = ?", propertyID)
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		base = base.Where("check_in >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("check_out <= ?", *filter.ToDate)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var bookings []models.Booking
	if err := base.Order("check_in DESC").Scopes(pagination.Paginate(page)).Find(&bookings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(bookings, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBookingByID returns a single booking.
func (s *bookingService) GetBookingByID(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &booking, nil
}

// UpdateBookingStatus moves a booking to a new lifecycle state.
func (s *bookingService) UpdateBookingStatus(bookingID uint, status models.BookingStatus) (*models.Booking, error) {
	booking, err := s.GetBookingByID(bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(booking).Update("status", status).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return booking, nil
}

// DeleteBooking soft-deletes a booking.
func (s *bookingService) DeleteBooking(bookingID uint) error {
	booking, err := s.GetBookingByID(bookingID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(booking).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
