package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/models"
	"tharwa/internal/pagination"
	"tharwa/internal/services"
)

// BookingHandler handles short-term-rental booking requests.
type BookingHandler struct {
	bookingService services.BookingServicer
	auditService   services.AuditServicer
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService services.BookingServicer, auditService services.AuditServicer) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, auditService: auditService}
}

// CreateBookingRequest represents the request payload for creating a booking.
type CreateBookingRequest struct {
	GuestName   string    `json:"guest_name" binding:"required,min=1,max=200"`
	CheckIn     time.Time `json:"check_in" binding:"required"`
	CheckOut    time.Time `json:"check_out" binding:"required"`
	NightlyRate int64     `json:"nightly_rate" binding:"required,gt=0"`
	Channel     string    `json:"channel" binding:"max=100"`
}

// UpdateBookingStatusRequest represents the request payload for a status change.
type UpdateBookingStatusRequest struct {
	Status models.BookingStatus `json:"status" binding:"required,booking_status"`
}

// ListBookingsQuery represents the query parameters for listing bookings.
type ListBookingsQuery struct {
	pagination.PageRequest
	Status   *models.BookingStatus `form:"status" binding:"omitempty,booking_status"`
	FromDate *time.Time            `form:"from" time_format:"2006-01-02"`
	ToDate   *time.Time            `form:"to" time_format:"2006-01-02"`
}

// CreateBooking handles recording a stay.
// @Summary     Create booking
// @Description Record a short-term-rental stay at a property
// @Tags        bookings
// @Accept      json
// @Produce     json
// @Param       id      path int                  true "Property ID"
// @Param       request body CreateBookingRequest true "Booking details"
// @Success     201 {object} models.Booking "Booking created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Property not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties/{id}/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	propertyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	booking, err := h.bookingService.CreateBooking(propertyID, req.GuestName, req.CheckIn, req.CheckOut, req.NightlyRate, req.Channel)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_BOOKING", "booking", booking.ID, c.ClientIP(),
		map[string]interface{}{"property_id": propertyID, "nights": booking.Nights()})

	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// GetPropertyBookings handles listing bookings for a property.
// @Summary     List bookings
// @Description Get a paginated list of bookings for a property
// @Tags        bookings
// @Produce     json
// @Param       id        path  int    true  "Property ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       status    query string false "Filter by status"
// @Param       from      query string false "Check-in on or after (YYYY-MM-DD)"
// @Param       to        query string false "Check-out on or before (YYYY-MM-DD)"
// @Success     200 {object} pagination.PageResponse[models.Booking] "Paginated bookings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Property not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties/{id}/bookings [get]
func (h *BookingHandler) GetPropertyBookings(c *gin.Context) {
	propertyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListBookingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.BookingFilter{
		Status:   query.Status,
		FromDate: query.FromDate,
		ToDate:   query.ToDate,
	}
	result, err := h.bookingService.GetPropertyBookings(propertyID, query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateBookingStatus handles a booking lifecycle change.
// @Summary     Update booking status
// @Description Move a booking to a new lifecycle state
// @Tags        bookings
// @Accept      json
// @Produce     json
// @Param       id      path int                        true "Booking ID"
// @Param       request body UpdateBookingStatusRequest true "New status"
// @Success     200 {object} models.Booking "Updated booking"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Booking not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bookings/{id}/status [put]
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	bookingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	booking, err := h.bookingService.UpdateBookingStatus(bookingID, req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_BOOKING_STATUS", "booking", bookingID, c.ClientIP(),
		map[string]interface{}{"status": string(req.Status)})

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// DeleteBooking handles deleting a booking.
// @Summary     Delete booking
// @Description Delete a booking
// @Tags        bookings
// @Produce     json
// @Param       id path int true "Booking ID"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Booking not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bookings/{id} [delete]
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	bookingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.bookingService.DeleteBooking(bookingID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_BOOKING", "booking", bookingID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}
