package models

import "time"

// BookingStatus represents the state of a short-term-rental booking.
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking represents a short-term-rental stay at a property.
type Booking struct {
	Base
	PropertyID  uint          `gorm:"not null;index" json:"property_id"`
	GuestName   string        `gorm:"not null" json:"guest_name"`
	CheckIn     time.Time     `gorm:"not null" json:"check_in"`
	CheckOut    time.Time     `gorm:"not null" json:"check_out"`
	NightlyRate int64         `gorm:"type:bigint;not null" json:"nightly_rate"`
	TotalAmount int64         `gorm:"type:bigint;not null" json:"total_amount"`
	Channel     string        `json:"channel"` // e.g. Airbnb, Booking.com, direct
	Status      BookingStatus `gorm:"not null;default:'confirmed'" json:"status"`

	// Relationships
	Property Property `gorm:"foreignKey:PropertyID" json:"property"`
}

// Nights returns the length of the stay in nights.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}
