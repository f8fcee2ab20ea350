package models

import "time"

// TaxRemittance represents a periodic tax filing: the tax collected on
// bookings over a period and the amount actually remitted.
type TaxRemittance struct {
	Base
	PeriodLabel  string     `gorm:"not null" json:"period_label"` // e.g. "2024-Q1"
	TaxCollected int64      `gorm:"type:bigint;not null" json:"tax_collected"`
	Remitted     int64      `gorm:"type:bigint" json:"remitted"`
	RemittedDate *time.Time `json:"remitted_date,omitempty"`
	Reference    string     `json:"reference"`
}
