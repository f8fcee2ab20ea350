package models

import "time"

// Expense represents an operating cost recorded against a property.
// Category is free text; grouping normalizes it at aggregation time.
type Expense struct {
	Base
	PropertyID  uint      `gorm:"not null;index" json:"property_id"`
	Category    string    `gorm:"not null" json:"category"`
	Description string    `json:"description"`
	Amount      int64     `gorm:"type:bigint;not null" json:"amount"`
	Date        time.Time `gorm:"not null" json:"date"`

	// Relationships
	Property Property `gorm:"foreignKey:PropertyID" json:"property"`
}
