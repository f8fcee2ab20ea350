package models

import "tharwa/internal/money"

// Investment represents an off-plan purchase of a property, paid off
// through an ordered schedule of installments. The installments are
// lifecycle-bound: deleting the investment deletes the whole schedule.
type Investment struct {
	Base
	PropertyID         uint    `gorm:"not null;index" json:"property_id"`
	BasePrice          int64   `gorm:"type:bigint;not null" json:"base_price"`
	LandDeptFeePercent float64 `json:"land_dept_fee_percent"`
	AdminFees          int64   `gorm:"type:bigint" json:"admin_fees"`
	OtherFees          int64   `gorm:"type:bigint" json:"other_fees"`

	// Relationships
	Property     Property      `gorm:"foreignKey:PropertyID" json:"property"`
	Installments []Installment `gorm:"foreignKey:InvestmentID" json:"installments,omitempty"`
}

// TotalCost returns the all-in cost of the investment. It is derived,
// never stored: base price plus the land department fee computed on the
// base price, plus flat admin and other fees.
func (i *Investment) TotalCost() int64 {
	return i.BasePrice + money.Percent(i.BasePrice, i.LandDeptFeePercent) + i.AdminFees + i.OtherFees
}
