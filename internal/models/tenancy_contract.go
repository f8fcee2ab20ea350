package models

import "time"

// ChequeStatus represents the clearing state of a rent cheque.
type ChequeStatus string

const (
	ChequeStatusPending ChequeStatus = "pending"
	ChequeStatusCleared ChequeStatus = "cleared"
	ChequeStatusBounced ChequeStatus = "bounced"
)

// TenancyContract represents a long-term rental agreement on a property.
// Rent is typically settled through a fixed number of post-dated cheques.
type TenancyContract struct {
	Base
	PropertyID  uint      `gorm:"not null;index" json:"property_id"`
	TenantName  string    `gorm:"not null" json:"tenant_name"`
	AnnualRent  int64     `gorm:"type:bigint;not null" json:"annual_rent"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	EndDate     time.Time `gorm:"not null" json:"end_date"`
	ChequeCount int       `gorm:"not null;default:1" json:"cheque_count"`

	// Relationships
	Property Property `gorm:"foreignKey:PropertyID" json:"property"`
	Cheques  []Cheque `gorm:"foreignKey:ContractID" json:"cheques,omitempty"`
}

// Cheque represents one post-dated rent cheque under a tenancy contract.
type Cheque struct {
	Base
	ContractID   uint         `gorm:"not null;index" json:"contract_id"`
	ChequeNumber string       `gorm:"not null" json:"cheque_number"`
	Bank         string       `json:"bank"`
	Amount       int64        `gorm:"type:bigint;not null" json:"amount"`
	DueDate      time.Time    `gorm:"not null" json:"due_date"`
	Status       ChequeStatus `gorm:"not null;default:'pending'" json:"status"`
}
