package models

import "time"

// InstallmentStatus represents the stored payment state of an installment.
// Only "pending" and "paid" are ever persisted; "overdue" is derived at
// read time from the due date and is never written to the database.
type InstallmentStatus string

const (
	InstallmentStatusPending InstallmentStatus = "pending"
	InstallmentStatusPaid    InstallmentStatus = "paid"
	InstallmentStatusOverdue InstallmentStatus = "overdue"
)

// PaymentMethod represents how an installment was settled.
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheque       PaymentMethod = "cheque"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
)

// Installment represents one scheduled partial payment of an investment.
// SequenceNumber values within one investment form a contiguous range
// starting at 1; removing a mid-sequence entry renumbers the tail.
type Installment struct {
	Base
	InvestmentID   uint              `gorm:"not null;index" json:"investment_id"`
	SequenceNumber int               `gorm:"not null" json:"sequence_number"`
	Milestone      string            `gorm:"not null" json:"milestone"`
	Percentage     float64           `gorm:"not null" json:"percentage"`
	Amount         int64             `gorm:"type:bigint;not null" json:"amount"`
	DueDate        *time.Time        `json:"due_date,omitempty"`
	Status         InstallmentStatus `gorm:"not null;default:'pending'" json:"status"`

	// Populated only once the installment is paid. PaidAmount may differ
	// from Amount (partial or over-payment) and is never reconciled.
	PaidDate         *time.Time    `json:"paid_date,omitempty"`
	PaidAmount       *int64        `gorm:"type:bigint" json:"paid_amount,omitempty"`
	PaymentMethod    PaymentMethod `json:"payment_method,omitempty"`
	PaymentReference string        `json:"payment_reference,omitempty"`
}
