// Package errors provides custom error types for the Tharwa API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Property errors.
var (
	ErrPropertyNotFound = &AppError{Code: "PROPERTY_NOT_FOUND", Message: "Property not found", StatusCode: http.StatusNotFound}
)

// Investment and installment errors.
var (
	ErrInvestmentNotFound     = &AppError{Code: "INVESTMENT_NOT_FOUND", Message: "Investment not found", StatusCode: http.StatusNotFound}
	ErrInstallmentNotFound    = &AppError{Code: "INSTALLMENT_NOT_FOUND", Message: "Installment not found", StatusCode: http.StatusNotFound}
	ErrInstallmentAlreadyPaid = &AppError{Code: "INSTALLMENT_ALREADY_PAID", Message: "Installment has already been paid", StatusCode: http.StatusConflict}
)

// Booking errors.
var (
	ErrBookingNotFound    = &AppError{Code: "BOOKING_NOT_FOUND", Message: "Booking not found", StatusCode: http.StatusNotFound}
	ErrInvalidBookingSpan = &AppError{Code: "INVALID_BOOKING_SPAN", Message: "Check-out must be after check-in", StatusCode: http.StatusBadRequest}
)

// Expense errors.
var (
	ErrExpenseNotFound = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
)

// Tenancy contract and cheque errors.
var (
	ErrContractNotFound = &AppError{Code: "CONTRACT_NOT_FOUND", Message: "Tenancy contract not found", StatusCode: http.StatusNotFound}
	ErrChequeNotFound   = &AppError{Code: "CHEQUE_NOT_FOUND", Message: "Cheque not found", StatusCode: http.StatusNotFound}
)

// Tax remittance errors.
var (
	ErrRemittanceNotFound = &AppError{Code: "REMITTANCE_NOT_FOUND", Message: "Tax remittance not found", StatusCode: http.StatusNotFound}
)
