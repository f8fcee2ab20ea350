// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validEmirates contains the seven emirates as used in listings.
var validEmirates = map[string]bool{
	"Abu Dhabi":      true,
	"Dubai":          true,
	"Sharjah":        true,
	"Ajman":          true,
	"Umm Al Quwain":  true,
	"Ras Al Khaimah": true,
	"Fujairah":       true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("emirate", validateEmirate)
		_ = v.RegisterValidation("property_status", validatePropertyStatus)
		_ = v.RegisterValidation("property_purpose", validatePropertyPurpose)
		_ = v.RegisterValidation("payment_method", validatePaymentMethod)
		_ = v.RegisterValidation("booking_status", validateBookingStatus)
		_ = v.RegisterValidation("cheque_status", validateChequeStatus)
	}
}

func validateEmirate(fl validator.FieldLevel) bool {
	return validEmirates[fl.Field().String()]
}

func validatePropertyStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "active", "handed_over", "cancelled":
		return true
	}
	return false
}

func validatePropertyPurpose(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "short_term_rental", "off_plan", "both":
		return true
	}
	return false
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "bank_transfer", "cheque", "cash", "card":
		return true
	}
	return false
}

func validateBookingStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "confirmed", "completed", "cancelled":
		return true
	}
	return false
}

func validateChequeStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "cleared", "bounced":
		return true
	}
	return false
}
